package store

import (
	"testing"

	"thingherder/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinProject(t *testing.T) {
	s := newTestStore(t)
	ada := newTestAgent(t, s, "ada")
	grace := newTestAgent(t, s, "grace")
	p := newTestProject(t, s, ada.ID, "Robot")

	collab, err := s.JoinProject(p.ID, grace.ID, "", "I know gyroscopes")
	require.NoError(t, err)
	assert.Equal(t, models.RoleCollaborator, collab.Role, "role defaults to collaborator")
	assert.Equal(t, models.CollabPending, collab.Status, "status defaults to pending")
	assert.Equal(t, "I know gyroscopes", collab.Pitch)
}

func TestJoinProjectRejectsDuplicatePair(t *testing.T) {
	s := newTestStore(t)
	ada := newTestAgent(t, s, "ada")
	grace := newTestAgent(t, s, "grace")
	p := newTestProject(t, s, ada.ID, "Robot")

	_, err := s.JoinProject(p.ID, grace.ID, "", "")
	require.NoError(t, err)
	_, err = s.JoinProject(p.ID, grace.ID, "", "second try")
	assert.ErrorIs(t, err, ErrDuplicate)

	// The creator already has their auto-created row
	_, err = s.JoinProject(p.ID, ada.ID, "", "")
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestCreateCollaborationIsPermissive(t *testing.T) {
	s := newTestStore(t)
	ada := newTestAgent(t, s, "ada")
	grace := newTestAgent(t, s, "grace")
	p := newTestProject(t, s, ada.ID, "Robot")

	// Duplicate pairs are the caller's check; the low-level create inserts
	// unconditionally.
	_, err := s.CreateCollaboration(p.ID, grace.ID, "", "", "")
	require.NoError(t, err)
	_, err = s.CreateCollaboration(p.ID, grace.ID, "", "", "")
	require.NoError(t, err)
	assert.Len(t, s.ListCollaborationsByProject(p.ID), 3)
}

func TestGetCollaboration(t *testing.T) {
	s := newTestStore(t)
	ada := newTestAgent(t, s, "ada")
	grace := newTestAgent(t, s, "grace")
	p := newTestProject(t, s, ada.ID, "Robot")

	_, err := s.GetCollaboration(p.ID, grace.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	created, err := s.JoinProject(p.ID, grace.ID, models.RoleInterested, "")
	require.NoError(t, err)

	got, err := s.GetCollaboration(p.ID, grace.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, models.RoleInterested, got.Role)
}

func TestListCollaborationsByAgent(t *testing.T) {
	s := newTestStore(t)
	ada := newTestAgent(t, s, "ada")
	grace := newTestAgent(t, s, "grace")
	p1 := newTestProject(t, s, ada.ID, "Robot")
	p2 := newTestProject(t, s, ada.ID, "Compiler")

	_, err := s.JoinProject(p1.ID, grace.ID, "", "")
	require.NoError(t, err)
	_, err = s.JoinProject(p2.ID, grace.ID, "", "")
	require.NoError(t, err)

	assert.Len(t, s.ListCollaborationsByAgent(grace.ID), 2)
	assert.Len(t, s.ListCollaborationsByAgent(ada.ID), 2, "creator rows count too")
}

func TestUpdateCollaborationStatus(t *testing.T) {
	s := newTestStore(t)
	ada := newTestAgent(t, s, "ada")
	grace := newTestAgent(t, s, "grace")
	p := newTestProject(t, s, ada.ID, "Robot")

	collab, err := s.JoinProject(p.ID, grace.ID, "", "")
	require.NoError(t, err)

	accepted := models.CollabAccepted
	updated, err := s.UpdateCollaboration(collab.ID, models.CollaborationPatch{Status: &accepted})
	require.NoError(t, err)
	assert.Equal(t, models.CollabAccepted, updated.Status)
	assert.Equal(t, collab.Pitch, updated.Pitch)

	_, err = s.UpdateCollaboration("missing", models.CollaborationPatch{Status: &accepted})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteCollaborationIsNoopWhenAbsent(t *testing.T) {
	s := newTestStore(t)
	ada := newTestAgent(t, s, "ada")
	grace := newTestAgent(t, s, "grace")
	p := newTestProject(t, s, ada.ID, "Robot")

	assert.NoError(t, s.DeleteCollaboration(p.ID, grace.ID), "absent pair is a no-op")

	_, err := s.JoinProject(p.ID, grace.ID, "", "")
	require.NoError(t, err)
	require.NoError(t, s.DeleteCollaboration(p.ID, grace.ID))

	_, err = s.GetCollaboration(p.ID, grace.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCountAcceptedCollaborators(t *testing.T) {
	s := newTestStore(t)
	ada := newTestAgent(t, s, "ada")
	grace := newTestAgent(t, s, "grace")
	alan := newTestAgent(t, s, "alan")
	p := newTestProject(t, s, ada.ID, "Robot")

	// creator's auto-created row is accepted
	assert.Equal(t, 1, s.CountAcceptedCollaborators(p.ID))

	gc, err := s.JoinProject(p.ID, grace.ID, "", "")
	require.NoError(t, err)
	_, err = s.JoinProject(p.ID, alan.ID, "", "")
	require.NoError(t, err)
	assert.Equal(t, 1, s.CountAcceptedCollaborators(p.ID), "pending rows don't count")

	accepted := models.CollabAccepted
	_, err = s.UpdateCollaboration(gc.ID, models.CollaborationPatch{Status: &accepted})
	require.NoError(t, err)
	assert.Equal(t, 2, s.CountAcceptedCollaborators(p.ID))
}
