package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Updates and comments sort in opposite directions on purpose: build logs
// show the newest entry first, discussion threads read top-down.
func TestUpdateAndCommentOrdering(t *testing.T) {
	s := newTestStore(t)
	ada := newTestAgent(t, s, "ada")
	p := newTestProject(t, s, ada.ID, "Robot")

	for _, content := range []string{"first", "second", "third"} {
		_, err := s.CreateUpdate(p.ID, ada.ID, content)
		require.NoError(t, err)
		_, err = s.CreateComment(p.ID, ada.ID, content)
		require.NoError(t, err)
		time.Sleep(time.Millisecond)
	}

	updates := s.ListUpdatesByProject(p.ID)
	require.Len(t, updates, 3)
	assert.Equal(t, "third", updates[0].Content, "updates are newest-first")
	assert.Equal(t, "second", updates[1].Content)
	assert.Equal(t, "first", updates[2].Content)

	comments := s.ListCommentsByProject(p.ID)
	require.Len(t, comments, 3)
	assert.Equal(t, "first", comments[0].Content, "comments are oldest-first")
	assert.Equal(t, "second", comments[1].Content)
	assert.Equal(t, "third", comments[2].Content)
}

func TestActivityScopedToProject(t *testing.T) {
	s := newTestStore(t)
	ada := newTestAgent(t, s, "ada")
	p1 := newTestProject(t, s, ada.ID, "Robot")
	p2 := newTestProject(t, s, ada.ID, "Compiler")

	_, err := s.CreateUpdate(p1.ID, ada.ID, "robot progress")
	require.NoError(t, err)
	_, err = s.CreateComment(p2.ID, ada.ID, "compiler question")
	require.NoError(t, err)

	assert.Len(t, s.ListUpdatesByProject(p1.ID), 1)
	assert.Empty(t, s.ListUpdatesByProject(p2.ID))
	assert.Empty(t, s.ListCommentsByProject(p1.ID))
	assert.Len(t, s.ListCommentsByProject(p2.ID), 1)
}
