package store

import (
	"time"

	"thingherder/pkg/models"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// CreateCollaboration inserts without checking for an existing
// (projectId, agentId) pair. Request handlers go through JoinProject, which
// keeps the duplicate guard and the insert in one critical section.
func (s *Store) CreateCollaboration(projectID, agentID string, role models.CollaborationRole, pitch string, status models.CollaborationStatus) (*models.Collaboration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createCollaborationLocked(projectID, agentID, role, pitch, status)
}

// JoinProject creates a pending collaboration unless the pair already has
// one, in which case it returns ErrDuplicate.
func (s *Store) JoinProject(projectID, agentID string, role models.CollaborationRole, pitch string) (*models.Collaboration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findCollaborationLocked(projectID, agentID) != nil {
		return nil, ErrDuplicate
	}
	return s.createCollaborationLocked(projectID, agentID, role, pitch, models.CollabPending)
}

func (s *Store) createCollaborationLocked(projectID, agentID string, role models.CollaborationRole, pitch string, status models.CollaborationStatus) (*models.Collaboration, error) {
	if role == "" {
		role = models.RoleCollaborator
	}
	if status == "" {
		status = models.CollabPending
	}

	collab := &models.Collaboration{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		AgentID:   agentID,
		Role:      role,
		Pitch:     pitch,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}
	s.doc.Collaborations[collab.ID] = collab

	if err := s.save(); err != nil {
		return nil, err
	}
	out := *collab
	return &out, nil
}

// GetCollaboration resolves the single record for a (projectId, agentId)
// pair, or ErrNotFound. It doubles as the duplicate guard and as the
// accept/decline/leave target resolver.
func (s *Store) GetCollaboration(projectID, agentID string) (*models.Collaboration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if c := s.findCollaborationLocked(projectID, agentID); c != nil {
		out := *c
		return &out, nil
	}
	return nil, ErrNotFound
}

func (s *Store) findCollaborationLocked(projectID, agentID string) *models.Collaboration {
	for _, c := range s.doc.Collaborations {
		if c.ProjectID == projectID && c.AgentID == agentID {
			return c
		}
	}
	return nil
}

// ListCollaborationsByProject returns all collaborations on a project,
// unordered.
func (s *Store) ListCollaborationsByProject(projectID string) []models.Collaboration {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return lo.FilterMap(lo.Values(s.doc.Collaborations), func(c *models.Collaboration, _ int) (models.Collaboration, bool) {
		return *c, c.ProjectID == projectID
	})
}

// ListCollaborationsByAgent returns all collaborations of an agent,
// unordered.
func (s *Store) ListCollaborationsByAgent(agentID string) []models.Collaboration {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return lo.FilterMap(lo.Values(s.doc.Collaborations), func(c *models.Collaboration, _ int) (models.Collaboration, bool) {
		return *c, c.AgentID == agentID
	})
}

// UpdateCollaboration applies the non-nil patch fields. Collaborations have
// no updatedAt to refresh.
func (s *Store) UpdateCollaboration(id string, patch models.CollaborationPatch) (*models.Collaboration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	collab, ok := s.doc.Collaborations[id]
	if !ok {
		return nil, ErrNotFound
	}

	if patch.Role != nil {
		collab.Role = *patch.Role
	}
	if patch.Pitch != nil {
		collab.Pitch = *patch.Pitch
	}
	if patch.Status != nil {
		collab.Status = *patch.Status
	}

	if err := s.save(); err != nil {
		return nil, err
	}
	out := *collab
	return &out, nil
}

// DeleteCollaboration removes the record for the pair; absent pairs are a
// no-op, not an error.
func (s *Store) DeleteCollaboration(projectID, agentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	collab := s.findCollaborationLocked(projectID, agentID)
	if collab == nil {
		return nil
	}
	delete(s.doc.Collaborations, collab.ID)
	return s.save()
}

// CountAcceptedCollaborators counts accepted collaborations on a project,
// for capacity checks and display.
func (s *Store) CountAcceptedCollaborators(projectID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return lo.CountBy(lo.Values(s.doc.Collaborations), func(c *models.Collaboration) bool {
		return c.ProjectID == projectID && c.Status == models.CollabAccepted
	})
}
