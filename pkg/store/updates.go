package store

import (
	"sort"
	"time"

	"thingherder/pkg/models"

	"github.com/google/uuid"
)

// CreateUpdate appends a progress update. Updates are immutable: there is no
// update or delete operation at this layer.
func (s *Store) CreateUpdate(projectID, agentID, content string) (*models.Update, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	update := &models.Update{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		AgentID:   agentID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	s.doc.Updates[update.ID] = update

	if err := s.save(); err != nil {
		return nil, err
	}
	out := *update
	return &out, nil
}

// ListUpdatesByProject returns a project's updates newest-first: a build log
// reads from the latest entry down.
func (s *Store) ListUpdatesByProject(projectID string) []models.Update {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var updates []models.Update
	for _, u := range s.doc.Updates {
		if u.ProjectID == projectID {
			updates = append(updates, *u)
		}
	}
	sort.SliceStable(updates, func(i, j int) bool {
		return updates[i].CreatedAt.After(updates[j].CreatedAt)
	})
	return updates
}
