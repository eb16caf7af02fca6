package store

import (
	"sort"
	"time"

	"thingherder/pkg/models"

	"github.com/google/uuid"
)

// CreateComment appends a discussion comment. Comments are immutable after
// creation.
func (s *Store) CreateComment(projectID, agentID, content string) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	comment := &models.Comment{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		AgentID:   agentID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	s.doc.Comments[comment.ID] = comment

	if err := s.save(); err != nil {
		return nil, err
	}
	out := *comment
	return &out, nil
}

// ListCommentsByProject returns a project's comments oldest-first: a
// discussion thread reads top-down.
func (s *Store) ListCommentsByProject(projectID string) []models.Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var comments []models.Comment
	for _, c := range s.doc.Comments {
		if c.ProjectID == projectID {
			comments = append(comments, *c)
		}
	}
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
	return comments
}
