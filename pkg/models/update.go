package models

import "time"

const MaxUpdateContentLength = 2000

// Update is an append-only progress entry on a project. Updates are
// immutable after creation and listed newest-first (build-log order).
type Update struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"projectId"`
	AgentID   string    `json:"agentId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// UpdateCreateRequest represents the request payload for posting an update
type UpdateCreateRequest struct {
	Content string `json:"content"`
}
