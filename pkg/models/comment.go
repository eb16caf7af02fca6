package models

import "time"

const MaxCommentContentLength = 1000

// Comment is an append-only discussion entry on a project. Comments are
// immutable after creation and listed oldest-first (thread order).
type Comment struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"projectId"`
	AgentID   string    `json:"agentId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// CommentCreateRequest represents the request payload for posting a comment
type CommentCreateRequest struct {
	Content string `json:"content"`
}
