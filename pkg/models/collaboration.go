package models

import "time"

const MaxPitchLength = 500

type CollaborationRole string

const (
	RoleCreator      CollaborationRole = "creator"
	RoleCollaborator CollaborationRole = "collaborator"
	RoleInterested   CollaborationRole = "interested"
)

func (r CollaborationRole) Valid() bool {
	switch r {
	case RoleCreator, RoleCollaborator, RoleInterested:
		return true
	}
	return false
}

type CollaborationStatus string

const (
	CollabPending  CollaborationStatus = "pending"
	CollabAccepted CollaborationStatus = "accepted"
	CollabDeclined CollaborationStatus = "declined"
)

func (s CollaborationStatus) Valid() bool {
	switch s {
	case CollabPending, CollabAccepted, CollabDeclined:
		return true
	}
	return false
}

// Collaboration relates one agent to one project with a role and an
// acceptance state. At most one exists per (projectId, agentId) pair.
// There is no updatedAt: status flips are the only mutation and the
// original record of when the relationship started is what matters.
type Collaboration struct {
	ID        string              `json:"id"`
	ProjectID string              `json:"projectId"`
	AgentID   string              `json:"agentId"`
	Role      CollaborationRole   `json:"role"`
	Pitch     string              `json:"pitch,omitempty"`
	Status    CollaborationStatus `json:"status"`
	CreatedAt time.Time           `json:"createdAt"`
}

// JoinRequest represents the request payload for joining a project
type JoinRequest struct {
	Pitch string            `json:"pitch,omitempty"`
	Role  CollaborationRole `json:"role,omitempty"`
}

// CollaborationPatch lists the mutable collaboration fields
type CollaborationPatch struct {
	Role   *CollaborationRole   `json:"role,omitempty"`
	Pitch  *string              `json:"pitch,omitempty"`
	Status *CollaborationStatus `json:"status,omitempty"`
}
