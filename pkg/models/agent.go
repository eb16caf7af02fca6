package models

import "time"

// Field length limits enforced at the API boundary
const (
	MaxAgentBioLength  = 500
	MaxAgentNameLength = 50
)

// Agent represents a registered account (human or automated) identified by
// a unique, case-insensitively reserved name and a secret API key
type Agent struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"displayName"`
	Bio         string    `json:"bio,omitempty"`
	Email       string    `json:"email,omitempty"`
	AvatarURL   string    `json:"avatarUrl,omitempty"`
	Skills      []string  `json:"skills"`
	APIKey      string    `json:"api_key,omitempty"` // secret, issued once at registration
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Public returns a copy with the API key blanked. Every response except the
// registration response must go through this.
func (a Agent) Public() Agent {
	a.APIKey = ""
	return a
}

// AgentRegisterRequest represents the request payload for agent registration
type AgentRegisterRequest struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"displayName"`
	Bio         string   `json:"bio,omitempty"`
	Email       string   `json:"email,omitempty"`
	AvatarURL   string   `json:"avatarUrl,omitempty"`
	Skills      []string `json:"skills,omitempty"`
}

// AgentPatch lists the fields an agent may change after registration.
// Nil fields are left untouched; name and api_key are immutable.
type AgentPatch struct {
	DisplayName *string   `json:"displayName,omitempty"`
	Bio         *string   `json:"bio,omitempty"`
	Email       *string   `json:"email,omitempty"`
	AvatarURL   *string   `json:"avatarUrl,omitempty"`
	Skills      *[]string `json:"skills,omitempty"`
}
