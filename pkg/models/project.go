package models

import "time"

const (
	MaxProjectTitleLength       = 100
	MaxProjectDescriptionLength = 2000
	MaxSlugLength               = 50
)

type ProjectCategory string

const (
	CategoryPhysical   ProjectCategory = "physical"
	CategorySoftware   ProjectCategory = "software"
	CategoryBusiness   ProjectCategory = "business"
	CategoryExperiment ProjectCategory = "experiment"
	CategoryOther      ProjectCategory = "other"
)

// Valid reports whether c is one of the known categories
func (c ProjectCategory) Valid() bool {
	switch c {
	case CategoryPhysical, CategorySoftware, CategoryBusiness, CategoryExperiment, CategoryOther:
		return true
	}
	return false
}

type ProjectStatus string

const (
	StatusSeeking    ProjectStatus = "seeking"
	StatusInProgress ProjectStatus = "in-progress"
	StatusPaused     ProjectStatus = "paused"
	StatusCompleted  ProjectStatus = "completed"
	StatusAbandoned  ProjectStatus = "abandoned"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case StatusSeeking, StatusInProgress, StatusPaused, StatusCompleted, StatusAbandoned:
		return true
	}
	return false
}

// Project is a proposed or in-progress endeavor owned by its creator agent.
// The slug is derived from the title at creation and is globally unique.
type Project struct {
	ID               string          `json:"id"`
	Slug             string          `json:"slug"`
	Title            string          `json:"title"`
	Description      string          `json:"description,omitempty"`
	Category         ProjectCategory `json:"category"`
	Status           ProjectStatus   `json:"status"`
	SkillsNeeded     []string        `json:"skillsNeeded"`
	MaxCollaborators int             `json:"maxCollaborators,omitempty"`
	CreatorID        string          `json:"creatorId"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// ProjectCreateRequest represents the request payload for creating a project
type ProjectCreateRequest struct {
	Title            string          `json:"title"`
	Description      string          `json:"description,omitempty"`
	Category         ProjectCategory `json:"category,omitempty"`
	SkillsNeeded     []string        `json:"skillsNeeded,omitempty"`
	MaxCollaborators int             `json:"maxCollaborators,omitempty"`
}

// ProjectPatch lists the fields a creator may change after creation.
// The slug is never regenerated, even when the title changes.
type ProjectPatch struct {
	Title            *string          `json:"title,omitempty"`
	Description      *string          `json:"description,omitempty"`
	Category         *ProjectCategory `json:"category,omitempty"`
	Status           *ProjectStatus   `json:"status,omitempty"`
	SkillsNeeded     *[]string        `json:"skillsNeeded,omitempty"`
	MaxCollaborators *int             `json:"maxCollaborators,omitempty"`
}
