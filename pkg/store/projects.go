package store

import (
	"sort"
	"strings"
	"time"

	"thingherder/pkg/models"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// ProjectFilter narrows ListProjects. Status is a comma-separated set; when
// empty, the default set {seeking, in-progress} applies. Limit truncates the
// result after filtering and sorting; zero means no limit.
type ProjectFilter struct {
	Category string
	Status   string
	Skill    string
	Sort     string
	Limit    int
}

// CreateProject derives a unique slug from the title, forces status to
// "seeking" regardless of caller input, and auto-creates the creator's
// collaboration (role=creator, status=accepted) in the same critical
// section, so a project is never observable without its creator row.
func (s *Store) CreateProject(req models.ProjectCreateRequest, creatorID string) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.doc.Agents[creatorID]; !ok {
		return nil, ErrNotFound
	}

	category := req.Category
	if category == "" {
		category = models.CategoryOther
	}

	now := time.Now().UTC()
	project := &models.Project{
		ID:               uuid.New().String(),
		Slug:             s.uniqueSlugLocked(Slugify(req.Title)),
		Title:            req.Title,
		Description:      req.Description,
		Category:         category,
		Status:           models.StatusSeeking,
		SkillsNeeded:     req.SkillsNeeded,
		MaxCollaborators: req.MaxCollaborators,
		CreatorID:        creatorID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if project.SkillsNeeded == nil {
		project.SkillsNeeded = []string{}
	}
	s.doc.Projects[project.ID] = project

	creator := &models.Collaboration{
		ID:        uuid.New().String(),
		ProjectID: project.ID,
		AgentID:   creatorID,
		Role:      models.RoleCreator,
		Status:    models.CollabAccepted,
		CreatedAt: now,
	}
	s.doc.Collaborations[creator.ID] = creator

	if err := s.save(); err != nil {
		return nil, err
	}
	out := *project
	return &out, nil
}

// GetProjectByID returns the project or ErrNotFound.
func (s *Store) GetProjectByID(id string) (*models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	project, ok := s.doc.Projects[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *project
	return &out, nil
}

// GetProjectBySlug returns the project or ErrNotFound.
func (s *Store) GetProjectBySlug(slug string) (*models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, project := range s.doc.Projects {
		if project.Slug == slug {
			out := *project
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

// ListProjects returns filtered projects, newest-created first. The
// "popular" sort option is accepted from the API but falls back to
// newest-first: nothing in the document ranks projects yet.
func (s *Store) ListProjects(filter ProjectFilter) []models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()

	statuses := map[models.ProjectStatus]bool{
		models.StatusSeeking:    true,
		models.StatusInProgress: true,
	}
	if filter.Status != "" {
		statuses = map[models.ProjectStatus]bool{}
		for _, raw := range strings.Split(filter.Status, ",") {
			statuses[models.ProjectStatus(strings.TrimSpace(raw))] = true
		}
	}

	projects := lo.FilterMap(lo.Values(s.doc.Projects), func(p *models.Project, _ int) (models.Project, bool) {
		if !statuses[p.Status] {
			return models.Project{}, false
		}
		if filter.Category != "" && string(p.Category) != filter.Category {
			return models.Project{}, false
		}
		if filter.Skill != "" && !lo.Contains(p.SkillsNeeded, filter.Skill) {
			return models.Project{}, false
		}
		return *p, true
	})

	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].CreatedAt.After(projects[j].CreatedAt)
	})

	if filter.Limit > 0 && len(projects) > filter.Limit {
		projects = projects[:filter.Limit]
	}
	return projects
}

// ListProjectsByCreator returns every project created by the agent,
// unordered.
func (s *Store) ListProjectsByCreator(agentID string) []models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return lo.FilterMap(lo.Values(s.doc.Projects), func(p *models.Project, _ int) (models.Project, bool) {
		return *p, p.CreatorID == agentID
	})
}

// UpdateProject applies the non-nil patch fields and refreshes updatedAt.
// The slug is never regenerated.
func (s *Store) UpdateProject(id string, patch models.ProjectPatch) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	project, ok := s.doc.Projects[id]
	if !ok {
		return nil, ErrNotFound
	}

	if patch.Title != nil {
		project.Title = *patch.Title
	}
	if patch.Description != nil {
		project.Description = *patch.Description
	}
	if patch.Category != nil {
		project.Category = *patch.Category
	}
	if patch.Status != nil {
		project.Status = *patch.Status
	}
	if patch.SkillsNeeded != nil {
		project.SkillsNeeded = *patch.SkillsNeeded
	}
	if patch.MaxCollaborators != nil {
		project.MaxCollaborators = *patch.MaxCollaborators
	}
	project.UpdatedAt = time.Now().UTC()

	if err := s.save(); err != nil {
		return nil, err
	}
	out := *project
	return &out, nil
}

// DeleteProject removes the project and cascades to every collaboration,
// update and comment referencing it. The cascade runs under the write lock
// and flushes once, so no partial-cascade state is ever observable.
func (s *Store) DeleteProject(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.doc.Projects[id]; !ok {
		return ErrNotFound
	}
	delete(s.doc.Projects, id)

	for cid, c := range s.doc.Collaborations {
		if c.ProjectID == id {
			delete(s.doc.Collaborations, cid)
		}
	}
	for uid, u := range s.doc.Updates {
		if u.ProjectID == id {
			delete(s.doc.Updates, uid)
		}
	}
	for cid, c := range s.doc.Comments {
		if c.ProjectID == id {
			delete(s.doc.Comments, cid)
		}
	}
	return s.save()
}
