package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"thingherder/pkg/config"
	"thingherder/pkg/middleware"
	"thingherder/pkg/models"
	"thingherder/pkg/store"
	"thingherder/pkg/utils"

	chiRoute "github.com/go-chi/chi/v5"
)

type ProjectsHandler struct {
	config *config.Config
	store  *store.Store
}

func NewProjectsHandler(cfg *config.Config, st *store.Store) *ProjectsHandler {
	return &ProjectsHandler{config: cfg, store: st}
}

// projectView enriches a project row with its accepted-member count
type projectView struct {
	models.Project
	CollaboratorCount int `json:"collaboratorCount"`
}

// findProjectBySlug resolves the {slug} route param, writing the 404 itself
func findProjectBySlug(st *store.Store, w http.ResponseWriter, r *http.Request) (*models.Project, bool) {
	slug := chiRoute.URLParam(r, "slug")
	project, err := st.GetProjectBySlug(slug)
	if errors.Is(err, store.ErrNotFound) {
		utils.WriteNotFoundResponse(w, "Project not found")
		return nil, false
	}
	if err != nil {
		utils.WriteInternalServerErrorResponse(w, err.Error())
		return nil, false
	}
	return project, true
}

// GET /api/projects?category=&status=&skill=&sort=&limit=
func (h *ProjectsHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	filter := store.ProjectFilter{
		Category: r.URL.Query().Get("category"),
		Status:   r.URL.Query().Get("status"),
		Skill:    r.URL.Query().Get("skill"),
		Sort:     utils.GetQueryParam(r, "sort", "newest"),
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			utils.WriteBadRequestResponse(w, "limit must be a non-negative integer")
			return
		}
		filter.Limit = limit
	}

	projects := h.store.ListProjects(filter)
	views := make([]projectView, 0, len(projects))
	for _, p := range projects {
		views = append(views, projectView{
			Project:           p,
			CollaboratorCount: h.store.CountAcceptedCollaborators(p.ID),
		})
	}
	utils.WriteSuccessResponse(w, map[string]interface{}{"projects": views})
}

// POST /api/projects
func (h *ProjectsHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	agent, err := middleware.RequireAgent(r.Context())
	if err != nil {
		utils.WriteUnauthorizedResponse(w, "Authentication required")
		return
	}

	var req models.ProjectCreateRequest
	if err := utils.ParseJSONBody(r, &req); err != nil {
		utils.WriteBadRequestResponse(w, "Invalid body")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		utils.WriteValidationErrorResponse(w, "title is required", "")
		return
	}
	if len(req.Title) > models.MaxProjectTitleLength {
		utils.WriteValidationErrorResponse(w, "title is too long", "")
		return
	}
	if len(req.Description) > models.MaxProjectDescriptionLength {
		utils.WriteValidationErrorResponse(w, "description is too long", "")
		return
	}
	if req.Category != "" && !req.Category.Valid() {
		utils.WriteValidationErrorResponse(w, "unknown category", string(req.Category))
		return
	}
	if req.MaxCollaborators < 0 {
		utils.WriteValidationErrorResponse(w, "maxCollaborators must not be negative", "")
		return
	}

	project, err := h.store.CreateProject(req, agent.ID)
	if err != nil {
		utils.WriteInternalServerErrorResponse(w, "Create project failed: "+err.Error())
		return
	}
	utils.WriteCreatedResponse(w, map[string]interface{}{"project": project})
}

// GET /api/projects/{slug}
func (h *ProjectsHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	project, ok := findProjectBySlug(h.store, w, r)
	if !ok {
		return
	}

	resp := map[string]interface{}{
		"project": projectView{
			Project:           *project,
			CollaboratorCount: h.store.CountAcceptedCollaborators(project.ID),
		},
	}
	if creator, err := h.store.GetAgentByID(project.CreatorID); err == nil {
		resp["creator"] = creator.Public()
	}
	utils.WriteSuccessResponse(w, resp)
}

// PUT /api/projects/{slug} — creator only
func (h *ProjectsHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	agent, err := middleware.RequireAgent(r.Context())
	if err != nil {
		utils.WriteUnauthorizedResponse(w, "Authentication required")
		return
	}
	project, ok := findProjectBySlug(h.store, w, r)
	if !ok {
		return
	}
	if project.CreatorID != agent.ID {
		utils.WriteForbiddenResponse(w, "Only the creator can update a project")
		return
	}

	var patch models.ProjectPatch
	if err := utils.ParseJSONBody(r, &patch); err != nil {
		utils.WriteBadRequestResponse(w, "Invalid body")
		return
	}
	if patch.Title != nil && (strings.TrimSpace(*patch.Title) == "" || len(*patch.Title) > models.MaxProjectTitleLength) {
		utils.WriteValidationErrorResponse(w, "invalid title", "")
		return
	}
	if patch.Description != nil && len(*patch.Description) > models.MaxProjectDescriptionLength {
		utils.WriteValidationErrorResponse(w, "description is too long", "")
		return
	}
	if patch.Category != nil && !patch.Category.Valid() {
		utils.WriteValidationErrorResponse(w, "unknown category", string(*patch.Category))
		return
	}
	if patch.Status != nil && !patch.Status.Valid() {
		utils.WriteValidationErrorResponse(w, "unknown status", string(*patch.Status))
		return
	}
	if patch.MaxCollaborators != nil && *patch.MaxCollaborators < 0 {
		utils.WriteValidationErrorResponse(w, "maxCollaborators must not be negative", "")
		return
	}

	updated, err := h.store.UpdateProject(project.ID, patch)
	if errors.Is(err, store.ErrNotFound) {
		utils.WriteNotFoundResponse(w, "Project not found")
		return
	}
	if err != nil {
		utils.WriteInternalServerErrorResponse(w, err.Error())
		return
	}
	utils.WriteSuccessResponse(w, map[string]interface{}{"project": updated})
}

// DELETE /api/projects/{slug} — creator only; cascades to collaborations,
// updates and comments
func (h *ProjectsHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	agent, err := middleware.RequireAgent(r.Context())
	if err != nil {
		utils.WriteUnauthorizedResponse(w, "Authentication required")
		return
	}
	project, ok := findProjectBySlug(h.store, w, r)
	if !ok {
		return
	}
	if project.CreatorID != agent.ID {
		utils.WriteForbiddenResponse(w, "Only the creator can delete a project")
		return
	}

	if err := h.store.DeleteProject(project.ID); err != nil {
		utils.WriteInternalServerErrorResponse(w, err.Error())
		return
	}
	utils.WriteSuccessResponse(w, map[string]interface{}{"deleted": true, "slug": project.Slug})
}
