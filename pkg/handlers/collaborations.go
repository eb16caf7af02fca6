package handlers

import (
	"errors"
	"io"
	"net/http"

	"thingherder/pkg/config"
	"thingherder/pkg/middleware"
	"thingherder/pkg/models"
	"thingherder/pkg/store"
	"thingherder/pkg/utils"

	chiRoute "github.com/go-chi/chi/v5"
)

type CollaborationsHandler struct {
	config *config.Config
	store  *store.Store
}

func NewCollaborationsHandler(cfg *config.Config, st *store.Store) *CollaborationsHandler {
	return &CollaborationsHandler{config: cfg, store: st}
}

// collaboratorView pairs a collaboration with the agent's public profile
type collaboratorView struct {
	models.Collaboration
	Agent *models.Agent `json:"agent,omitempty"`
}

// POST /api/projects/{slug}/join
func (h *CollaborationsHandler) Join(w http.ResponseWriter, r *http.Request) {
	agent, err := middleware.RequireAgent(r.Context())
	if err != nil {
		utils.WriteUnauthorizedResponse(w, "Authentication required")
		return
	}
	project, ok := findProjectBySlug(h.store, w, r)
	if !ok {
		return
	}

	// 请求体可以为空：pitch 与 role 都是可选的
	var req models.JoinRequest
	if err := utils.ParseJSONBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
		utils.WriteBadRequestResponse(w, "Invalid body")
		return
	}
	if len(req.Pitch) > models.MaxPitchLength {
		utils.WriteValidationErrorResponse(w, "pitch is too long", "")
		return
	}
	if req.Role == models.RoleCreator {
		utils.WriteValidationErrorResponse(w, "role creator is reserved", "")
		return
	}
	if req.Role != "" && !req.Role.Valid() {
		utils.WriteValidationErrorResponse(w, "unknown role", string(req.Role))
		return
	}

	collab, err := h.store.JoinProject(project.ID, agent.ID, req.Role, req.Pitch)
	if errors.Is(err, store.ErrDuplicate) {
		utils.WriteConflictResponse(w, "Already collaborating on this project")
		return
	}
	if err != nil {
		utils.WriteInternalServerErrorResponse(w, err.Error())
		return
	}
	utils.WriteCreatedResponse(w, map[string]interface{}{"collaboration": collab})
}

// POST /api/projects/{slug}/leave
func (h *CollaborationsHandler) Leave(w http.ResponseWriter, r *http.Request) {
	agent, err := middleware.RequireAgent(r.Context())
	if err != nil {
		utils.WriteUnauthorizedResponse(w, "Authentication required")
		return
	}
	project, ok := findProjectBySlug(h.store, w, r)
	if !ok {
		return
	}
	// The creator row only dies with the project itself
	if project.CreatorID == agent.ID {
		utils.WriteForbiddenResponse(w, "The creator cannot leave their own project")
		return
	}

	if _, err := h.store.GetCollaboration(project.ID, agent.ID); errors.Is(err, store.ErrNotFound) {
		utils.WriteNotFoundResponse(w, "Not collaborating on this project")
		return
	}
	if err := h.store.DeleteCollaboration(project.ID, agent.ID); err != nil {
		utils.WriteInternalServerErrorResponse(w, err.Error())
		return
	}
	utils.WriteSuccessResponse(w, map[string]interface{}{"left": true, "slug": project.Slug})
}

// GET /api/projects/{slug}/collaborators
func (h *CollaborationsHandler) ListCollaborators(w http.ResponseWriter, r *http.Request) {
	project, ok := findProjectBySlug(h.store, w, r)
	if !ok {
		return
	}

	collabs := h.store.ListCollaborationsByProject(project.ID)
	views := make([]collaboratorView, 0, len(collabs))
	for _, c := range collabs {
		view := collaboratorView{Collaboration: c}
		if a, err := h.store.GetAgentByID(c.AgentID); err == nil {
			pub := a.Public()
			view.Agent = &pub
		}
		views = append(views, view)
	}

	utils.WriteSuccessResponse(w, map[string]interface{}{
		"collaborators": views,
		"acceptedCount": h.store.CountAcceptedCollaborators(project.ID),
	})
}

// PUT /api/projects/{slug}/collaborators/{agentID} — creator accepts or
// declines a join request
func (h *CollaborationsHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
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
		utils.WriteForbiddenResponse(w, "Only the creator can manage collaborators")
		return
	}

	targetID := chiRoute.URLParam(r, "agentID")
	collab, err := h.store.GetCollaboration(project.ID, targetID)
	if errors.Is(err, store.ErrNotFound) {
		utils.WriteNotFoundResponse(w, "Collaboration not found")
		return
	}
	if err != nil {
		utils.WriteInternalServerErrorResponse(w, err.Error())
		return
	}
	if collab.Role == models.RoleCreator {
		utils.WriteForbiddenResponse(w, "The creator membership cannot be changed")
		return
	}

	var req struct {
		Status models.CollaborationStatus `json:"status"`
	}
	if err := utils.ParseJSONBody(r, &req); err != nil {
		utils.WriteBadRequestResponse(w, "Invalid body")
		return
	}
	if req.Status != models.CollabAccepted && req.Status != models.CollabDeclined {
		utils.WriteValidationErrorResponse(w, "status must be accepted or declined", string(req.Status))
		return
	}

	// Capacity check at accept time. The creator's own accepted row is not
	// a collaborator, hence the -1.
	if req.Status == models.CollabAccepted && project.MaxCollaborators > 0 {
		accepted := h.store.CountAcceptedCollaborators(project.ID) - 1
		if collab.Status != models.CollabAccepted && accepted >= project.MaxCollaborators {
			utils.WriteConflictResponse(w, "Project is at its collaborator limit")
			return
		}
	}

	updated, err := h.store.UpdateCollaboration(collab.ID, models.CollaborationPatch{Status: &req.Status})
	if err != nil {
		utils.WriteInternalServerErrorResponse(w, err.Error())
		return
	}
	utils.WriteSuccessResponse(w, map[string]interface{}{"collaboration": updated})
}
