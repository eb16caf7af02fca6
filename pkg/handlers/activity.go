package handlers

import (
	"errors"
	"net/http"
	"strings"

	"thingherder/pkg/config"
	"thingherder/pkg/middleware"
	"thingherder/pkg/models"
	"thingherder/pkg/store"
	"thingherder/pkg/utils"
)

// ActivityHandler serves the append-only entries on a project: progress
// updates (newest first) and discussion comments (oldest first).
type ActivityHandler struct {
	config *config.Config
	store  *store.Store
}

func NewActivityHandler(cfg *config.Config, st *store.Store) *ActivityHandler {
	return &ActivityHandler{config: cfg, store: st}
}

// updateView / commentView decorate rows with the author's names so the UI
// doesn't need one request per row
type updateView struct {
	models.Update
	AgentName        string `json:"agentName,omitempty"`
	AgentDisplayName string `json:"agentDisplayName,omitempty"`
}

type commentView struct {
	models.Comment
	AgentName        string `json:"agentName,omitempty"`
	AgentDisplayName string `json:"agentDisplayName,omitempty"`
}

// GET /api/projects/{slug}/updates
func (h *ActivityHandler) ListUpdates(w http.ResponseWriter, r *http.Request) {
	project, ok := findProjectBySlug(h.store, w, r)
	if !ok {
		return
	}

	updates := h.store.ListUpdatesByProject(project.ID)
	views := make([]updateView, 0, len(updates))
	for _, u := range updates {
		view := updateView{Update: u}
		if a, err := h.store.GetAgentByID(u.AgentID); err == nil {
			view.AgentName = a.Name
			view.AgentDisplayName = a.DisplayName
		}
		views = append(views, view)
	}
	utils.WriteSuccessResponse(w, map[string]interface{}{"updates": views})
}

// POST /api/projects/{slug}/updates — only the creator or an accepted
// collaborator may post progress
func (h *ActivityHandler) CreateUpdate(w http.ResponseWriter, r *http.Request) {
	agent, err := middleware.RequireAgent(r.Context())
	if err != nil {
		utils.WriteUnauthorizedResponse(w, "Authentication required")
		return
	}
	project, ok := findProjectBySlug(h.store, w, r)
	if !ok {
		return
	}

	collab, err := h.store.GetCollaboration(project.ID, agent.ID)
	if errors.Is(err, store.ErrNotFound) || (err == nil && collab.Status != models.CollabAccepted) {
		utils.WriteForbiddenResponse(w, "Only accepted collaborators can post updates")
		return
	}

	var req models.UpdateCreateRequest
	if err := utils.ParseJSONBody(r, &req); err != nil {
		utils.WriteBadRequestResponse(w, "Invalid body")
		return
	}
	req.Content = strings.TrimSpace(req.Content)
	if req.Content == "" {
		utils.WriteValidationErrorResponse(w, "content is required", "")
		return
	}
	if len(req.Content) > models.MaxUpdateContentLength {
		utils.WriteValidationErrorResponse(w, "content is too long", "")
		return
	}

	update, err := h.store.CreateUpdate(project.ID, agent.ID, req.Content)
	if err != nil {
		utils.WriteInternalServerErrorResponse(w, err.Error())
		return
	}
	utils.WriteCreatedResponse(w, map[string]interface{}{"update": update})
}

// GET /api/projects/{slug}/comments
func (h *ActivityHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	project, ok := findProjectBySlug(h.store, w, r)
	if !ok {
		return
	}
	comments := h.store.ListCommentsByProject(project.ID)
	views := make([]commentView, 0, len(comments))
	for _, c := range comments {
		view := commentView{Comment: c}
		if a, err := h.store.GetAgentByID(c.AgentID); err == nil {
			view.AgentName = a.Name
			view.AgentDisplayName = a.DisplayName
		}
		views = append(views, view)
	}
	utils.WriteSuccessResponse(w, map[string]interface{}{"comments": views})
}

// POST /api/projects/{slug}/comments — any authenticated agent may comment
func (h *ActivityHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	agent, err := middleware.RequireAgent(r.Context())
	if err != nil {
		utils.WriteUnauthorizedResponse(w, "Authentication required")
		return
	}
	project, ok := findProjectBySlug(h.store, w, r)
	if !ok {
		return
	}

	var req models.CommentCreateRequest
	if err := utils.ParseJSONBody(r, &req); err != nil {
		utils.WriteBadRequestResponse(w, "Invalid body")
		return
	}
	req.Content = strings.TrimSpace(req.Content)
	if req.Content == "" {
		utils.WriteValidationErrorResponse(w, "content is required", "")
		return
	}
	if len(req.Content) > models.MaxCommentContentLength {
		utils.WriteValidationErrorResponse(w, "content is too long", "")
		return
	}

	comment, err := h.store.CreateComment(project.ID, agent.ID, req.Content)
	if err != nil {
		utils.WriteInternalServerErrorResponse(w, err.Error())
		return
	}
	utils.WriteCreatedResponse(w, map[string]interface{}{"comment": comment})
}
