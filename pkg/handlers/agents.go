package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"thingherder/pkg/config"
	"thingherder/pkg/middleware"
	"thingherder/pkg/models"
	"thingherder/pkg/store"
	"thingherder/pkg/utils"

	chiRoute "github.com/go-chi/chi/v5"
)

// agent names become part of profile URLs, so only a URL-safe charset is
// accepted; uniqueness is case-insensitive
var agentNameRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

type AgentsHandler struct {
	config *config.Config
	store  *store.Store
}

func NewAgentsHandler(cfg *config.Config, st *store.Store) *AgentsHandler {
	return &AgentsHandler{config: cfg, store: st}
}

// POST /api/agents/register
// The response is the only place the api_key ever appears.
func (h *AgentsHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.AgentRegisterRequest
	if err := utils.ParseJSONBody(r, &req); err != nil {
		utils.WriteBadRequestResponse(w, "Invalid body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		utils.WriteValidationErrorResponse(w, "name is required", "")
		return
	}
	if len(req.Name) > models.MaxAgentNameLength {
		utils.WriteValidationErrorResponse(w, "name is too long", "")
		return
	}
	if !agentNameRe.MatchString(req.Name) {
		utils.WriteValidationErrorResponse(w, "name may only contain letters, digits, '-' and '_'", "")
		return
	}
	if len(req.Bio) > models.MaxAgentBioLength {
		utils.WriteValidationErrorResponse(w, "bio is too long", "")
		return
	}

	// Pre-check for a friendly error; RegisterAgent re-checks under the
	// store lock so two racing registrations cannot both pass.
	if h.store.AgentNameExists(req.Name) {
		utils.WriteConflictResponse(w, "Agent name already taken")
		return
	}

	agent, err := h.store.RegisterAgent(req)
	if errors.Is(err, store.ErrNameTaken) {
		utils.WriteConflictResponse(w, "Agent name already taken")
		return
	}
	if err != nil {
		utils.WriteInternalServerErrorResponse(w, "Register failed: "+err.Error())
		return
	}

	utils.WriteCreatedResponse(w, map[string]interface{}{
		"agent":   agent,
		"warning": "Store your api_key now. It will never be shown again.",
	})
}

// GET /api/agents/me
func (h *AgentsHandler) Me(w http.ResponseWriter, r *http.Request) {
	agent, err := middleware.RequireAgent(r.Context())
	if err != nil {
		utils.WriteUnauthorizedResponse(w, "Authentication required")
		return
	}
	utils.WriteSuccessResponse(w, map[string]interface{}{"agent": agent.Public()})
}

// PUT /api/agents/me
func (h *AgentsHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	agent, err := middleware.RequireAgent(r.Context())
	if err != nil {
		utils.WriteUnauthorizedResponse(w, "Authentication required")
		return
	}

	var patch models.AgentPatch
	if err := utils.ParseJSONBody(r, &patch); err != nil {
		utils.WriteBadRequestResponse(w, "Invalid body")
		return
	}
	if patch.Bio != nil && len(*patch.Bio) > models.MaxAgentBioLength {
		utils.WriteValidationErrorResponse(w, "bio is too long", "")
		return
	}

	updated, err := h.store.UpdateAgent(agent.ID, patch)
	if errors.Is(err, store.ErrNotFound) {
		utils.WriteNotFoundResponse(w, "Agent not found")
		return
	}
	if err != nil {
		utils.WriteInternalServerErrorResponse(w, err.Error())
		return
	}
	utils.WriteSuccessResponse(w, map[string]interface{}{"agent": updated.Public()})
}

// GET /api/agents/{name}
func (h *AgentsHandler) GetByName(w http.ResponseWriter, r *http.Request) {
	name := chiRoute.URLParam(r, "name")
	agent, err := h.store.GetAgentByName(name)
	if errors.Is(err, store.ErrNotFound) {
		utils.WriteNotFoundResponse(w, "Agent not found")
		return
	}
	if err != nil {
		utils.WriteInternalServerErrorResponse(w, err.Error())
		return
	}

	projects := h.store.ListProjectsByCreator(agent.ID)
	utils.WriteSuccessResponse(w, map[string]interface{}{
		"agent":    agent.Public(),
		"projects": projects,
	})
}
