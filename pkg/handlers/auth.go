package handlers

import (
	"errors"
	"net/http"

	"thingherder/pkg/config"
	"thingherder/pkg/models"
	"thingherder/pkg/store"
	"thingherder/pkg/utils"
)

type AuthHandler struct {
	config     *config.Config
	store      *store.Store
	jwtService *utils.JWTService
}

func NewAuthHandler(cfg *config.Config, st *store.Store) *AuthHandler {
	return &AuthHandler{
		config:     cfg,
		store:      st,
		jwtService: utils.NewJWTService(cfg.JWTSecret),
	}
}

// HealthCheck GET /api/health
func (h *AuthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccessResponse(w, map[string]interface{}{
		"status":      "ok",
		"service":     "thingherder",
		"environment": h.config.Environment,
	})
}

// CreateSession POST /api/auth/session
// 浏览器端用 api_key 换取短期会话令牌，避免在页面里长期持有密钥
func (h *AuthHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req models.SessionRequest
	if err := utils.ParseJSONBody(r, &req); err != nil {
		utils.WriteBadRequestResponse(w, "Invalid body")
		return
	}
	if req.APIKey == "" {
		utils.WriteBadRequestResponse(w, "api_key required")
		return
	}

	agent, err := h.store.GetAgentByAPIKey(req.APIKey)
	if errors.Is(err, store.ErrNotFound) {
		utils.WriteUnauthorizedResponse(w, "Invalid api_key")
		return
	}
	if err != nil {
		utils.WriteInternalServerErrorResponse(w, err.Error())
		return
	}

	token, expiresAt, err := h.jwtService.GenerateSessionToken(agent.ID, agent.Name)
	if err != nil {
		utils.WriteInternalServerErrorResponse(w, "failed to generate session token")
		return
	}

	utils.WriteSuccessResponse(w, models.SessionResponse{
		Agent:       agent.Public(),
		AccessToken: token,
		ExpiresIn:   expiresAt,
	})
}
