package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"thingherder/pkg/config"
	"thingherder/pkg/models"
	"thingherder/pkg/store"
	"thingherder/pkg/utils"
)

// ContextKey 用于在context中存储agent信息的键
type ContextKey string

const (
	AgentContextKey ContextKey = "agent"
)

// AuthMiddleware 认证中间件：Bearer 凭证优先按 api_key 解析，
// 解析失败再按会话 JWT 解析
func AuthMiddleware(cfg *config.Config, st *store.Store) func(http.Handler) http.Handler {
	jwtService := utils.NewJWTService(cfg.JWTSecret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 从Authorization头获取凭证
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.WriteUnauthorizedResponse(w, "Missing authorization header")
				return
			}

			// 检查Bearer前缀
			token := strings.TrimPrefix(authHeader, "Bearer ")
			if token == authHeader {
				utils.WriteUnauthorizedResponse(w, "Invalid authorization header format")
				return
			}

			agent, err := resolveAgent(st, jwtService, token)
			if err != nil {
				if cfg.Debug {
					fmt.Printf("❌ Auth middleware: %v\n", err)
				}
				utils.WriteUnauthorizedResponse(w, "Invalid credentials")
				return
			}

			// 将agent信息添加到请求context中
			ctx := context.WithValue(r.Context(), AgentContextKey, agent)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuthMiddleware 可选认证中间件（凭证无效时继续匿名处理）
func OptionalAuthMiddleware(cfg *config.Config, st *store.Store) func(http.Handler) http.Handler {
	jwtService := utils.NewJWTService(cfg.JWTSecret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")
			if token == authHeader {
				next.ServeHTTP(w, r)
				return
			}

			if agent, err := resolveAgent(st, jwtService, token); err == nil {
				ctx := context.WithValue(r.Context(), AgentContextKey, agent)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// resolveAgent 将 Bearer 凭证解析为 agent：api_key 直查，其次会话令牌
func resolveAgent(st *store.Store, jwtService *utils.JWTService, token string) (*models.Agent, error) {
	if agent, err := st.GetAgentByAPIKey(token); err == nil {
		return agent, nil
	}

	claims, err := jwtService.ValidateToken(token)
	if err != nil {
		return nil, fmt.Errorf("credential is neither a known api key nor a valid session token: %w", err)
	}
	agent, err := st.GetAgentByID(claims.AgentID)
	if err != nil {
		return nil, fmt.Errorf("session token references unknown agent %s", claims.AgentID)
	}
	return agent, nil
}

// GetAgentFromContext 从context中获取agent信息
func GetAgentFromContext(ctx context.Context) (*models.Agent, bool) {
	agent, ok := ctx.Value(AgentContextKey).(*models.Agent)
	return agent, ok
}

// RequireAgent 要求请求必须已认证的辅助函数
func RequireAgent(ctx context.Context) (*models.Agent, error) {
	agent, ok := GetAgentFromContext(ctx)
	if !ok || agent == nil {
		return nil, fmt.Errorf("agent not authenticated")
	}
	return agent, nil
}
