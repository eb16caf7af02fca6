package middleware

import (
	"net/http"

	"thingherder/pkg/config"

	"github.com/go-chi/chi/v5/middleware"
)

// Logger 创建日志中间件
func Logger(cfg *config.Config) func(http.Handler) http.Handler {
	// 统一使用Chi的默认日志中间件
	return middleware.Logger
}
