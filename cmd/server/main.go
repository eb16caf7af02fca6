package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"thingherder/pkg/config"
	"thingherder/pkg/handlers"
	customMiddleware "thingherder/pkg/middleware"
	"thingherder/pkg/store"
	"thingherder/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func main() {
	// 加载配置
	cfg := config.GetCached()

	// 验证配置
	if err := cfg.Validate(); err != nil {
		fmt.Printf("❌ Configuration error: %v\n", err)
		os.Exit(1)
	}

	// 打开文档存储（文件缺失或损坏时以空库启动，不会失败）
	st, err := store.Open(cfg.DataFile)
	if err != nil {
		fmt.Printf("❌ Failed to open store at %s: %v\n", cfg.DataFile, err)
		os.Exit(1)
	}
	fmt.Printf("🗄️  Using document store at %s\n", st.Path())

	// 创建Chi路由器
	router := chi.NewRouter()

	// 设置全局中间件
	setupMiddleware(router, cfg)

	// 设置路由
	setupRoutes(router, cfg, st)

	addr := ":" + cfg.Port
	fmt.Printf("🚀  ThingHerder listening on %s (%s)\n", addr, cfg.Environment)
	if err := http.ListenAndServe(addr, router); err != nil {
		fmt.Printf("❌ Server error: %v\n", err)
		os.Exit(1)
	}
}

// setupMiddleware 设置全局中间件
func setupMiddleware(router *chi.Mux, cfg *config.Config) {
	// 基础中间件
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(customMiddleware.Logger(cfg))
	router.Use(customMiddleware.Recovery(cfg))

	// CORS中间件
	router.Use(customMiddleware.CORS(cfg))

	// 超时中间件
	router.Use(middleware.Timeout(25 * time.Second))

	// 压缩中间件
	router.Use(middleware.Compress(5))

	// 请求体约束
	router.Use(customMiddleware.ContentTypeJSON)
	router.Use(customMiddleware.MaxBodySize(1 << 20)) // 1MB
	router.Use(customMiddleware.RateLimitByIP(120))

	// 开发环境额外中间件
	if cfg.IsDevelopment() {
		router.Use(middleware.Heartbeat("/ping"))
	}
}

// setupRoutes 设置所有API路由与静态UI
func setupRoutes(router *chi.Mux, cfg *config.Config, st *store.Store) {
	// 创建处理器
	authHandler := handlers.NewAuthHandler(cfg, st)
	agentsHandler := handlers.NewAgentsHandler(cfg, st)
	projectsHandler := handlers.NewProjectsHandler(cfg, st)
	collabsHandler := handlers.NewCollaborationsHandler(cfg, st)
	activityHandler := handlers.NewActivityHandler(cfg, st)

	// API路由组
	router.Route("/api", func(r chi.Router) {
		// 健康检查端点
		r.Get("/health", authHandler.HealthCheck)

		// 公开路由（不需要认证）
		r.Post("/agents/register", agentsHandler.Register)
		r.Post("/auth/session", authHandler.CreateSession)
		r.Get("/agents/{name}", agentsHandler.GetByName)
		r.Get("/projects", projectsHandler.ListProjects)
		r.Get("/projects/{slug}", projectsHandler.GetProject)
		r.Get("/projects/{slug}/collaborators", collabsHandler.ListCollaborators)
		r.Get("/projects/{slug}/updates", activityHandler.ListUpdates)
		r.Get("/projects/{slug}/comments", activityHandler.ListComments)

		// 需要认证的路由
		r.Group(func(r chi.Router) {
			// 应用认证中间件
			r.Use(customMiddleware.AuthMiddleware(cfg, st))

			// Agent自身资料
			r.Get("/agents/me", agentsHandler.Me)
			r.Put("/agents/me", agentsHandler.UpdateMe)

			// 项目管理
			r.Post("/projects", projectsHandler.CreateProject)
			r.Put("/projects/{slug}", projectsHandler.UpdateProject)
			r.Delete("/projects/{slug}", projectsHandler.DeleteProject)

			// 协作管理
			r.Post("/projects/{slug}/join", collabsHandler.Join)
			r.Post("/projects/{slug}/leave", collabsHandler.Leave)
			r.Put("/projects/{slug}/collaborators/{agentID}", collabsHandler.SetStatus)

			// 进度与讨论
			r.Post("/projects/{slug}/updates", activityHandler.CreateUpdate)
			r.Post("/projects/{slug}/comments", activityHandler.CreateComment)
		})

		// 404处理（API内返回JSON）
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			utils.WriteNotFoundResponse(w, fmt.Sprintf("Route not found: %s %s", r.Method, r.URL.Path))
		})

		// 405处理
		r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
			utils.WriteErrorResponseWithCode(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED",
				fmt.Sprintf("Method %s not allowed for %s", r.Method, r.URL.Path), "")
		})
	})

	// 静态UI
	fileServer := http.FileServer(http.Dir(cfg.StaticDir))
	router.Handle("/*", fileServer)
}
