package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/xiebiao/bookbridge/internal/infrastructure/config"
	"github.com/xiebiao/bookbridge/internal/interface/http/handler"
	"github.com/xiebiao/bookbridge/internal/interface/http/middleware"
	"github.com/xiebiao/bookbridge/pkg/response"
)

// Handlers 路由依赖的处理器集合
type Handlers struct {
	Book      *handler.BookHandler
	Inventory *handler.InventoryHandler
	Chatbot   *handler.ChatbotHandler
	Auth      *handler.AuthHandler
}

// New 创建Gin引擎并注册全部路由
// 中间件顺序: Recovery → Logger → CORS → Metrics → 业务Handler
func New(cfg *config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware) *gin.Engine {
	switch cfg.Server.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger(), middleware.CORS(cfg.CORS))
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics())
		path := cfg.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(promhttp.Handler()))
	}

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Swagger文档，访问 /swagger/index.html
	if cfg.Server.Mode != "release" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group("/api/v1")
	{
		books := v1.Group("/books")
		{
			books.GET("", h.Book.ListBooks)
			books.GET("/:id", h.Book.GetBook)
			books.POST("", authMiddleware.RequireAuth(), h.Book.CreateBook)
			books.PUT("/:id", authMiddleware.RequireAuth(), h.Book.UpdateBook)
			books.PUT("/:id/active", authMiddleware.RequireAuth(), h.Book.SetActive)
			books.DELETE("/:id", authMiddleware.RequireAuth(), h.Book.Deactivate)

			// 库存账本
			books.POST("/purchase", h.Inventory.Purchase)
			books.POST("/refund", h.Inventory.Refund)
		}

		v1.GET("/bookstores/:bookstoreId/books/inactive", authMiddleware.RequireAuth(), h.Book.ListInactive)

		chatbot := v1.Group("/chatbot")
		{
			chatbot.GET("/ping", h.Chatbot.Ping)
			chatbot.POST("/ask", authMiddleware.OptionalAuth(), h.Chatbot.Ask)
			chatbot.POST("/bookstores/:bookstoreId/ask", authMiddleware.OptionalAuth(), h.Chatbot.AskInBookstore)
		}

		v1.POST("/auth/logout", authMiddleware.RequireAuth(), h.Auth.Logout)
	}

	return r
}
