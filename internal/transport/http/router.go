package httptransport

import (
	"log/slog"

	"github.com/ErlanBelekov/blog-api/internal/transport/http/handler"
	"github.com/ErlanBelekov/blog-api/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

func NewRouter(logger *slog.Logger, authHandler *handler.AuthHandler, postHandler *handler.PostHandler, authenticator middleware.Authenticator) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.Errors(logger))

	requireAuth := middleware.RequireAuth(authenticator)
	optionalAuth := middleware.OptionalAuth(authenticator)

	r.GET("/", handler.Banner)
	r.GET("/health", handler.Health)

	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)

	blogs := api.Group("/blogs")
	blogs.GET("", postHandler.List)
	blogs.GET("/me", requireAuth, postHandler.ListOwn)
	blogs.GET("/:id", optionalAuth, postHandler.Get)
	blogs.POST("", requireAuth, postHandler.Create)
	blogs.PATCH("/:id", requireAuth, postHandler.Update)
	blogs.DELETE("/:id", requireAuth, postHandler.Delete)

	r.NoRoute(handler.NotFound)

	return r
}
