package handler

import (
	"context"
	"net/http"

	"community_board/internal/middleware"
	"community_board/internal/service"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether the backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Services bundles what the router dispatches to
type Services struct {
	Auth  service.AuthService
	Posts service.PostService
	Users service.UserService
}

// NewRouter builds the engine with every route of the board API.
// metrics and db may be nil, which drops /metrics and /health respectively.
func NewRouter(svc Services, verifier middleware.TokenVerifier, metrics *middleware.Metrics, db Pinger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if gin.Mode() == gin.DebugMode {
		router.Use(gin.Logger())
	}
	if metrics != nil {
		router.Use(metrics.Middleware())
		router.GET("/metrics", metrics.Handler())
	}
	router.Use(middleware.CORSMiddleware())

	if db != nil {
		router.GET("/health", func(c *gin.Context) {
			if err := db.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "db": "unhealthy"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "healthy"})
		})
	}

	authMW := middleware.JWTAuthMiddleware(verifier)
	root := &router.RouterGroup

	NewAuthHandler(svc.Auth).RegisterAuthRoutes(root)
	NewPostHandler(svc.Posts).RegisterPostRoutes(root, authMW)
	NewUserHandler(svc.Users).RegisterUserRoutes(root, authMW)

	return router
}
