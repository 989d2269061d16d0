package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"community_board/internal/config"
	"community_board/internal/handler"
	"community_board/internal/middleware"
	"community_board/internal/repository"
	"community_board/internal/service"
	"community_board/internal/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(cfg.NewLogger())
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Database Connection ---
	dbPool, err := config.ConnectDB(ctx, cfg.DB)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := config.AutoMigrate(ctx, dbPool); err != nil {
		slog.Error("failed to auto-migrate database", "error", err)
		os.Exit(1)
	}

	// --- Initialize Utilities ---
	jwtUtil := utils.NewJWTUtil(cfg.JWTSecretKey, cfg.TokenExpiry())
	hasher := utils.NewPasswordHasher(cfg.BcryptCost)
	if cfg.TokenExpiry() == 0 {
		slog.Warn("JWT_EXPIRATION_SECONDS not set, issued tokens never expire")
	}

	// --- Initialize Repositories ---
	userRepo := repository.NewUserRepository(dbPool)
	postRepo := repository.NewPostRepository(dbPool)

	// --- Initialize Services ---
	services := handler.Services{
		Auth:  service.NewAuthService(userRepo, hasher, jwtUtil),
		Posts: service.NewPostService(postRepo, service.NewOwnershipPolicy(postRepo)),
		Users: service.NewUserService(userRepo, hasher),
	}

	router := handler.NewRouter(services, jwtUtil, middleware.NewMetrics(), dbPool)

	// --- Start Server ---
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// --- Graceful Shutdown ---
	select {
	case err := <-errCh:
		if err != nil {
			slog.Error("listen failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
	}
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}

	slog.Info("server exiting")
}
