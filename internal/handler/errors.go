package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"community_board/internal/middleware"
	"community_board/internal/model"
	"community_board/internal/service"
	"community_board/internal/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps a service error to its status code. Only the messages of
// known error kinds reach the client; anything else is logged and reported as
// a bare 500 with fallback as the message.
func respondError(c *gin.Context, err error, fallback string) {
	var vErr *model.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": vErr.Fields})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": service.ErrConflict.Error()})
	case errors.Is(err, service.ErrUnauthorized), errors.Is(err, utils.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		slog.ErrorContext(c.Request.Context(), fallback, "method", c.Request.Method, "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// callerIdentity fetches the gate's identity; a route wired without the gate
// is a server bug, not a client error.
func callerIdentity(c *gin.Context) (model.Identity, bool) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		slog.ErrorContext(c.Request.Context(), "identity missing on protected route", "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
	return id, ok
}

func idParam(c *gin.Context, what string) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + what + " ID"})
		return 0, false
	}
	return id, true
}

func badBody(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
}
