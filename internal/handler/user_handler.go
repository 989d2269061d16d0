package handler

import (
	"net/http"

	"community_board/internal/model"
	"community_board/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler handles account requests
type UserHandler struct {
	service service.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(s service.UserService) *UserHandler {
	return &UserHandler{service: s}
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to retrieve users")
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	userID, ok := idParam(c, "user")
	if !ok {
		return
	}

	user, err := h.service.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve user")
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateMe only ever touches the caller's own account
func (h *UserHandler) UpdateMe(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req model.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	user, err := h.service.UpdateMe(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, err, "Failed to update user")
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteMe removes the caller's account and every post they authored
func (h *UserHandler) DeleteMe(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		return
	}

	if err := h.service.DeleteMe(c.Request.Context(), caller); err != nil {
		respondError(c, err, "Failed to delete user")
		return
	}
	c.Status(http.StatusNoContent)
}

// RegisterUserRoutes registers user routes; all of them require authMW
func (h *UserHandler) RegisterUserRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	users := rg.Group("/users")
	users.Use(authMW)
	{
		users.GET("", h.ListUsers)
		users.GET("/:id", h.GetUser)
		users.PATCH("/me", h.UpdateMe)
		users.DELETE("/me", h.DeleteMe)
	}
}
