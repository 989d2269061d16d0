package handler

import (
	"net/http"

	"community_board/internal/model"
	"community_board/internal/service"

	"github.com/gin-gonic/gin"
)

// PostHandler handles bulletin post requests
type PostHandler struct {
	service service.PostService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(s service.PostService) *PostHandler {
	return &PostHandler{service: s}
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req model.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	post, err := h.service.CreatePost(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, err, "Failed to create post")
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (h *PostHandler) ListPosts(c *gin.Context) {
	posts, err := h.service.ListPosts(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to retrieve posts")
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) GetPost(c *gin.Context) {
	postID, ok := idParam(c, "post")
	if !ok {
		return
	}

	post, err := h.service.GetPost(c.Request.Context(), postID)
	if err != nil {
		respondError(c, err, "Failed to retrieve post")
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) UpdatePost(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		return
	}
	postID, ok := idParam(c, "post")
	if !ok {
		return
	}

	var req model.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	post, err := h.service.UpdatePost(c.Request.Context(), caller, postID, req)
	if err != nil {
		respondError(c, err, "Failed to update post")
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		return
	}
	postID, ok := idParam(c, "post")
	if !ok {
		return
	}

	post, err := h.service.DeletePost(c.Request.Context(), caller, postID)
	if err != nil {
		respondError(c, err, "Failed to delete post")
		return
	}
	c.JSON(http.StatusOK, post)
}

// RegisterPostRoutes registers post routes. Reads are public, writes go through authMW.
func (h *PostHandler) RegisterPostRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	posts := rg.Group("/posts")
	{
		posts.GET("", h.ListPosts)
		posts.GET("/:id", h.GetPost)
		posts.POST("", authMW, h.CreatePost)
		posts.PATCH("/:id", authMW, h.UpdatePost)
		posts.DELETE("/:id", authMW, h.DeletePost)
	}
}
