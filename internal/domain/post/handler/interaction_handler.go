package handler

import (
	"net/http"

	"blog_crud_jwt/internal/domain/post/service"
	"blog_crud_jwt/internal/pkg/middleware"
	"blog_crud_jwt/pkg/response"
	"blog_crud_jwt/pkg/utils"

	"github.com/gin-gonic/gin"
)

// InteractionHandler serves comments, likes and bookmarks.
type InteractionHandler struct {
	service service.InteractionService
	admin   middleware.AdminChecker
}

func NewInteractionHandler(service service.InteractionService, admin middleware.AdminChecker) *InteractionHandler {
	return &InteractionHandler{service: service, admin: admin}
}

// CommentInput carries a comment body.
type CommentInput struct {
	Body string `json:"body" binding:"required,max=2500"`
}

func (h *InteractionHandler) callerIsAdmin(identity middleware.Identity) bool {
	isAdmin, err := h.admin.IsAdmin(identity.ID)
	if err != nil {
		return false
	}
	return isAdmin
}

// AddComment handles POST /api/posts/:id/comments
func (h *InteractionHandler) AddComment(c *gin.Context) {
	identity, ok := middleware.CallerIdentity(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	comment, err := h.service.AddComment(c.Param("id"), identity.ID, input.Body)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Created(c, comment)
}

// ListComments handles GET /api/posts/:id/comments
func (h *InteractionHandler) ListComments(c *gin.Context) {
	var p utils.Pagination
	_ = c.ShouldBindQuery(&p)
	p.GetPageOffset()

	comments, total, err := h.service.GetComments(c.Param("id"), p.Page, p.Limit)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, utils.PageResult{List: comments, Total: total, Page: p.Page, Limit: p.Limit})
}

// UpdateComment handles PATCH /api/posts/comments/:id
func (h *InteractionHandler) UpdateComment(c *gin.Context) {
	identity, ok := middleware.CallerIdentity(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	comment, err := h.service.UpdateComment(c.Param("id"), identity.ID, h.callerIsAdmin(identity), input.Body)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, comment)
}

// RemoveComment handles DELETE /api/posts/comments/:id
func (h *InteractionHandler) RemoveComment(c *gin.Context) {
	identity, ok := middleware.CallerIdentity(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	id := c.Param("id")
	if err := h.service.DeleteComment(id, identity.ID, h.callerIsAdmin(identity)); err != nil {
		response.HandleError(c, err)
		return
	}
	response.Deleted(c, "Comment with ID "+id+" deleted.")
}

// ToggleLikePost handles POST /api/posts/like/:id
// @Summary Like or unlike a post
// @Tags Post
// @Produce json
// @Param id path string true "Post id"
// @Success 200 {object} response.Envelope
// @Router /api/posts/like/{id} [post]
func (h *InteractionHandler) ToggleLikePost(c *gin.Context) {
	identity, ok := middleware.CallerIdentity(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	postID := c.Param("id")
	liked, err := h.service.ToggleLikePost(identity.ID, postID)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	if liked {
		response.Message(c, "Post "+postID+" liked.")
		return
	}
	response.Message(c, "Post "+postID+" unliked.")
}

// ToggleLikeComment handles POST /api/posts/comments/like/:id
func (h *InteractionHandler) ToggleLikeComment(c *gin.Context) {
	identity, ok := middleware.CallerIdentity(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	commentID := c.Param("id")
	liked, err := h.service.ToggleLikeComment(identity.ID, commentID)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	if liked {
		response.Message(c, "Comment "+commentID+" liked.")
		return
	}
	response.Message(c, "Comment "+commentID+" unliked.")
}

// ToggleSavePost handles POST /api/posts/save/:id
func (h *InteractionHandler) ToggleSavePost(c *gin.Context) {
	identity, ok := middleware.CallerIdentity(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	postID := c.Param("id")
	saved, err := h.service.ToggleSavePost(identity.ID, postID)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	if saved {
		response.Message(c, "Post "+postID+" saved.")
		return
	}
	response.Message(c, "Post "+postID+" unsaved.")
}

// SavedPosts handles GET /api/posts/saved
func (h *InteractionHandler) SavedPosts(c *gin.Context) {
	identity, ok := middleware.CallerIdentity(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	var p utils.Pagination
	_ = c.ShouldBindQuery(&p)
	p.GetPageOffset()

	posts, total, err := h.service.GetSavedPosts(identity.ID, p.Page, p.Limit)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, utils.PageResult{List: posts, Total: total, Page: p.Page, Limit: p.Limit})
}
