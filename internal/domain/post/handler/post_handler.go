package handler

import (
	"net/http"

	"blog_crud_jwt/internal/domain/post/service"
	"blog_crud_jwt/internal/pkg/middleware"
	"blog_crud_jwt/pkg/response"
	"blog_crud_jwt/pkg/utils"

	"github.com/gin-gonic/gin"
)

// PostHandler serves the post CRUD and search routes.
type PostHandler struct {
	service service.PostService
	admin   middleware.AdminChecker
}

func NewPostHandler(service service.PostService, admin middleware.AdminChecker) *PostHandler {
	return &PostHandler{service: service, admin: admin}
}

// CreatePostInput carries a post creation request.
type CreatePostInput struct {
	Title  string   `json:"title" binding:"required,min=5,max=80"`
	Body   string   `json:"body" binding:"required,min=5"`
	Banner string   `json:"banner" binding:"omitempty,uri,max=250"`
	Tags   []string `json:"tags" binding:"required,min=1,max=4,dive,uuid"`
}

// PatchPostInput is the explicit partial-update shape.
type PatchPostInput struct {
	Title  *string   `json:"title" binding:"omitempty,min=5,max=80"`
	Body   *string   `json:"body" binding:"omitempty,min=5"`
	Banner *string   `json:"banner" binding:"omitempty,uri,max=250"`
	Tags   *[]string `json:"tags" binding:"omitempty,min=1,max=4,dive,uuid"`
}

func (h *PostHandler) callerIsAdmin(identity middleware.Identity) bool {
	isAdmin, err := h.admin.IsAdmin(identity.ID)
	if err != nil {
		return false
	}
	return isAdmin
}

// Create handles POST /api/posts
// @Summary Publish a post
// @Tags Post
// @Accept json
// @Produce json
// @Param input body CreatePostInput true "Post fields"
// @Success 201 {object} response.Envelope
// @Router /api/posts [post]
func (h *PostHandler) Create(c *gin.Context) {
	identity, ok := middleware.CallerIdentity(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	var input CreatePostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	post, err := h.service.CreatePost(identity.ID, service.CreatePostParams{
		Title:  input.Title,
		Body:   input.Body,
		Banner: input.Banner,
		TagIDs: input.Tags,
	})
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Created(c, post)
}

// List handles GET /api/posts
func (h *PostHandler) List(c *gin.Context) {
	var p utils.Pagination
	_ = c.ShouldBindQuery(&p)
	p.GetPageOffset()

	posts, total, err := h.service.GetPosts(p.Page, p.Limit)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, utils.PageResult{List: posts, Total: total, Page: p.Page, Limit: p.Limit})
}

// Search handles GET /api/posts/search?q=
func (h *PostHandler) Search(c *gin.Context) {
	var p utils.Pagination
	_ = c.ShouldBindQuery(&p)
	p.GetPageOffset()

	posts, total, err := h.service.SearchPosts(c.Query("q"), p.Page, p.Limit)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, utils.PageResult{List: posts, Total: total, Page: p.Page, Limit: p.Limit})
}

// Show handles GET /api/posts/:id and counts the view.
func (h *PostHandler) Show(c *gin.Context) {
	viewerID := ""
	if identity, ok := middleware.CallerIdentity(c); ok {
		viewerID = identity.ID
	}

	post, err := h.service.GetPost(c.Param("id"), viewerID)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, post)
}

// ShowBySlug handles GET /api/posts/slug/:slug and counts the view.
func (h *PostHandler) ShowBySlug(c *gin.Context) {
	viewerID := ""
	if identity, ok := middleware.CallerIdentity(c); ok {
		viewerID = identity.ID
	}

	post, err := h.service.GetPostBySlug(c.Param("slug"), viewerID)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, post)
}

// Update handles PATCH /api/posts/:id
func (h *PostHandler) Update(c *gin.Context) {
	identity, ok := middleware.CallerIdentity(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	var input PatchPostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	post, err := h.service.UpdatePost(c.Param("id"), service.PostPatch{
		Title:  input.Title,
		Body:   input.Body,
		Banner: input.Banner,
		TagIDs: input.Tags,
	}, identity.ID, h.callerIsAdmin(identity))
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, post)
}

// Remove handles DELETE /api/posts/:id
func (h *PostHandler) Remove(c *gin.Context) {
	identity, ok := middleware.CallerIdentity(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	id := c.Param("id")
	if err := h.service.DeletePost(id, identity.ID, h.callerIsAdmin(identity)); err != nil {
		response.HandleError(c, err)
		return
	}
	response.Deleted(c, "Post with ID "+id+" deleted.")
}
