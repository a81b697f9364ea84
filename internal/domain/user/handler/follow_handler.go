package handler

import (
	"net/http"

	"blog_crud_jwt/internal/domain/user/service"
	"blog_crud_jwt/internal/pkg/middleware"
	"blog_crud_jwt/pkg/response"
	"blog_crud_jwt/pkg/utils"

	"github.com/gin-gonic/gin"
)

// FollowHandler serves the follow graph routes.
type FollowHandler struct {
	service service.FollowService
}

func NewFollowHandler(service service.FollowService) *FollowHandler {
	return &FollowHandler{service: service}
}

// ToggleFollowUser handles POST /api/users/follow/:id
// @Summary Follow or unfollow a user
// @Tags User
// @Produce json
// @Param id path string true "Target user id"
// @Success 200 {object} response.Envelope
// @Router /api/users/follow/{id} [post]
func (h *FollowHandler) ToggleFollowUser(c *gin.Context) {
	identity, ok := middleware.CallerIdentity(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	targetID := c.Param("id")
	following, err := h.service.ToggleFollowUser(identity.ID, targetID)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	if following {
		response.Message(c, "User "+targetID+" followed.")
		return
	}
	response.Message(c, "User "+targetID+" unfollowed.")
}

// Followers handles GET /api/users/followers
func (h *FollowHandler) Followers(c *gin.Context) {
	identity, ok := middleware.CallerIdentity(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	var p utils.Pagination
	_ = c.ShouldBindQuery(&p)
	p.GetPageOffset()

	users, total, err := h.service.GetFollowers(identity.ID, p.Page, p.Limit)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, utils.PageResult{List: users, Total: total, Page: p.Page, Limit: p.Limit})
}

// Following handles GET /api/users/following
func (h *FollowHandler) Following(c *gin.Context) {
	identity, ok := middleware.CallerIdentity(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	var p utils.Pagination
	_ = c.ShouldBindQuery(&p)
	p.GetPageOffset()

	users, total, err := h.service.GetFollowing(identity.ID, p.Page, p.Limit)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, utils.PageResult{List: users, Total: total, Page: p.Page, Limit: p.Limit})
}

// ToggleFollowTag handles POST /api/users/tags/follow/:id
func (h *FollowHandler) ToggleFollowTag(c *gin.Context) {
	identity, ok := middleware.CallerIdentity(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	tagID := c.Param("id")
	following, err := h.service.ToggleFollowTag(identity.ID, tagID)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	if following {
		response.Message(c, "Tag "+tagID+" followed.")
		return
	}
	response.Message(c, "Tag "+tagID+" unfollowed.")
}

// FollowedTags handles GET /api/users/tags. The followed set is small by
// construction, so it is returned whole.
func (h *FollowHandler) FollowedTags(c *gin.Context) {
	identity, ok := middleware.CallerIdentity(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	tags, err := h.service.GetFollowedTags(identity.ID)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, tags)
}
