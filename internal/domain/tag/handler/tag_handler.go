package handler

import (
	"net/http"

	"blog_crud_jwt/internal/domain/tag/service"
	"blog_crud_jwt/pkg/response"
	"blog_crud_jwt/pkg/utils"

	"github.com/gin-gonic/gin"
)

// TagHandler serves the tag catalogue routes.
type TagHandler struct {
	service service.TagService
}

func NewTagHandler(service service.TagService) *TagHandler {
	return &TagHandler{service: service}
}

// CreateTagInput carries a tag creation request.
type CreateTagInput struct {
	Name            string `json:"name" binding:"required,min=2,max=50"`
	BackgroundColor string `json:"backgroundColor" binding:"omitempty,max=8"`
	TextBlack       *bool  `json:"textBlack"`
	Image           string `json:"image" binding:"omitempty,uri,max=250"`
	Description     string `json:"description" binding:"omitempty,max=1024"`
}

// PatchTagInput is the explicit partial-update shape.
type PatchTagInput struct {
	Name            *string `json:"name" binding:"omitempty,min=2,max=50"`
	BackgroundColor *string `json:"backgroundColor" binding:"omitempty,max=8"`
	TextBlack       *bool   `json:"textBlack"`
	Image           *string `json:"image" binding:"omitempty,uri,max=250"`
	Description     *string `json:"description" binding:"omitempty,max=1024"`
}

// Create handles POST /api/tags
// @Summary Create a tag
// @Tags Tag
// @Accept json
// @Produce json
// @Param input body CreateTagInput true "Tag fields"
// @Success 201 {object} response.Envelope
// @Router /api/tags [post]
func (h *TagHandler) Create(c *gin.Context) {
	var input CreateTagInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	tag, err := h.service.CreateTag(service.CreateTagParams{
		Name:            input.Name,
		BackgroundColor: input.BackgroundColor,
		TextBlack:       input.TextBlack,
		Image:           input.Image,
		Description:     input.Description,
	})
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Created(c, tag)
}

// List handles GET /api/tags
func (h *TagHandler) List(c *gin.Context) {
	var p utils.Pagination
	_ = c.ShouldBindQuery(&p)
	p.GetPageOffset()

	tags, total, err := h.service.GetTags(p.Page, p.Limit)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, utils.PageResult{List: tags, Total: total, Page: p.Page, Limit: p.Limit})
}

// Show handles GET /api/tags/:id
func (h *TagHandler) Show(c *gin.Context) {
	tag, err := h.service.GetTag(c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, tag)
}

// Update handles PATCH /api/tags/:id
func (h *TagHandler) Update(c *gin.Context) {
	var input PatchTagInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	tag, err := h.service.UpdateTag(c.Param("id"), service.TagPatch{
		Name:            input.Name,
		BackgroundColor: input.BackgroundColor,
		TextBlack:       input.TextBlack,
		Image:           input.Image,
		Description:     input.Description,
	})
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, tag)
}

// Remove handles DELETE /api/tags/:id
func (h *TagHandler) Remove(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.DeleteTag(id); err != nil {
		response.HandleError(c, err)
		return
	}
	response.Deleted(c, "Tag with ID "+id+" deleted.")
}
