package handler

import (
	"net/http"

	"blog_crud_jwt/internal/domain/user/model"
	"blog_crud_jwt/internal/domain/user/service"
	"blog_crud_jwt/internal/pkg/middleware"
	"blog_crud_jwt/pkg/response"
	"blog_crud_jwt/pkg/utils"

	"github.com/gin-gonic/gin"
)

// UserHandler translates user routes into service calls.
type UserHandler struct {
	service service.UserService
}

// NewUserHandler creates the handler.
func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// OccupationInput mirrors the occupation profile block.
type OccupationInput struct {
	Position string `json:"position" binding:"omitempty,max=100"`
	Company  string `json:"company" binding:"omitempty,max=100"`
	Website  string `json:"website" binding:"omitempty,max=100"`
}

// RegisterInput carries a full registration request.
type RegisterInput struct {
	Firstname      string          `json:"firstname" binding:"required,min=2,max=255"`
	Middlename     string          `json:"middlename" binding:"omitempty,min=2,max=255"`
	Lastname       string          `json:"lastname" binding:"required,min=2,max=255"`
	Username       string          `json:"username" binding:"required,min=5,max=255"`
	Email          string          `json:"email" binding:"required,email,max=512"`
	Password       string          `json:"password" binding:"required,min=2,max=1024"`
	Bio            string          `json:"bio" binding:"omitempty,min=2,max=1024"`
	ProfileImage   string          `json:"profileImage" binding:"omitempty,uri,max=250"`
	Location       string          `json:"location" binding:"omitempty,max=50"`
	Website        string          `json:"website" binding:"omitempty,max=100"`
	Occupation     OccupationInput `json:"occupation"`
	Education      string          `json:"education" binding:"omitempty,max=100"`
	DisplayEmail   *bool           `json:"displayEmail"`
	DisplayWebsite *bool           `json:"displayWebsite"`
}

// LoginInput accepts the username or the email as identifier.
type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ChangePasswordInput carries a password rotation request.
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=2,max=1024"`
}

// PatchUserInput is the explicit partial-update shape. Absent fields stay
// untouched; no nested key traversal is accepted.
type PatchUserInput struct {
	Firstname      *string          `json:"firstname" binding:"omitempty,min=2,max=255"`
	Middlename     *string          `json:"middlename" binding:"omitempty,min=2,max=255"`
	Lastname       *string          `json:"lastname" binding:"omitempty,min=2,max=255"`
	Username       *string          `json:"username" binding:"omitempty,min=5,max=255"`
	Email          *string          `json:"email" binding:"omitempty,email,max=512"`
	Bio            *string          `json:"bio" binding:"omitempty,max=1024"`
	ProfileImage   *string          `json:"profileImage" binding:"omitempty,uri,max=250"`
	Location       *string          `json:"location" binding:"omitempty,max=50"`
	Website        *string          `json:"website" binding:"omitempty,max=100"`
	Occupation     *OccupationInput `json:"occupation"`
	Education      *string          `json:"education" binding:"omitempty,max=100"`
	DisplayEmail   *bool            `json:"displayEmail"`
	DisplayWebsite *bool            `json:"displayWebsite"`
	IsAdmin        *bool            `json:"isAdmin"`
}

// Register handles POST /api/register
// @Summary Register a new account
// @Tags User
// @Accept json
// @Produce json
// @Param input body RegisterInput true "Registration fields"
// @Success 201 {object} response.Envelope
// @Router /api/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	user, err := h.service.Register(service.RegisterParams{
		Firstname:    input.Firstname,
		Middlename:   input.Middlename,
		Lastname:     input.Lastname,
		Username:     input.Username,
		Email:        input.Email,
		Password:     input.Password,
		Bio:          input.Bio,
		ProfileImage: input.ProfileImage,
		Location:     input.Location,
		Website:      input.Website,
		Occupation: model.Occupation{
			Position: input.Occupation.Position,
			Company:  input.Occupation.Company,
			Website:  input.Occupation.Website,
		},
		Education:      input.Education,
		DisplayEmail:   input.DisplayEmail,
		DisplayWebsite: input.DisplayWebsite,
	})
	if err != nil {
		response.HandleError(c, err)
		return
	}

	// Password (even hashed) never leaves the service boundary.
	response.Created(c, gin.H{
		"firstname": user.Firstname,
		"lastname":  user.Lastname,
		"username":  user.Username,
		"email":     user.Email,
	})
}

// Login handles POST /api/login
// @Summary Log in with username or email
// @Tags User
// @Accept json
// @Produce json
// @Param input body LoginInput true "Credentials"
// @Success 200 {object} response.Envelope
// @Router /api/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	token, _, err := h.service.Login(input.Username, input.Password)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, gin.H{"token": token})
}

// ChangePassword handles POST /api/auth/changepassword
func (h *UserHandler) ChangePassword(c *gin.Context) {
	identity, ok := middleware.CallerIdentity(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	var input ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := h.service.ChangePassword(identity.ID, input.CurrentPassword, input.NewPassword); err != nil {
		response.HandleError(c, err)
		return
	}

	response.Message(c, "Password changed.")
}

// List handles GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	var p utils.Pagination
	_ = c.ShouldBindQuery(&p)
	p.GetPageOffset()

	users, total, err := h.service.GetUsers(p.Page, p.Limit)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, utils.PageResult{List: users, Total: total, Page: p.Page, Limit: p.Limit})
}

// Show handles GET /api/users/:id
func (h *UserHandler) Show(c *gin.Context) {
	user, err := h.service.GetUser(c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, user)
}

// Update handles PATCH /api/users/:id (self or admin; admin-only fields
// are enforced in the service).
func (h *UserHandler) Update(c *gin.Context) {
	identity, ok := middleware.CallerIdentity(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	var input PatchUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	patch := service.UserPatch{
		Firstname:      input.Firstname,
		Middlename:     input.Middlename,
		Lastname:       input.Lastname,
		Username:       input.Username,
		Email:          input.Email,
		Bio:            input.Bio,
		ProfileImage:   input.ProfileImage,
		Location:       input.Location,
		Website:        input.Website,
		Education:      input.Education,
		DisplayEmail:   input.DisplayEmail,
		DisplayWebsite: input.DisplayWebsite,
		IsAdmin:        input.IsAdmin,
	}
	if input.Occupation != nil {
		patch.Occupation = &model.Occupation{
			Position: input.Occupation.Position,
			Company:  input.Occupation.Company,
			Website:  input.Occupation.Website,
		}
	}

	callerIsAdmin, err := h.service.IsAdmin(identity.ID)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	user, err := h.service.UpdateUser(c.Param("id"), patch, callerIsAdmin)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, user)
}

// Remove handles DELETE /api/users/:id
func (h *UserHandler) Remove(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.DeleteUser(id); err != nil {
		response.HandleError(c, err)
		return
	}
	response.Deleted(c, "User with ID "+id+" deleted.")
}
