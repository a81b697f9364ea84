package service

import (
	"errors"
	"strings"
	"time"

	"blog_crud_jwt/internal/domain/user/model"
	"blog_crud_jwt/internal/domain/user/repository"
	"blog_crud_jwt/pkg/apperr"
	"blog_crud_jwt/pkg/database"
	"blog_crud_jwt/pkg/logger"
	"blog_crud_jwt/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RegisterParams carries the validated registration fields.
type RegisterParams struct {
	Firstname      string
	Middlename     string
	Lastname       string
	Username       string
	Email          string
	Password       string
	Bio            string
	ProfileImage   string
	Location       string
	Website        string
	Occupation     model.Occupation
	Education      string
	DisplayEmail   *bool
	DisplayWebsite *bool
}

// UserPatch is an explicit field-by-field partial update. Nil means
// "leave unchanged"; arbitrary nested key traversal is not accepted.
type UserPatch struct {
	Firstname      *string
	Middlename     *string
	Lastname       *string
	Username       *string
	Email          *string
	Bio            *string
	ProfileImage   *string
	Location       *string
	Website        *string
	Occupation     *model.Occupation
	Education      *string
	DisplayEmail   *bool
	DisplayWebsite *bool
	IsAdmin        *bool
}

// UserService owns account lifecycle and authentication.
type UserService interface {
	Register(params RegisterParams) (*model.User, error)
	Login(identifier, password string) (string, *model.User, error)
	ChangePassword(userID, currentPassword, newPassword string) error
	GetUsers(page, limit int) ([]model.User, int64, error)
	GetUser(id string) (*model.User, error)
	UpdateUser(id string, patch UserPatch, callerIsAdmin bool) (*model.User, error)
	DeleteUser(id string) error
	IsAdmin(id string) (bool, error)
}

type userService struct {
	repo    repository.UserRepository
	follows repository.FollowRepository
}

// NewUserService creates the user service.
func NewUserService(repo repository.UserRepository, follows repository.FollowRepository) UserService {
	return &userService{repo: repo, follows: follows}
}

func (s *userService) Register(params RegisterParams) (*model.User, error) {
	username := strings.ToLower(strings.TrimSpace(params.Username))
	// Login lowercases the identifier before the lookup, so the stored
	// email must be lowercase too or mixed-case registrations become
	// unloggable.
	email := strings.ToLower(strings.TrimSpace(params.Email))

	exists, err := s.repo.ExistsByUsernameOrEmail(username, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("Username or email already registered.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Firstname:    params.Firstname,
		Middlename:   params.Middlename,
		Lastname:     params.Lastname,
		Username:     username,
		Email:        email,
		Password:     string(hash),
		Bio:          params.Bio,
		ProfileImage: params.ProfileImage,
		Location:     params.Location,
		Website:      params.Website,
		Occupation:   params.Occupation,
		Education:    params.Education,
		DisplayEmail: true,
	}
	if params.DisplayEmail != nil {
		user.DisplayEmail = *params.DisplayEmail
	}
	if params.DisplayWebsite != nil {
		user.DisplayWebsite = *params.DisplayWebsite
	}

	if err := s.repo.Create(user); err != nil {
		// The existence check above races with concurrent registrations;
		// the unique index is the authority.
		if database.IsUniqueViolation(err) {
			return nil, apperr.Conflict("Username or email already registered.")
		}
		return nil, err
	}
	return user, nil
}

// Login verifies the credentials and issues a token. The error message is
// identical for unknown identifier and wrong password so callers cannot
// enumerate accounts.
func (s *userService) Login(identifier, password string) (string, *model.User, error) {
	user, err := s.repo.GetByUsernameOrEmail(strings.ToLower(strings.TrimSpace(identifier)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperr.Auth("Invalid username or password.")
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, apperr.Auth("Invalid username or password.")
	}

	token, err := utils.GenerateToken(user.ID, user.Firstname, user.Lastname, user.Username, user.ProfileImage)
	if err != nil {
		return "", nil, err
	}

	// Best effort; a failed counter update must not fail the login.
	if err := s.repo.RecordLogin(user.ID, time.Now()); err != nil && logger.Log != nil {
		logger.Log.Warn("failed to record login", zap.String("user", user.ID), zap.Error(err))
	}

	return token, user, nil
}

func (s *userService) ChangePassword(userID, currentPassword, newPassword string) error {
	user, err := s.repo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("User with ID %s not found", userID)
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		return apperr.Auth("Invalid username or password.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.Password = string(hash)
	return s.repo.Update(user)
}

func (s *userService) GetUsers(page, limit int) ([]model.User, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	offset := (page - 1) * limit
	return s.repo.GetList(offset, limit)
}

func (s *userService) GetUser(id string) (*model.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User with ID %s not found", id)
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateUser(id string, patch UserPatch, callerIsAdmin bool) (*model.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User with ID %s not found", id)
		}
		return nil, err
	}

	if patch.Firstname != nil {
		user.Firstname = *patch.Firstname
	}
	if patch.Middlename != nil {
		user.Middlename = *patch.Middlename
	}
	if patch.Lastname != nil {
		user.Lastname = *patch.Lastname
	}
	if patch.Username != nil {
		user.Username = strings.ToLower(strings.TrimSpace(*patch.Username))
	}
	if patch.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*patch.Email))
	}
	if patch.Bio != nil {
		user.Bio = *patch.Bio
	}
	if patch.ProfileImage != nil {
		user.ProfileImage = *patch.ProfileImage
	}
	if patch.Location != nil {
		user.Location = *patch.Location
	}
	if patch.Website != nil {
		user.Website = *patch.Website
	}
	if patch.Occupation != nil {
		user.Occupation = *patch.Occupation
	}
	if patch.Education != nil {
		user.Education = *patch.Education
	}
	if patch.DisplayEmail != nil {
		user.DisplayEmail = *patch.DisplayEmail
	}
	if patch.DisplayWebsite != nil {
		user.DisplayWebsite = *patch.DisplayWebsite
	}
	if patch.IsAdmin != nil {
		if !callerIsAdmin {
			return nil, apperr.Forbidden("Only admins may change the admin flag.")
		}
		user.IsAdmin = *patch.IsAdmin
	}

	if err := s.repo.Update(user); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperr.Conflict("Username or email already registered.")
		}
		return nil, err
	}
	return user, nil
}

// DeleteUser removes the account and its relation rows. Posts and comments
// authored by the user are deliberately kept; their author reference stops
// resolving, which readers must tolerate.
func (s *userService) DeleteUser(id string) error {
	user, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("User with ID %s not found", id)
		}
		return err
	}

	if err := s.follows.PurgeUserRelations(id); err != nil {
		return err
	}

	return s.repo.Delete(user)
}

// IsAdmin re-reads the admin flag from the store. Tokens never carry it.
func (s *userService) IsAdmin(id string) (bool, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.IsAdmin, nil
}
