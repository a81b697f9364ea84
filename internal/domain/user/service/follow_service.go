package service

import (
	"errors"

	tagModel "blog_crud_jwt/internal/domain/tag/model"
	tagRepository "blog_crud_jwt/internal/domain/tag/repository"
	"blog_crud_jwt/internal/domain/user/model"
	"blog_crud_jwt/internal/domain/user/repository"
	"blog_crud_jwt/pkg/apperr"
	"blog_crud_jwt/pkg/database"

	"gorm.io/gorm"
)

// FollowService owns the user and tag follow toggles.
type FollowService interface {
	// ToggleFollowUser flips the follow relation and reports the new state:
	// true when the caller now follows targetID.
	ToggleFollowUser(followerID, targetID string) (bool, error)
	GetFollowers(userID string, page, limit int) ([]model.User, int64, error)
	GetFollowing(userID string, page, limit int) ([]model.User, int64, error)

	ToggleFollowTag(userID, tagID string) (bool, error)
	GetFollowedTags(userID string) ([]tagModel.Tag, error)
}

type followService struct {
	repo  repository.FollowRepository
	users repository.UserRepository
	tags  tagRepository.TagRepository
}

// NewFollowService creates the follow service.
func NewFollowService(repo repository.FollowRepository, users repository.UserRepository, tags tagRepository.TagRepository) FollowService {
	return &followService{repo: repo, users: users, tags: tags}
}

func (s *followService) ToggleFollowUser(followerID, targetID string) (bool, error) {
	if followerID == targetID {
		return false, apperr.Validation("You cannot follow yourself.")
	}

	if _, err := s.users.GetByID(targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apperr.NotFound("User with ID %s not found", targetID)
		}
		return false, err
	}

	following, err := s.repo.HasFollow(followerID, targetID)
	if err != nil {
		return false, err
	}

	if following {
		return false, s.repo.DeleteFollow(followerID, targetID)
	}

	err = s.repo.CreateFollow(&model.Follow{FollowerID: followerID, FollowedID: targetID})
	if err != nil {
		// Concurrent identical toggles race past HasFollow; the unique
		// index on the pair catches the duplicate.
		if database.IsUniqueViolation(err) {
			return false, apperr.Conflict("You already follow this user.")
		}
		return false, err
	}
	return true, nil
}

func (s *followService) GetFollowers(userID string, page, limit int) ([]model.User, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return s.repo.GetFollowers(userID, (page-1)*limit, limit)
}

func (s *followService) GetFollowing(userID string, page, limit int) ([]model.User, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return s.repo.GetFollowing(userID, (page-1)*limit, limit)
}

func (s *followService) ToggleFollowTag(userID, tagID string) (bool, error) {
	if _, err := s.tags.GetByID(tagID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apperr.NotFound("Tag with ID %s not found", tagID)
		}
		return false, err
	}

	following, err := s.repo.HasTagFollow(userID, tagID)
	if err != nil {
		return false, err
	}

	if following {
		return false, s.repo.DeleteTagFollow(userID, tagID)
	}

	err = s.repo.CreateTagFollow(&model.TagFollow{UserID: userID, TagID: tagID})
	if err != nil {
		if database.IsUniqueViolation(err) {
			return false, apperr.Conflict("You already follow this tag.")
		}
		return false, err
	}
	return true, nil
}

func (s *followService) GetFollowedTags(userID string) ([]tagModel.Tag, error) {
	return s.repo.GetFollowedTags(userID)
}
