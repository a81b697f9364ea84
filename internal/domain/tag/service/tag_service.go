package service

import (
	"errors"
	"strings"

	"blog_crud_jwt/internal/domain/tag/model"
	"blog_crud_jwt/internal/domain/tag/repository"
	"blog_crud_jwt/pkg/apperr"
	"blog_crud_jwt/pkg/database"

	"gorm.io/gorm"
)

// CreateTagParams carries a tag creation request.
type CreateTagParams struct {
	Name            string
	BackgroundColor string
	TextBlack       *bool
	Image           string
	Description     string
}

// TagPatch is the explicit partial-update shape for tags.
type TagPatch struct {
	Name            *string
	BackgroundColor *string
	TextBlack       *bool
	Image           *string
	Description     *string
}

// TagService owns the tag catalogue.
type TagService interface {
	CreateTag(params CreateTagParams) (*model.Tag, error)
	GetTag(id string) (*model.Tag, error)
	GetTags(page, limit int) ([]model.Tag, int64, error)
	UpdateTag(id string, patch TagPatch) (*model.Tag, error)
	DeleteTag(id string) error
}

type tagService struct {
	repo repository.TagRepository
}

func NewTagService(repo repository.TagRepository) TagService {
	return &tagService{repo: repo}
}

func (s *tagService) CreateTag(params CreateTagParams) (*model.Tag, error) {
	name := strings.ToLower(strings.TrimSpace(params.Name))
	if name == "" {
		return nil, apperr.Validation("Tag name is required.")
	}

	tag := &model.Tag{
		Name:            name,
		BackgroundColor: params.BackgroundColor,
		Image:           params.Image,
		Description:     params.Description,
	}
	if params.TextBlack != nil {
		tag.TextBlack = *params.TextBlack
	} else {
		tag.TextBlack = true
	}

	if err := s.repo.Create(tag); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperr.Conflict("Tag %s already exists.", name)
		}
		return nil, apperr.Wrap(err, "create tag")
	}
	return tag, nil
}

func (s *tagService) GetTag(id string) (*model.Tag, error) {
	tag, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Tag with ID %s not found", id)
		}
		return nil, apperr.Wrap(err, "get tag")
	}
	return tag, nil
}

func (s *tagService) GetTags(page, limit int) ([]model.Tag, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	tags, total, err := s.repo.GetList((page-1)*limit, limit)
	if err != nil {
		return nil, 0, apperr.Wrap(err, "list tags")
	}
	return tags, total, nil
}

func (s *tagService) UpdateTag(id string, patch TagPatch) (*model.Tag, error) {
	tag, err := s.GetTag(id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name := strings.ToLower(strings.TrimSpace(*patch.Name))
		if name == "" {
			return nil, apperr.Validation("Tag name is required.")
		}
		tag.Name = name
	}
	if patch.BackgroundColor != nil {
		tag.BackgroundColor = *patch.BackgroundColor
	}
	if patch.TextBlack != nil {
		tag.TextBlack = *patch.TextBlack
	}
	if patch.Image != nil {
		tag.Image = *patch.Image
	}
	if patch.Description != nil {
		tag.Description = *patch.Description
	}

	if err := s.repo.Update(tag); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperr.Conflict("Tag %s already exists.", tag.Name)
		}
		return nil, apperr.Wrap(err, "update tag")
	}
	return tag, nil
}

func (s *tagService) DeleteTag(id string) error {
	if _, err := s.GetTag(id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return apperr.Wrap(err, "delete tag")
	}
	return nil
}
