package repository

import (
	"blog_crud_jwt/internal/domain/tag/model"

	"gorm.io/gorm"
)

// TagRepository is the tag persistence interface.
type TagRepository interface {
	Create(tag *model.Tag) error
	GetByID(id string) (*model.Tag, error)
	GetByName(name string) (*model.Tag, error)
	GetByIDs(ids []string) ([]model.Tag, error)
	GetList(offset, limit int) ([]model.Tag, int64, error)
	Update(tag *model.Tag) error
	Delete(id string) error
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(tag *model.Tag) error {
	return r.db.Create(tag).Error
}

func (r *tagRepository) GetByID(id string) (*model.Tag, error) {
	var tag model.Tag
	err := r.db.Where("id = ?", id).First(&tag).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) GetByName(name string) (*model.Tag, error) {
	var tag model.Tag
	err := r.db.Where("name = ?", name).First(&tag).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) GetByIDs(ids []string) ([]model.Tag, error) {
	var tags []model.Tag
	if len(ids) == 0 {
		return tags, nil
	}
	err := r.db.Where("id IN ?", ids).Find(&tags).Error
	return tags, err
}

func (r *tagRepository) GetList(offset, limit int) ([]model.Tag, int64, error) {
	var tags []model.Tag
	var total int64

	if err := r.db.Model(&model.Tag{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Order("name asc").Offset(offset).Limit(limit).Find(&tags).Error
	if err != nil {
		return nil, 0, err
	}
	return tags, total, nil
}

func (r *tagRepository) Update(tag *model.Tag) error {
	return r.db.Save(tag).Error
}

func (r *tagRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.Tag{}).Error
}
