package repository

import (
	tagModel "blog_crud_jwt/internal/domain/tag/model"
	"blog_crud_jwt/internal/domain/user/model"

	"gorm.io/gorm"
)

// FollowRepository owns the social-graph relation tables.
type FollowRepository interface {
	CreateFollow(follow *model.Follow) error
	DeleteFollow(followerID, followedID string) error
	HasFollow(followerID, followedID string) (bool, error)
	GetFollowers(userID string, offset, limit int) ([]model.User, int64, error)
	GetFollowing(userID string, offset, limit int) ([]model.User, int64, error)

	CreateTagFollow(follow *model.TagFollow) error
	DeleteTagFollow(userID, tagID string) error
	HasTagFollow(userID, tagID string) (bool, error)
	GetFollowedTags(userID string) ([]tagModel.Tag, error)

	// PurgeUserRelations removes every relation row referencing the user.
	// Posts and comments are intentionally left in place; see the user
	// service for the deletion contract.
	PurgeUserRelations(userID string) error
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new repository instance.
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) CreateFollow(follow *model.Follow) error {
	return r.db.Create(follow).Error
}

func (r *followRepository) DeleteFollow(followerID, followedID string) error {
	return r.db.Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&model.Follow{}).Error
}

func (r *followRepository) HasFollow(followerID, followedID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	return count > 0, err
}

// GetFollowers lists the users following userID. Both directions are served
// from the same relation table, so follower and following listings can
// never disagree about a pair.
func (r *followRepository) GetFollowers(userID string, offset, limit int) ([]model.User, int64, error) {
	var users []model.User
	var total int64

	base := r.db.Model(&model.User{}).
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.followed_id = ?", userID)

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := base.Order("users.username asc").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *followRepository) GetFollowing(userID string, offset, limit int) ([]model.User, int64, error) {
	var users []model.User
	var total int64

	base := r.db.Model(&model.User{}).
		Joins("JOIN follows ON follows.followed_id = users.id").
		Where("follows.follower_id = ?", userID)

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := base.Order("users.username asc").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *followRepository) CreateTagFollow(follow *model.TagFollow) error {
	return r.db.Create(follow).Error
}

func (r *followRepository) DeleteTagFollow(userID, tagID string) error {
	return r.db.Where("user_id = ? AND tag_id = ?", userID, tagID).
		Delete(&model.TagFollow{}).Error
}

func (r *followRepository) HasTagFollow(userID, tagID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.TagFollow{}).
		Where("user_id = ? AND tag_id = ?", userID, tagID).
		Count(&count).Error
	return count > 0, err
}

func (r *followRepository) GetFollowedTags(userID string) ([]tagModel.Tag, error) {
	var tags []tagModel.Tag
	err := r.db.Model(&tagModel.Tag{}).
		Joins("JOIN tag_follows ON tag_follows.tag_id = tags.id").
		Where("tag_follows.user_id = ?", userID).
		Order("tags.name asc").
		Find(&tags).Error
	return tags, err
}

func (r *followRepository) PurgeUserRelations(userID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM follows WHERE follower_id = ? OR followed_id = ?", userID, userID).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM tag_follows WHERE user_id = ?", userID).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM reactions WHERE user_id = ?", userID).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM comment_likes WHERE user_id = ?", userID).Error; err != nil {
			return err
		}
		return tx.Exec("DELETE FROM saved_posts WHERE user_id = ?", userID).Error
	})
}
