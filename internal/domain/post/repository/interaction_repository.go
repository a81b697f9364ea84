package repository

import (
	"blog_crud_jwt/internal/domain/post/model"

	"gorm.io/gorm"
)

// InteractionRepository persists comments, likes and bookmarks.
type InteractionRepository interface {
	CreateComment(comment *model.Comment) error
	GetCommentByID(id string) (*model.Comment, error)
	GetCommentsByPost(postID string, offset, limit int) ([]model.Comment, int64, error)
	UpdateComment(comment *model.Comment) error
	DeleteComment(id string) error
	CommentLikeCounts(commentIDs []string) (map[string]int64, error)

	HasReaction(userID, postID string) (bool, error)
	CreateReaction(reaction *model.Reaction) error
	DeleteReaction(userID, postID string) error

	HasCommentLike(userID, commentID string) (bool, error)
	CreateCommentLike(like *model.CommentLike) error
	DeleteCommentLike(userID, commentID string) error

	HasSaved(userID, postID string) (bool, error)
	CreateSaved(saved *model.SavedPost) error
	DeleteSaved(userID, postID string) error
	GetSavedPosts(userID string, offset, limit int) ([]model.Post, int64, error)
}

type interactionRepository struct {
	db *gorm.DB
}

func NewInteractionRepository(db *gorm.DB) InteractionRepository {
	return &interactionRepository{db: db}
}

func (r *interactionRepository) CreateComment(comment *model.Comment) error {
	return r.db.Create(comment).Error
}

func (r *interactionRepository) GetCommentByID(id string) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.Preload("Author").Where("id = ?", id).First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *interactionRepository) GetCommentsByPost(postID string, offset, limit int) ([]model.Comment, int64, error) {
	var comments []model.Comment
	var total int64

	base := r.db.Model(&model.Comment{}).Where("post_id = ?", postID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at asc").
		Offset(offset).Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (r *interactionRepository) UpdateComment(comment *model.Comment) error {
	return r.db.Omit("Author").Save(comment).Error
}

func (r *interactionRepository) DeleteComment(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id = ?", id).Delete(&model.CommentLike{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Comment{}).Error
	})
}

func (r *interactionRepository) CommentLikeCounts(commentIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(commentIDs))
	if len(commentIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		CommentID string
		Count     int64
	}
	err := r.db.Model(&model.CommentLike{}).
		Select("comment_id, count(*) as count").
		Where("comment_id IN ?", commentIDs).
		Group("comment_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.CommentID] = row.Count
	}
	return counts, nil
}

func (r *interactionRepository) HasReaction(userID, postID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Reaction{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

func (r *interactionRepository) CreateReaction(reaction *model.Reaction) error {
	return r.db.Create(reaction).Error
}

func (r *interactionRepository) DeleteReaction(userID, postID string) error {
	return r.db.Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&model.Reaction{}).Error
}

func (r *interactionRepository) HasCommentLike(userID, commentID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.CommentLike{}).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		Count(&count).Error
	return count > 0, err
}

func (r *interactionRepository) CreateCommentLike(like *model.CommentLike) error {
	return r.db.Create(like).Error
}

func (r *interactionRepository) DeleteCommentLike(userID, commentID string) error {
	return r.db.Where("user_id = ? AND comment_id = ?", userID, commentID).
		Delete(&model.CommentLike{}).Error
}

func (r *interactionRepository) HasSaved(userID, postID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.SavedPost{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

func (r *interactionRepository) CreateSaved(saved *model.SavedPost) error {
	return r.db.Create(saved).Error
}

func (r *interactionRepository) DeleteSaved(userID, postID string) error {
	return r.db.Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&model.SavedPost{}).Error
}

func (r *interactionRepository) GetSavedPosts(userID string, offset, limit int) ([]model.Post, int64, error) {
	var posts []model.Post
	var total int64

	base := r.db.Model(&model.Post{}).
		Joins("JOIN saved_posts ON saved_posts.post_id = posts.id").
		Where("saved_posts.user_id = ?", userID)

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Preload("Author").Preload("Tags").
		Joins("JOIN saved_posts ON saved_posts.post_id = posts.id").
		Where("saved_posts.user_id = ?", userID).
		Order("saved_posts.created_at desc").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}
