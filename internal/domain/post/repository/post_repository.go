package repository

import (
	"blog_crud_jwt/internal/domain/post/model"
	tagmodel "blog_crud_jwt/internal/domain/tag/model"

	"gorm.io/gorm"
)

// PostRepository is the post persistence interface.
type PostRepository interface {
	Create(post *model.Post) error
	GetByID(id string) (*model.Post, error)
	GetBySlug(slug string) (*model.Post, error)
	GetList(offset, limit int) ([]model.Post, int64, error)
	Search(query string, offset, limit int) ([]model.Post, int64, error)
	Update(post *model.Post) error
	ReplaceTags(post *model.Post, tags []tagmodel.Tag) error
	IncrementViews(id string, delta int64) error
	ReactionCounts(postIDs []string) (map[string]int64, error)
	CommentCounts(postIDs []string) (map[string]int64, error)
	Delete(id string) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(post *model.Post) error {
	return r.db.Create(post).Error
}

func (r *postRepository) GetByID(id string) (*model.Post, error) {
	var post model.Post
	err := r.db.Preload("Author").Preload("Tags").Where("id = ?", id).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) GetBySlug(slug string) (*model.Post, error) {
	var post model.Post
	err := r.db.Preload("Author").Preload("Tags").Where("slug = ?", slug).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) GetList(offset, limit int) ([]model.Post, int64, error) {
	var posts []model.Post
	var total int64

	if err := r.db.Model(&model.Post{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Preload("Author").Preload("Tags").
		Order("created_at desc").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepository) Search(query string, offset, limit int) ([]model.Post, int64, error) {
	var posts []model.Post
	var total int64

	pattern := "%" + query + "%"
	base := r.db.Model(&model.Post{}).Where("title ILIKE ? OR body ILIKE ?", pattern, pattern)

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Preload("Author").Preload("Tags").
		Where("title ILIKE ? OR body ILIKE ?", pattern, pattern).
		Order("created_at desc").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepository) Update(post *model.Post) error {
	// Omit associations; tag changes go through ReplaceTags.
	return r.db.Omit("Tags", "Author").Save(post).Error
}

func (r *postRepository) ReplaceTags(post *model.Post, tags []tagmodel.Tag) error {
	return r.db.Model(post).Association("Tags").Replace(tags)
}

func (r *postRepository) IncrementViews(id string, delta int64) error {
	return r.db.Model(&model.Post{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", delta)).Error
}

type pairCount struct {
	PostID string
	Count  int64
}

func (r *postRepository) ReactionCounts(postIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	var rows []pairCount
	err := r.db.Model(&model.Reaction{}).
		Select("post_id, count(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.PostID] = row.Count
	}
	return counts, nil
}

func (r *postRepository) CommentCounts(postIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	var rows []pairCount
	err := r.db.Model(&model.Comment{}).
		Select("post_id, count(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.PostID] = row.Count
	}
	return counts, nil
}

// Delete removes the post together with everything hanging off it.
func (r *postRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"DELETE FROM comment_likes WHERE comment_id IN (SELECT id FROM comments WHERE post_id = ?)", id,
		).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&model.Reaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&model.SavedPost{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM post_tags WHERE post_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Post{}).Error
	})
}
