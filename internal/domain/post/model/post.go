package model

import (
	tagmodel "blog_crud_jwt/internal/domain/tag/model"
	"blog_crud_jwt/pkg/model"
)

// Author is the slim projection of a user embedded in post and comment
// payloads. Dangling author ids (deleted accounts) load as a zero Author.
type Author struct {
	ID           string `json:"id" gorm:"primaryKey;type:uuid"`
	Firstname    string `json:"firstname"`
	Lastname     string `json:"lastname"`
	Username     string `json:"username"`
	ProfileImage string `json:"profileImage"`
}

func (Author) TableName() string {
	return "users"
}

// Post is a published article.
type Post struct {
	model.BaseModel
	Title    string         `json:"title" gorm:"size:255;not null"`
	Slug     string         `json:"slug" gorm:"size:300;uniqueIndex;not null"`
	Body     string         `json:"body" gorm:"type:text;not null"`
	Banner   string         `json:"banner" gorm:"size:250"`
	Views    int64          `json:"views" gorm:"default:0"`
	AuthorID string         `json:"-" gorm:"type:uuid;index;not null"`
	Author   *Author        `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Tags     []tagmodel.Tag `json:"tags" gorm:"many2many:post_tags"`

	// Aggregates filled on read, never persisted.
	LikeCount    int64 `json:"likeCount" gorm:"-"`
	CommentCount int64 `json:"commentCount" gorm:"-"`
}

// Comment is a reply attached to a post.
type Comment struct {
	model.BaseModel
	PostID   string  `json:"postId" gorm:"type:uuid;index;not null"`
	AuthorID string  `json:"-" gorm:"type:uuid;index;not null"`
	Author   *Author `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Body     string  `json:"body" gorm:"size:2500;not null"`

	LikeCount int64 `json:"likeCount" gorm:"-"`
}

// Reaction is one user's like on one post. The pair is unique; toggling
// inserts or hard-deletes the row.
type Reaction struct {
	model.RelationModel
	UserID string `json:"userId" gorm:"type:uuid;uniqueIndex:idx_reaction_pair;not null"`
	PostID string `json:"postId" gorm:"type:uuid;uniqueIndex:idx_reaction_pair;not null"`
}

// CommentLike is one user's like on one comment.
type CommentLike struct {
	model.RelationModel
	UserID    string `json:"userId" gorm:"type:uuid;uniqueIndex:idx_comment_like_pair;not null"`
	CommentID string `json:"commentId" gorm:"type:uuid;uniqueIndex:idx_comment_like_pair;not null"`
}

// SavedPost is one user's bookmark of one post.
type SavedPost struct {
	model.RelationModel
	UserID string `json:"userId" gorm:"type:uuid;uniqueIndex:idx_saved_post_pair;not null"`
	PostID string `json:"postId" gorm:"type:uuid;uniqueIndex:idx_saved_post_pair;not null"`
}
