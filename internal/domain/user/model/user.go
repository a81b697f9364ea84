package model

import (
	"time"

	baseModel "blog_crud_jwt/pkg/model"
)

// Occupation is the user's professional profile block.
type Occupation struct {
	Position string `json:"position,omitempty"`
	Company  string `json:"company,omitempty"`
	Website  string `json:"website,omitempty"`
}

// User is the account record. Password holds the bcrypt hash and is never
// serialized.
type User struct {
	baseModel.BaseModel
	Firstname      string     `json:"firstname"`
	Middlename     string     `json:"middlename,omitempty"`
	Lastname       string     `json:"lastname"`
	Username       string     `gorm:"uniqueIndex" json:"username"`
	Email          string     `gorm:"uniqueIndex" json:"email"`
	Password       string     `json:"-"`
	Bio            string     `json:"bio,omitempty"`
	ProfileImage   string     `json:"profileImage,omitempty"`
	Location       string     `json:"location,omitempty"`
	Website        string     `json:"website,omitempty"`
	Occupation     Occupation `gorm:"embedded;embeddedPrefix:occupation_" json:"occupation"`
	Education      string     `json:"education,omitempty"`
	DisplayEmail   bool       `gorm:"default:true" json:"displayEmail"`
	DisplayWebsite bool       `gorm:"default:false" json:"displayWebsite"`
	IsAdmin        bool       `gorm:"default:false" json:"isAdmin"`
	LoginCount     int        `gorm:"default:0" json:"loginCount"`
	LastLoginAt    *time.Time `json:"lastLoginAt,omitempty"`
}

// Follow is one edge of the social graph. A single row per
// (follower, followed) pair replaces the old mirrored collections, so the
// two directions can never diverge.
type Follow struct {
	baseModel.RelationModel
	FollowerID string `gorm:"type:uuid;uniqueIndex:idx_follow_pair" json:"followerId"`
	FollowedID string `gorm:"type:uuid;uniqueIndex:idx_follow_pair" json:"followedId"`
}

// TagFollow records that a user follows a tag.
type TagFollow struct {
	baseModel.RelationModel
	UserID string `gorm:"type:uuid;uniqueIndex:idx_tag_follow_pair" json:"userId"`
	TagID  string `gorm:"type:uuid;uniqueIndex:idx_tag_follow_pair" json:"tagId"`
}
