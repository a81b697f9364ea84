package model

import (
	baseModel "blog_crud_jwt/pkg/model"
)

// Tag is a taxonomy entry referenced by posts and followable by users.
type Tag struct {
	baseModel.BaseModel
	Name            string `gorm:"uniqueIndex" json:"name"`
	BackgroundColor string `json:"backgroundColor"`
	TextBlack       bool   `gorm:"default:true" json:"textBlack"`
	Image           string `json:"image,omitempty"`
	Description     string `json:"description,omitempty"`
}
