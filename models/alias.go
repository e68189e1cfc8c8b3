package models

import "gorm.io/gorm"

// Alias 文章的别名，随文章级联删除
type Alias struct {
	gorm.Model
	Text      string   `gorm:"not null" json:"text"`
	ArticleID uint     `gorm:"index;not null" json:"articleId"`
	Article   *Article `json:"article,omitempty"`
}
