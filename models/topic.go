package models

import "gorm.io/gorm"

// Topic 跨租户共享的标签式分类
type Topic struct {
	gorm.Model
	Name     string    `gorm:"uniqueIndex;not null" json:"name"`
	Articles []Article `gorm:"many2many:article_topics" json:"articles,omitempty"`
}
