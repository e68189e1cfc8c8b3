package models

import "gorm.io/gorm"

// Article 知识库文章，属于一个租户，可带别名和主题
type Article struct {
	gorm.Model
	Title         string  `gorm:"not null" json:"title"`
	Body          string  `gorm:"type:text;not null" json:"body"`
	PublishedYear int     `gorm:"not null" json:"publishedYear"`
	TenantID      uint    `gorm:"index;not null" json:"tenantId"`
	Tenant        *Tenant `json:"tenant,omitempty"`
	Aliases       []Alias `gorm:"constraint:OnDelete:CASCADE" json:"aliases,omitempty"`
	Topics        []Topic `gorm:"many2many:article_topics;constraint:OnDelete:CASCADE" json:"topics,omitempty"`
}
