package models

import "gorm.io/gorm"

// DuplicateRecord 重复告警事件的持久化记录（只追加，消费者写入）
type DuplicateRecord struct {
	gorm.Model
	NewArticleID      uint   `gorm:"not null" json:"newArticleId"`
	ExistingArticleID uint   `gorm:"not null" json:"existingArticleId"`
	TenantID          uint   `gorm:"index;not null" json:"tenantId"`
	Reason            string `gorm:"not null" json:"reason"`
	Timestamp         string `gorm:"not null" json:"timestamp"`
}
