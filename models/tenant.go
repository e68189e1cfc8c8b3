package models

import "gorm.io/gorm"

// Tenant 是一个独立的客户/组织，拥有自己的文章
type Tenant struct {
	gorm.Model
	Name          string    `gorm:"uniqueIndex;not null" json:"name"`
	PrimaryLocale string    `gorm:"not null" json:"primaryLocale"`
	Articles      []Article `gorm:"constraint:OnDelete:CASCADE" json:"articles,omitempty"`
}
