package repository

import (
	"gorm.io/gorm"

	"knowledgebase/models"
)

// DuplicateRecordsByTenant 返回租户的全部告警记录（只追加的日志，原样返回）
func DuplicateRecordsByTenant(db *gorm.DB, tenantID uint) ([]models.DuplicateRecord, error) {
	var records []models.DuplicateRecord
	if err := db.Where("tenant_id = ?", tenantID).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
