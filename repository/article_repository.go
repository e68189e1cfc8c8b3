package repository

import (
	"gorm.io/gorm"

	"knowledgebase/models"
)

// ArticleQuery 控制随文章一起加载哪些关联，由调用方决定加载成本
type ArticleQuery struct {
	WithTenant  bool
	WithTopics  bool
	WithAliases bool
}

func (q ArticleQuery) apply(tx *gorm.DB) *gorm.DB {
	if q.WithTenant {
		tx = tx.Preload("Tenant")
	}
	if q.WithTopics {
		tx = tx.Preload("Topics")
	}
	if q.WithAliases {
		tx = tx.Preload("Aliases")
	}
	return tx
}

// ArticlesByTenant 加载租户的全部文章（不分页，全量扫描）
func ArticlesByTenant(db *gorm.DB, tenantID uint, q ArticleQuery) ([]models.Article, error) {
	var articles []models.Article
	err := q.apply(db).Where("tenant_id = ?", tenantID).Find(&articles).Error
	if err != nil {
		return nil, err
	}
	return articles, nil
}

func ArticleByID(db *gorm.DB, id uint, q ArticleQuery) (*models.Article, error) {
	var article models.Article
	if err := q.apply(db).First(&article, id).Error; err != nil {
		return nil, err
	}
	return &article, nil
}
