package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"knowledgebase/global"
	"knowledgebase/models"
)

type tenantRequest struct {
	Name          string `json:"name"`
	PrimaryLocale string `json:"primaryLocale"`
}

func CreateTenant(ctx *gin.Context) {
	var req tenantRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.Name == "" || req.PrimaryLocale == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing fields"})
		return
	}

	var existing models.Tenant
	err := global.Db.Where("name = ?", req.Name).First(&existing).Error
	if err == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Tenant name must be unique"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		internalError(ctx, "Failed to create tenant", err)
		return
	}

	tenant := models.Tenant{Name: req.Name, PrimaryLocale: req.PrimaryLocale}
	if err := global.Db.Create(&tenant).Error; err != nil {
		internalError(ctx, "Failed to create tenant", err)
		return
	}

	global.Logger.Infof("Tenant created: %s", tenant.Name)
	ctx.JSON(http.StatusOK, tenant)
}

func ListTenants(ctx *gin.Context) {
	var tenants []models.Tenant
	if err := global.Db.Find(&tenants).Error; err != nil {
		internalError(ctx, "Failed to list tenants", err)
		return
	}
	ctx.JSON(http.StatusOK, tenants)
}

func GetTenant(ctx *gin.Context) {
	tenant, ok := findTenant(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, tenant)
}

func UpdateTenant(ctx *gin.Context) {
	tenant, ok := findTenant(ctx)
	if !ok {
		return
	}

	var req tenantRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.Name != "" && req.Name != tenant.Name {
		var exists models.Tenant
		if err := global.Db.Where("name = ?", req.Name).First(&exists).Error; err == nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"message": "Tenant name must be unique"})
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			internalError(ctx, "Failed to update tenant", err)
			return
		}
		tenant.Name = req.Name
	}
	if req.PrimaryLocale != "" {
		tenant.PrimaryLocale = req.PrimaryLocale
	}

	if err := global.Db.Save(tenant).Error; err != nil {
		internalError(ctx, "Failed to update tenant", err)
		return
	}

	global.Logger.Infof("Tenant updated: %s", tenant.Name)
	ctx.JSON(http.StatusOK, tenant)
}

func DeleteTenant(ctx *gin.Context) {
	tenant, ok := findTenant(ctx)
	if !ok {
		return
	}

	// 硬删除，让外键级联带走文章和别名
	if err := global.Db.Unscoped().Delete(tenant).Error; err != nil {
		internalError(ctx, "Failed to delete tenant", err)
		return
	}
	invalidateArticleCache()

	global.Logger.Infof("Tenant deleted: %s", tenant.Name)
	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

func findTenant(ctx *gin.Context) (*models.Tenant, bool) {
	id := idParam(ctx, "id")
	if id == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "Tenant not found"})
		return nil, false
	}

	var tenant models.Tenant
	if err := global.Db.First(&tenant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "Tenant not found"})
		} else {
			internalError(ctx, "Failed to get tenant", err)
		}
		return nil, false
	}
	return &tenant, true
}
