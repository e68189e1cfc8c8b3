package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"knowledgebase/global"
	"knowledgebase/models"
)

type aliasRequest struct {
	Text      string `json:"text"`
	ArticleID uint   `json:"articleId"`
}

func CreateAlias(ctx *gin.Context) {
	var req aliasRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.Text == "" || req.ArticleID == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing fields"})
		return
	}

	var article models.Article
	if err := global.Db.First(&article, req.ArticleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "Article not found"})
		} else {
			internalError(ctx, "Failed to create alias", err)
		}
		return
	}

	alias := models.Alias{Text: req.Text, ArticleID: article.ID}
	if err := global.Db.Create(&alias).Error; err != nil {
		internalError(ctx, "Failed to create alias", err)
		return
	}

	global.Logger.Infof("Alias created: %s", alias.Text)
	ctx.JSON(http.StatusCreated, alias)
}

func ListAliases(ctx *gin.Context) {
	var aliases []models.Alias
	if err := global.Db.Preload("Article").Find(&aliases).Error; err != nil {
		internalError(ctx, "Failed to list aliases", err)
		return
	}
	ctx.JSON(http.StatusOK, aliases)
}

func GetAlias(ctx *gin.Context) {
	id := idParam(ctx, "id")
	if id == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "Alias not found"})
		return
	}

	var alias models.Alias
	if err := global.Db.Preload("Article").First(&alias, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "Alias not found"})
		} else {
			internalError(ctx, "Failed to get alias", err)
		}
		return
	}
	ctx.JSON(http.StatusOK, alias)
}

func UpdateAlias(ctx *gin.Context) {
	alias, ok := findAlias(ctx)
	if !ok {
		return
	}

	var req aliasRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Text != "" {
		alias.Text = req.Text
	}

	if err := global.Db.Save(alias).Error; err != nil {
		internalError(ctx, "Failed to update alias", err)
		return
	}

	ctx.JSON(http.StatusOK, alias)
}

func DeleteAlias(ctx *gin.Context) {
	alias, ok := findAlias(ctx)
	if !ok {
		return
	}

	if err := global.Db.Unscoped().Delete(alias).Error; err != nil {
		internalError(ctx, "Failed to delete alias", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Alias deleted"})
}

func findAlias(ctx *gin.Context) (*models.Alias, bool) {
	id := idParam(ctx, "id")
	if id == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "Alias not found"})
		return nil, false
	}

	var alias models.Alias
	if err := global.Db.First(&alias, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "Alias not found"})
		} else {
			internalError(ctx, "Failed to get alias", err)
		}
		return nil, false
	}
	return &alias, true
}
