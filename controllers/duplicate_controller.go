package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"knowledgebase/global"
	"knowledgebase/repository"
	"knowledgebase/services"
)

// GetPotentialDuplicates 返回两个互不校正的视图：实时启发式分组 +
// 消费者落库的历史告警记录
func GetPotentialDuplicates(ctx *gin.Context) {
	tenantID := idParam(ctx, "id")
	if tenantID == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "Tenant not found"})
		return
	}

	articles, err := repository.ArticlesByTenant(global.Db, tenantID, repository.ArticleQuery{WithAliases: true})
	if err != nil {
		global.Logger.Errorf("Failed to fetch potential duplicates: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	groups := services.BuildHeuristicGroups(articles)
	if groups == nil {
		groups = []services.HeuristicGroup{}
	}

	records, err := repository.DuplicateRecordsByTenant(global.Db, tenantID)
	if err != nil {
		global.Logger.Errorf("Failed to fetch potential duplicates: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	logged := make([]gin.H, 0, len(records))
	for _, r := range records {
		logged = append(logged, gin.H{
			"newArticleId":      r.NewArticleID,
			"existingArticleId": r.ExistingArticleID,
			"reason":            r.Reason,
			"timestamp":         r.Timestamp,
		})
	}

	ctx.JSON(http.StatusOK, gin.H{
		"tenantId":         tenantID,
		"heuristicGroups":  groups,
		"loggedDuplicates": logged,
	})
}
