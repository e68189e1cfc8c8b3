package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"knowledgebase/global"
	"knowledgebase/models"
)

type topicRequest struct {
	Name string `json:"name"`
}

func CreateTopic(ctx *gin.Context) {
	var req topicRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.Name == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing fields"})
		return
	}

	var exists models.Topic
	err := global.Db.Where("name = ?", req.Name).First(&exists).Error
	if err == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Topic already exists"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		internalError(ctx, "Failed to create topic", err)
		return
	}

	topic := models.Topic{Name: req.Name}
	if err := global.Db.Create(&topic).Error; err != nil {
		internalError(ctx, "Failed to create topic", err)
		return
	}

	global.Logger.Infof("Topic created: %s", topic.Name)
	ctx.JSON(http.StatusOK, topic)
}

func ListTopics(ctx *gin.Context) {
	var topics []models.Topic
	if err := global.Db.Find(&topics).Error; err != nil {
		internalError(ctx, "Failed to list topics", err)
		return
	}
	ctx.JSON(http.StatusOK, topics)
}

func GetTopic(ctx *gin.Context) {
	topic, ok := findTopic(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, topic)
}

func UpdateTopic(ctx *gin.Context) {
	topic, ok := findTopic(ctx)
	if !ok {
		return
	}

	var req topicRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Name != "" {
		topic.Name = req.Name
	}

	if err := global.Db.Save(topic).Error; err != nil {
		internalError(ctx, "Failed to update topic", err)
		return
	}

	global.Logger.Infof("Topic updated: %s", topic.Name)
	ctx.JSON(http.StatusOK, topic)
}

func DeleteTopic(ctx *gin.Context) {
	topic, ok := findTopic(ctx)
	if !ok {
		return
	}

	// 只解除关联，文章本身保留
	if err := global.Db.Model(topic).Association("Articles").Clear(); err != nil {
		internalError(ctx, "Failed to delete topic", err)
		return
	}
	if err := global.Db.Unscoped().Delete(topic).Error; err != nil {
		internalError(ctx, "Failed to delete topic", err)
		return
	}

	global.Logger.Infof("Topic deleted: %s", topic.Name)
	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

func findTopic(ctx *gin.Context) (*models.Topic, bool) {
	id := idParam(ctx, "id")
	if id == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "Topic not found"})
		return nil, false
	}

	var topic models.Topic
	if err := global.Db.First(&topic, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "Topic not found"})
		} else {
			internalError(ctx, "Failed to get topic", err)
		}
		return nil, false
	}
	return &topic, true
}
