package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"knowledgebase/config"
	"knowledgebase/events"
	"knowledgebase/global"
	"knowledgebase/models"
	"knowledgebase/repository"
	"knowledgebase/services"
)

const articleCacheKey = "kb:articles"

// aliasInput 兼容两种写法："pw reset" 或 {"text": "pw reset"}
type aliasInput struct {
	Text string `json:"text"`
}

func (a *aliasInput) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		a.Text = s
		return nil
	}
	type plain aliasInput
	var obj plain
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	a.Text = obj.Text
	return nil
}

type articleRequest struct {
	Title         string       `json:"title"`
	Body          string       `json:"body"`
	PublishedYear int          `json:"publishedYear"`
	TenantID      uint         `json:"tenantId"`
	Aliases       []aliasInput `json:"aliases"`
	TopicIDs      []uint       `json:"topicIds"`
}

// CreateArticle 先对入库前的快照跑重复检测，保存后再带真实 id 异步发事件。
// 事件投递失败不影响创建请求本身。
func CreateArticle(ctx *gin.Context) {
	var req articleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil ||
		req.Title == "" || req.Body == "" || req.PublishedYear == 0 || req.TenantID == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	var tenant models.Tenant
	if err := global.Db.First(&tenant, req.TenantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Tenant not found"})
		} else {
			internalError(ctx, "Failed to create article", err)
		}
		return
	}

	// 入库前的快照，新文章不会匹配到自己
	existing, err := repository.ArticlesByTenant(global.Db, tenant.ID, repository.ArticleQuery{WithAliases: true})
	if err != nil {
		internalError(ctx, "Failed to create article", err)
		return
	}

	article := models.Article{
		Title:         req.Title,
		Body:          req.Body,
		PublishedYear: req.PublishedYear,
		TenantID:      tenant.ID,
	}
	for _, a := range req.Aliases {
		if a.Text != "" {
			article.Aliases = append(article.Aliases, models.Alias{Text: a.Text})
		}
	}
	if len(req.TopicIDs) > 0 {
		var topics []models.Topic
		if err := global.Db.Find(&topics, req.TopicIDs).Error; err != nil {
			internalError(ctx, "Failed to create article", err)
			return
		}
		article.Topics = topics
	}

	if err := global.Db.Create(&article).Error; err != nil {
		internalError(ctx, "Failed to create article", err)
		return
	}

	warnings := services.ScanForDuplicates(existing, article.Title, tenant.ID, article.ID, time.Now())
	events.EmitDuplicateWarningsAsync(warnings)

	invalidateArticleCache()

	saved, err := repository.ArticleByID(global.Db, article.ID, repository.ArticleQuery{
		WithTenant: true, WithTopics: true, WithAliases: true,
	})
	if err != nil {
		internalError(ctx, "Failed to create article", err)
		return
	}

	global.Logger.Infof("Article created: %s", article.Title)
	ctx.JSON(http.StatusOK, saved)
}

func ListArticles(ctx *gin.Context) {
	q := ctx.Query("q")
	tenantID := ctx.Query("tenantId")
	year := ctx.Query("year")
	unfiltered := q == "" && tenantID == "" && year == ""

	if unfiltered {
		if cached, err := global.RedisDB.Get(articleCacheKey).Result(); err == nil {
			var articles []models.Article
			if json.Unmarshal([]byte(cached), &articles) == nil {
				ctx.JSON(http.StatusOK, articles)
				return
			}
		} else if err != redis.Nil {
			global.Logger.Warnf("Article cache read failed: %v", err)
		}
	}

	tx := global.Db.Preload("Tenant").Preload("Topics").Preload("Aliases")
	if q != "" {
		like := "%" + q + "%"
		tx = tx.Where("articles.title LIKE ? OR articles.id IN (SELECT article_id FROM aliases WHERE aliases.text LIKE ?)", like, like)
	}
	if tenantID != "" {
		tx = tx.Where("tenant_id = ?", tenantID)
	}
	if year != "" {
		tx = tx.Where("published_year = ?", year)
	}

	var articles []models.Article
	if err := tx.Find(&articles).Error; err != nil {
		internalError(ctx, "Failed to list articles", err)
		return
	}

	if unfiltered {
		if data, err := json.Marshal(articles); err == nil {
			ttl := time.Duration(config.AppConfig.Cache.ArticleTTLSeconds) * time.Second
			if ttl <= 0 {
				ttl = 10 * time.Minute
			}
			if err := global.RedisDB.Set(articleCacheKey, data, ttl).Err(); err != nil {
				global.Logger.Warnf("Article cache write failed: %v", err)
			}
		}
	}

	ctx.JSON(http.StatusOK, articles)
}

func GetArticle(ctx *gin.Context) {
	article, ok := findArticle(ctx, repository.ArticleQuery{WithTenant: true, WithTopics: true, WithAliases: true})
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, article)
}

func UpdateArticle(ctx *gin.Context) {
	article, ok := findArticle(ctx, repository.ArticleQuery{WithTenant: true, WithTopics: true, WithAliases: true})
	if !ok {
		return
	}

	var req articleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.TenantID != 0 {
		var tenant models.Tenant
		if err := global.Db.First(&tenant, req.TenantID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.JSON(http.StatusNotFound, gin.H{"message": "Tenant not found"})
			} else {
				internalError(ctx, "Failed to update article", err)
			}
			return
		}
		article.TenantID = tenant.ID
		article.Tenant = &tenant
	}

	if req.Title != "" {
		article.Title = req.Title
	}
	if req.Body != "" {
		article.Body = req.Body
	}
	if req.PublishedYear != 0 {
		article.PublishedYear = req.PublishedYear
	}

	if req.TopicIDs != nil {
		var topics []models.Topic
		if len(req.TopicIDs) > 0 {
			if err := global.Db.Find(&topics, req.TopicIDs).Error; err != nil {
				internalError(ctx, "Failed to update article", err)
				return
			}
		}
		if err := global.Db.Model(article).Association("Topics").Replace(topics); err != nil {
			internalError(ctx, "Failed to update article", err)
			return
		}
		article.Topics = topics
	}

	if req.Aliases != nil {
		// 整组替换别名
		if err := global.Db.Unscoped().Where("article_id = ?", article.ID).Delete(&models.Alias{}).Error; err != nil {
			internalError(ctx, "Failed to update article", err)
			return
		}
		aliases := make([]models.Alias, 0, len(req.Aliases))
		for _, a := range req.Aliases {
			if a.Text != "" {
				aliases = append(aliases, models.Alias{Text: a.Text, ArticleID: article.ID})
			}
		}
		if len(aliases) > 0 {
			if err := global.Db.Create(&aliases).Error; err != nil {
				internalError(ctx, "Failed to update article", err)
				return
			}
		}
		article.Aliases = aliases
	}

	if err := global.Db.Omit(clause.Associations).Save(article).Error; err != nil {
		internalError(ctx, "Failed to update article", err)
		return
	}
	invalidateArticleCache()

	global.Logger.Infof("Article updated: %s", article.Title)
	ctx.JSON(http.StatusOK, article)
}

func DeleteArticle(ctx *gin.Context) {
	article, ok := findArticle(ctx, repository.ArticleQuery{})
	if !ok {
		return
	}

	// 先解除主题关联，再硬删除让别名跟着级联掉；主题本身保留
	if err := global.Db.Model(article).Association("Topics").Clear(); err != nil {
		internalError(ctx, "Failed to delete article", err)
		return
	}
	if err := global.Db.Unscoped().Delete(article).Error; err != nil {
		internalError(ctx, "Failed to delete article", err)
		return
	}
	invalidateArticleCache()

	global.Logger.Infof("Article deleted: %s", article.Title)
	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

func findArticle(ctx *gin.Context, q repository.ArticleQuery) (*models.Article, bool) {
	id := idParam(ctx, "id")
	if id == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "Article not found"})
		return nil, false
	}

	article, err := repository.ArticleByID(global.Db, id, q)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "Article not found"})
		} else {
			internalError(ctx, "Failed to get article", err)
		}
		return nil, false
	}
	return article, true
}

func invalidateArticleCache() {
	if global.RedisDB == nil {
		return
	}
	if err := global.RedisDB.Del(articleCacheKey).Err(); err != nil {
		global.Logger.Warnf("Article cache invalidation failed: %v", err)
	}
}
