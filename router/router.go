package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"knowledgebase/controllers"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	api := r.Group("/api/v1")
	{
		tenants := api.Group("/tenants")
		{
			tenants.POST("", controllers.CreateTenant)
			tenants.GET("", controllers.ListTenants)
			tenants.GET("/:id", controllers.GetTenant)
			tenants.PUT("/:id", controllers.UpdateTenant)
			tenants.DELETE("/:id", controllers.DeleteTenant)
			tenants.GET("/:id/duplicates", controllers.GetPotentialDuplicates)
		}

		topics := api.Group("/topics")
		{
			topics.POST("", controllers.CreateTopic)
			topics.GET("", controllers.ListTopics)
			topics.GET("/:id", controllers.GetTopic)
			topics.PUT("/:id", controllers.UpdateTopic)
			topics.DELETE("/:id", controllers.DeleteTopic)
		}

		articles := api.Group("/articles")
		{
			articles.POST("", controllers.CreateArticle)
			articles.GET("", controllers.ListArticles)
			articles.GET("/:id", controllers.GetArticle)
			articles.PUT("/:id", controllers.UpdateArticle)
			articles.DELETE("/:id", controllers.DeleteArticle)
		}

		aliases := api.Group("/aliases")
		{
			aliases.POST("", controllers.CreateAlias)
			aliases.GET("", controllers.ListAliases)
			aliases.GET("/:id", controllers.GetAlias)
			aliases.PUT("/:id", controllers.UpdateAlias)
			aliases.DELETE("/:id", controllers.DeleteAlias)
		}
	}

	return r
}
