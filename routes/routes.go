package routes

import (
	"agora-market/controllers"
	"agora-market/middlewares"
	"agora-market/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(hub *services.Hub) *gin.Engine {

	r := gin.Default()
	// 配置跨域中间件
	corsConfig := cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}
	r.Use(cors.New(corsConfig))

	r.GET("/ws", controllers.WSController(hub))

	api := r.Group("/api")

	api.POST("/register", controllers.Register)
	api.POST("/login", controllers.Login)
	api.GET("/items", controllers.ListItems)
	api.GET("/items/:id", controllers.GetItem)
	api.GET("/users/:username", controllers.GetProfile)

	protected := api.Group("")
	protected.Use(middlewares.TokenAuthMiddleware())
	{
		protected.GET("/userinfo", controllers.GetUserInfo)

		protected.POST("/items", controllers.CreateItem)
		protected.PUT("/items/:id", controllers.UpdateItem)
		protected.DELETE("/items/:id", controllers.DeleteItem)

		protected.GET("/messages/inbox", controllers.Inbox)
		protected.GET("/messages/sent", controllers.Sent)
		protected.POST("/messages", controllers.ComposeMessage)
		protected.GET("/messages/:id", controllers.ViewMessage)
		protected.DELETE("/messages/:id", controllers.DeleteMessage)
		protected.GET("/conversations/:user_id", controllers.ChatHistory)
	}

	return r
}
