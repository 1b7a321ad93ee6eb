package controllers

import (
	"agora-market/services"

	"github.com/gin-gonic/gin"
)

func WSController(hub *services.Hub) gin.HandlerFunc {
	return services.HandleWebSocket(hub)
}
