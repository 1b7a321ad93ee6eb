package services

import (
	"net/http"

	"agora-market/config"
	"agora-market/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWebSocket 升级连接并绑定用户身份。
// token 无效或缺失时连接照样建立，但停留在未认证状态。
func HandleWebSocket(hub *Hub) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
			return
		}

		client := &Client{
			ID:   uuid.NewString(),
			Conn: conn,
			Send: make(chan []byte, sendQueueSize),
		}

		if token := ctx.Query("token"); token != "" {
			if claims, err := ParseToken(token); err == nil {
				var user models.User
				if err := config.DB.First(&user, claims.UserID).Error; err == nil {
					client.UserID = user.ID
					client.Username = user.Username
					client.Avatar = user.Avatar
				}
			} else {
				hub.log.Debug("ws token rejected", zap.Error(err))
			}
		}

		hub.Register(client)

		go client.WritePump()
		go client.ReadPump(hub)
	}
}
