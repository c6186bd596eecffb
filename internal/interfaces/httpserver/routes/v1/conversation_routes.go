package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/rasimsen/ai-assistance-service/internal/interfaces/httpserver/handlers"
)

func registerConversationRoutes(router gin.IRoutes, handler *handlers.ConversationHandler) {
	router.POST("/conversations", handler.Create)
	router.GET("/conversations", handler.List)
	router.GET("/conversations/:id", handler.GetByID)
	router.PATCH("/conversations/:id", handler.Update)
}
