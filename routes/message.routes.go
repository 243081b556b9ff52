package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/NakibIheb20/carthatamaz-platform/handlers"
)

type MessageRouteHandler struct {
	messageHandler  handlers.MessageHandler
	deserializeUser gin.HandlerFunc
	authorize       gin.HandlerFunc
}

func NewMessageRouteHandler(messageHandler handlers.MessageHandler, deserializeUser, authorize gin.HandlerFunc) MessageRouteHandler {
	return MessageRouteHandler{messageHandler, deserializeUser, authorize}
}

func (rc *MessageRouteHandler) MessageRoute(rg *gin.RouterGroup) {
	router := rg.Group("/messages")
	router.Use(rc.deserializeUser, rc.authorize)

	router.POST("", rc.messageHandler.SendMessage)
	router.GET("", rc.messageHandler.GetConversations)
	router.GET("/sent", rc.messageHandler.GetSentMessages)
	router.GET("/received", rc.messageHandler.GetReceivedMessages)
	router.GET("/unread", rc.messageHandler.GetUnreadMessages)
	router.GET("/conversation/:userId", rc.messageHandler.GetConversation)
	router.PUT("/:id/read", rc.messageHandler.MarkMessageAsRead)
	router.PUT("/conversations/:conversationId/read", rc.messageHandler.MarkConversationAsRead)
}
