package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/NakibIheb20/carthatamaz-platform/domain"
	"github.com/NakibIheb20/carthatamaz-platform/services"
	"github.com/NakibIheb20/carthatamaz-platform/utils"
)

type MessageHandler struct {
	messageService services.MessageService
	Tracer         trace.Tracer
	logger         *logrus.Logger
}

func NewMessageHandler(messageService services.MessageService, tr trace.Tracer, logger *logrus.Logger) MessageHandler {
	return MessageHandler{messageService, tr, logger}
}

func (mh *MessageHandler) SendMessage(ctx *gin.Context) {
	_, span := mh.Tracer.Start(ctx.Request.Context(), "MessageHandler.SendMessage")
	defer span.End()

	sender, ok := utils.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"status": "fail", "message": "You are not logged in"})
		return
	}

	var request *domain.MessageRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": err.Error()})
		return
	}

	message, err := mh.messageService.SendMessage(ctx.Request.Context(), request, sender.ID.Hex())
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		mh.respondMessageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"status": "success", "message": message})
}

func (mh *MessageHandler) GetConversations(ctx *gin.Context) {
	user, ok := utils.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"status": "fail", "message": "You are not logged in"})
		return
	}

	conversations, err := mh.messageService.GetUserConversations(ctx.Request.Context(), user.ID.Hex())
	if err != nil {
		mh.respondMessageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "conversations": conversations})
}

func (mh *MessageHandler) GetConversation(ctx *gin.Context) {
	user, ok := utils.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"status": "fail", "message": "You are not logged in"})
		return
	}

	messages, err := mh.messageService.GetConversation(ctx.Request.Context(), user.ID.Hex(), ctx.Param("userId"))
	if err != nil {
		mh.respondMessageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "messages": messages})
}

func (mh *MessageHandler) GetSentMessages(ctx *gin.Context) {
	user, ok := utils.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"status": "fail", "message": "You are not logged in"})
		return
	}

	messages, err := mh.messageService.GetSentMessages(ctx.Request.Context(), user.ID.Hex())
	if err != nil {
		mh.respondMessageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "messages": messages})
}

func (mh *MessageHandler) GetReceivedMessages(ctx *gin.Context) {
	user, ok := utils.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"status": "fail", "message": "You are not logged in"})
		return
	}

	messages, err := mh.messageService.GetReceivedMessages(ctx.Request.Context(), user.ID.Hex())
	if err != nil {
		mh.respondMessageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "messages": messages})
}

func (mh *MessageHandler) GetUnreadMessages(ctx *gin.Context) {
	user, ok := utils.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"status": "fail", "message": "You are not logged in"})
		return
	}

	messages, err := mh.messageService.GetUnreadMessages(ctx.Request.Context(), user.ID.Hex())
	if err != nil {
		mh.respondMessageError(ctx, err)
		return
	}

	count, err := mh.messageService.GetUnreadMessageCount(ctx.Request.Context(), user.ID.Hex())
	if err != nil {
		mh.respondMessageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "messages": messages, "count": count})
}

func (mh *MessageHandler) MarkMessageAsRead(ctx *gin.Context) {
	user, ok := utils.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"status": "fail", "message": "You are not logged in"})
		return
	}

	message, err := mh.messageService.MarkMessageAsRead(ctx.Request.Context(), ctx.Param("id"), user.ID.Hex())
	if err != nil {
		mh.respondMessageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "message": message})
}

func (mh *MessageHandler) MarkConversationAsRead(ctx *gin.Context) {
	user, ok := utils.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"status": "fail", "message": "You are not logged in"})
		return
	}

	if err := mh.messageService.MarkConversationAsRead(ctx.Request.Context(), ctx.Param("conversationId"), user.ID.Hex()); err != nil {
		mh.respondMessageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "message": "Conversation marked as read"})
}

func (mh *MessageHandler) respondMessageError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrMessageNotFound), errors.Is(err, domain.ErrUserNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"status": "fail", "message": err.Error()})
	case errors.Is(err, domain.ErrNotMessageReceiver):
		ctx.JSON(http.StatusForbidden, gin.H{"status": "fail", "message": err.Error()})
	default:
		mh.logger.WithFields(logrus.Fields{"path": "handlers/message"}).Error("Database exception: ", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Internal server error"})
	}
}
