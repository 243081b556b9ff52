package services

import (
	"context"

	"github.com/NakibIheb20/carthatamaz-platform/domain"
)

type MessageService interface {
	SendMessage(ctx context.Context, request *domain.MessageRequest, senderID string) (*domain.Message, error)
	GetConversation(ctx context.Context, userID1, userID2 string) ([]*domain.Message, error)
	GetUserConversations(ctx context.Context, userID string) ([]*domain.ConversationResponse, error)
	GetSentMessages(ctx context.Context, senderID string) ([]*domain.Message, error)
	GetReceivedMessages(ctx context.Context, receiverID string) ([]*domain.Message, error)
	GetUnreadMessages(ctx context.Context, receiverID string) ([]*domain.Message, error)
	GetUnreadMessageCount(ctx context.Context, receiverID string) (int64, error)
	MarkMessageAsRead(ctx context.Context, messageID, userID string) (*domain.Message, error)
	MarkConversationAsRead(ctx context.Context, conversationID, userID string) error
}
