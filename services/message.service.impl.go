package services

import (
	"context"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/trace"

	"github.com/NakibIheb20/carthatamaz-platform/domain"
	"github.com/NakibIheb20/carthatamaz-platform/repository"
)

type MessageServiceImpl struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	logger      *logrus.Logger
	Tracer      trace.Tracer
}

func NewMessageServiceImpl(messageRepo repository.MessageRepository, userRepo repository.UserRepository,
	logger *logrus.Logger, tr trace.Tracer) MessageService {
	return &MessageServiceImpl{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		logger:      logger,
		Tracer:      tr,
	}
}

func (ms *MessageServiceImpl) SendMessage(ctx context.Context, request *domain.MessageRequest, senderID string) (*domain.Message, error) {
	ctx, span := ms.Tracer.Start(ctx, "MessageService.SendMessage")
	defer span.End()

	senderOID, err := primitive.ObjectIDFromHex(senderID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	if _, err := ms.userRepo.FindByID(ctx, senderOID); err != nil {
		return nil, err
	}

	receiverOID, err := primitive.ObjectIDFromHex(request.ReceiverID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	if _, err := ms.userRepo.FindByID(ctx, receiverOID); err != nil {
		return nil, err
	}

	message := &domain.Message{
		Content:        request.Content,
		SenderID:       senderOID,
		ReceiverID:     receiverOID,
		ConversationID: domain.NewConversationID(senderID, request.ReceiverID),
		CreatedAt:      time.Now().UTC(),
	}

	return ms.messageRepo.Insert(ctx, message)
}

func (ms *MessageServiceImpl) GetConversation(ctx context.Context, userID1, userID2 string) ([]*domain.Message, error) {
	conversationID := domain.NewConversationID(userID1, userID2)
	return ms.messageRepo.FindByConversationID(ctx, conversationID)
}

// GetUserConversations groups the user's messages by conversation and
// returns one entry per conversation with the last message, the other
// participant and the unread count, newest activity first.
func (ms *MessageServiceImpl) GetUserConversations(ctx context.Context, userID string) ([]*domain.ConversationResponse, error) {
	ctx, span := ms.Tracer.Start(ctx, "MessageService.GetUserConversations")
	defer span.End()

	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	messages, err := ms.messageRepo.FindByUserInvolved(ctx, oid)
	if err != nil {
		return nil, err
	}

	groups := make(map[string][]*domain.Message)
	for _, message := range messages {
		groups[message.ConversationID] = append(groups[message.ConversationID], message)
	}

	conversations := make([]*domain.ConversationResponse, 0, len(groups))
	for conversationID, group := range groups {
		sort.Slice(group, func(i, j int) bool {
			return group[i].CreatedAt.After(group[j].CreatedAt)
		})
		lastMessage := group[0]

		otherOID := lastMessage.SenderID
		if lastMessage.SenderID == oid {
			otherOID = lastMessage.ReceiverID
		}

		var unreadCount int64
		for _, message := range group {
			if message.ReceiverID == oid && !message.Read {
				unreadCount++
			}
		}

		conversation := &domain.ConversationResponse{
			ConversationID: conversationID,
			OtherUserID:    otherOID.Hex(),
			LastMessage:    lastMessage,
			UnreadCount:    unreadCount,
			LastActivity:   lastMessage.CreatedAt,
		}

		if otherUser, err := ms.userRepo.FindByID(ctx, otherOID); err == nil {
			conversation.OtherUserName = otherUser.FullName
			conversation.OtherUserImage = otherUser.PictureURL
		}

		conversations = append(conversations, conversation)
	}

	sort.Slice(conversations, func(i, j int) bool {
		return conversations[i].LastActivity.After(conversations[j].LastActivity)
	})

	return conversations, nil
}

func (ms *MessageServiceImpl) GetSentMessages(ctx context.Context, senderID string) ([]*domain.Message, error) {
	oid, err := primitive.ObjectIDFromHex(senderID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return ms.messageRepo.FindBySenderID(ctx, oid)
}

func (ms *MessageServiceImpl) GetReceivedMessages(ctx context.Context, receiverID string) ([]*domain.Message, error) {
	oid, err := primitive.ObjectIDFromHex(receiverID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return ms.messageRepo.FindByReceiverID(ctx, oid)
}

func (ms *MessageServiceImpl) GetUnreadMessages(ctx context.Context, receiverID string) ([]*domain.Message, error) {
	oid, err := primitive.ObjectIDFromHex(receiverID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return ms.messageRepo.FindUnreadByReceiverID(ctx, oid)
}

func (ms *MessageServiceImpl) GetUnreadMessageCount(ctx context.Context, receiverID string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(receiverID)
	if err != nil {
		return 0, domain.ErrUserNotFound
	}
	return ms.messageRepo.CountUnreadByReceiverID(ctx, oid)
}

// MarkMessageAsRead flips the read flag, only the receiver may do it.
func (ms *MessageServiceImpl) MarkMessageAsRead(ctx context.Context, messageID, userID string) (*domain.Message, error) {
	oid, err := primitive.ObjectIDFromHex(messageID)
	if err != nil {
		return nil, domain.ErrMessageNotFound
	}

	message, err := ms.messageRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	if message.ReceiverID.Hex() != userID {
		return nil, domain.ErrNotMessageReceiver
	}

	message.MarkAsRead(time.Now().UTC())
	if err := ms.messageRepo.Update(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

func (ms *MessageServiceImpl) MarkConversationAsRead(ctx context.Context, conversationID, userID string) error {
	ctx, span := ms.Tracer.Start(ctx, "MessageService.MarkConversationAsRead")
	defer span.End()

	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	messages, err := ms.messageRepo.FindByConversationID(ctx, conversationID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, message := range messages {
		if message.ReceiverID != oid || message.Read {
			continue
		}
		message.MarkAsRead(now)
		if err := ms.messageRepo.Update(ctx, message); err != nil {
			return err
		}
	}
	return nil
}
