package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Message struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Content        string             `bson:"content" json:"content"`
	SenderID       primitive.ObjectID `bson:"sender_id" json:"sender_id"`
	ReceiverID     primitive.ObjectID `bson:"receiver_id" json:"receiver_id"`
	ConversationID string             `bson:"conversation_id" json:"conversation_id"`
	Read           bool               `bson:"read" json:"read"`
	ReadAt         *time.Time         `bson:"read_at,omitempty" json:"read_at,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
}

// NewConversationID builds the same conversation id regardless of who
// sends first.
func NewConversationID(userID1, userID2 string) string {
	if userID1 < userID2 {
		return userID1 + "_" + userID2
	}
	return userID2 + "_" + userID1
}

func (m *Message) MarkAsRead(now time.Time) {
	if m.Read {
		return
	}
	m.Read = true
	readAt := now
	m.ReadAt = &readAt
}

type MessageRequest struct {
	ReceiverID string `json:"receiver_id" binding:"required"`
	Content    string `json:"content" binding:"required"`
}

type ConversationResponse struct {
	ConversationID string    `json:"conversation_id"`
	OtherUserID    string    `json:"other_user_id"`
	OtherUserName  string    `json:"other_user_name"`
	OtherUserImage string    `json:"other_user_image"`
	LastMessage    *Message  `json:"last_message"`
	UnreadCount    int64     `json:"unread_count"`
	LastActivity   time.Time `json:"last_activity"`
}
