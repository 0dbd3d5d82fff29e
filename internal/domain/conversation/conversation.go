package conversation

import (
	"context"
	"time"

	"tripmind/internal/domain/itinerary"
)

// ===============================================
// Conversation Types
// ===============================================

type ConversationStatus string

const (
	ConversationStatusActive  ConversationStatus = "active"
	ConversationStatusDeleted ConversationStatus = "deleted"
)

type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
)

// Conversation is one planning dialogue. Messages are append-only and
// ordered by creation time.
type Conversation struct {
	ID        uint               `json:"-"`
	PublicID  string             `json:"id"`
	UserID    uint               `json:"-"`
	Title     *string            `json:"title,omitempty"`
	Status    ConversationStatus `json:"status"`
	Messages  []Message          `json:"messages,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// Message is a single immutable turn. Assistant messages that delivered an
// itinerary carry its snapshot so history replay can rebuild session state.
type Message struct {
	ID             uint                 `json:"-"`
	PublicID       string               `json:"id"`
	ConversationID uint                 `json:"-"`
	Role           MessageRole          `json:"role"`
	Content        string               `json:"content"`
	Itinerary      *itinerary.Itinerary `json:"itinerary,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
}

// ===============================================
// Conversation Repository
// ===============================================

type Repository interface {
	Create(ctx context.Context, conversation *Conversation) error
	FindByPublicIDAndUserID(ctx context.Context, publicID string, userID uint) (*Conversation, error)
	FindByUserID(ctx context.Context, userID uint) ([]*Conversation, error)
	Update(ctx context.Context, conversation *Conversation) error
	Delete(ctx context.Context, id uint) error

	AddMessage(ctx context.Context, conversationID uint, message *Message) error
	GetMessages(ctx context.Context, conversationID uint) ([]Message, error)
}
