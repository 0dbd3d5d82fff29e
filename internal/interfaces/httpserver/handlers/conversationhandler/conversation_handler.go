package conversationhandler

import (
	"context"

	"tripmind/internal/domain/conversation"
	conversationresponses "tripmind/internal/interfaces/httpserver/responses/conversation"
	"tripmind/internal/utils/platformerrors"
)

// ConversationHandler handles conversation-related HTTP requests
type ConversationHandler struct {
	conversations *conversation.Service
}

// NewConversationHandler creates a new conversation handler
func NewConversationHandler(conversations *conversation.Service) *ConversationHandler {
	return &ConversationHandler{conversations: conversations}
}

// ListConversations lists the caller's conversations, newest first.
func (h *ConversationHandler) ListConversations(ctx context.Context, userID uint) (*conversationresponses.ConversationListResponse, error) {
	conversations, err := h.conversations.List(ctx, userID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to list conversations")
	}
	return conversationresponses.NewConversationListResponse(conversations), nil
}

// GetConversation returns one conversation with its full message history.
func (h *ConversationHandler) GetConversation(ctx context.Context, userID uint, conversationID string) (*conversationresponses.ConversationDetailResponse, error) {
	conv, err := h.conversations.GetByPublicIDAndUserID(ctx, conversationID, userID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to get conversation")
	}
	messages, err := h.conversations.GetMessages(ctx, conv)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to load messages")
	}
	return conversationresponses.NewConversationDetailResponse(conv, messages), nil
}

// DeleteConversation removes one conversation owned by the caller.
func (h *ConversationHandler) DeleteConversation(ctx context.Context, userID uint, conversationID string) (*conversationresponses.ConversationDeletedResponse, error) {
	if err := h.conversations.Delete(ctx, userID, conversationID); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to delete conversation")
	}
	return conversationresponses.NewConversationDeletedResponse(conversationID), nil
}
