package conversationresponses

import (
	"tripmind/internal/domain/conversation"
	planresponses "tripmind/internal/interfaces/httpserver/responses/plan"
)

// ConversationResponse is one conversation without its messages.
type ConversationResponse struct {
	ID        string  `json:"id"`
	Object    string  `json:"object"`
	Title     *string `json:"title,omitempty"`
	Status    string  `json:"status"`
	CreatedAt int64   `json:"created_at"`
	UpdatedAt int64   `json:"updated_at"`
}

// MessageResponse is one message in a conversation history.
type MessageResponse struct {
	ID        string                        `json:"id"`
	Role      string                        `json:"role"`
	Content   string                        `json:"content"`
	Itinerary *planresponses.ItineraryShape `json:"itinerary,omitempty"`
	CreatedAt int64                         `json:"created_at"`
}

// ConversationDetailResponse is a conversation with its full history.
type ConversationDetailResponse struct {
	ConversationResponse
	Messages []MessageResponse `json:"messages"`
}

// ConversationListResponse wraps the user's conversations.
type ConversationListResponse struct {
	Object string                 `json:"object"`
	Data   []ConversationResponse `json:"data"`
}

// ConversationDeletedResponse confirms a delete.
type ConversationDeletedResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}

// NewConversationResponse creates a response from a domain conversation
func NewConversationResponse(conv *conversation.Conversation) *ConversationResponse {
	return &ConversationResponse{
		ID:        conv.PublicID,
		Object:    "conversation",
		Title:     conv.Title,
		Status:    string(conv.Status),
		CreatedAt: conv.CreatedAt.Unix(),
		UpdatedAt: conv.UpdatedAt.Unix(),
	}
}

// NewConversationDetailResponse creates a conversation response with messages
func NewConversationDetailResponse(conv *conversation.Conversation, messages []conversation.Message) *ConversationDetailResponse {
	detail := &ConversationDetailResponse{
		ConversationResponse: *NewConversationResponse(conv),
		Messages:             make([]MessageResponse, 0, len(messages)),
	}
	for _, message := range messages {
		resp := MessageResponse{
			ID:        message.PublicID,
			Role:      string(message.Role),
			Content:   message.Content,
			CreatedAt: message.CreatedAt.Unix(),
		}
		if message.Itinerary != nil {
			resp.Itinerary = planresponses.NewItineraryShape(message.Itinerary)
		}
		detail.Messages = append(detail.Messages, resp)
	}
	return detail
}

// NewConversationListResponse creates a conversation list response
func NewConversationListResponse(conversations []*conversation.Conversation) *ConversationListResponse {
	data := make([]ConversationResponse, 0, len(conversations))
	for _, conv := range conversations {
		if conv == nil {
			continue
		}
		data = append(data, *NewConversationResponse(conv))
	}
	return &ConversationListResponse{Object: "list", Data: data}
}

// NewConversationDeletedResponse creates a delete response
func NewConversationDeletedResponse(publicID string) *ConversationDeletedResponse {
	return &ConversationDeletedResponse{
		ID:      publicID,
		Object:  "conversation.deleted",
		Deleted: true,
	}
}
