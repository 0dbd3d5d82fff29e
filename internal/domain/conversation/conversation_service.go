package conversation

import (
	"context"
	"time"

	"tripmind/internal/domain/itinerary"
	"tripmind/internal/utils/idgen"
	"tripmind/internal/utils/platformerrors"
	"tripmind/internal/utils/stringutils"
)

const maxTitleLength = 60

// Service owns conversation lifecycle and message history.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create starts a new conversation. The title defaults to a sanitized
// prefix of the first message and gets replaced once a plan is delivered.
func (s *Service) Create(ctx context.Context, userID uint, firstMessage string) (*Conversation, error) {
	publicID, err := idgen.GenerateSecureID("conv", 16)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to generate conversation ID")
	}

	now := time.Now()
	conv := &Conversation{
		PublicID:  publicID,
		UserID:    userID,
		Status:    ConversationStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if title := stringutils.GenerateTitle(firstMessage, maxTitleLength); title != "" {
		conv.Title = &title
	}

	if err := s.repo.Create(ctx, conv); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create conversation")
	}
	return conv, nil
}

// GetByPublicIDAndUserID returns a conversation owned by the user.
func (s *Service) GetByPublicIDAndUserID(ctx context.Context, publicID string, userID uint) (*Conversation, error) {
	conv, err := s.repo.FindByPublicIDAndUserID(ctx, publicID, userID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to get conversation")
	}
	if conv == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			"conversation not found", nil, "")
	}
	return conv, nil
}

// List returns the user's conversations, newest first.
func (s *Service) List(ctx context.Context, userID uint) ([]*Conversation, error) {
	conversations, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list conversations")
	}
	return conversations, nil
}

// Delete removes a conversation and its messages.
func (s *Service) Delete(ctx context.Context, userID uint, publicID string) error {
	conv, err := s.GetByPublicIDAndUserID(ctx, publicID, userID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, conv.ID); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to delete conversation")
	}
	return nil
}

// SetTitle replaces the conversation title.
func (s *Service) SetTitle(ctx context.Context, conv *Conversation, title string) error {
	conv.Title = &title
	conv.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, conv); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to update conversation")
	}
	return nil
}

// AppendMessage adds one immutable message to the conversation.
func (s *Service) AppendMessage(ctx context.Context, conv *Conversation, role MessageRole, content string, snapshot *itinerary.Itinerary) (*Message, error) {
	publicID, err := idgen.GenerateSecureID("msg", 16)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to generate message ID")
	}

	message := &Message{
		PublicID:       publicID,
		ConversationID: conv.ID,
		Role:           role,
		Content:        content,
		Itinerary:      snapshot,
		CreatedAt:      time.Now(),
	}
	if err := s.repo.AddMessage(ctx, conv.ID, message); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to append message")
	}
	return message, nil
}

// GetMessages returns the full ordered history.
func (s *Service) GetMessages(ctx context.Context, conv *Conversation) ([]Message, error) {
	messages, err := s.repo.GetMessages(ctx, conv.ID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load messages")
	}
	return messages, nil
}

// LastItinerary returns the most recent itinerary snapshot in the history,
// or nil when no plan has been delivered yet.
func (s *Service) LastItinerary(ctx context.Context, conv *Conversation) (*itinerary.Itinerary, error) {
	messages, err := s.GetMessages(ctx, conv)
	if err != nil {
		return nil, err
	}
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Itinerary != nil {
			return messages[i].Itinerary, nil
		}
	}
	return nil, nil
}
