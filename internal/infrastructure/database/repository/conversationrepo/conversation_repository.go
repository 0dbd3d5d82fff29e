package conversationrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"tripmind/internal/domain/conversation"
	"tripmind/internal/infrastructure/database/dbschema"
	"tripmind/internal/infrastructure/database/transaction"
	"tripmind/internal/utils/platformerrors"
)

type ConversationGormRepository struct {
	db *transaction.Database
}

var _ conversation.Repository = (*ConversationGormRepository)(nil)

func NewConversationGormRepository(db *transaction.Database) conversation.Repository {
	return &ConversationGormRepository{db}
}

// Create implements conversation.Repository.
func (repo *ConversationGormRepository) Create(ctx context.Context, conv *conversation.Conversation) error {
	model := dbschema.NewSchemaConversation(conv)
	if err := repo.db.GetTx(ctx).WithContext(ctx).Create(model).Error; err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to create conversation")
	}
	conv.ID = model.ID
	conv.CreatedAt = model.CreatedAt
	conv.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByPublicIDAndUserID implements conversation.Repository.
func (repo *ConversationGormRepository) FindByPublicIDAndUserID(ctx context.Context, publicID string, userID uint) (*conversation.Conversation, error) {
	var model dbschema.Conversation
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("public_id = ? AND user_id = ? AND status = ?", publicID, userID, conversation.ConversationStatusActive).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to find conversation")
	}
	return model.EtoD(), nil
}

// FindByUserID implements conversation.Repository.
func (repo *ConversationGormRepository) FindByUserID(ctx context.Context, userID uint) ([]*conversation.Conversation, error) {
	var models []dbschema.Conversation
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, conversation.ConversationStatusActive).
		Order("updated_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to list conversations")
	}

	result := make([]*conversation.Conversation, 0, len(models))
	for i := range models {
		result = append(result, models[i].EtoD())
	}
	return result, nil
}

// Update implements conversation.Repository.
func (repo *ConversationGormRepository) Update(ctx context.Context, conv *conversation.Conversation) error {
	model := dbschema.NewSchemaConversation(conv)
	if err := repo.db.GetTx(ctx).WithContext(ctx).Save(model).Error; err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to update conversation")
	}
	conv.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete implements conversation.Repository. Deletion is a soft status
// flip; messages stay on disk for audit.
func (repo *ConversationGormRepository) Delete(ctx context.Context, id uint) error {
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Model(&dbschema.Conversation{}).
		Where("id = ?", id).
		Update("status", conversation.ConversationStatusDeleted).Error
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to delete conversation")
	}
	return nil
}

// AddMessage implements conversation.Repository.
func (repo *ConversationGormRepository) AddMessage(ctx context.Context, conversationID uint, message *conversation.Message) error {
	message.ConversationID = conversationID
	model, err := dbschema.NewSchemaMessage(message)
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to encode message")
	}
	if err := repo.db.GetTx(ctx).WithContext(ctx).Create(model).Error; err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to append message")
	}
	message.ID = model.ID
	message.CreatedAt = model.CreatedAt
	return nil
}

// GetMessages implements conversation.Repository.
func (repo *ConversationGormRepository) GetMessages(ctx context.Context, conversationID uint) ([]conversation.Message, error) {
	var models []dbschema.Message
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to load messages")
	}

	result := make([]conversation.Message, 0, len(models))
	for i := range models {
		msg, err := models[i].EtoD()
		if err != nil {
			return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to decode message")
		}
		result = append(result, *msg)
	}
	return result, nil
}
