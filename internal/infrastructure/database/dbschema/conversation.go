package dbschema

import (
	"encoding/json"

	"gorm.io/datatypes"

	"tripmind/internal/domain/conversation"
	"tripmind/internal/domain/itinerary"
	"tripmind/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Conversation{})
	database.RegisterSchemaForAutoMigrate(Message{})
}

// Conversation represents the database schema for conversations.
type Conversation struct {
	BaseModel
	PublicID string                          `gorm:"type:varchar(50);uniqueIndex;not null"`
	UserID   uint                            `gorm:"index:idx_conversation_user_status;not null"`
	User     User                            `gorm:"foreignKey:UserID"`
	Title    *string                         `gorm:"type:varchar(256)"`
	Status   conversation.ConversationStatus `gorm:"type:varchar(20);index:idx_conversation_user_status;not null;default:'active'"`

	Messages []Message `gorm:"foreignKey:ConversationID"`
}

// Message represents one immutable turn in a conversation. Delivered plans
// ride along as a JSON snapshot so history replay needs no joins.
type Message struct {
	BaseModel
	PublicID          string                   `gorm:"type:varchar(50);uniqueIndex;not null"`
	ConversationID    uint                     `gorm:"index:idx_message_conversation;not null"`
	Conversation      Conversation             `gorm:"foreignKey:ConversationID"`
	Role              conversation.MessageRole `gorm:"type:varchar(20);not null"`
	Content           string                   `gorm:"type:text;not null"`
	ItinerarySnapshot datatypes.JSON           `gorm:"type:jsonb"`
}

// NewSchemaConversation creates a database schema from a domain conversation.
func NewSchemaConversation(c *conversation.Conversation) *Conversation {
	return &Conversation{
		BaseModel: BaseModel{
			ID:        c.ID,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		},
		PublicID: c.PublicID,
		UserID:   c.UserID,
		Title:    c.Title,
		Status:   c.Status,
	}
}

// EtoD converts a schema conversation to the domain representation.
func (c *Conversation) EtoD() *conversation.Conversation {
	conv := &conversation.Conversation{
		ID:        c.ID,
		PublicID:  c.PublicID,
		UserID:    c.UserID,
		Title:     c.Title,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	for i := range c.Messages {
		msg, err := c.Messages[i].EtoD()
		if err != nil {
			continue
		}
		conv.Messages = append(conv.Messages, *msg)
	}
	return conv
}

// NewSchemaMessage creates a database schema from a domain message.
func NewSchemaMessage(m *conversation.Message) (*Message, error) {
	schema := &Message{
		BaseModel: BaseModel{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
		},
		PublicID:       m.PublicID,
		ConversationID: m.ConversationID,
		Role:           m.Role,
		Content:        m.Content,
	}
	if m.Itinerary != nil {
		data, err := json.Marshal(m.Itinerary)
		if err != nil {
			return nil, err
		}
		schema.ItinerarySnapshot = datatypes.JSON(data)
	}
	return schema, nil
}

// EtoD converts a schema message to the domain representation.
func (m *Message) EtoD() (*conversation.Message, error) {
	msg := &conversation.Message{
		ID:             m.ID,
		PublicID:       m.PublicID,
		ConversationID: m.ConversationID,
		Role:           m.Role,
		Content:        m.Content,
		CreatedAt:      m.CreatedAt,
	}
	if len(m.ItinerarySnapshot) > 0 {
		var snapshot itinerary.Itinerary
		if err := json.Unmarshal(m.ItinerarySnapshot, &snapshot); err != nil {
			return nil, err
		}
		msg.Itinerary = &snapshot
	}
	return msg, nil
}
