package entities

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"notaria-server/intake-api/internal/domain/chat"
)

// Message models one persisted conversation turn. Rows are append-only.
type Message struct {
	ID             uint         `gorm:"primaryKey"`
	ConversationID uint         `gorm:"index:idx_chatbot_messages_conversation;not null"`
	Conversation   Conversation `gorm:"foreignKey:ConversationID"`
	Sender         string       `gorm:"type:varchar(10);not null"`
	Body           string       `gorm:"column:message;type:text;not null"`
	MessageType    string       `gorm:"type:varchar(30);not null;default:'text'"`
	Metadata       JSONMetadata `gorm:"type:jsonb"`
	CreatedAt      time.Time    `gorm:"autoCreateTime"`
}

func (Message) TableName() string {
	return "chatbot_messages"
}

// JSONMetadata stores the structured message payload as JSON.
type JSONMetadata chat.MessageMetadata

func (j JSONMetadata) Value() (driver.Value, error) {
	if chat.MessageMetadata(j).IsZero() {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONMetadata) Scan(value any) error {
	if value == nil {
		*j = JSONMetadata{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, j)
}

// NewMessage maps a domain message onto its persisted form.
func NewMessage(m *chat.Message) *Message {
	return &Message{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		Sender:         string(m.Sender),
		Body:           m.Body,
		MessageType:    string(m.Type),
		Metadata:       JSONMetadata(m.Metadata),
		CreatedAt:      m.CreatedAt,
	}
}

// ToDomain maps the persisted row back to the domain message.
func (e *Message) ToDomain() *chat.Message {
	return &chat.Message{
		ID:             e.ID,
		ConversationID: e.ConversationID,
		Sender:         chat.MessageSender(e.Sender),
		Body:           e.Body,
		Type:           chat.MessageType(e.MessageType),
		Metadata:       chat.MessageMetadata(e.Metadata),
		CreatedAt:      e.CreatedAt,
	}
}
