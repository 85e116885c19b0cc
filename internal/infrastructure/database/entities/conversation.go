package entities

import (
	"time"

	"notaria-server/intake-api/internal/domain/chat"
)

// Conversation models the persisted representation of a guided intake
// conversation.
type Conversation struct {
	ID              uint      `gorm:"primaryKey"`
	SessionID       string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Status          string    `gorm:"type:varchar(20);not null;default:'active'"`
	CurrentStep     string    `gorm:"type:varchar(30);not null;default:'welcome'"`
	SelectedService *string   `gorm:"type:varchar(50)"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (Conversation) TableName() string {
	return "chatbot_conversations"
}

// NewConversation maps a domain conversation onto its persisted form.
func NewConversation(c *chat.Conversation) *Conversation {
	entity := &Conversation{
		ID:          c.ID,
		SessionID:   c.SessionID,
		Status:      string(c.Status),
		CurrentStep: string(c.CurrentStep),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if c.SelectedService != nil {
		service := string(*c.SelectedService)
		entity.SelectedService = &service
	}
	return entity
}

// ToDomain maps the persisted row back to the domain conversation.
func (e *Conversation) ToDomain() *chat.Conversation {
	conv := &chat.Conversation{
		ID:          e.ID,
		SessionID:   e.SessionID,
		Status:      chat.ConversationStatus(e.Status),
		CurrentStep: chat.ConversationStep(e.CurrentStep),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
	if e.SelectedService != nil {
		service := chat.ServiceType(*e.SelectedService)
		conv.SelectedService = &service
	}
	return conv
}
