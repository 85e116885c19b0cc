package chat

import (
	"context"
	"time"
)

// ===============================================
// Message Types
// ===============================================

type MessageSender string

const (
	SenderUser MessageSender = "user"
	SenderBot  MessageSender = "bot"
)

// MessageType tags a message body with the widget it renders as. The
// metadata payload shape is keyed by this type.
type MessageType string

const (
	MessageTypeText             MessageType = "text"
	MessageTypeServiceSelection MessageType = "service_selection"
	MessageTypeRequirements     MessageType = "requirements"
	MessageTypeForm             MessageType = "form"
	MessageTypeConfirmation     MessageType = "confirmation"
)

// MessageMetadata is the structured payload attached to a message. Which
// fields are set depends on the message type: requirements messages carry
// the selected service and its document list, confirmation messages carry
// the created service request id. Use the constructors to keep producers
// and consumers in sync.
type MessageMetadata struct {
	Service          ServiceType `json:"service,omitempty"`
	Requirements     []string    `json:"requirements,omitempty"`
	ServiceRequestID uint        `json:"serviceRequestId,omitempty"`
}

// RequirementsMetadata builds the payload for a requirements message.
func RequirementsMetadata(service ServiceType, requirements []string) MessageMetadata {
	return MessageMetadata{Service: service, Requirements: requirements}
}

// ConfirmationMetadata builds the payload for an intake confirmation.
func ConfirmationMetadata(serviceRequestID uint) MessageMetadata {
	return MessageMetadata{ServiceRequestID: serviceRequestID}
}

// IsZero reports whether no metadata fields are set.
func (m MessageMetadata) IsZero() bool {
	return m.Service == "" && len(m.Requirements) == 0 && m.ServiceRequestID == 0
}

// Message is one turn in a conversation. Messages are immutable once
// written, totally ordered by creation time, and never deleted - restarts
// keep the full history for audit.
type Message struct {
	ID             uint
	ConversationID uint
	Sender         MessageSender
	Body           string
	Type           MessageType
	Metadata       MessageMetadata
	CreatedAt      time.Time
}

// NewUserMessage builds an inbound visitor message.
func NewUserMessage(conversationID uint, body string, msgType MessageType, metadata MessageMetadata) *Message {
	return &Message{
		ConversationID: conversationID,
		Sender:         SenderUser,
		Body:           body,
		Type:           msgType,
		Metadata:       metadata,
		CreatedAt:      time.Now(),
	}
}

// NewBotMessage builds an engine-generated reply.
func NewBotMessage(conversationID uint, body string, msgType MessageType, metadata MessageMetadata) *Message {
	return &Message{
		ConversationID: conversationID,
		Sender:         SenderBot,
		Body:           body,
		Type:           msgType,
		Metadata:       metadata,
		CreatedAt:      time.Now(),
	}
}

// ===============================================
// Message Repository
// ===============================================

// MessageRepository is the append-only message log. ListByConversationID
// returns messages ascending by created_at; repeated calls with no writes
// in between return the same sequence.
type MessageRepository interface {
	Append(ctx context.Context, message *Message) error
	ListByConversationID(ctx context.Context, conversationID uint) ([]*Message, error)
}
