package chat

import (
	"context"
	"time"
)

// ===============================================
// Conversation Types
// ===============================================

type ConversationStatus string

const (
	ConversationStatusActive    ConversationStatus = "active"
	ConversationStatusCompleted ConversationStatus = "completed"
)

// ConversationStep is the conversation's position in the guided-intake
// state machine. It is a closed enumeration: the dialogue engine dispatches
// on it with one transition function per step.
type ConversationStep string

const (
	StepWelcome             ConversationStep = "welcome"
	StepServiceSelection    ConversationStep = "service_selection"
	StepWaitingConfirmation ConversationStep = "waiting_confirmation"
	StepCollectingData      ConversationStep = "collecting_data"
	StepCompleted           ConversationStep = "completed"
)

// Conversation is one visitor's guided-intake session, keyed by the opaque
// session identifier the browser supplies. Exactly one conversation exists
// per session id; a completed conversation is restarted in place, never
// recreated, so its message history survives.
type Conversation struct {
	ID              uint
	SessionID       string
	Status          ConversationStatus
	CurrentStep     ConversationStep
	SelectedService *ServiceType
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewConversation creates a conversation at the welcome step.
func NewConversation(sessionID string) *Conversation {
	now := time.Now()
	return &Conversation{
		SessionID:   sessionID,
		Status:      ConversationStatusActive,
		CurrentStep: StepWelcome,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsCompleted reports whether the conversation has finished an intake.
// Status and step always move together; either one marks completion.
func (c *Conversation) IsCompleted() bool {
	return c.Status == ConversationStatusCompleted || c.CurrentStep == StepCompleted
}

// Restart is the explicit completed --(any input)--> welcome transition.
// Only the state resets; messages are retained for history.
func (c *Conversation) Restart() {
	c.Status = ConversationStatusActive
	c.CurrentStep = StepWelcome
	c.SelectedService = nil
}

// Complete marks the conversation finished. Invariant: this is the only
// place both status and step move to completed, and the intake recorder is
// its only caller.
func (c *Conversation) Complete() {
	c.Status = ConversationStatusCompleted
	c.CurrentStep = StepCompleted
}

// ===============================================
// Conversation Repository
// ===============================================

// ConversationRepository exposes persistence for conversations. Create must
// be idempotent under concurrent creation of the same session id: on a
// duplicate-key collision it returns the already persisted row.
type ConversationRepository interface {
	FindBySessionID(ctx context.Context, sessionID string) (*Conversation, error)
	Create(ctx context.Context, conversation *Conversation) error
	Update(ctx context.Context, conversation *Conversation) error
}
