package responses

import (
	"time"

	"notaria-server/intake-api/internal/domain/chat"
)

// ConversationResponse mirrors the persisted conversation row.
type ConversationResponse struct {
	ID              uint      `json:"id"`
	SessionID       string    `json:"session_id"`
	Status          string    `json:"status"`
	CurrentStep     string    `json:"current_step"`
	SelectedService *string   `json:"selected_service"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// MessageResponse mirrors the persisted message row.
type MessageResponse struct {
	ID             uint                  `json:"id"`
	ConversationID uint                  `json:"conversation_id"`
	Sender         string                `json:"sender"`
	Message        string                `json:"message"`
	MessageType    string                `json:"message_type"`
	Metadata       *chat.MessageMetadata `json:"metadata,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
}

// TurnResponse is the envelope returned for one processed dialogue turn.
type TurnResponse struct {
	BotMessage   MessageResponse      `json:"botMessage"`
	Conversation ConversationResponse `json:"conversation"`
	Restarted    bool                 `json:"restarted"`
}

// ServiceRequestResponse mirrors the persisted service request row.
type ServiceRequestResponse struct {
	ID             uint      `json:"id"`
	ConversationID uint      `json:"conversation_id"`
	ServiceType    string    `json:"service_type"`
	ClientName     string    `json:"client_name"`
	Nationality    string    `json:"nationality"`
	BirthPlace     string    `json:"birth_place"`
	Residence      string    `json:"residence"`
	Phone          string    `json:"phone"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewConversationResponse converts a domain conversation.
func NewConversationResponse(conv *chat.Conversation) ConversationResponse {
	resp := ConversationResponse{
		ID:          conv.ID,
		SessionID:   conv.SessionID,
		Status:      string(conv.Status),
		CurrentStep: string(conv.CurrentStep),
		CreatedAt:   conv.CreatedAt,
		UpdatedAt:   conv.UpdatedAt,
	}
	if conv.SelectedService != nil {
		service := string(*conv.SelectedService)
		resp.SelectedService = &service
	}
	return resp
}

// NewMessageResponse converts a domain message.
func NewMessageResponse(m *chat.Message) MessageResponse {
	resp := MessageResponse{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		Sender:         string(m.Sender),
		Message:        m.Body,
		MessageType:    string(m.Type),
		CreatedAt:      m.CreatedAt,
	}
	if !m.Metadata.IsZero() {
		metadata := m.Metadata
		resp.Metadata = &metadata
	}
	return resp
}

// NewMessageListResponse converts a history slice, never returning nil so
// an empty history serializes as [].
func NewMessageListResponse(messages []*chat.Message) []MessageResponse {
	list := make([]MessageResponse, 0, len(messages))
	for _, m := range messages {
		list = append(list, NewMessageResponse(m))
	}
	return list
}

// NewTurnResponse converts the engine's turn result.
func NewTurnResponse(result *chat.TurnResult) TurnResponse {
	return TurnResponse{
		BotMessage:   NewMessageResponse(result.BotMessage),
		Conversation: NewConversationResponse(result.Conversation),
		Restarted:    result.Restarted,
	}
}

// NewServiceRequestResponse converts a domain service request.
func NewServiceRequestResponse(r *chat.ServiceRequest) ServiceRequestResponse {
	return ServiceRequestResponse{
		ID:             r.ID,
		ConversationID: r.ConversationID,
		ServiceType:    string(r.ServiceType),
		ClientName:     r.ClientName,
		Nationality:    r.Nationality,
		BirthPlace:     r.BirthPlace,
		Residence:      r.Residence,
		Phone:          r.Phone,
		CreatedAt:      r.CreatedAt,
	}
}
