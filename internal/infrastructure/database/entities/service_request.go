package entities

import (
	"time"

	"notaria-server/intake-api/internal/domain/chat"
)

// ServiceRequest models a completed intake submission.
type ServiceRequest struct {
	ID             uint         `gorm:"primaryKey"`
	ConversationID uint         `gorm:"index:idx_chatbot_service_requests_conversation;not null"`
	Conversation   Conversation `gorm:"foreignKey:ConversationID"`
	ServiceType    string       `gorm:"type:varchar(50);not null"`
	ClientName     string       `gorm:"type:varchar(255);not null"`
	Nationality    string       `gorm:"type:varchar(100);not null"`
	BirthPlace     string       `gorm:"type:varchar(255);not null"`
	Residence      string       `gorm:"type:varchar(255);not null"`
	Phone          string       `gorm:"type:varchar(50);not null"`
	CreatedAt      time.Time    `gorm:"autoCreateTime"`
}

func (ServiceRequest) TableName() string {
	return "chatbot_service_requests"
}

// NewServiceRequest maps a domain service request onto its persisted form.
func NewServiceRequest(r *chat.ServiceRequest) *ServiceRequest {
	return &ServiceRequest{
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

// ToDomain maps the persisted row back to the domain service request.
func (e *ServiceRequest) ToDomain() *chat.ServiceRequest {
	return &chat.ServiceRequest{
		ID:             e.ID,
		ConversationID: e.ConversationID,
		ServiceType:    chat.ServiceType(e.ServiceType),
		ClientName:     e.ClientName,
		Nationality:    e.Nationality,
		BirthPlace:     e.BirthPlace,
		Residence:      e.Residence,
		Phone:          e.Phone,
		CreatedAt:      e.CreatedAt,
	}
}
