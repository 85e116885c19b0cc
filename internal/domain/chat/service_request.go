package chat

import (
	"context"
	"time"
)

// ServiceRequest is the durable record of a completed intake: the selected
// service plus the personal fields the visitor submitted. Created at most
// once per completed intake and read-only afterward.
type ServiceRequest struct {
	ID             uint
	ConversationID uint
	ServiceType    ServiceType
	ClientName     string
	Nationality    string
	BirthPlace     string
	Residence      string
	Phone          string
	CreatedAt      time.Time
}

// ServiceRequestRepository persists completed intakes.
type ServiceRequestRepository interface {
	Create(ctx context.Context, request *ServiceRequest) error
}

// Transactor runs fn atomically: either every store write inside fn is
// applied or none is. The intake recorder uses it so a recorded request can
// never leave its conversation active.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
