package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"notaria-server/intake-api/internal/utils/platformerrors"
)

const replyIntakeConfirmed = " **Solicitud registrada exitosamente**\n\nServicio: %s\nNombre: %s\n\nNos pondremos en contacto contigo pronto. ¡Gracias por confiar en nosotros!"

// IntakeInput carries the personal fields submitted through the intake
// form. All fields are required.
type IntakeInput struct {
	SessionID   string `validate:"required"`
	ServiceType string `validate:"required"`
	ClientName  string `validate:"required"`
	Nationality string `validate:"required"`
	BirthPlace  string `validate:"required"`
	Residence   string `validate:"required"`
	Phone       string `validate:"required"`
}

// IntakeRecorder turns a submitted intake form into a durable service
// request. Recording the request, completing the conversation, and
// appending the confirmation message happen in one transaction - a request
// can never be recorded while its conversation stays active.
type IntakeRecorder struct {
	catalog       *RequirementsCatalog
	conversations ConversationRepository
	messages      MessageRepository
	requests      ServiceRequestRepository
	tx            Transactor
	engine        *DialogueEngine
	validate      *validator.Validate
	storeTimeout  time.Duration
	log           zerolog.Logger
}

// NewIntakeRecorder wires the recorder. It shares the engine's per-session
// locks so a submission and a chat turn for the same session cannot
// interleave.
func NewIntakeRecorder(
	catalog *RequirementsCatalog,
	conversations ConversationRepository,
	messages MessageRepository,
	requests ServiceRequestRepository,
	tx Transactor,
	engine *DialogueEngine,
	storeTimeout time.Duration,
	log zerolog.Logger,
) *IntakeRecorder {
	return &IntakeRecorder{
		catalog:       catalog,
		conversations: conversations,
		messages:      messages,
		requests:      requests,
		tx:            tx,
		engine:        engine,
		validate:      validator.New(),
		storeTimeout:  storeTimeout,
		log:           log.With().Str("component", "intake-recorder").Logger(),
	}
}

// SubmitIntake persists the completed intake as a service request, marks
// the conversation completed, and appends the confirmation message. This is
// the only path that completes a conversation.
func (r *IntakeRecorder) SubmitIntake(ctx context.Context, input IntakeInput) (*ServiceRequest, error) {
	input = input.trimmed()
	if err := r.validate.Struct(input); err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"all intake fields are required", err, "")
	}

	serviceType := ServiceType(input.ServiceType)
	if !r.catalog.Known(serviceType) {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			fmt.Sprintf("unknown service type %q", input.ServiceType), nil, "")
	}

	release := r.engine.locks.Acquire(input.SessionID)
	defer release()

	findCtx, cancel := context.WithTimeout(ctx, r.storeTimeout)
	defer cancel()
	conv, err := r.conversations.FindBySessionID(findCtx, input.SessionID)
	if err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
				"conversation not found", err, "")
		}
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load conversation")
	}

	request := &ServiceRequest{
		ConversationID: conv.ID,
		ServiceType:    serviceType,
		ClientName:     input.ClientName,
		Nationality:    input.Nationality,
		BirthPlace:     input.BirthPlace,
		Residence:      input.Residence,
		Phone:          input.Phone,
		CreatedAt:      time.Now(),
	}

	txCtx, cancelTx := context.WithTimeout(ctx, r.storeTimeout)
	defer cancelTx()
	err = r.tx.WithinTransaction(txCtx, func(ctx context.Context) error {
		if err := r.requests.Create(ctx, request); err != nil {
			return err
		}

		conv.Complete()
		if err := r.conversations.Update(ctx, conv); err != nil {
			return err
		}

		confirmation := NewBotMessage(conv.ID,
			fmt.Sprintf(replyIntakeConfirmed, r.catalog.DisplayName(serviceType), input.ClientName),
			MessageTypeConfirmation,
			ConfirmationMetadata(request.ID),
		)
		return r.messages.Append(ctx, confirmation)
	})
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to record service request")
	}

	r.log.Info().
		Str("session_id", input.SessionID).
		Str("service_type", string(serviceType)).
		Uint("service_request_id", request.ID).
		Msg("recorded service request")

	return request, nil
}

func (in IntakeInput) trimmed() IntakeInput {
	return IntakeInput{
		SessionID:   strings.TrimSpace(in.SessionID),
		ServiceType: strings.TrimSpace(in.ServiceType),
		ClientName:  strings.TrimSpace(in.ClientName),
		Nationality: strings.TrimSpace(in.Nationality),
		BirthPlace:  strings.TrimSpace(in.BirthPlace),
		Residence:   strings.TrimSpace(in.Residence),
		Phone:       strings.TrimSpace(in.Phone),
	}
}
