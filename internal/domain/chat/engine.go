package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"notaria-server/intake-api/internal/utils/platformerrors"
)

// Canonical bot reply texts. The deployment speaks a single fixed language;
// these strings are the contract the chat widget renders.
const (
	replyFormPrompt       = "Perfecto. Por favor, completa el formulario con tus datos."
	replyDeclined         = "Entendido. Si cambias de opinión, puedes escribirme en cualquier momento. ¿Hay algo más en lo que pueda ayudarte?"
	replyConfirmYesNo     = `Por favor, responde "sí" si deseas continuar con el formulario, o "no" si prefieres cancelar.`
	replyUseForm          = "Por favor, completa el formulario que aparece abajo con tus datos. Si tienes alguna pregunta, puedes escribirla y te ayudaré."
	welcomeGreeting       = "¡Hola! Bienvenido a nuestra notaría. Estoy aquí para ayudarte. ¿Qué servicio te interesa?"
	invalidOptionGreeting = "Por favor, selecciona una opción válida:"
)

var (
	affirmativeTokens = map[string]bool{"sí": true, "si": true, "yes": true, "continuar": true, "s": true}
	negativeTokens    = map[string]bool{"no": true, "n": true}
)

// TurnResult is the outcome of one engine turn.
type TurnResult struct {
	BotMessage   *Message
	Conversation *Conversation
	Restarted    bool
}

// DialogueEngine walks a visitor through the guided intake: pick a service,
// review its document requirements, confirm, then hand off to the intake
// form. Turns for the same session are serialized; each turn is one short
// read-transition-write sequence against the stores.
type DialogueEngine struct {
	catalog       *RequirementsCatalog
	conversations ConversationRepository
	messages      MessageRepository
	locks         *sessionLocks
	storeTimeout  time.Duration
	log           zerolog.Logger
}

// NewDialogueEngine wires the engine with its catalog and stores.
func NewDialogueEngine(
	catalog *RequirementsCatalog,
	conversations ConversationRepository,
	messages MessageRepository,
	storeTimeout time.Duration,
	log zerolog.Logger,
) *DialogueEngine {
	return &DialogueEngine{
		catalog:       catalog,
		conversations: conversations,
		messages:      messages,
		locks:         newSessionLocks(),
		storeTimeout:  storeTimeout,
		log:           log.With().Str("component", "dialogue-engine").Logger(),
	}
}

// reply is the engine's pending bot message before it is persisted.
type reply struct {
	body     string
	msgType  MessageType
	metadata MessageMetadata
}

// HandleMessage processes one inbound visitor message and produces the bot
// reply. A conversation that already completed an intake is restarted in
// place first: state resets to a fresh welcome turn while the message
// history stays untouched.
func (e *DialogueEngine) HandleMessage(ctx context.Context, sessionID, body string, msgType MessageType, metadata MessageMetadata) (*TurnResult, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"sessionId is required", nil, "")
	}
	if strings.TrimSpace(body) == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"message must not be empty", nil, "")
	}
	if msgType == "" {
		msgType = MessageTypeText
	}

	release := e.locks.Acquire(sessionID)
	defer release()

	conv, err := e.loadOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	loadedStep := conv.CurrentStep
	loadedService := conv.SelectedService

	// Restart rule: a completed conversation re-enters the state machine at
	// welcome before any other processing.
	restarted := conv.IsCompleted()
	if restarted {
		conv.Restart()
	}

	userMsg := NewUserMessage(conv.ID, body, msgType, metadata)
	if err := e.appendMessage(ctx, userMsg); err != nil {
		return nil, err
	}

	var rep reply
	if restarted {
		rep = e.welcomeReply()
		conv.CurrentStep = StepServiceSelection
	} else {
		rep = e.dispatch(conv, body)
	}

	// Defensive default: an unreachable step value falls back to the menu.
	if strings.TrimSpace(rep.body) == "" {
		e.log.Warn().Str("session_id", sessionID).Str("step", string(loadedStep)).Msg("no reply produced, falling back to service menu")
		rep = e.welcomeReply()
		conv.CurrentStep = StepServiceSelection
		conv.SelectedService = nil
	}

	botMsg := NewBotMessage(conv.ID, rep.body, rep.msgType, rep.metadata)
	if err := e.appendMessage(ctx, botMsg); err != nil {
		return nil, err
	}

	if conv.CurrentStep != loadedStep || !sameService(conv.SelectedService, loadedService) {
		if err := e.updateConversation(ctx, conv); err != nil {
			return nil, err
		}
	}

	return &TurnResult{BotMessage: botMsg, Conversation: conv, Restarted: restarted}, nil
}

// ListMessages returns a conversation's history ascending by creation time.
// An unknown session yields an empty history, not an error.
func (e *DialogueEngine) ListMessages(ctx context.Context, sessionID string) ([]*Message, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"sessionId is required", nil, "")
	}

	storeCtx, cancel := context.WithTimeout(ctx, e.storeTimeout)
	defer cancel()
	conv, err := e.conversations.FindBySessionID(storeCtx, sessionID)
	if err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
			return []*Message{}, nil
		}
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load conversation")
	}

	listCtx, cancelList := context.WithTimeout(ctx, e.storeTimeout)
	defer cancelList()
	messages, err := e.messages.ListByConversationID(listCtx, conv.ID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list messages")
	}
	return messages, nil
}

// OpenConversation returns the conversation for a session, creating it at
// the welcome step when absent.
func (e *DialogueEngine) OpenConversation(ctx context.Context, sessionID string) (*Conversation, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"sessionId is required", nil, "")
	}

	release := e.locks.Acquire(sessionID)
	defer release()

	return e.loadOrCreate(ctx, sessionID)
}

// ===============================================
// Per-step transitions
// ===============================================

func (e *DialogueEngine) dispatch(conv *Conversation, body string) reply {
	switch conv.CurrentStep {
	case StepWelcome:
		return e.handleWelcome(conv)
	case StepServiceSelection:
		return e.handleServiceSelection(conv, body)
	case StepWaitingConfirmation:
		return e.handleWaitingConfirmation(conv, body)
	case StepCollectingData:
		return e.handleCollectingData(conv)
	default:
		// StepCompleted is unreachable here: the restart rule already ran.
		return reply{}
	}
}

func (e *DialogueEngine) handleWelcome(conv *Conversation) reply {
	conv.CurrentStep = StepServiceSelection
	return e.welcomeReply()
}

func (e *DialogueEngine) handleServiceSelection(conv *Conversation, body string) reply {
	service, ok := e.catalog.Resolve(body)
	if !ok {
		// Unmatched input never advances the state.
		return e.menuReply(invalidOptionGreeting)
	}

	requirements, _ := e.catalog.Requirements(service)
	conv.SelectedService = &service
	conv.CurrentStep = StepWaitingConfirmation

	return reply{
		body:     e.requirementsBody(service, requirements),
		msgType:  MessageTypeRequirements,
		metadata: RequirementsMetadata(service, requirements),
	}
}

func (e *DialogueEngine) handleWaitingConfirmation(conv *Conversation, body string) reply {
	normalized := strings.ToLower(strings.TrimSpace(body))
	switch {
	case affirmativeTokens[normalized]:
		conv.CurrentStep = StepCollectingData
		return reply{body: replyFormPrompt, msgType: MessageTypeForm}
	case negativeTokens[normalized]:
		conv.SelectedService = nil
		conv.CurrentStep = StepServiceSelection
		return reply{body: replyDeclined, msgType: MessageTypeText}
	default:
		return reply{body: replyConfirmYesNo, msgType: MessageTypeText}
	}
}

func (e *DialogueEngine) handleCollectingData(conv *Conversation) reply {
	// Free text here is not an intake submission; that is a separate
	// operation. Remind the visitor to use the form.
	return reply{body: replyUseForm, msgType: MessageTypeText}
}

// ===============================================
// Reply rendering
// ===============================================

func (e *DialogueEngine) welcomeReply() reply {
	return e.menuReply(welcomeGreeting)
}

func (e *DialogueEngine) menuReply(greeting string) reply {
	var b strings.Builder
	b.WriteString(greeting)
	b.WriteString("\n")
	for i, service := range e.catalog.Services() {
		b.WriteString(fmt.Sprintf("\n%d. %s", i+1, e.catalog.DisplayName(service)))
	}
	return reply{body: b.String(), msgType: MessageTypeServiceSelection}
}

func (e *DialogueEngine) requirementsBody(service ServiceType, requirements []string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Has seleccionado: **%s**\n\n **Requisitos necesarios:**\n", e.catalog.DisplayName(service)))
	for i, requirement := range requirements {
		b.WriteString(fmt.Sprintf("\n%d. %s", i+1, requirement))
	}
	b.WriteString("\n\n¿Deseas continuar con el proceso? Responde \"sí\" para llenar el formulario con tus datos.")
	return b.String()
}

// ===============================================
// Store access
// ===============================================

func (e *DialogueEngine) loadOrCreate(ctx context.Context, sessionID string) (*Conversation, error) {
	findCtx, cancel := context.WithTimeout(ctx, e.storeTimeout)
	defer cancel()
	conv, err := e.conversations.FindBySessionID(findCtx, sessionID)
	if err == nil {
		return conv, nil
	}
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load conversation")
	}

	conv = NewConversation(sessionID)
	createCtx, cancelCreate := context.WithTimeout(ctx, e.storeTimeout)
	defer cancelCreate()
	if err := e.conversations.Create(createCtx, conv); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create conversation")
	}
	return conv, nil
}

func (e *DialogueEngine) appendMessage(ctx context.Context, message *Message) error {
	storeCtx, cancel := context.WithTimeout(ctx, e.storeTimeout)
	defer cancel()
	if err := e.messages.Append(storeCtx, message); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to append message")
	}
	return nil
}

func (e *DialogueEngine) updateConversation(ctx context.Context, conv *Conversation) error {
	storeCtx, cancel := context.WithTimeout(ctx, e.storeTimeout)
	defer cancel()
	if err := e.conversations.Update(storeCtx, conv); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to update conversation")
	}
	return nil
}

func sameService(a, b *ServiceType) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
