package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"notaria-server/intake-api/internal/domain/chat"
	"notaria-server/intake-api/internal/infrastructure/metrics"
	"notaria-server/intake-api/internal/interfaces/httpserver/requests"
	"notaria-server/intake-api/internal/interfaces/httpserver/responses"
	"notaria-server/intake-api/internal/utils/platformerrors"
)

// ChatHandler exposes the guided intake dialogue over HTTP.
type ChatHandler struct {
	engine   *chat.DialogueEngine
	recorder *chat.IntakeRecorder
	catalog  *chat.RequirementsCatalog
	log      zerolog.Logger
}

// NewChatHandler wires dependencies for the chat routes.
func NewChatHandler(engine *chat.DialogueEngine, recorder *chat.IntakeRecorder, catalog *chat.RequirementsCatalog, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		engine:   engine,
		recorder: recorder,
		catalog:  catalog,
		log:      log.With().Str("handler", "chat").Logger(),
	}
}

// OpenConversation godoc
// @Summary      Open or resume a conversation
// @Description  Returns the conversation for a session id, creating it at the welcome step when absent.
// @Tags         chatbot
// @Accept       json
// @Produce      json
// @Param        request  body      requests.OpenConversationRequest  true  "session id"
// @Success      200      {object}  responses.ConversationResponse
// @Failure      400      {object}  responses.ErrorResponse
// @Router       /api/chatbot/conversation [post]
func (h *ChatHandler) OpenConversation(c *gin.Context) {
	var req requests.OpenConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, h.log, platformerrors.ErrorTypeValidation, "sessionId is required", "")
		return
	}

	conv, err := h.engine.OpenConversation(c.Request.Context(), req.SessionID)
	if err != nil {
		responses.HandleError(c, h.log, err, "failed to open conversation")
		return
	}

	c.JSON(http.StatusOK, responses.NewConversationResponse(conv))
}

// ListMessages godoc
// @Summary      List a conversation's messages
// @Description  Returns the full message history ascending by creation time. Unknown sessions yield an empty list.
// @Tags         chatbot
// @Produce      json
// @Param        session_id  path      string  true  "session id"
// @Success      200         {array}   responses.MessageResponse
// @Failure      400         {object}  responses.ErrorResponse
// @Router       /api/chatbot/conversation/{session_id}/messages [get]
func (h *ChatHandler) ListMessages(c *gin.Context) {
	sessionID := c.Param("session_id")

	messages, err := h.engine.ListMessages(c.Request.Context(), sessionID)
	if err != nil {
		responses.HandleError(c, h.log, err, "failed to list messages")
		return
	}

	c.JSON(http.StatusOK, responses.NewMessageListResponse(messages))
}

// SendMessage godoc
// @Summary      Process one dialogue turn
// @Description  Appends the visitor message, advances the conversation state machine, and returns the bot reply.
// @Tags         chatbot
// @Accept       json
// @Produce      json
// @Param        request  body      requests.SendMessageRequest  true  "visitor message"
// @Success      200      {object}  responses.TurnResponse
// @Failure      400      {object}  responses.ErrorResponse
// @Router       /api/chatbot/message [post]
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req requests.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, h.log, platformerrors.ErrorTypeValidation, "sessionId and message are required", "")
		return
	}

	var metadata chat.MessageMetadata
	if req.Metadata != nil {
		metadata = chat.MessageMetadata{
			Service:          chat.ServiceType(req.Metadata.Service),
			Requirements:     req.Metadata.Requirements,
			ServiceRequestID: req.Metadata.ServiceRequestID,
		}
	}

	result, err := h.engine.HandleMessage(c.Request.Context(), req.SessionID, req.Message,
		chat.MessageType(req.MessageType), metadata)
	if err != nil {
		responses.HandleError(c, h.log, err, "failed to process message")
		return
	}

	metrics.RecordTurn(string(result.Conversation.CurrentStep), result.Restarted)
	c.JSON(http.StatusOK, responses.NewTurnResponse(result))
}

// SubmitIntake godoc
// @Summary      Record a completed intake form
// @Description  Stores the service request, completes the conversation, and appends the confirmation message atomically.
// @Tags         chatbot
// @Accept       json
// @Produce      json
// @Param        request  body      requests.SubmitIntakeRequest  true  "intake form"
// @Success      201      {object}  responses.ServiceRequestResponse
// @Failure      400      {object}  responses.ErrorResponse
// @Failure      404      {object}  responses.ErrorResponse
// @Router       /api/chatbot/service-request [post]
func (h *ChatHandler) SubmitIntake(c *gin.Context) {
	var req requests.SubmitIntakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, h.log, platformerrors.ErrorTypeValidation, "sessionId is required", "")
		return
	}

	request, err := h.recorder.SubmitIntake(c.Request.Context(), chat.IntakeInput{
		SessionID:   req.SessionID,
		ServiceType: req.ServiceType,
		ClientName:  req.ClientName,
		Nationality: req.Nationality,
		BirthPlace:  req.BirthPlace,
		Residence:   req.Residence,
		Phone:       req.Phone,
	})
	if err != nil {
		// Non-catalog service types share one label so the metric's label
		// set stays bounded regardless of what the client sends.
		serviceLabel := req.ServiceType
		if !h.catalog.Known(chat.ServiceType(serviceLabel)) {
			serviceLabel = "invalid"
		}
		metrics.RecordIntake(serviceLabel, "error")
		responses.HandleError(c, h.log, err, "failed to record service request")
		return
	}

	metrics.RecordIntake(string(request.ServiceType), "success")
	c.JSON(http.StatusCreated, responses.NewServiceRequestResponse(request))
}
