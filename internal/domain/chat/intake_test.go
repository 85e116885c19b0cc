package chat_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notaria-server/intake-api/internal/domain/chat"
	chatrepo "notaria-server/intake-api/internal/infrastructure/repository/chat"
	"notaria-server/intake-api/internal/utils/platformerrors"
)

func newTestRecorder(t *testing.T) (*chat.IntakeRecorder, *chat.DialogueEngine, *chatrepo.InMemoryStore) {
	t.Helper()
	store := chatrepo.NewInMemoryStore()
	catalog := chat.NewRequirementsCatalog()
	engine := chat.NewDialogueEngine(catalog, store, store, time.Second, zerolog.Nop())
	recorder := chat.NewIntakeRecorder(catalog, store, store, store.Requests(), store, engine, time.Second, zerolog.Nop())
	return recorder, engine, store
}

func validIntake(sessionID string) chat.IntakeInput {
	return chat.IntakeInput{
		SessionID:   sessionID,
		ServiceType: "compra_venta",
		ClientName:  "María Pérez",
		Nationality: "Mexicana",
		BirthPlace:  "Guadalajara",
		Residence:   "Zapopan",
		Phone:       "3312345678",
	}
}

func TestSubmitIntakeRecordsRequestAndCompletesConversation(t *testing.T) {
	recorder, engine, store := newTestRecorder(t)
	ctx := context.Background()

	_, err := engine.HandleMessage(ctx, "session-1", "hola", chat.MessageTypeText, chat.MessageMetadata{})
	require.NoError(t, err)
	_, err = engine.HandleMessage(ctx, "session-1", "1", chat.MessageTypeText, chat.MessageMetadata{})
	require.NoError(t, err)
	_, err = engine.HandleMessage(ctx, "session-1", "sí", chat.MessageTypeText, chat.MessageMetadata{})
	require.NoError(t, err)

	request, err := recorder.SubmitIntake(ctx, validIntake("session-1"))
	require.NoError(t, err)
	assert.NotZero(t, request.ID)
	assert.Equal(t, chat.ServiceCompraVenta, request.ServiceType)
	assert.Equal(t, "María Pérez", request.ClientName)

	conv, err := store.FindBySessionID(ctx, "session-1")
	require.NoError(t, err)
	assert.True(t, conv.IsCompleted())
	assert.Equal(t, conv.ID, request.ConversationID)

	// The confirmation message closes the history, carrying the request id.
	history, err := store.ListByConversationID(ctx, conv.ID)
	require.NoError(t, err)
	last := history[len(history)-1]
	assert.Equal(t, chat.SenderBot, last.Sender)
	assert.Equal(t, chat.MessageTypeConfirmation, last.Type)
	assert.Equal(t, request.ID, last.Metadata.ServiceRequestID)
	assert.Contains(t, last.Body, "Solicitud registrada exitosamente")
	assert.Contains(t, last.Body, "Servicio: Compra Venta")
	assert.Contains(t, last.Body, "Nombre: María Pérez")

	assert.Equal(t, 1, store.WithinTransactionCalls())
}

func TestSubmitIntakeRejectsMissingFields(t *testing.T) {
	recorder, engine, _ := newTestRecorder(t)
	ctx := context.Background()

	_, err := engine.HandleMessage(ctx, "session-2", "hola", chat.MessageTypeText, chat.MessageMetadata{})
	require.NoError(t, err)

	input := validIntake("session-2")
	input.Phone = "   "
	_, err = recorder.SubmitIntake(ctx, input)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))
}

func TestSubmitIntakeRejectsUnknownServiceType(t *testing.T) {
	recorder, engine, _ := newTestRecorder(t)
	ctx := context.Background()

	_, err := engine.HandleMessage(ctx, "session-3", "hola", chat.MessageTypeText, chat.MessageMetadata{})
	require.NoError(t, err)

	input := validIntake("session-3")
	input.ServiceType = "testamento"
	_, err = recorder.SubmitIntake(ctx, input)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))
}

func TestSubmitIntakeUnknownSession(t *testing.T) {
	recorder, _, _ := newTestRecorder(t)

	_, err := recorder.SubmitIntake(context.Background(), validIntake("never-seen"))
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))
}

func TestSubmitIntakeStoreFailureLeavesConversationActive(t *testing.T) {
	recorder, engine, store := newTestRecorder(t)
	ctx := context.Background()

	_, err := engine.HandleMessage(ctx, "session-4", "hola", chat.MessageTypeText, chat.MessageMetadata{})
	require.NoError(t, err)

	store.FailNextWrite(errors.New("disk full"))
	_, err = recorder.SubmitIntake(ctx, validIntake("session-4"))
	require.Error(t, err)

	conv, err := store.FindBySessionID(ctx, "session-4")
	require.NoError(t, err)
	assert.False(t, conv.IsCompleted())
	assert.Empty(t, store.StoredRequests())
}
