package chat_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notaria-server/intake-api/internal/domain/chat"
	chatrepo "notaria-server/intake-api/internal/infrastructure/repository/chat"
	"notaria-server/intake-api/internal/utils/platformerrors"
)

func newTestEngine(t *testing.T) (*chat.DialogueEngine, *chatrepo.InMemoryStore) {
	t.Helper()
	store := chatrepo.NewInMemoryStore()
	engine := chat.NewDialogueEngine(chat.NewRequirementsCatalog(), store, store, time.Second, zerolog.Nop())
	return engine, store
}

func TestHandleMessageWalksHappyPath(t *testing.T) {
	engine, store := newTestEngine(t)
	ctx := context.Background()

	// First contact creates the conversation and serves the menu.
	result, err := engine.HandleMessage(ctx, "session-1", "hola", chat.MessageTypeText, chat.MessageMetadata{})
	require.NoError(t, err)
	assert.False(t, result.Restarted)
	assert.Equal(t, chat.StepServiceSelection, result.Conversation.CurrentStep)
	assert.Equal(t, chat.MessageTypeServiceSelection, result.BotMessage.Type)
	assert.Contains(t, result.BotMessage.Body, "Bienvenido a nuestra notaría")
	assert.Contains(t, result.BotMessage.Body, "1. Compra Venta")
	assert.Contains(t, result.BotMessage.Body, "2. Donación")
	assert.Contains(t, result.BotMessage.Body, "3. Poder General")

	// Selecting a service surfaces its requirements.
	result, err = engine.HandleMessage(ctx, "session-1", "1", chat.MessageTypeText, chat.MessageMetadata{})
	require.NoError(t, err)
	assert.Equal(t, chat.StepWaitingConfirmation, result.Conversation.CurrentStep)
	require.NotNil(t, result.Conversation.SelectedService)
	assert.Equal(t, chat.ServiceCompraVenta, *result.Conversation.SelectedService)
	assert.Equal(t, chat.MessageTypeRequirements, result.BotMessage.Type)
	assert.Contains(t, result.BotMessage.Body, "Has seleccionado: **Compra Venta**")
	assert.Contains(t, result.BotMessage.Body, "1. Escritura")
	assert.Equal(t, chat.ServiceCompraVenta, result.BotMessage.Metadata.Service)
	assert.Len(t, result.BotMessage.Metadata.Requirements, 7)

	// Confirming hands off to the intake form.
	result, err = engine.HandleMessage(ctx, "session-1", "sí", chat.MessageTypeText, chat.MessageMetadata{})
	require.NoError(t, err)
	assert.Equal(t, chat.StepCollectingData, result.Conversation.CurrentStep)
	assert.Equal(t, chat.MessageTypeForm, result.BotMessage.Type)
	assert.Contains(t, result.BotMessage.Body, "completa el formulario")

	// Free text while collecting data points back to the form.
	result, err = engine.HandleMessage(ctx, "session-1", "y ahora qué", chat.MessageTypeText, chat.MessageMetadata{})
	require.NoError(t, err)
	assert.Equal(t, chat.StepCollectingData, result.Conversation.CurrentStep)
	assert.Contains(t, result.BotMessage.Body, "formulario que aparece abajo")

	// Every turn appended both sides of the exchange.
	conv, err := store.FindBySessionID(ctx, "session-1")
	require.NoError(t, err)
	history, err := store.ListByConversationID(ctx, conv.ID)
	require.NoError(t, err)
	assert.Len(t, history, 8)
	assert.Equal(t, chat.SenderUser, history[0].Sender)
	assert.Equal(t, chat.SenderBot, history[1].Sender)
}

func TestHandleMessageInvalidOptionKeepsStep(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := engine.HandleMessage(ctx, "session-2", "hola", chat.MessageTypeText, chat.MessageMetadata{})
	require.NoError(t, err)

	result, err := engine.HandleMessage(ctx, "session-2", "quiero otra cosa", chat.MessageTypeText, chat.MessageMetadata{})
	require.NoError(t, err)
	assert.Equal(t, chat.StepServiceSelection, result.Conversation.CurrentStep)
	assert.Nil(t, result.Conversation.SelectedService)
	assert.Contains(t, result.BotMessage.Body, "selecciona una opción válida")
	assert.Contains(t, result.BotMessage.Body, "1. Compra Venta")
}

func TestHandleMessageDeclineReturnsToSelection(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := engine.HandleMessage(ctx, "session-3", "hola", chat.MessageTypeText, chat.MessageMetadata{})
	require.NoError(t, err)
	_, err = engine.HandleMessage(ctx, "session-3", "donación", chat.MessageTypeText, chat.MessageMetadata{})
	require.NoError(t, err)

	result, err := engine.HandleMessage(ctx, "session-3", "no", chat.MessageTypeText, chat.MessageMetadata{})
	require.NoError(t, err)
	assert.Equal(t, chat.StepServiceSelection, result.Conversation.CurrentStep)
	assert.Nil(t, result.Conversation.SelectedService)
	assert.Contains(t, result.BotMessage.Body, "Si cambias de opinión")
}

func TestHandleMessageConfirmationTokenVariants(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		wantStep chat.ConversationStep
	}{
		{"uppercase without accent", "SI", chat.StepCollectingData},
		{"trailing space", "Si ", chat.StepCollectingData},
		{"uppercase accented", "SÍ", chat.StepCollectingData},
		{"padded accented", "  sí  ", chat.StepCollectingData},
		{"single letter yes", "S", chat.StepCollectingData},
		{"single letter no", "N", chat.StepServiceSelection},
		{"uppercase no with space", "NO ", chat.StepServiceSelection},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			engine, _ := newTestEngine(t)
			ctx := context.Background()

			_, err := engine.HandleMessage(ctx, "session-tokens", "hola", chat.MessageTypeText, chat.MessageMetadata{})
			require.NoError(t, err)
			_, err = engine.HandleMessage(ctx, "session-tokens", "1", chat.MessageTypeText, chat.MessageMetadata{})
			require.NoError(t, err)

			result, err := engine.HandleMessage(ctx, "session-tokens", tc.body, chat.MessageTypeText, chat.MessageMetadata{})
			require.NoError(t, err)
			assert.Equal(t, tc.wantStep, result.Conversation.CurrentStep)
			if tc.wantStep == chat.StepServiceSelection {
				assert.Nil(t, result.Conversation.SelectedService)
			} else {
				require.NotNil(t, result.Conversation.SelectedService)
				assert.Equal(t, chat.ServiceCompraVenta, *result.Conversation.SelectedService)
			}
		})
	}
}

func TestHandleMessageUnclearConfirmationReprompts(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := engine.HandleMessage(ctx, "session-4", "hola", chat.MessageTypeText, chat.MessageMetadata{})
	require.NoError(t, err)
	_, err = engine.HandleMessage(ctx, "session-4", "poder", chat.MessageTypeText, chat.MessageMetadata{})
	require.NoError(t, err)

	result, err := engine.HandleMessage(ctx, "session-4", "tal vez", chat.MessageTypeText, chat.MessageMetadata{})
	require.NoError(t, err)
	assert.Equal(t, chat.StepWaitingConfirmation, result.Conversation.CurrentStep)
	require.NotNil(t, result.Conversation.SelectedService)
	assert.Equal(t, chat.ServicePoderGeneral, *result.Conversation.SelectedService)
	assert.Contains(t, result.BotMessage.Body, `responde "sí"`)
}

func TestHandleMessageRestartsCompletedConversation(t *testing.T) {
	engine, store := newTestEngine(t)
	ctx := context.Background()

	_, err := engine.HandleMessage(ctx, "session-5", "hola", chat.MessageTypeText, chat.MessageMetadata{})
	require.NoError(t, err)

	conv, err := store.FindBySessionID(ctx, "session-5")
	require.NoError(t, err)
	conv.Complete()
	require.NoError(t, store.Update(ctx, conv))

	result, err := engine.HandleMessage(ctx, "session-5", "hola de nuevo", chat.MessageTypeText, chat.MessageMetadata{})
	require.NoError(t, err)
	assert.True(t, result.Restarted)
	assert.Equal(t, chat.ConversationStatusActive, result.Conversation.Status)
	assert.Equal(t, chat.StepServiceSelection, result.Conversation.CurrentStep)
	assert.Nil(t, result.Conversation.SelectedService)
	assert.Contains(t, result.BotMessage.Body, "Bienvenido a nuestra notaría")

	// History survives the restart.
	history, err := store.ListByConversationID(ctx, result.Conversation.ID)
	require.NoError(t, err)
	assert.Len(t, history, 4)
}

func TestHandleMessageValidatesInput(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := engine.HandleMessage(ctx, "", "hola", chat.MessageTypeText, chat.MessageMetadata{})
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))

	_, err = engine.HandleMessage(ctx, "session-6", "   ", chat.MessageTypeText, chat.MessageMetadata{})
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))
}

func TestListMessagesUnknownSessionIsEmpty(t *testing.T) {
	engine, _ := newTestEngine(t)

	messages, err := engine.ListMessages(context.Background(), "never-seen")
	require.NoError(t, err)
	require.NotNil(t, messages)
	assert.Empty(t, messages)
}

func TestListMessagesRepeatedReadsMatch(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	for _, body := range []string{"hola", "2"} {
		_, err := engine.HandleMessage(ctx, "session-reads", body, chat.MessageTypeText, chat.MessageMetadata{})
		require.NoError(t, err)
	}

	first, err := engine.ListMessages(ctx, "session-reads")
	require.NoError(t, err)
	second, err := engine.ListMessages(ctx, "session-reads")
	require.NoError(t, err)

	require.Len(t, first, 4)
	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
		assert.Equal(t, first[i].Sender, second[i].Sender)
		assert.Equal(t, first[i].Body, second[i].Body)
		assert.Equal(t, first[i].Type, second[i].Type)
	}
}

func TestOpenConversationCreatesAtWelcome(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	conv, err := engine.OpenConversation(ctx, "session-7")
	require.NoError(t, err)
	assert.Equal(t, chat.StepWelcome, conv.CurrentStep)
	assert.Equal(t, chat.ConversationStatusActive, conv.Status)

	again, err := engine.OpenConversation(ctx, "session-7")
	require.NoError(t, err)
	assert.Equal(t, conv.ID, again.ID)
}
