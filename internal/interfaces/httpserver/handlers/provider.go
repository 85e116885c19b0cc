package handlers

import (
	"github.com/rs/zerolog"

	"notaria-server/intake-api/internal/domain/chat"
	"notaria-server/intake-api/internal/domain/content"
)

// Provider wires all HTTP handlers for dependency injection.
type Provider struct {
	Chat    *ChatHandler
	Content *ContentHandler
}

// NewProvider constructs the handler provider with domain services.
func NewProvider(
	engine *chat.DialogueEngine,
	recorder *chat.IntakeRecorder,
	catalog *chat.RequirementsCatalog,
	contentService *content.ContentService,
	log zerolog.Logger,
) *Provider {
	return &Provider{
		Chat:    NewChatHandler(engine, recorder, catalog, log),
		Content: NewContentHandler(contentService, log),
	}
}
