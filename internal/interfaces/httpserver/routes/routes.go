package routes

import (
	"github.com/gin-gonic/gin"

	"notaria-server/intake-api/internal/infrastructure/auth"
	"notaria-server/intake-api/internal/interfaces/httpserver/handlers"
	v1 "notaria-server/intake-api/internal/interfaces/httpserver/routes/v1"
)

// Provider registers every route group of the service.
type Provider struct {
	handlers *handlers.Provider
	auth     *auth.Validator
}

// NewProvider builds the route provider.
func NewProvider(handlerProvider *handlers.Provider, authValidator *auth.Validator) *Provider {
	return &Provider{
		handlers: handlerProvider,
		auth:     authValidator,
	}
}

// Register attaches the chatbot and versioned content routes.
func (p *Provider) Register(engine *gin.Engine) {
	registerChatbotRoutes(engine.Group("/api/chatbot"), p.handlers.Chat)
	v1.NewRoutes(p.handlers, p.auth).Register(engine)
}

func registerChatbotRoutes(group *gin.RouterGroup, handler *handlers.ChatHandler) {
	group.POST("/conversation", handler.OpenConversation)
	group.GET("/conversation/:session_id/messages", handler.ListMessages)
	group.POST("/message", handler.SendMessage)
	group.POST("/service-request", handler.SubmitIntake)
}
