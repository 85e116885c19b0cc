package v1

import (
	"github.com/gin-gonic/gin"

	"notaria-server/intake-api/internal/infrastructure/auth"
	"notaria-server/intake-api/internal/interfaces/httpserver/handlers"
)

// Routes encapsulates versioned route registration.
type Routes struct {
	handlers *handlers.Provider
	auth     *auth.Validator
}

// NewRoutes builds the v1 route registrar.
func NewRoutes(handlerProvider *handlers.Provider, authValidator *auth.Validator) *Routes {
	return &Routes{
		handlers: handlerProvider,
		auth:     authValidator,
	}
}

// Register attaches all v1 routes under the /v1 prefix.
func (r *Routes) Register(engine *gin.Engine) {
	group := engine.Group("/v1")
	registerContentRoutes(group, r.handlers.Content, r.auth)
}

func registerContentRoutes(group *gin.RouterGroup, handler *handlers.ContentHandler, authValidator *auth.Validator) {
	group.GET("/services", handler.ListServices)
	group.GET("/blog-posts", handler.ListBlogPosts)
	group.POST("/contact-requests", handler.CreateContactRequest)

	// The contact inbox is the only guarded surface.
	group.GET("/contact-requests", authValidator.Middleware(), handler.ListContactRequests)
}
