package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"notaria-server/intake-api/internal/domain/content"
	"notaria-server/intake-api/internal/interfaces/httpserver/requests"
	"notaria-server/intake-api/internal/interfaces/httpserver/responses"
	"notaria-server/intake-api/internal/utils/platformerrors"
)

// ContentHandler exposes the public site content endpoints.
type ContentHandler struct {
	service *content.ContentService
	log     zerolog.Logger
}

// NewContentHandler wires dependencies for the content routes.
func NewContentHandler(service *content.ContentService, log zerolog.Logger) *ContentHandler {
	return &ContentHandler{
		service: service,
		log:     log.With().Str("handler", "content").Logger(),
	}
}

// ListServices godoc
// @Summary      List the services catalog
// @Tags         content
// @Produce      json
// @Success      200  {array}  responses.ServiceResponse
// @Router       /v1/services [get]
func (h *ContentHandler) ListServices(c *gin.Context) {
	services, err := h.service.ListServices(c.Request.Context())
	if err != nil {
		responses.HandleError(c, h.log, err, "failed to list services")
		return
	}
	c.JSON(http.StatusOK, responses.NewServiceListResponse(services))
}

// ListBlogPosts godoc
// @Summary      List published blog posts
// @Tags         content
// @Produce      json
// @Param        limit  query     int  false  "maximum posts to return"
// @Success      200    {array}   responses.BlogPostResponse
// @Failure      400    {object}  responses.ErrorResponse
// @Router       /v1/blog-posts [get]
func (h *ContentHandler) ListBlogPosts(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			responses.HandleNewError(c, h.log, platformerrors.ErrorTypeValidation, "limit must be an integer", "")
			return
		}
		limit = parsed
	}

	posts, err := h.service.ListBlogPosts(c.Request.Context(), limit)
	if err != nil {
		responses.HandleError(c, h.log, err, "failed to list blog posts")
		return
	}
	c.JSON(http.StatusOK, responses.NewBlogPostListResponse(posts))
}

// CreateContactRequest godoc
// @Summary      Store a contact form submission
// @Tags         content
// @Accept       json
// @Produce      json
// @Param        request  body      requests.CreateContactRequest  true  "contact form"
// @Success      201      {object}  responses.ContactRequestResponse
// @Failure      400      {object}  responses.ErrorResponse
// @Router       /v1/contact-requests [post]
func (h *ContentHandler) CreateContactRequest(c *gin.Context) {
	var req requests.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, h.log, platformerrors.ErrorTypeValidation, "name, email, subject and message are required", "")
		return
	}

	request, err := h.service.CreateContactRequest(c.Request.Context(), content.CreateContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		responses.HandleError(c, h.log, err, "failed to create contact request")
		return
	}
	c.JSON(http.StatusCreated, responses.NewContactRequestResponse(request))
}

// ListContactRequests godoc
// @Summary      List contact requests newest first
// @Description  Admin inbox. Requires a bearer token when auth is enabled.
// @Tags         content
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   responses.ContactRequestResponse
// @Failure      401  {object}  responses.ErrorResponse
// @Router       /v1/contact-requests [get]
func (h *ContentHandler) ListContactRequests(c *gin.Context) {
	requests, err := h.service.ListContactRequests(c.Request.Context())
	if err != nil {
		responses.HandleError(c, h.log, err, "failed to list contact requests")
		return
	}
	c.JSON(http.StatusOK, responses.NewContactRequestListResponse(requests))
}
