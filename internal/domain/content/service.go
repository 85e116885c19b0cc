package content

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"notaria-server/intake-api/internal/utils/platformerrors"
)

const defaultBlogPostLimit = 10

// ContentService describes the business logic surface for the site's
// read-only catalog endpoints and the contact inbox.
type ContentService struct {
	services ServiceRepository
	posts    BlogPostRepository
	contacts ContactRequestRepository
	log      zerolog.Logger
}

// NewContentService wires the content service with its repositories.
func NewContentService(
	services ServiceRepository,
	posts BlogPostRepository,
	contacts ContactRequestRepository,
	log zerolog.Logger,
) *ContentService {
	return &ContentService{
		services: services,
		posts:    posts,
		contacts: contacts,
		log:      log.With().Str("component", "content-service").Logger(),
	}
}

// ListServices returns the services catalog in display order.
func (s *ContentService) ListServices(ctx context.Context) ([]*Service, error) {
	services, err := s.services.ListOrdered(ctx)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list services")
	}
	return services, nil
}

// ListBlogPosts returns published posts newest first. Non-positive limits
// fall back to the default page size.
func (s *ContentService) ListBlogPosts(ctx context.Context, limit int) ([]*BlogPost, error) {
	if limit <= 0 {
		limit = defaultBlogPostLimit
	}
	posts, err := s.posts.ListPublished(ctx, limit)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list blog posts")
	}
	return posts, nil
}

// CreateContactInput carries a contact form submission. Phone is optional.
type CreateContactInput struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

// CreateContactRequest stores a contact form submission.
func (s *ContentService) CreateContactRequest(ctx context.Context, input CreateContactInput) (*ContactRequest, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	subject := strings.TrimSpace(input.Subject)
	message := strings.TrimSpace(input.Message)
	if name == "" || email == "" || subject == "" || message == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"name, email, subject and message are required", nil, "")
	}

	request := &ContactRequest{
		Name:      name,
		Email:     email,
		Subject:   subject,
		Message:   message,
		Status:    ContactStatusPending,
		CreatedAt: time.Now(),
	}
	if phone := strings.TrimSpace(input.Phone); phone != "" {
		request.Phone = &phone
	}

	if err := s.contacts.Create(ctx, request); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create contact request")
	}

	s.log.Info().Uint("contact_request_id", request.ID).Msg("stored contact request")
	return request, nil
}

// ListContactRequests returns all contact requests newest first. Intended
// for the admin inbox.
func (s *ContentService) ListContactRequests(ctx context.Context) ([]*ContactRequest, error) {
	requests, err := s.contacts.ListNewestFirst(ctx)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list contact requests")
	}
	return requests, nil
}
