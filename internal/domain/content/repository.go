package content

import "context"

// ServiceRepository exposes read access to the services catalog.
type ServiceRepository interface {
	ListOrdered(ctx context.Context) ([]*Service, error)
}

// BlogPostRepository exposes read access to published articles.
type BlogPostRepository interface {
	ListPublished(ctx context.Context, limit int) ([]*BlogPost, error)
}

// ContactRequestRepository persists contact form submissions.
type ContactRequestRepository interface {
	Create(ctx context.Context, request *ContactRequest) error
	ListNewestFirst(ctx context.Context) ([]*ContactRequest, error)
}
