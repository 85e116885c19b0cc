package content

import (
	"context"

	"notaria-server/intake-api/internal/domain/content"
	"notaria-server/intake-api/internal/infrastructure/database/entities"
	"notaria-server/intake-api/internal/infrastructure/database/transaction"
	"notaria-server/intake-api/internal/utils/platformerrors"
)

// ServiceRepository reads the services catalog via PostgreSQL using GORM.
type ServiceRepository struct {
	db *transaction.Database
}

// NewServiceRepository creates a repository backed by the provided DB.
func NewServiceRepository(db *transaction.Database) *ServiceRepository {
	return &ServiceRepository{db: db}
}

// ListOrdered returns the catalog ascending by display order.
func (r *ServiceRepository) ListOrdered(ctx context.Context) ([]*content.Service, error) {
	var records []entities.Service
	err := r.db.GetTx(ctx).WithContext(ctx).
		Order("display_order ASC, id ASC").
		Find(&records).Error
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to list services", err, "")
	}

	services := make([]*content.Service, 0, len(records))
	for i := range records {
		services = append(services, records[i].ToDomain())
	}
	return services, nil
}

// BlogPostRepository reads published articles via PostgreSQL using GORM.
type BlogPostRepository struct {
	db *transaction.Database
}

// NewBlogPostRepository creates a repository backed by the provided DB.
func NewBlogPostRepository(db *transaction.Database) *BlogPostRepository {
	return &BlogPostRepository{db: db}
}

// ListPublished returns up to limit published posts newest first.
func (r *BlogPostRepository) ListPublished(ctx context.Context, limit int) ([]*content.BlogPost, error) {
	var records []entities.BlogPost
	err := r.db.GetTx(ctx).WithContext(ctx).
		Where("published = ?", true).
		Order("published_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to list blog posts", err, "")
	}

	posts := make([]*content.BlogPost, 0, len(records))
	for i := range records {
		posts = append(posts, records[i].ToDomain())
	}
	return posts, nil
}

// ContactRequestRepository persists contact form submissions.
type ContactRequestRepository struct {
	db *transaction.Database
}

// NewContactRequestRepository creates a repository backed by the provided DB.
func NewContactRequestRepository(db *transaction.Database) *ContactRequestRepository {
	return &ContactRequestRepository{db: db}
}

// Create inserts the contact request and backfills the generated id.
func (r *ContactRequestRepository) Create(ctx context.Context, request *content.ContactRequest) error {
	record := entities.NewContactRequest(request)
	if err := r.db.GetTx(ctx).WithContext(ctx).Create(record).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to create contact request", err, "")
	}
	request.ID = record.ID
	request.CreatedAt = record.CreatedAt
	return nil
}

// ListNewestFirst returns all contact requests newest first.
func (r *ContactRequestRepository) ListNewestFirst(ctx context.Context) ([]*content.ContactRequest, error) {
	var records []entities.ContactRequest
	err := r.db.GetTx(ctx).WithContext(ctx).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to list contact requests", err, "")
	}

	requests := make([]*content.ContactRequest, 0, len(records))
	for i := range records {
		requests = append(requests, records[i].ToDomain())
	}
	return requests, nil
}
