package chat

import (
	"context"

	"notaria-server/intake-api/internal/domain/chat"
	"notaria-server/intake-api/internal/infrastructure/database/entities"
	"notaria-server/intake-api/internal/infrastructure/database/transaction"
	"notaria-server/intake-api/internal/utils/platformerrors"
)

// ServiceRequestRepository persists completed intake submissions.
type ServiceRequestRepository struct {
	db *transaction.Database
}

// NewServiceRequestRepository creates a repository backed by the provided DB.
func NewServiceRequestRepository(db *transaction.Database) *ServiceRequestRepository {
	return &ServiceRequestRepository{db: db}
}

// Create inserts the service request and backfills the generated id.
func (r *ServiceRequestRepository) Create(ctx context.Context, request *chat.ServiceRequest) error {
	record := entities.NewServiceRequest(request)
	if err := r.db.GetTx(ctx).WithContext(ctx).Create(record).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to create service request", err, "")
	}
	request.ID = record.ID
	request.CreatedAt = record.CreatedAt
	return nil
}
