package chat

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"notaria-server/intake-api/internal/domain/chat"
	"notaria-server/intake-api/internal/infrastructure/database/entities"
	"notaria-server/intake-api/internal/infrastructure/database/transaction"
	"notaria-server/intake-api/internal/utils/platformerrors"
)

// ConversationRepository persists conversations via PostgreSQL using GORM.
type ConversationRepository struct {
	db *transaction.Database
}

// NewConversationRepository creates a repository backed by the provided DB.
func NewConversationRepository(db *transaction.Database) *ConversationRepository {
	return &ConversationRepository{db: db}
}

// FindBySessionID returns the conversation for a session id, or a not-found
// error when no row exists.
func (r *ConversationRepository) FindBySessionID(ctx context.Context, sessionID string) (*chat.Conversation, error) {
	var record entities.Conversation
	err := r.db.GetTx(ctx).WithContext(ctx).Where("session_id = ?", sessionID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
				"conversation not found", err, "")
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to query conversation", err, "")
	}
	return record.ToDomain(), nil
}

// Create inserts the conversation and backfills the generated id. Losing a
// concurrent creation race for the same session id is not an error: the
// already persisted row is loaded instead.
func (r *ConversationRepository) Create(ctx context.Context, conversation *chat.Conversation) error {
	record := entities.NewConversation(conversation)
	err := r.db.GetTx(ctx).WithContext(ctx).Create(record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			existing, findErr := r.FindBySessionID(ctx, conversation.SessionID)
			if findErr != nil {
				return findErr
			}
			*conversation = *existing
			return nil
		}
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to create conversation", err, "")
	}

	*conversation = *record.ToDomain()
	return nil
}

// Update saves the conversation state.
func (r *ConversationRepository) Update(ctx context.Context, conversation *chat.Conversation) error {
	record := entities.NewConversation(conversation)
	err := r.db.GetTx(ctx).WithContext(ctx).
		Model(&entities.Conversation{}).
		Where("id = ?", record.ID).
		Updates(map[string]any{
			"status":           record.Status,
			"current_step":     record.CurrentStep,
			"selected_service": record.SelectedService,
		}).Error
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to update conversation", err, "")
	}
	return nil
}
