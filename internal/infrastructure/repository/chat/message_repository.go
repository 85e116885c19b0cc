package chat

import (
	"context"

	"notaria-server/intake-api/internal/domain/chat"
	"notaria-server/intake-api/internal/infrastructure/database/entities"
	"notaria-server/intake-api/internal/infrastructure/database/transaction"
	"notaria-server/intake-api/internal/utils/platformerrors"
)

// MessageRepository persists the append-only message log.
type MessageRepository struct {
	db *transaction.Database
}

// NewMessageRepository creates a repository backed by the provided DB.
func NewMessageRepository(db *transaction.Database) *MessageRepository {
	return &MessageRepository{db: db}
}

// Append inserts one message row and backfills the generated id.
func (r *MessageRepository) Append(ctx context.Context, message *chat.Message) error {
	record := entities.NewMessage(message)
	if err := r.db.GetTx(ctx).WithContext(ctx).Create(record).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to append message", err, "")
	}
	message.ID = record.ID
	message.CreatedAt = record.CreatedAt
	return nil
}

// ListByConversationID returns a conversation's messages ascending by
// creation time.
func (r *MessageRepository) ListByConversationID(ctx context.Context, conversationID uint) ([]*chat.Message, error) {
	var records []entities.Message
	err := r.db.GetTx(ctx).WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to list messages", err, "")
	}

	messages := make([]*chat.Message, 0, len(records))
	for i := range records {
		messages = append(messages, records[i].ToDomain())
	}
	return messages, nil
}
