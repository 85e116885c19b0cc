package chat

import (
	"context"
	"sync"
	"time"

	"notaria-server/intake-api/internal/domain/chat"
	"notaria-server/intake-api/internal/utils/platformerrors"
)

// InMemoryStore is a thread-safe store implementation useful for demos and
// tests. It implements all three chat repositories plus the transactor.
// Transactions are simulated: fn runs under the store lock without rollback,
// which is enough for the happy-path and ordering assertions tests make.
type InMemoryStore struct {
	mu            sync.Mutex
	conversations map[string]*chat.Conversation
	messages      map[uint][]*chat.Message
	requests      []*chat.ServiceRequest
	nextConvID    uint
	nextMessageID uint
	nextRequestID uint
	failNextWrite error
	withinTxCalls int
}

// NewInMemoryStore creates an empty store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		conversations: make(map[string]*chat.Conversation),
		messages:      make(map[uint][]*chat.Message),
		nextConvID:    1,
		nextMessageID: 1,
		nextRequestID: 1,
	}
}

// FailNextWrite arms the store so the next write returns err.
func (s *InMemoryStore) FailNextWrite(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNextWrite = err
}

// WithinTransactionCalls reports how many transactions ran.
func (s *InMemoryStore) WithinTransactionCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.withinTxCalls
}

func (s *InMemoryStore) takeWriteFailure() error {
	if s.failNextWrite != nil {
		err := s.failNextWrite
		s.failNextWrite = nil
		return err
	}
	return nil
}

// FindBySessionID returns the stored conversation or a not-found error.
func (s *InMemoryStore) FindBySessionID(ctx context.Context, sessionID string) (*chat.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conversations[sessionID]
	if !ok {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
			"conversation not found", nil, "")
	}
	copied := *conv
	return &copied, nil
}

// Create stores the conversation, keeping the first writer's row on a
// session id collision.
func (s *InMemoryStore) Create(ctx context.Context, conversation *chat.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.takeWriteFailure(); err != nil {
		return err
	}

	if existing, ok := s.conversations[conversation.SessionID]; ok {
		*conversation = *existing
		return nil
	}

	conversation.ID = s.nextConvID
	s.nextConvID++
	copied := *conversation
	s.conversations[conversation.SessionID] = &copied
	return nil
}

// Update overwrites the stored conversation state.
func (s *InMemoryStore) Update(ctx context.Context, conversation *chat.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.takeWriteFailure(); err != nil {
		return err
	}

	copied := *conversation
	s.conversations[conversation.SessionID] = &copied
	return nil
}

// Append stores one message.
func (s *InMemoryStore) Append(ctx context.Context, message *chat.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.takeWriteFailure(); err != nil {
		return err
	}

	message.ID = s.nextMessageID
	s.nextMessageID++
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	copied := *message
	s.messages[message.ConversationID] = append(s.messages[message.ConversationID], &copied)
	return nil
}

// ListByConversationID returns stored messages in append order.
func (s *InMemoryStore) ListByConversationID(ctx context.Context, conversationID uint) ([]*chat.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := s.messages[conversationID]
	messages := make([]*chat.Message, 0, len(stored))
	for _, m := range stored {
		copied := *m
		messages = append(messages, &copied)
	}
	return messages, nil
}

// CreateRequest stores one service request. Named to avoid clashing with the
// conversation Create; use Requests() to adapt it to the repository interface.
func (s *InMemoryStore) CreateRequest(ctx context.Context, request *chat.ServiceRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.takeWriteFailure(); err != nil {
		return err
	}

	request.ID = s.nextRequestID
	s.nextRequestID++
	if request.CreatedAt.IsZero() {
		request.CreatedAt = time.Now()
	}
	copied := *request
	s.requests = append(s.requests, &copied)
	return nil
}

// StoredRequests returns a snapshot of the recorded service requests.
func (s *InMemoryStore) StoredRequests() []*chat.ServiceRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	requests := make([]*chat.ServiceRequest, 0, len(s.requests))
	for _, r := range s.requests {
		copied := *r
		requests = append(requests, &copied)
	}
	return requests
}

// WithinTransaction runs fn directly; the store has no rollback.
func (s *InMemoryStore) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	s.withinTxCalls++
	s.mu.Unlock()
	return fn(ctx)
}

// Requests adapts the store to the service request repository interface.
func (s *InMemoryStore) Requests() chat.ServiceRequestRepository {
	return requestRepoFunc{store: s}
}

type requestRepoFunc struct {
	store *InMemoryStore
}

func (r requestRepoFunc) Create(ctx context.Context, request *chat.ServiceRequest) error {
	return r.store.CreateRequest(ctx, request)
}
