//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"notaria-server/intake-api/internal/config"
	chatdomain "notaria-server/intake-api/internal/domain/chat"
	contentdomain "notaria-server/intake-api/internal/domain/content"
	"notaria-server/intake-api/internal/infrastructure/auth"
	"notaria-server/intake-api/internal/infrastructure/database"
	"notaria-server/intake-api/internal/infrastructure/database/transaction"
	"notaria-server/intake-api/internal/infrastructure/logger"
	chatrepo "notaria-server/intake-api/internal/infrastructure/repository/chat"
	contentrepo "notaria-server/intake-api/internal/infrastructure/repository/content"
	"notaria-server/intake-api/internal/interfaces/httpserver"
	"notaria-server/intake-api/internal/interfaces/httpserver/handlers"
)

var chatSet = wire.NewSet(
	chatrepo.NewConversationRepository,
	wire.Bind(new(chatdomain.ConversationRepository), new(*chatrepo.ConversationRepository)),
	chatrepo.NewMessageRepository,
	wire.Bind(new(chatdomain.MessageRepository), new(*chatrepo.MessageRepository)),
	chatrepo.NewServiceRequestRepository,
	wire.Bind(new(chatdomain.ServiceRequestRepository), new(*chatrepo.ServiceRequestRepository)),
	wire.Bind(new(chatdomain.Transactor), new(*transaction.Database)),
	chatdomain.NewRequirementsCatalog,
	newDialogueEngine,
	newIntakeRecorder,
)

var contentSet = wire.NewSet(
	contentrepo.NewServiceRepository,
	wire.Bind(new(contentdomain.ServiceRepository), new(*contentrepo.ServiceRepository)),
	contentrepo.NewBlogPostRepository,
	wire.Bind(new(contentdomain.BlogPostRepository), new(*contentrepo.BlogPostRepository)),
	contentrepo.NewContactRequestRepository,
	wire.Bind(new(contentdomain.ContactRequestRepository), new(*contentrepo.ContactRequestRepository)),
	contentdomain.NewContentService,
)

// BuildApplication assembles the intake service with Wire.
func BuildApplication(ctx context.Context) (*Application, error) {
	wire.Build(
		config.Load,
		logger.New,
		auth.NewValidator,
		newDatabaseConfig,
		newGormDB,
		transaction.NewDatabase,
		chatSet,
		contentSet,
		handlers.NewProvider,
		httpserver.New,
		NewApplication,
	)
	return nil, nil
}

func newDatabaseConfig(cfg *config.Config) database.Config {
	return database.Config{
		DSN:             cfg.DatabaseURL,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	}
}

func newGormDB(ctx context.Context, cfg database.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(ctx, db, log); err != nil {
		return nil, err
	}
	return db, nil
}

func newDialogueEngine(
	catalog *chatdomain.RequirementsCatalog,
	conversations chatdomain.ConversationRepository,
	messages chatdomain.MessageRepository,
	cfg *config.Config,
	log zerolog.Logger,
) *chatdomain.DialogueEngine {
	return chatdomain.NewDialogueEngine(catalog, conversations, messages, cfg.StoreTimeout, log)
}

func newIntakeRecorder(
	catalog *chatdomain.RequirementsCatalog,
	conversations chatdomain.ConversationRepository,
	messages chatdomain.MessageRepository,
	requests chatdomain.ServiceRequestRepository,
	tx chatdomain.Transactor,
	engine *chatdomain.DialogueEngine,
	cfg *config.Config,
	log zerolog.Logger,
) *chatdomain.IntakeRecorder {
	return chatdomain.NewIntakeRecorder(catalog, conversations, messages, requests, tx, engine, cfg.StoreTimeout, log)
}
