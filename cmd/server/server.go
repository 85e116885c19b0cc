package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	gormlogger "gorm.io/gorm/logger"

	"notaria-server/intake-api/internal/config"
	"notaria-server/intake-api/internal/domain/chat"
	"notaria-server/intake-api/internal/domain/content"
	"notaria-server/intake-api/internal/infrastructure/auth"
	"notaria-server/intake-api/internal/infrastructure/database"
	"notaria-server/intake-api/internal/infrastructure/database/transaction"
	"notaria-server/intake-api/internal/infrastructure/logger"
	"notaria-server/intake-api/internal/infrastructure/observability"
	chatrepo "notaria-server/intake-api/internal/infrastructure/repository/chat"
	contentrepo "notaria-server/intake-api/internal/infrastructure/repository/content"
	"notaria-server/intake-api/internal/interfaces/httpserver"
	"notaria-server/intake-api/internal/interfaces/httpserver/handlers"
)

// @title Intake API
// @version 1.0
// @description Guided intake and site content service for the notaria website
// @BasePath /
type Application struct {
	httpServer *httpserver.HttpServer
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		log:        log,
	}
}

func (a *Application) Start(ctx context.Context) error {
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	db, err := database.Connect(database.Config{
		DSN:             cfg.DatabaseURL,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}

	if err := database.AutoMigrate(ctx, db, log); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	authValidator, err := auth.NewValidator(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize auth validator")
	}

	txDB := transaction.NewDatabase(db)

	catalog := chat.NewRequirementsCatalog()
	conversations := chatrepo.NewConversationRepository(txDB)
	messages := chatrepo.NewMessageRepository(txDB)
	serviceRequests := chatrepo.NewServiceRequestRepository(txDB)

	engine := chat.NewDialogueEngine(catalog, conversations, messages, cfg.StoreTimeout, log)
	recorder := chat.NewIntakeRecorder(catalog, conversations, messages, serviceRequests, txDB, engine, cfg.StoreTimeout, log)

	contentService := content.NewContentService(
		contentrepo.NewServiceRepository(txDB),
		contentrepo.NewBlogPostRepository(txDB),
		contentrepo.NewContactRequestRepository(txDB),
		log,
	)

	handlerProvider := handlers.NewProvider(engine, recorder, catalog, contentService, log)
	httpServer := httpserver.New(cfg, log, handlerProvider, authValidator)
	app := NewApplication(httpServer, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
