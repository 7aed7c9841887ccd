package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/senyabanana/rfq-service/internal/cache"
	"github.com/senyabanana/rfq-service/internal/db"
	"github.com/senyabanana/rfq-service/internal/handlers"
	"github.com/senyabanana/rfq-service/internal/notify"
	"github.com/senyabanana/rfq-service/internal/repository"
	"github.com/senyabanana/rfq-service/internal/router"
	"github.com/senyabanana/rfq-service/internal/router/config"
	"github.com/senyabanana/rfq-service/internal/services"
	"github.com/senyabanana/rfq-service/internal/storage"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

const requestTimeout = 5 * time.Second

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot load config")
	}

	runDBMigration(logger, cfg.MigrationURL, cfg.PostgresConn)

	dbPool, err := db.InitDb(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("error initializing database")
	}
	defer dbPool.Close()

	var revalidator cache.Revalidator = cache.NoopRevalidator{}
	var notifier notify.Notifier = notify.NoopNotifier{}
	var asynqServer *asynq.Server

	if cfg.RedisAddr != "" {
		redisClient, err := cache.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Fatal().Err(err).Msg("error connecting to redis")
		}
		defer redisClient.Close()
		revalidator = cache.NewRedisRevalidator(redisClient, logger)

		redisOpt := asynq.RedisClientOpt{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB}
		asynqClient := asynq.NewClient(redisOpt)
		defer asynqClient.Close()
		notifier = notify.NewAsynqNotifier(asynqClient)
		asynqServer = asynq.NewServer(redisOpt, asynq.Config{Concurrency: 5})
	} else {
		logger.Warn().Msg("redis not configured, view revalidation and notifications are disabled")
	}

	var fileStore storage.FileStore = storage.NoopStore{}
	if cfg.S3Bucket != "" {
		s3Store, err := storage.NewS3Store(context.Background(), cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("error initializing object storage")
		}
		fileStore = s3Store
	} else {
		logger.Warn().Msg("object storage not configured, attachment uploads are disabled")
	}

	accountRepo := repository.NewPostgresAccountRepository(dbPool)
	quoteRepo := repository.NewPostgresQuoteRepository(dbPool)
	bidRepo := repository.NewPostgresBidRepository(dbPool)
	projectRepo := repository.NewPostgresProjectRepository(dbPool)
	kickoffRepo := repository.NewPostgresKickoffRepository(dbPool)
	messageRepo := repository.NewPostgresMessageRepository(dbPool)
	attachmentRepo := repository.NewPostgresAttachmentRepository(dbPool)

	jwtTTL := time.Duration(cfg.JWTTTLMinutes) * time.Minute
	accountService := services.NewAccountService(accountRepo, cfg.JWTSecret, jwtTTL, logger)
	quoteService := services.NewQuoteService(quoteRepo, logger)
	bidService := services.NewBidService(bidRepo, quoteRepo, logger)
	awardService := services.NewAwardService(quoteRepo, bidRepo, accountRepo, projectRepo, revalidator, notifier, logger)
	kickoffService := services.NewKickoffService(kickoffRepo, quoteRepo, logger)
	projectService := services.NewProjectService(projectRepo, quoteRepo, logger)
	messageService := services.NewMessageService(messageRepo, quoteRepo, bidRepo, logger)
	attachmentService := services.NewAttachmentService(attachmentRepo, quoteRepo, fileStore, logger)

	routes := router.InitRoutes(router.Handlers{
		Account:    handlers.NewAccountHandler(accountService, logger, requestTimeout),
		Quote:      handlers.NewQuoteHandler(quoteService, logger, requestTimeout),
		Bid:        handlers.NewBidHandler(bidService, logger, requestTimeout),
		Award:      handlers.NewAwardHandler(awardService, logger, requestTimeout),
		Kickoff:    handlers.NewKickoffHandler(kickoffService, logger, requestTimeout),
		Project:    handlers.NewProjectHandler(projectService, logger, requestTimeout),
		Message:    handlers.NewMessageHandler(messageService, logger, requestTimeout),
		Attachment: handlers.NewAttachmentHandler(attachmentService, logger, requestTimeout),
	}, cfg.JWTSecret)

	if asynqServer != nil {
		sender := notify.NewSMTPSender(cfg, logger)
		taskMux := asynq.NewServeMux()
		taskMux.Handle(notify.TypeWinnerNotification, notify.NewWinnerNotificationHandler(sender, logger))
		go func() {
			if err := asynqServer.Run(taskMux); err != nil {
				logger.Fatal().Err(err).Msg("notification worker failed")
			}
		}()
	}

	logger.Info().Str("addr", cfg.ServerAddress).Msg("server is listening")
	if err := http.ListenAndServe(cfg.ServerAddress, routes); err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
}

func runDBMigration(logger zerolog.Logger, migrationURL string, dbSource string) {
	migration, err := migrate.New(migrationURL, dbSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create a new migrate instance")
	}

	if err = migration.Up(); err != nil && err != migrate.ErrNoChange {
		logger.Fatal().Err(err).Msg("failed to run migrate up")
	}
	logger.Info().Msg("db migrated successfully")
}
