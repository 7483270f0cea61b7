// Package di assembles the application: it loads configuration, constructs
// the AWS clients, and wires repositories, services, and handlers into the
// router. Construction happens once per process; Lambda reuses the container
// across invocations.
package di

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/scheduler"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"fermentlog-backend/application/services"
	"fermentlog-backend/infrastructure/config"
	"fermentlog-backend/infrastructure/objectstore"
	dynamostore "fermentlog-backend/infrastructure/persistence/dynamodb"
	"fermentlog-backend/infrastructure/schedules"
	"fermentlog-backend/interfaces/http/rest"
	"fermentlog-backend/interfaces/http/rest/handlers"
	"fermentlog-backend/interfaces/http/rest/middleware"
	"fermentlog-backend/pkg/auth"
	apperrors "fermentlog-backend/pkg/errors"
	"fermentlog-backend/pkg/observability"
)

// Container holds the constructed application graph.
type Container struct {
	Config *config.Config
	Logger *zap.Logger
	Router *chi.Mux
}

// NewContainer builds the full application graph. The returned cleanup
// flushes buffered logs.
func NewContainer(ctx context.Context) (*Container, func(), error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := provideLogger(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	cleanup := func() {
		_ = logger.Sync()
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	// Storage.
	store := dynamostore.NewStore(dynamodb.NewFromConfig(awsCfg), cfg.DynamoDBTable, cfg.GSI1IndexName, logger)
	repo := dynamostore.NewRepository(store, logger)

	// External collaborators.
	objects := objectstore.NewS3ObjectStore(s3.NewFromConfig(awsCfg), cfg.PhotoBucket)
	reminderScheduler := schedules.NewReminderScheduler(
		scheduler.NewFromConfig(awsCfg),
		cfg.ScheduleGroup,
		cfg.ScheduleTargetArn,
		cfg.ScheduleRoleArn,
		logger,
	)
	metrics := observability.NewMetrics(
		cloudwatch.NewFromConfig(awsCfg),
		"FermentLog/Backend",
		cfg.EnableMetrics,
		logger,
	)

	// Services.
	batchSvc := services.NewBatchService(repo, objects, logger)
	eventSvc := services.NewEventService(repo, repo, logger)
	reminderSvc := services.NewReminderService(repo, repo, reminderScheduler, logger)
	deviceSvc := services.NewDeviceService(repo, logger)
	exportSvc := services.NewExportService(repo, repo, repo, repo, logger)
	publicSvc := services.NewPublicService(repo, logger)

	// HTTP layer.
	errorHandler := apperrors.NewErrorHandler(logger)
	validator, err := provideJWTValidator(cfg)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	authn := middleware.NewAuthenticator(validator, repo, errorHandler, logger)

	router := rest.NewRouter(cfg, rest.Handlers{
		Batches:   handlers.NewBatchHandler(batchSvc, errorHandler, logger),
		Events:    handlers.NewEventHandler(eventSvc, errorHandler, logger),
		Reminders: handlers.NewReminderHandler(reminderSvc, errorHandler, logger),
		Devices:   handlers.NewDeviceHandler(deviceSvc, errorHandler, logger),
		Export:    handlers.NewExportHandler(exportSvc, errorHandler, logger),
		Public:    handlers.NewPublicHandler(publicSvc, errorHandler, logger),
	}, authn, errorHandler, metrics, logger)

	logger.Info("container initialized",
		zap.String("environment", cfg.Environment),
		zap.String("table", cfg.DynamoDBTable),
	)

	return &Container{
		Config: cfg,
		Logger: logger,
		Router: router,
	}, cleanup, nil
}

func provideLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Environment == "production" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}
	if cfg.LogLevel != "" {
		level, err := zap.ParseAtomicLevel(cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
		}
		zapCfg.Level = level
	}
	return zapCfg.Build()
}

// provideJWTValidator returns nil when no secret is configured; in that mode
// identity must arrive via the trusted gateway headers.
func provideJWTValidator(cfg *config.Config) (*auth.JWTValidator, error) {
	if cfg.JWTSecret == "" {
		return nil, nil
	}
	return auth.NewJWTValidator(cfg.JWTSecret, cfg.JWTIssuer)
}
