package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/internhub/backend/api/handler"
	"github.com/internhub/backend/internal/config"
	"github.com/internhub/backend/internal/infrastructure/monitor"
	"github.com/internhub/backend/internal/infrastructure/outbox"
	pgInfra "github.com/internhub/backend/internal/infrastructure/postgres"
	redisInfra "github.com/internhub/backend/internal/infrastructure/redis"
	"github.com/internhub/backend/internal/middleware"
	redisNotifier "github.com/internhub/backend/internal/notifier/redis"
	"github.com/internhub/backend/internal/router"
	"github.com/internhub/backend/internal/services"
	"github.com/internhub/backend/internal/services/lifecycle"
	"github.com/internhub/backend/pkg/httpcontext"
	"github.com/internhub/backend/pkg/logger"
	"github.com/internhub/backend/repository/postgres"
	applicationUC "github.com/internhub/backend/usecase/applicationflow"
	interviewUC "github.com/internhub/backend/usecase/interview"
	taskUC "github.com/internhub/backend/usecase/taskflow"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(appCtx, cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	outboxStore, err := outbox.Open(cfg.Notifications.OutboxPath, "outbox")
	if err != nil {
		zapLogger.Fatal("failed to open notification outbox", zap.Error(err))
	}
	manager.Register("outbox", func(ctx context.Context) error {
		return outboxStore.Close()
	})

	mon := monitor.New(pool, redisClient, outboxStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	applicationRepo := postgres.NewApplicationRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	interviewRepo := postgres.NewInterviewRepository(pool)

	publisher := redisNotifier.NewNotifier(redisClient, cfg.Notifications.Stream)

	outboxProcessor := services.NewOutboxProcessor(
		outboxStore,
		mon,
		publisher,
		zapLogger,
		services.ProcessorConfig{
			Interval:   cfg.Notifications.DrainInterval,
			BatchSize:  50,
			MaxRetries: cfg.Notifications.MaxRetry,
		},
	)
	outboxProcessor.Start()
	manager.Register("outbox_processor", func(ctx context.Context) error {
		outboxProcessor.Stop(ctx)
		return nil
	})

	notifier := services.NewNotifyBridge(publisher, outboxProcessor, zapLogger)

	applicationUseCase := applicationUC.New(applicationRepo, notifier, zapLogger)
	interviewUseCase := interviewUC.New(applicationRepo, interviewRepo, notifier, zapLogger)
	taskUseCase := taskUC.New(taskRepo, applicationRepo, zapLogger)

	reminder := services.NewReminderSweep(
		interviewUseCase,
		applicationRepo,
		notifier,
		zapLogger,
		services.ReminderConfig{
			Schedule: cfg.Reminder.Schedule,
			Window:   cfg.Reminder.Window,
		},
	)
	reminder.Start()
	manager.Register("reminder_sweep", func(ctx context.Context) error {
		reminder.Stop(ctx)
		return nil
	})

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Application: apiHandler.NewApplicationHandler(applicationUseCase, interviewUseCase, ctxAdapter, zapLogger),
		Task:        apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, zapLogger),
		Health:      apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(cfg.JWT.Secret, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
