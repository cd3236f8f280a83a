package main

import (
	"context"
	"log"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/fastygo/choreboard/api/handler"
	"github.com/fastygo/choreboard/internal/config"
	"github.com/fastygo/choreboard/internal/infrastructure/buffer"
	"github.com/fastygo/choreboard/internal/infrastructure/monitor"
	redisInfra "github.com/fastygo/choreboard/internal/infrastructure/redis"
	"github.com/fastygo/choreboard/internal/middleware"
	"github.com/fastygo/choreboard/internal/router"
	"github.com/fastygo/choreboard/internal/services"
	"github.com/fastygo/choreboard/internal/services/lifecycle"
	"github.com/fastygo/choreboard/internal/storage"
	"github.com/fastygo/choreboard/pkg/httpcontext"
	"github.com/fastygo/choreboard/pkg/logger"
	redisRepo "github.com/fastygo/choreboard/repository/redis"
	"github.com/fastygo/choreboard/usecase"
	participantUC "github.com/fastygo/choreboard/usecase/participant"
	reminderUC "github.com/fastygo/choreboard/usecase/reminder"
	summaryUC "github.com/fastygo/choreboard/usecase/summary"
	taskUC "github.com/fastygo/choreboard/usecase/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:      cfg.Logger.Level,
		Encoding:   cfg.Logger.Encoding,
		File:       cfg.Logger.File,
		MaxSizeMB:  cfg.Logger.MaxSizeMB,
		MaxBackups: cfg.Logger.MaxBackups,
		MaxAgeDays: cfg.Logger.MaxAgeDays,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	store, err := storage.Open(appCtx, cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("store unavailable", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	manager.Register("store", func(ctx context.Context) error {
		return store.Close()
	})

	mon := monitor.New(cfg.Monitor.Interval, zapLogger)
	mon.Add("store", true, store.Check)

	var publisher usecase.EventPublisher = usecase.NopPublisher{}
	if cfg.RedisEnabled() {
		redisClient, err := redisInfra.NewClient(appCtx, cfg.Redis)
		if err != nil {
			zapLogger.Fatal("redis connection failed", zap.Error(err))
		}
		manager.Register("redis", func(ctx context.Context) error {
			return redisClient.Close()
		})
		mon.Add("redis", false, monitor.Redis(redisClient))

		outbox, err := buffer.Open(cfg.Outbox.Path)
		if err != nil {
			zapLogger.Fatal("failed to open outbox", zap.Error(err))
		}
		manager.Register("outbox", func(ctx context.Context) error {
			return outbox.Close()
		})
		mon.Add("outbox", false, monitor.Pinger(outbox))

		relay := services.NewEventRelay(
			outbox,
			redisRepo.NewEventPublisher(redisClient, cfg.Redis.ChannelPrefix),
			mon.Service("redis"),
			zapLogger,
			services.RelayConfig{
				Interval:   cfg.Outbox.Interval,
				MaxRetries: cfg.Outbox.MaxRetries,
				Retention:  cfg.Outbox.Retention,
			},
		)
		relay.Start()
		manager.Register("event_relay", func(ctx context.Context) error {
			relay.Stop(ctx)
			return nil
		})
		publisher = relay
	} else {
		zapLogger.Info("REDIS_URL not set, events are not published")
	}

	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	taskUseCase := taskUC.New(
		store.Tasks,
		store.Participants,
		store.Completions,
		cfg.Location,
		zapLogger,
		taskUC.WithPublisher(publisher),
	)
	summaryUseCase := summaryUC.New(store.Participants, store.Completions, cfg.Location, zapLogger)
	participantUseCase := participantUC.New(store.Participants, zapLogger)

	if cfg.Reminder.Enabled {
		reminderUseCase := reminderUC.New(taskUseCase, publisher, cfg.Location, zapLogger)
		job, err := services.NewReminderJob(cfg.Reminder.Cron, cfg.Location, reminderUseCase, zapLogger)
		if err != nil {
			zapLogger.Fatal("invalid reminder schedule", zap.Error(err))
		}
		job.Start()
		manager.Register("reminder_job", func(ctx context.Context) error {
			job.Stop(ctx)
			return nil
		})
	}

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Task:        apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, zapLogger),
		Summary:     apiHandler.NewSummaryHandler(summaryUseCase, ctxAdapter, zapLogger),
		Participant: apiHandler.NewParticipantHandler(participantUseCase, ctxAdapter, zapLogger),
		Health:      apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	r := router.New(handlers, router.Options{Metrics: cfg.HTTP.EnableMetrics})

	server := &fasthttp.Server{
		Handler:      router.Chain(r.Handler, middleware.AccessLog(zapLogger), middleware.Recover(zapLogger)),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Concurrency:  cfg.HTTP.MaxConn,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started",
			zap.String("address", cfg.Address()),
			zap.String("store", store.Driver),
			zap.String("timezone", cfg.Location.String()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.ShutdownWithContext(ctx)
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
