package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Niharika209/kalakendra-discovery/internal/catalog"
	mongocat "github.com/Niharika209/kalakendra-discovery/internal/catalog/mongo"
	"github.com/Niharika209/kalakendra-discovery/internal/catalog/memory"
	"github.com/Niharika209/kalakendra-discovery/internal/config"
	"github.com/Niharika209/kalakendra-discovery/internal/counter"
	"github.com/Niharika209/kalakendra-discovery/internal/event"
	handler "github.com/Niharika209/kalakendra-discovery/internal/handler/http"
	"github.com/Niharika209/kalakendra-discovery/internal/search"
	"github.com/Niharika209/kalakendra-discovery/internal/sync"
	"github.com/Niharika209/kalakendra-discovery/pkg/health"
	pkgkafka "github.com/Niharika209/kalakendra-discovery/pkg/kafka"
)

// App wires together all dependencies and runs the discovery service.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	mongoCat   *mongocat.Catalog
	scheduler  *sync.Scheduler
	consumers  []*pkgkafka.Consumer
	httpServer *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	// Initialize catalog backend based on configuration.
	var accessor catalog.Accessor
	var mongoCat *mongocat.Catalog
	switch cfg.CatalogBackend {
	case "mongo":
		var err error
		mongoCat, err = mongocat.New(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, fmt.Errorf("init mongo catalog: %w", err)
		}
		accessor = mongoCat.Accessor()
		logger.Info("mongo catalog initialized",
			slog.String("database", cfg.MongoDB),
		)
	default:
		accessor = memory.New().Accessor()
		logger.Info("in-memory catalog initialized")
	}

	// Build the service layer.
	searchService := search.NewService(accessor, logger)
	propagator := counter.NewPropagator(accessor, logger)

	// Background jobs.
	jobs := sync.NewJobs(accessor, logger, cfg.StalenessWindow, cfg.StalenessThreshold)
	reindexer := sync.NewReindexer(accessor, logger, cfg.ReindexBatchSize, cfg.ReindexBatchPause)

	scheduler := sync.NewScheduler(logger)
	scheduler.Register(sync.Job{
		Name:     sync.JobAvailabilityRefresh,
		Interval: cfg.AvailabilityInterval,
		Run:      jobs.RefreshAvailability,
	})
	scheduler.Register(sync.Job{
		Name:     sync.JobLifecycleTransition,
		Interval: cfg.LifecycleInterval,
		Run:      jobs.TransitionWorkshops,
	})
	scheduler.Register(sync.Job{
		Name:     sync.JobPopularityRecompute,
		Interval: cfg.PopularityInterval,
		Run:      jobs.RecomputePopularity,
	})
	scheduler.Register(sync.Job{
		Name:     sync.JobStalenessCheck,
		Interval: cfg.StalenessInterval,
		Run:      jobs.CheckStaleness,
	})
	// Full reindex is expensive and only runs on demand.
	scheduler.Register(sync.Job{
		Name: sync.JobFullReindex,
		Run:  reindexer.Run,
	})

	// Kafka consumers for booking and review events.
	var consumers []*pkgkafka.Consumer
	if cfg.KafkaEnabled {
		eventConsumer := event.NewConsumer(propagator, logger)
		for _, topic := range event.Topics() {
			consumerCfg := pkgkafka.ConsumerConfig{
				Brokers:  cfg.KafkaBrokers,
				GroupID:  cfg.KafkaGroupID,
				Topic:    topic,
				MinBytes: 1,
				MaxBytes: 10e6, // 10 MB
			}
			c := pkgkafka.NewConsumer(consumerCfg, eventConsumer.Handle, logger)
			consumers = append(consumers, c)
		}
		logger.Info("kafka consumers initialized",
			slog.Any("brokers", cfg.KafkaBrokers),
			slog.Int("topic_count", len(consumers)),
		)
	}

	// Health checks.
	healthHandler := health.NewHandler()
	if mongoCat != nil {
		healthHandler.Register("mongodb", mongoCat.Ping)
	}
	if cfg.KafkaEnabled {
		healthHandler.Register("kafka", func(ctx context.Context) error {
			return pkgkafka.PingBrokers(ctx, cfg.KafkaBrokers)
		})
	}

	// HTTP router.
	router := handler.NewRouter(searchService, scheduler, healthHandler, cfg.Environment, logger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:        cfg,
		logger:     logger,
		mongoCat:   mongoCat,
		scheduler:  scheduler,
		consumers:  consumers,
		httpServer: httpServer,
	}, nil
}

// Run starts the scheduler, Kafka consumers, and HTTP server, blocking until
// the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1+len(a.consumers))

	if a.cfg.SchedulerEnabled {
		a.scheduler.Start(ctx)
		a.logger.Info("job scheduler started")
	}

	for _, c := range a.consumers {
		c := c
		go func() {
			if err := c.Start(ctx); err != nil {
				errCh <- fmt.Errorf("kafka consumer: %w", err)
			}
		}()
	}

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	if a.cfg.SchedulerEnabled {
		a.scheduler.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	for _, c := range a.consumers {
		if err := c.Close(); err != nil {
			a.logger.Error("kafka consumer close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if a.mongoCat != nil {
		if err := a.mongoCat.Close(shutdownCtx); err != nil {
			a.logger.Error("mongo close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
