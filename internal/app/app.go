// Package app wires together all dependencies and runs the storefront server.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/wali-jeweller/storefront/internal/auth"
	"github.com/wali-jeweller/storefront/internal/cart"
	"github.com/wali-jeweller/storefront/internal/config"
	"github.com/wali-jeweller/storefront/internal/embedding"
	"github.com/wali-jeweller/storefront/internal/event"
	handler "github.com/wali-jeweller/storefront/internal/handler/http"
	"github.com/wali-jeweller/storefront/internal/repository/postgres"
	"github.com/wali-jeweller/storefront/internal/service"
	"github.com/wali-jeweller/storefront/internal/snapshot"
	"github.com/wali-jeweller/storefront/internal/storage/s3"
	"github.com/wali-jeweller/storefront/internal/wishlist"
	"github.com/wali-jeweller/storefront/migrations"
	"github.com/wali-jeweller/storefront/pkg/database"
	"github.com/wali-jeweller/storefront/pkg/health"
	pkgkafka "github.com/wali-jeweller/storefront/pkg/kafka"
	"github.com/wali-jeweller/storefront/pkg/tracing"
)

// App wires together all dependencies and runs the storefront server.
type App struct {
	cfg    *config.Config
	logger *slog.Logger

	pool            *pgxpool.Pool
	redisClient     *redis.Client
	producer        *pkgkafka.Producer
	embeddingWorker *embedding.Worker
	httpServer      *http.Server
	tracingShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tracingShutdown, err := tracing.InitTracer(ctx, cfg.Tracing())
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	pgCfg := cfg.Postgres()
	pool, err := database.NewPostgresPool(ctx, pgCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	logger.Info("connected to PostgreSQL",
		slog.String("host", cfg.PostgresHost),
		slog.String("database", cfg.PostgresDB),
	)

	if err := database.RunMigrations(ctx, pool, migrations.FS, ".", logger); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("database migrations completed")
	database.RegisterPoolMetrics(pool, "storefront")

	redisClient, err := database.NewRedisClient(ctx, cfg.Redis())
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to Redis", slog.String("addr", cfg.Redis().Addr()))

	// Cart and wishlist are hydrated once at startup; they stay in memory
	// and write a snapshot after every mutation.
	snapshots := snapshot.NewRedisStore(redisClient, cfg.SnapshotTTL())
	cartStore := cart.NewStore(snapshots, logger)
	cartStore.Hydrate(ctx)
	wishlistStore := wishlist.NewStore(snapshots, logger)
	wishlistStore.Hydrate(ctx)

	// With Kafka disabled the event producer is created without a backend
	// and publishing becomes a no-op.
	var producer *pkgkafka.Producer
	eventProducer := event.NewProducer(nil, logger)
	if cfg.KafkaEnabled {
		producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		eventProducer = event.NewProducer(producer, logger)
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	}

	store, err := s3.New(ctx, s3.Config{
		Endpoint:      cfg.S3Endpoint,
		AccessKey:     cfg.S3AccessKey,
		SecretKey:     cfg.S3SecretKey,
		Bucket:        cfg.S3Bucket,
		UseSSL:        cfg.S3UseSSL,
		PublicBaseURL: cfg.S3PublicBaseURL,
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("connect to object storage: %w", err)
	}

	// Repositories and services.
	productRepo := postgres.NewProductRepository(pool)
	imageRepo := postgres.NewImageRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	collectionRepo := postgres.NewCollectionRepository(pool)
	sizeRepo := postgres.NewSizeRepository(pool)
	pageRepo := postgres.NewPageRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	tokens := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiry())

	productService := service.NewProductService(productRepo, imageRepo, eventProducer, logger)
	productService.SetRelatedTuning(cfg.RelatedThreshold, cfg.RelatedLimit)
	categoryService := service.NewCategoryService(categoryRepo, logger)
	collectionService := service.NewCollectionService(collectionRepo, logger)
	sizeService := service.NewSizeService(sizeRepo, logger)
	contentService := service.NewContentService(pageRepo, logger)
	mediaService := service.NewMediaService(store, logger)
	checkoutService := service.NewCheckoutService(cartStore, eventProducer, logger)
	userService := service.NewUserService(userRepo, tokens, logger)

	// Embedding refresh worker, driven by product.updated events.
	var embeddingWorker *embedding.Worker
	if cfg.KafkaEnabled {
		embedder := embedding.NewClient(embedding.ClientConfig{
			BaseURL: cfg.EmbeddingsBaseURL,
			APIKey:  cfg.EmbeddingsAPIKey,
			Model:   cfg.EmbeddingsModel,
		}, logger)
		embeddingWorker = embedding.NewWorker(cfg.KafkaBrokers, embedder, productRepo, logger)
	}

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	healthHandler.Register("redis", func(ctx context.Context) error {
		return redisClient.Ping(ctx).Err()
	})
	if cfg.KafkaEnabled {
		healthHandler.Register("kafka", func(ctx context.Context) error {
			return pkgkafka.PingBrokers(ctx, cfg.KafkaBrokers)
		})
	}

	router := handler.NewRouter(handler.RouterDeps{
		Cart:      handler.NewCartHandler(cartStore, eventProducer, logger),
		Wishlist:  handler.NewWishlistHandler(wishlistStore, eventProducer, logger),
		Catalog:   handler.NewCatalogHandler(productService, categoryService, collectionService, sizeService, contentService, logger),
		Checkout:  handler.NewCheckoutHandler(checkoutService, logger),
		Auth:      handler.NewAuthHandler(userService, logger),
		Products:  handler.NewAdminProductHandler(productService, logger),
		AdminCat:  handler.NewAdminCatalogHandler(categoryService, collectionService, sizeService, logger),
		Pages:     handler.NewAdminPageHandler(contentService, logger),
		Media:     handler.NewAdminMediaHandler(mediaService, logger),
		Health:    healthHandler,
		Validator: tokens.Middleware(),
		LoginRPS:  cfg.LoginRPS,
		Logger:    logger,
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:             cfg,
		logger:          logger,
		pool:            pool,
		redisClient:     redisClient,
		producer:        producer,
		embeddingWorker: embeddingWorker,
		httpServer:      httpServer,
		tracingShutdown: tracingShutdown,
	}, nil
}

// Run starts the HTTP server and the embedding worker, blocking until the
// context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	if a.embeddingWorker != nil {
		go func() {
			if err := a.embeddingWorker.Run(ctx); err != nil {
				a.logger.Error("embedding worker stopped", slog.String("error", err.Error()))
			}
		}()
	}

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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if a.embeddingWorker != nil {
		if err := a.embeddingWorker.Close(); err != nil {
			a.logger.Error("embedding worker close error", slog.String("error", err.Error()))
		}
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		}
	}

	if err := a.redisClient.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
	}

	a.pool.Close()

	if err := a.tracingShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracing shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
