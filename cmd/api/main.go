package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/greenbasket/farmmarket-backend/api/routes"
	"github.com/greenbasket/farmmarket-backend/internal/cart"
	"github.com/greenbasket/farmmarket-backend/internal/catalog"
	"github.com/greenbasket/farmmarket-backend/internal/checkout"
	"github.com/greenbasket/farmmarket-backend/internal/detection"
	"github.com/greenbasket/farmmarket-backend/internal/history"
	"github.com/greenbasket/farmmarket-backend/internal/identity"
	"github.com/greenbasket/farmmarket-backend/internal/orders"
	"github.com/greenbasket/farmmarket-backend/internal/settings"
	"github.com/greenbasket/farmmarket-backend/pkg/config"
	"github.com/greenbasket/farmmarket-backend/pkg/db"
	"github.com/greenbasket/farmmarket-backend/pkg/kvstore"
	"github.com/greenbasket/farmmarket-backend/pkg/logger"
	"github.com/greenbasket/farmmarket-backend/pkg/metrics"
	"github.com/greenbasket/farmmarket-backend/pkg/migrate"
	"github.com/greenbasket/farmmarket-backend/pkg/redis"
	"github.com/greenbasket/farmmarket-backend/pkg/uploads"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	store, closeStore, err := buildKVStore(context.Background(), cfg, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap cart store", err)
		os.Exit(1)
	}
	defer closeStore()

	uploadStore, err := uploads.New(cfg.Uploads.Dir, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap upload store", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)
	detectionMetrics := metrics.NewDetectionMetrics(registry)

	identityService, err := identity.NewService(identity.NewRepository(dbClient.DB()), cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create identity service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalog.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	orderService, err := orders.NewService(orders.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	cartManager, err := cart.NewManager(store, cart.NewLogNotifier(logg))
	if err != nil {
		logg.Error(context.Background(), "failed to create cart manager", err)
		os.Exit(1)
	}

	checkoutService, err := checkout.NewService(cartManager, orderService, catalogService, cfg.FeatureFlags.StrictCheckout)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	settingsService, err := settings.NewService(settings.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create settings service", err)
		os.Exit(1)
	}

	historyService, err := history.NewService(store)
	if err != nil {
		logg.Error(context.Background(), "failed to create history service", err)
		os.Exit(1)
	}

	detectionClient, err := detection.NewClient(cfg.AI)
	if err != nil {
		logg.Error(context.Background(), "failed to create detection client", err)
		os.Exit(1)
	}
	detectionService, err := detection.NewService(detectionClient, uploadStore, detectionMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create detection service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:    cfg,
			Logger:    logg,
			DB:        dbClient,
			Gatherer:  registry,
			HTTP:      httpMetrics,
			Uploads:   uploadStore,
			Identity:  identityService,
			Catalog:   catalogService,
			Orders:    orderService,
			Carts:     cartManager,
			Checkout:  checkoutService,
			Settings:  settingsService,
			History:   historyService,
			Detection: detectionService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

// buildKVStore picks the durable key-value backend for carts and search
// history. Redis when configured, otherwise files under the cart dir.
func buildKVStore(ctx context.Context, cfg *config.Config, logg *logger.Logger) (kvstore.Store, func(), error) {
	if cfg.Cart.Backend == "redis" && cfg.Redis.Configured() {
		redisClient, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return nil, nil, err
		}
		closeStore := func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(ctx, "error closing redis", err)
			}
		}
		return kvstore.NewRedis(redisClient), closeStore, nil
	}

	fileStore, err := kvstore.NewFile(cfg.Cart.FileDir)
	if err != nil {
		return nil, nil, err
	}
	return fileStore, func() {}, nil
}
