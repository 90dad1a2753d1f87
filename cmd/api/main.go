package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/greenhollow/leafmarket-pricing/api/routes"
	cartsvc "github.com/greenhollow/leafmarket-pricing/internal/cart"
	"github.com/greenhollow/leafmarket-pricing/internal/discounts"
	"github.com/greenhollow/leafmarket-pricing/internal/promotions"
	"github.com/greenhollow/leafmarket-pricing/pkg/config"
	"github.com/greenhollow/leafmarket-pricing/pkg/db"
	"github.com/greenhollow/leafmarket-pricing/pkg/logger"
	"github.com/greenhollow/leafmarket-pricing/pkg/metrics"
	"github.com/greenhollow/leafmarket-pricing/pkg/migrate"
	"github.com/greenhollow/leafmarket-pricing/pkg/redis"
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

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	promotionMetrics := metrics.NewPromotionMetrics(registry)

	discountService, err := discounts.NewService(discounts.NewRepository(dbClient.DB()), dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create discount service", err)
		os.Exit(1)
	}

	cartService, err := cartsvc.NewService(cartsvc.NewRepository(dbClient.DB()), discountService)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	marketplaceOpts := []promotions.Option{
		promotions.WithHTTPClient(&http.Client{Timeout: cfg.Marketplace.Timeout}),
	}
	if cfg.Marketplace.APIKey != "" {
		marketplaceOpts = append(marketplaceOpts, promotions.WithAPIKey(cfg.Marketplace.APIKey))
	}
	marketplaceClient, err := promotions.NewClient(cfg.Marketplace.BaseURL, marketplaceOpts...)
	if err != nil {
		logg.Error(context.Background(), "failed to create marketplace client", err)
		os.Exit(1)
	}

	promotionService, err := promotions.NewService(
		marketplaceClient,
		redisClient,
		cfg.Promotions.CacheTTL,
		promotionMetrics,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create promotion service", err)
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
		Addr:              addr,
		ReadHeaderTimeout: 10 * time.Second,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			discountService,
			cartService,
			promotionService,
			registry,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
