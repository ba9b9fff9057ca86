package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"craftsmatch-backend/config"
	"craftsmatch-backend/internal/delivery/http/middleware"
	v1 "craftsmatch-backend/internal/delivery/http/v1"
	"craftsmatch-backend/internal/infrastructure/cache"
	"craftsmatch-backend/internal/infrastructure/ratelimit"
	pgrepo "craftsmatch-backend/internal/repository/postgres"
	"craftsmatch-backend/internal/shipping"
	"craftsmatch-backend/internal/usecase"
	"craftsmatch-backend/pkg/logger"
	"craftsmatch-backend/pkg/utils"

	"github.com/NYTimes/gziphandler"
	"golang.org/x/time/rate"
)

const version = "1.0.0"

func main() {
	cfg := config.LoadConfig()
	utils.SetSecret(cfg.JWTSecret)

	// Initialize Logger
	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Get()

	// Initialize Database
	pgxPool, err := pgrepo.NewPgxPool(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pgxPool.Close()
	log.Info().Msg("Successfully connected to PostgreSQL")

	// Initialize Repositories
	userRepo := pgrepo.NewUserRepository(pgxPool)
	productRepo := pgrepo.NewProductRepository(pgxPool)
	orderRepo := pgrepo.NewOrderRepository(pgxPool)
	sampleRepo := pgrepo.NewSampleRepository(pgxPool)
	statsRepo := pgrepo.NewStatsRepository(pgxPool)
	txManager := pgrepo.NewTransactionManager(pgxPool)

	// Shipping rate table
	var table *shipping.Table
	if cfg.ShippingRatesFile != "" {
		table, err = shipping.LoadTable(cfg.ShippingRatesFile)
		if err != nil {
			log.Fatal().Err(err).Str("file", cfg.ShippingRatesFile).Msg("Failed to load shipping rates")
		}
		log.Info().Str("file", cfg.ShippingRatesFile).Msg("Loaded shipping rate table")
	}
	calc, err := shipping.NewCalculator(table)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid shipping rate table")
	}

	// Initialize Cache (In-Memory)
	// Default expiration 30m, cleanup every 60m
	memCache := cache.NewMemoryCache(30*time.Minute, 60*time.Minute)

	// --- Modules Initialization ---
	profileUC := usecase.NewProfileUsecase(userRepo, memCache)
	catalogUC := usecase.NewCatalogUsecase(productRepo, orderRepo, userRepo, memCache, cfg)
	shippingUC := usecase.NewShippingUsecase(calc, catalogUC)
	orderUC := usecase.NewOrderUsecase(orderRepo, productRepo, calc, txManager, memCache, cfg)
	sampleUC := usecase.NewSampleUsecase(sampleRepo, productRepo, calc, memCache)
	statsUC := usecase.NewStatsUsecase(statsRepo, memCache, cfg)

	// Set up Router
	mux := http.NewServeMux()
	v1.RegisterRoutes(mux, v1.Handlers{
		Profile:  v1.NewProfileHandler(profileUC),
		Catalog:  v1.NewCatalogHandler(catalogUC),
		Shipping: v1.NewShippingHandler(shippingUC),
		Config:   v1.NewConfigHandler(memCache, shippingUC),
		Order:    v1.NewOrderHandler(orderUC),
		Sample:   v1.NewSampleHandler(sampleUC),
		Stats:    v1.NewStatsHandler(statsUC),
	}, profileUC)

	// Health Check
	healthHandler := func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pgxPool.Ping(ctx); err != nil {
			utils.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "db": "unreachable"})
			return
		}
		utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok", "db": "connected"})
	}
	mux.HandleFunc("GET /api/v1/health", healthHandler)
	mux.HandleFunc("GET /health", healthHandler) // Support root health check for Load Balancers

	// Rate Limiter: shared fixed window in Redis when configured, else per-process token buckets
	var limiter ratelimit.Limiter
	if cfg.RedisAddr != "" {
		perWindow := int64(cfg.RateLimitRPS*cfg.RateLimitWindow.Seconds()) + int64(cfg.RateLimitBurst)
		redisLimiter := ratelimit.NewRedisLimiter(cfg.RedisAddr, perWindow, cfg.RateLimitWindow)
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisLimiter.Ping(pingCtx); err != nil {
			log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("Failed to connect to Redis")
		}
		cancel()
		limiter = redisLimiter
		log.Info().Str("addr", cfg.RedisAddr).Int64("per_window", perWindow).Msg("Using Redis rate limiter")
	} else {
		// cleanup every minute, TTL 3 minutes
		limiter = ratelimit.NewMemoryLimiter(
			context.Background(),
			rate.Limit(cfg.RateLimitRPS),
			cfg.RateLimitBurst,
			time.Minute,
			3*time.Minute,
		)
	}

	// Apply CORS (with config injection), Request Logger, Rate Limit, and Gzip
	handler := middleware.NewCORSMiddleware(cfg)(mux)
	handler = middleware.RequestLogger(handler)
	handler = middleware.RateLimit(limiter)(handler)
	handler = gziphandler.GzipHandler(handler)

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful Shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	logger.ServiceStart("craftsmatch-api", version, cfg.Port)

	// Wait for interrupt signal via channel
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	limiter.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.ServiceStop("craftsmatch-api")
}
