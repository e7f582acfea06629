package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/anyulbade/authlend-api/internal/auth"
	"github.com/anyulbade/authlend-api/internal/config"
	"github.com/anyulbade/authlend-api/internal/database"
	"github.com/anyulbade/authlend-api/internal/handler"
	"github.com/anyulbade/authlend-api/internal/middleware"
	"github.com/anyulbade/authlend-api/internal/repository"
	"github.com/anyulbade/authlend-api/internal/service"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Caller().Logger()

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	database.MigrationsDir = cfg.MigrationsDir
	if cfg.AutoMigrate {
		if err := database.RunMigrations(cfg.DatabaseURL()); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
	}
	if cfg.SeedData {
		if err := database.SeedData(context.Background(), pool); err != nil {
			log.Fatal().Err(err).Msg("failed to seed data")
		}
	}

	tokens, err := auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer)
	if err != nil {
		log.Fatal().Err(err).Msg("JWT_SECRET must be set")
	}

	counter, closeCounter := rateCounter(ctx, cfg)
	defer closeCounter()

	router := handler.NewRouter(routerDeps(pool, cfg, tokens, counter))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}

// rateCounter prefers Redis so limits hold across replicas; an unreachable
// Redis falls back to the in-process counter.
func rateCounter(ctx context.Context, cfg *config.Config) (middleware.Counter, func()) {
	if cfg.RedisAddr == "" {
		log.Info().Msg("rate limiting with in-memory counter")
		return middleware.NewMemoryCounter(), func() {}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, rate limiting with in-memory counter")
		_ = rdb.Close()
		return middleware.NewMemoryCounter(), func() {}
	}

	log.Info().Str("addr", cfg.RedisAddr).Msg("rate limiting with redis")
	return middleware.NewRedisCounter(rdb), func() { _ = rdb.Close() }
}

func routerDeps(pool *pgxpool.Pool, cfg *config.Config, tokens *auth.JWTService, counter middleware.Counter) handler.RouterDeps {
	cardFlagRepo := repository.NewCardFlagRepository(pool)
	limitRepo := repository.NewInstallmentLimitRepository(pool)
	valueTypeRepo := repository.NewValueTypeRepository(pool)
	storeRepo := repository.NewStoreRepository(pool)
	configRepo := repository.NewInterestConfigurationRepository(pool)
	simulationRepo := repository.NewSimulationRepository(pool)

	return handler.RouterDeps{
		DB:               pool,
		Tokens:           tokens,
		RateCounter:      counter,
		SimulationLimit:  cfg.SimulationRateLimit,
		SimulationWindow: cfg.SimulationRateWindow,
		TrustedProxies:   cfg.TrustedProxies,
		Simulations: service.NewSimulationService(
			cardFlagRepo, valueTypeRepo, storeRepo, limitRepo, configRepo, simulationRepo),
		CardFlags:         service.NewCardFlagService(cardFlagRepo),
		InstallmentLimits: service.NewInstallmentLimitService(limitRepo, cardFlagRepo),
		ValueTypes:        service.NewValueTypeService(valueTypeRepo),
		InterestConfigs: service.NewInterestConfigurationService(
			configRepo, cardFlagRepo, storeRepo, valueTypeRepo, limitRepo),
		Stores: service.NewStoreService(storeRepo),
	}
}
