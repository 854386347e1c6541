package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/cobanker/corebank/internal/adapter/http"
	"github.com/cobanker/corebank/internal/adapter/http/handler"
	"github.com/cobanker/corebank/internal/adapter/http/middleware"
	postgresRepo "github.com/cobanker/corebank/internal/adapter/repository/postgres"
	redisRepo "github.com/cobanker/corebank/internal/adapter/repository/redis"
	"github.com/cobanker/corebank/internal/infrastructure/auth"
	"github.com/cobanker/corebank/internal/infrastructure/config"
	"github.com/cobanker/corebank/internal/infrastructure/logger"
	"github.com/cobanker/corebank/internal/infrastructure/notify"
	"github.com/cobanker/corebank/internal/infrastructure/postgres"
	"github.com/cobanker/corebank/internal/infrastructure/redis"
	"github.com/cobanker/corebank/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log.Logger = appLogger

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Apply schema
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	retrier := postgresRepo.NewRetrier(appLogger)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	transactionRepo := postgresRepo.NewTransactionRepository(pool)
	customerRepo := postgresRepo.NewCustomerRepository(pool)
	branchRepo := postgresRepo.NewBranchRepository(pool)
	memberRepo := postgresRepo.NewMemberRepository(pool)
	loanRepo := postgresRepo.NewLoanRepository(pool)
	depositRepo := postgresRepo.NewDepositRepository(pool)
	ledgerRepo := postgresRepo.NewLedgerRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()
	numGen := postgresRepo.NewAccountNumberGenerator()
	summaryCache := redisRepo.NewSummaryCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	notifier := notify.NewLogNotifier(appLogger)

	// Initialize use cases
	accountUC := usecase.NewAccountUseCase(txManager, retrier, accountRepo, transactionRepo, customerRepo, branchRepo, idGen, numGen, summaryCache, cfg.SummaryCacheTTL)
	transactionUC := usecase.NewTransactionUseCase(accountUC, transactionRepo, accountRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo, branchRepo, idGen, notifier)
	memberUC := usecase.NewMemberUseCase(memberRepo, customerRepo, idGen)
	loanUC := usecase.NewLoanUseCase(txManager, loanRepo, memberRepo, idGen)
	depositUC := usecase.NewDepositUseCase(txManager, depositRepo, accountRepo, memberRepo, customerRepo, idGen)
	ledgerUC := usecase.NewLedgerUseCase(ledgerRepo)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:     handler.NewAccountHandler(accountUC),
		TransactionHandler: handler.NewTransactionHandler(transactionUC),
		CustomerHandler:    handler.NewCustomerHandler(customerUC),
		MemberHandler:      handler.NewMemberHandler(memberUC),
		LoanHandler:        handler.NewLoanHandler(loanUC),
		DepositHandler:     handler.NewDepositHandler(depositUC),
		LedgerHandler:      handler.NewLedgerHandler(ledgerUC),
		HealthHandler:      handler.NewHealthHandler(pool, redisClient),
		JWTManager:         auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration),
		IdempotencyStore:   idempotencyStore,
		IdempotencyTTL:     cfg.IdempotencyTTL,
		RateLimiter:        middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		Logger:             appLogger,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
