package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/cobanker/corebank/internal/adapter/http/handler"
	"github.com/cobanker/corebank/internal/adapter/http/middleware"
	"github.com/cobanker/corebank/internal/infrastructure/auth"
	"github.com/cobanker/corebank/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler     *handler.AccountHandler
	TransactionHandler *handler.TransactionHandler
	CustomerHandler    *handler.CustomerHandler
	MemberHandler      *handler.MemberHandler
	LoanHandler        *handler.LoanHandler
	DepositHandler     *handler.DepositHandler
	LedgerHandler      *handler.LedgerHandler
	HealthHandler      *handler.HealthHandler

	JWTManager       *auth.JWTManager
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	RateLimiter      *middleware.RateLimiter
	Logger           zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recovery)
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Unauthenticated operational endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(cfg.JWTManager))

		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Accounts
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Open)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Get("/{id}/summary", cfg.AccountHandler.Summary)
			r.Get("/{id}/transactions", cfg.TransactionHandler.ListByAccount)
			r.Get("/number/{number}", cfg.AccountHandler.GetByNumber)
			r.Get("/customer/{customerID}", cfg.AccountHandler.ListByCustomer)
			r.Patch("/{id}/balance", cfg.AccountHandler.Movement)
			r.Patch("/{id}/activate", cfg.AccountHandler.Activate)
			r.Patch("/{id}/suspend", cfg.AccountHandler.Suspend)
			r.Patch("/{id}/close", cfg.AccountHandler.Close)
		})

		// Transactions
		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", cfg.TransactionHandler.Create)
			r.Get("/", cfg.TransactionHandler.List)
			r.Get("/{id}", cfg.TransactionHandler.Get)
		})

		// Customers
		r.Route("/customers", func(r chi.Router) {
			r.Post("/", cfg.CustomerHandler.Create)
			r.Get("/", cfg.CustomerHandler.List)
			r.Get("/{id}", cfg.CustomerHandler.Get)
			r.Put("/{id}", cfg.CustomerHandler.Update)
			r.Patch("/{id}/deactivate", cfg.CustomerHandler.Deactivate)
		})

		// Members
		r.Route("/members", func(r chi.Router) {
			r.Post("/", cfg.MemberHandler.Create)
			r.Get("/", cfg.MemberHandler.List)
			r.Get("/{id}", cfg.MemberHandler.Get)
			r.Put("/{id}", cfg.MemberHandler.Update)
		})

		// Loans
		r.Route("/loans", func(r chi.Router) {
			r.Post("/", cfg.LoanHandler.Create)
			r.Get("/", cfg.LoanHandler.List)
			r.Get("/{id}", cfg.LoanHandler.Get)
			r.Put("/{id}/status", cfg.LoanHandler.UpdateStatus)
			r.Post("/{id}/guarantors", cfg.LoanHandler.AddGuarantor)
			r.Get("/{id}/guarantors", cfg.LoanHandler.ListGuarantors)
			r.Post("/{id}/repayments", cfg.LoanHandler.RecordRepayment)
			r.Get("/{id}/repayments", cfg.LoanHandler.ListRepayments)
		})

		// Recurring deposits
		r.Route("/recurring-deposits", func(r chi.Router) {
			r.Post("/", cfg.DepositHandler.Create)
			r.Get("/", cfg.DepositHandler.ListByMember)
			r.Get("/{id}", cfg.DepositHandler.Get)
			r.Get("/{id}/installments", cfg.DepositHandler.ListInstallments)
			r.Post("/{id}/payments", cfg.DepositHandler.PayInstallment)
			r.Get("/{id}/penalty", cfg.DepositHandler.Penalty)
			r.Post("/{id}/close", cfg.DepositHandler.Close)
		})

		// Ledger
		r.Get("/ledger/consistency", cfg.LedgerHandler.Consistency)
	})

	return r
}
