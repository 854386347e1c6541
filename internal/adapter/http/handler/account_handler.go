package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cobanker/corebank/internal/adapter/http/dto"
	"github.com/cobanker/corebank/internal/domain"
	"github.com/cobanker/corebank/internal/usecase"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	OpenAccount(ctx context.Context, actor domain.Actor, input usecase.OpenAccountInput) (*domain.Account, error)
	GetAccount(ctx context.Context, actor domain.Actor, id string) (*domain.Account, error)
	GetAccountByNumber(ctx context.Context, actor domain.Actor, number string) (*domain.Account, error)
	ListAccountsByCustomer(ctx context.Context, actor domain.Actor, customerID string, filter usecase.AccountFilter) ([]*domain.Account, error)
	GetSummary(ctx context.Context, actor domain.Actor, id string) (*domain.Summary, error)
	RecordMovement(ctx context.Context, actor domain.Actor, input usecase.RecordMovementInput) (*usecase.MovementResult, error)
	Activate(ctx context.Context, actor domain.Actor, id string) (*domain.Account, error)
	Suspend(ctx context.Context, actor domain.Actor, id, reason string) (*domain.Account, error)
	Close(ctx context.Context, actor domain.Actor, id string) (*domain.Account, error)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accountUC AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC AccountService) *AccountHandler {
	return &AccountHandler{accountUC: accountUC}
}

// Open opens a new account.
func (h *AccountHandler) Open(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeDomainError(w, "authentication required", err)
		return
	}

	var req dto.OpenAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.accountUC.OpenAccount(r.Context(), actor, req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "failed to open account", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.AccountFromDomain(account))
}

// Get retrieves an account by ID.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeDomainError(w, "authentication required", err)
		return
	}

	id := chi.URLParam(r, "id")
	account, err := h.accountUC.GetAccount(r.Context(), actor, id)
	if err != nil {
		writeDomainError(w, "failed to get account", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// GetByNumber retrieves an account by its account number.
func (h *AccountHandler) GetByNumber(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeDomainError(w, "authentication required", err)
		return
	}

	number := chi.URLParam(r, "number")
	account, err := h.accountUC.GetAccountByNumber(r.Context(), actor, number)
	if err != nil {
		writeDomainError(w, "failed to get account", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// ListByCustomer lists a customer's accounts.
func (h *AccountHandler) ListByCustomer(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeDomainError(w, "authentication required", err)
		return
	}

	customerID := chi.URLParam(r, "customerID")
	filter := usecase.AccountFilter{
		Status: domain.AccountStatus(r.URL.Query().Get("status")),
		Type:   domain.AccountType(r.URL.Query().Get("type")),
		Limit:  parseIntQuery(r, "limit", 20),
		Offset: parseIntQuery(r, "offset", 0),
	}

	accounts, err := h.accountUC.ListAccountsByCustomer(r.Context(), actor, customerID, filter)
	if err != nil {
		writeDomainError(w, "failed to list accounts", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListAccountsResponse{
		Accounts: dto.AccountsFromDomain(accounts),
		Total:    int64(len(accounts)),
	})
}

// Summary serves the cached read-only projection of an account.
func (h *AccountHandler) Summary(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeDomainError(w, "authentication required", err)
		return
	}

	id := chi.URLParam(r, "id")
	summary, err := h.accountUC.GetSummary(r.Context(), actor, id)
	if err != nil {
		writeDomainError(w, "failed to get summary", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SummaryFromDomain(summary))
}

// Movement applies a balance movement to an account and journals it.
func (h *AccountHandler) Movement(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeDomainError(w, "authentication required", err)
		return
	}

	var req dto.RecordMovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	id := chi.URLParam(r, "id")
	result, err := h.accountUC.RecordMovement(r.Context(), actor, req.ToUseCaseInput(id))
	if err != nil {
		writeDomainError(w, "failed to record movement", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MovementFromResult(result))
}

// Activate transitions an account to active.
func (h *AccountHandler) Activate(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeDomainError(w, "authentication required", err)
		return
	}

	id := chi.URLParam(r, "id")
	account, err := h.accountUC.Activate(r.Context(), actor, id)
	if err != nil {
		writeDomainError(w, "failed to activate account", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// Suspend transitions an account to suspended. The reason is mandatory.
func (h *AccountHandler) Suspend(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeDomainError(w, "authentication required", err)
		return
	}

	var req dto.SuspendAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	id := chi.URLParam(r, "id")
	account, err := h.accountUC.Suspend(r.Context(), actor, id, req.Reason)
	if err != nil {
		writeDomainError(w, "failed to suspend account", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// Close closes an account. Only zero-balance accounts close.
func (h *AccountHandler) Close(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeDomainError(w, "authentication required", err)
		return
	}

	id := chi.URLParam(r, "id")
	account, err := h.accountUC.Close(r.Context(), actor, id)
	if err != nil {
		writeDomainError(w, "failed to close account", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}
