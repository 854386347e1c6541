package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/cobanker/corebank/internal/adapter/http/dto"
	"github.com/cobanker/corebank/internal/domain"
	"github.com/cobanker/corebank/internal/usecase"
)

// DepositService defines the behavior needed by DepositHandler.
type DepositService interface {
	CreateDeposit(ctx context.Context, actor domain.Actor, input usecase.CreateDepositInput) (*domain.RecurringDeposit, error)
	GetDeposit(ctx context.Context, actor domain.Actor, id string) (*domain.RecurringDeposit, error)
	ListDepositsByMember(ctx context.Context, actor domain.Actor, memberID string) ([]*domain.RecurringDeposit, error)
	ListInstallments(ctx context.Context, actor domain.Actor, depositID string) ([]*domain.Installment, error)
	PayInstallment(ctx context.Context, actor domain.Actor, depositID, installmentID string) (*domain.Installment, error)
	Penalty(ctx context.Context, actor domain.Actor, depositID string) (decimal.Decimal, error)
	CloseEarly(ctx context.Context, actor domain.Actor, depositID string) (decimal.Decimal, error)
}

// DepositHandler handles recurring-deposit HTTP requests.
type DepositHandler struct {
	depositUC DepositService
}

// NewDepositHandler creates a new DepositHandler.
func NewDepositHandler(depositUC DepositService) *DepositHandler {
	return &DepositHandler{depositUC: depositUC}
}

// Create opens a recurring deposit with its installment schedule.
func (h *DepositHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeDomainError(w, "authentication required", err)
		return
	}

	var req dto.CreateDepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	deposit, err := h.depositUC.CreateDeposit(r.Context(), actor, req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "failed to create deposit", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.DepositFromDomain(deposit))
}

// Get retrieves a recurring deposit by ID.
func (h *DepositHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeDomainError(w, "authentication required", err)
		return
	}

	id := chi.URLParam(r, "id")
	deposit, err := h.depositUC.GetDeposit(r.Context(), actor, id)
	if err != nil {
		writeDomainError(w, "failed to get deposit", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.DepositFromDomain(deposit))
}

// ListByMember lists a member's recurring deposits.
func (h *DepositHandler) ListByMember(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeDomainError(w, "authentication required", err)
		return
	}

	memberID := r.URL.Query().Get("member_id")
	deposits, err := h.depositUC.ListDepositsByMember(r.Context(), actor, memberID)
	if err != nil {
		writeDomainError(w, "failed to list deposits", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.DepositsFromDomain(deposits))
}

// ListInstallments lists the installment schedule of a deposit.
func (h *DepositHandler) ListInstallments(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeDomainError(w, "authentication required", err)
		return
	}

	id := chi.URLParam(r, "id")
	installments, err := h.depositUC.ListInstallments(r.Context(), actor, id)
	if err != nil {
		writeDomainError(w, "failed to list installments", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.InstallmentsFromDomain(installments))
}

// PayInstallment marks a due installment paid.
func (h *DepositHandler) PayInstallment(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeDomainError(w, "authentication required", err)
		return
	}

	var req dto.PayInstallmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	id := chi.URLParam(r, "id")
	installment, err := h.depositUC.PayInstallment(r.Context(), actor, id, req.InstallmentID)
	if err != nil {
		writeDomainError(w, "failed to pay installment", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.InstallmentFromDomain(installment))
}

// Penalty reports the accumulated missed-installment penalty.
func (h *DepositHandler) Penalty(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeDomainError(w, "authentication required", err)
		return
	}

	id := chi.URLParam(r, "id")
	penalty, err := h.depositUC.Penalty(r.Context(), actor, id)
	if err != nil {
		writeDomainError(w, "failed to compute penalty", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.PenaltyResponse{
		DepositID: id,
		Penalty:   penalty,
	})
}

// Close closes an active deposit before maturity.
func (h *DepositHandler) Close(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeDomainError(w, "authentication required", err)
		return
	}

	id := chi.URLParam(r, "id")
	penalty, err := h.depositUC.CloseEarly(r.Context(), actor, id)
	if err != nil {
		writeDomainError(w, "failed to close deposit", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ClosureResponse{
		DepositID: id,
		Status:    string(domain.DepositStatusClosed),
		Penalty:   penalty,
	})
}
