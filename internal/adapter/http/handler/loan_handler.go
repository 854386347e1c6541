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

// LoanService defines the behavior needed by LoanHandler.
type LoanService interface {
	CreateLoan(ctx context.Context, actor domain.Actor, input usecase.CreateLoanInput) (*domain.Loan, error)
	GetLoan(ctx context.Context, actor domain.Actor, id string) (*domain.Loan, error)
	ListLoans(ctx context.Context, actor domain.Actor, filter usecase.LoanFilter) ([]*domain.Loan, error)
	UpdateLoanStatus(ctx context.Context, actor domain.Actor, id string, status domain.LoanStatus) (*domain.Loan, error)
	AddGuarantor(ctx context.Context, actor domain.Actor, loanID string, guarantor domain.Guarantor) (*domain.Guarantor, error)
	ListGuarantors(ctx context.Context, actor domain.Actor, loanID string) ([]*domain.Guarantor, error)
	RecordRepayment(ctx context.Context, actor domain.Actor, loanID string, input usecase.RecordRepaymentInput) (*domain.LoanRepayment, error)
	ListRepayments(ctx context.Context, actor domain.Actor, loanID string) ([]*domain.LoanRepayment, error)
}

// LoanHandler handles loan-related HTTP requests.
type LoanHandler struct {
	loanUC LoanService
}

// NewLoanHandler creates a new LoanHandler.
func NewLoanHandler(loanUC LoanService) *LoanHandler {
	return &LoanHandler{loanUC: loanUC}
}

// Create creates a pending loan.
func (h *LoanHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeDomainError(w, "authentication required", err)
		return
	}

	var req dto.CreateLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	loan, err := h.loanUC.CreateLoan(r.Context(), actor, req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "failed to create loan", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.LoanFromDomain(loan))
}

// Get retrieves a loan by ID.
func (h *LoanHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeDomainError(w, "authentication required", err)
		return
	}

	id := chi.URLParam(r, "id")
	loan, err := h.loanUC.GetLoan(r.Context(), actor, id)
	if err != nil {
		writeDomainError(w, "failed to get loan", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.LoanFromDomain(loan))
}

// List lists loans with optional filters.
func (h *LoanHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeDomainError(w, "authentication required", err)
		return
	}

	filter := usecase.LoanFilter{
		MemberID:        r.URL.Query().Get("member_id"),
		BranchID:        r.URL.Query().Get("branch_id"),
		Status:          domain.LoanStatus(r.URL.Query().Get("status")),
		RepaymentStatus: domain.RepaymentStatus(r.URL.Query().Get("repayment_status")),
		Type:            domain.LoanType(r.URL.Query().Get("type")),
		Limit:           parseIntQuery(r, "limit", 20),
		Offset:          parseIntQuery(r, "offset", 0),
	}

	loans, err := h.loanUC.ListLoans(r.Context(), actor, filter)
	if err != nil {
		writeDomainError(w, "failed to list loans", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.LoansFromDomain(loans))
}

// UpdateStatus transitions a loan's status. Disbursal generates the
// repayment schedule.
func (h *LoanHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeDomainError(w, "authentication required", err)
		return
	}

	var req dto.UpdateLoanStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	id := chi.URLParam(r, "id")
	loan, err := h.loanUC.UpdateLoanStatus(r.Context(), actor, id, domain.LoanStatus(req.Status))
	if err != nil {
		writeDomainError(w, "failed to update loan status", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.LoanFromDomain(loan))
}

// AddGuarantor attaches a guarantor to a loan.
func (h *LoanHandler) AddGuarantor(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeDomainError(w, "authentication required", err)
		return
	}

	var req dto.AddGuarantorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	loanID := chi.URLParam(r, "id")
	guarantor, err := h.loanUC.AddGuarantor(r.Context(), actor, loanID, req.ToDomain())
	if err != nil {
		writeDomainError(w, "failed to add guarantor", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.GuarantorFromDomain(guarantor))
}

// ListGuarantors lists the guarantors of a loan.
func (h *LoanHandler) ListGuarantors(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeDomainError(w, "authentication required", err)
		return
	}

	loanID := chi.URLParam(r, "id")
	guarantors, err := h.loanUC.ListGuarantors(r.Context(), actor, loanID)
	if err != nil {
		writeDomainError(w, "failed to list guarantors", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.GuarantorsFromDomain(guarantors))
}

// RecordRepayment records a repayment against a schedule entry.
func (h *LoanHandler) RecordRepayment(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeDomainError(w, "authentication required", err)
		return
	}

	var req dto.RecordRepaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	loanID := chi.URLParam(r, "id")
	entry, err := h.loanUC.RecordRepayment(r.Context(), actor, loanID, req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "failed to record repayment", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.RepaymentFromDomain(entry))
}

// ListRepayments lists the repayment schedule of a loan.
func (h *LoanHandler) ListRepayments(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeDomainError(w, "authentication required", err)
		return
	}

	loanID := chi.URLParam(r, "id")
	schedule, err := h.loanUC.ListRepayments(r.Context(), actor, loanID)
	if err != nil {
		writeDomainError(w, "failed to list repayments", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.RepaymentsFromDomain(schedule))
}
