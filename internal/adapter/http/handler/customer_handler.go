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

// CustomerService defines the behavior needed by CustomerHandler.
type CustomerService interface {
	CreateCustomer(ctx context.Context, actor domain.Actor, input usecase.CreateCustomerInput) (*domain.Customer, error)
	GetCustomer(ctx context.Context, actor domain.Actor, id string) (*domain.Customer, error)
	ListCustomers(ctx context.Context, actor domain.Actor, limit, offset int) ([]*domain.Customer, error)
	UpdateCustomer(ctx context.Context, actor domain.Actor, id string, input usecase.UpdateCustomerInput) (*domain.Customer, error)
	DeactivateCustomer(ctx context.Context, actor domain.Actor, id string) (*domain.Customer, error)
}

// CustomerHandler handles customer-related HTTP requests.
type CustomerHandler struct {
	customerUC CustomerService
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(customerUC CustomerService) *CustomerHandler {
	return &CustomerHandler{customerUC: customerUC}
}

// Create registers a new customer.
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeDomainError(w, "authentication required", err)
		return
	}

	var req dto.CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	customer, err := h.customerUC.CreateCustomer(r.Context(), actor, req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "failed to create customer", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.CustomerFromDomain(customer))
}

// Get retrieves a customer by ID.
func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeDomainError(w, "authentication required", err)
		return
	}

	id := chi.URLParam(r, "id")
	customer, err := h.customerUC.GetCustomer(r.Context(), actor, id)
	if err != nil {
		writeDomainError(w, "failed to get customer", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.CustomerFromDomain(customer))
}

// List lists customers of the actor's bank.
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeDomainError(w, "authentication required", err)
		return
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	customers, err := h.customerUC.ListCustomers(r.Context(), actor, limit, offset)
	if err != nil {
		writeDomainError(w, "failed to list customers", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.CustomersFromDomain(customers))
}

// Update applies a partial customer update.
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeDomainError(w, "authentication required", err)
		return
	}

	var req dto.UpdateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	id := chi.URLParam(r, "id")
	customer, err := h.customerUC.UpdateCustomer(r.Context(), actor, id, req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "failed to update customer", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.CustomerFromDomain(customer))
}

// Deactivate marks a customer inactive.
func (h *CustomerHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeDomainError(w, "authentication required", err)
		return
	}

	id := chi.URLParam(r, "id")
	customer, err := h.customerUC.DeactivateCustomer(r.Context(), actor, id)
	if err != nil {
		writeDomainError(w, "failed to deactivate customer", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.CustomerFromDomain(customer))
}
