package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/cobanker/corebank/internal/adapter/http/dto"
	"github.com/cobanker/corebank/internal/adapter/http/middleware"
	"github.com/cobanker/corebank/internal/domain"
	"github.com/cobanker/corebank/internal/usecase"
)

type accountServiceStub struct {
	openFn     func(ctx context.Context, actor domain.Actor, input usecase.OpenAccountInput) (*domain.Account, error)
	getFn      func(ctx context.Context, actor domain.Actor, id string) (*domain.Account, error)
	byNumberFn func(ctx context.Context, actor domain.Actor, number string) (*domain.Account, error)
	listFn     func(ctx context.Context, actor domain.Actor, customerID string, filter usecase.AccountFilter) ([]*domain.Account, error)
	summaryFn  func(ctx context.Context, actor domain.Actor, id string) (*domain.Summary, error)
	movementFn func(ctx context.Context, actor domain.Actor, input usecase.RecordMovementInput) (*usecase.MovementResult, error)
	activateFn func(ctx context.Context, actor domain.Actor, id string) (*domain.Account, error)
	suspendFn  func(ctx context.Context, actor domain.Actor, id, reason string) (*domain.Account, error)
	closeFn    func(ctx context.Context, actor domain.Actor, id string) (*domain.Account, error)
}

func (s *accountServiceStub) OpenAccount(ctx context.Context, actor domain.Actor, input usecase.OpenAccountInput) (*domain.Account, error) {
	return s.openFn(ctx, actor, input)
}

func (s *accountServiceStub) GetAccount(ctx context.Context, actor domain.Actor, id string) (*domain.Account, error) {
	return s.getFn(ctx, actor, id)
}

func (s *accountServiceStub) GetAccountByNumber(ctx context.Context, actor domain.Actor, number string) (*domain.Account, error) {
	return s.byNumberFn(ctx, actor, number)
}

func (s *accountServiceStub) ListAccountsByCustomer(ctx context.Context, actor domain.Actor, customerID string, filter usecase.AccountFilter) ([]*domain.Account, error) {
	return s.listFn(ctx, actor, customerID, filter)
}

func (s *accountServiceStub) GetSummary(ctx context.Context, actor domain.Actor, id string) (*domain.Summary, error) {
	return s.summaryFn(ctx, actor, id)
}

func (s *accountServiceStub) RecordMovement(ctx context.Context, actor domain.Actor, input usecase.RecordMovementInput) (*usecase.MovementResult, error) {
	return s.movementFn(ctx, actor, input)
}

func (s *accountServiceStub) Activate(ctx context.Context, actor domain.Actor, id string) (*domain.Account, error) {
	return s.activateFn(ctx, actor, id)
}

func (s *accountServiceStub) Suspend(ctx context.Context, actor domain.Actor, id, reason string) (*domain.Account, error) {
	return s.suspendFn(ctx, actor, id, reason)
}

func (s *accountServiceStub) Close(ctx context.Context, actor domain.Actor, id string) (*domain.Account, error) {
	return s.closeFn(ctx, actor, id)
}

func withActor(r *http.Request, actor domain.Actor) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), middleware.ActorContextKey, actor))
}

func employeeActor() domain.Actor {
	return domain.Actor{
		UserID:   "user-1",
		Email:    "teller@bank.test",
		Role:     domain.RoleBranchEmployee,
		BankID:   "bank-1",
		BranchID: "branch-1",
	}
}

func setChiURLParam(r *http.Request, key, value string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, &chi.Context{
		URLParams: chi.RouteParams{
			Keys:   []string{key},
			Values: []string{value},
		},
	}))
}

func TestAccountHandler_Open_Success(t *testing.T) {
	account := &domain.Account{
		ID:            "acc-1",
		AccountNumber: "SB00000001",
		CustomerID:    "cust-1",
		Type:          domain.AccountTypeSavings,
		Status:        domain.AccountStatusPending,
		Balance:       decimal.NewFromInt(500),
	}

	var captured usecase.OpenAccountInput
	handler := NewAccountHandler(&accountServiceStub{
		openFn: func(ctx context.Context, actor domain.Actor, input usecase.OpenAccountInput) (*domain.Account, error) {
			captured = input
			return account, nil
		},
	})

	body, _ := json.Marshal(dto.OpenAccountRequest{
		CustomerID:     "cust-1",
		AccountType:    "savings",
		InitialBalance: decimal.NewFromInt(500),
		BranchID:       "branch-1",
		BankID:         "bank-1",
	})

	req := withActor(httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body)), employeeActor())
	rec := httptest.NewRecorder()

	handler.Open(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.CustomerID != "cust-1" || captured.Type != domain.AccountTypeSavings {
		t.Fatalf("expected input to match request, got %+v", captured)
	}

	var resp dto.AccountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "acc-1" {
		t.Fatalf("expected account ID acc-1, got %s", resp.ID)
	}
}

func TestAccountHandler_Open_InvalidJSON(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		openFn: func(ctx context.Context, actor domain.Actor, input usecase.OpenAccountInput) (*domain.Account, error) {
			t.Fatal("OpenAccount should not be called for invalid payload")
			return nil, nil
		},
	})

	req := withActor(httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewBufferString("{invalid json")), employeeActor())
	rec := httptest.NewRecorder()

	handler.Open(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAccountHandler_Open_NoActor(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		openFn: func(ctx context.Context, actor domain.Actor, input usecase.OpenAccountInput) (*domain.Account, error) {
			t.Fatal("OpenAccount should not be called without an actor")
			return nil, nil
		},
	})

	body, _ := json.Marshal(dto.OpenAccountRequest{CustomerID: "cust-1"})
	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Open(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAccountHandler_Open_AccessDenied(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		openFn: func(ctx context.Context, actor domain.Actor, input usecase.OpenAccountInput) (*domain.Account, error) {
			return nil, domain.ErrAccessDenied
		},
	})

	body, _ := json.Marshal(dto.OpenAccountRequest{CustomerID: "cust-1", AccountType: "savings"})
	req := withActor(httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body)), employeeActor())
	rec := httptest.NewRecorder()

	handler.Open(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestAccountHandler_Get(t *testing.T) {
	account := &domain.Account{ID: "acc-1", AccountNumber: "SB00000001"}
	handler := NewAccountHandler(&accountServiceStub{
		getFn: func(ctx context.Context, actor domain.Actor, id string) (*domain.Account, error) {
			if id != "acc-1" {
				t.Fatalf("expected id acc-1, got %s", id)
			}
			return account, nil
		},
	})

	req := withActor(httptest.NewRequest(http.MethodGet, "/accounts/acc-1", nil), employeeActor())
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAccountHandler_Get_NotFound(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		getFn: func(ctx context.Context, actor domain.Actor, id string) (*domain.Account, error) {
			return nil, domain.ErrAccountNotFound
		},
	})

	req := withActor(httptest.NewRequest(http.MethodGet, "/accounts/acc-1", nil), employeeActor())
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAccountHandler_GetByNumber(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		byNumberFn: func(ctx context.Context, actor domain.Actor, number string) (*domain.Account, error) {
			if number != "SB00000001" {
				t.Fatalf("expected number SB00000001, got %s", number)
			}
			return &domain.Account{ID: "acc-1", AccountNumber: number}, nil
		},
	})

	req := withActor(httptest.NewRequest(http.MethodGet, "/accounts/number/SB00000001", nil), employeeActor())
	req = setChiURLParam(req, "number", "SB00000001")
	rec := httptest.NewRecorder()

	handler.GetByNumber(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAccountHandler_ListByCustomer(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		listFn: func(ctx context.Context, actor domain.Actor, customerID string, filter usecase.AccountFilter) ([]*domain.Account, error) {
			if customerID != "cust-1" {
				t.Fatalf("expected customer cust-1, got %s", customerID)
			}
			if filter.Status != domain.AccountStatusActive || filter.Limit != 5 || filter.Offset != 2 {
				t.Fatalf("expected status=active limit=5 offset=2, got %+v", filter)
			}
			return []*domain.Account{{ID: "acc-1"}, {ID: "acc-2"}}, nil
		},
	})

	req := withActor(httptest.NewRequest(http.MethodGet, "/accounts/customer/cust-1?status=active&limit=5&offset=2", nil), employeeActor())
	req = setChiURLParam(req, "customerID", "cust-1")
	rec := httptest.NewRecorder()

	handler.ListByCustomer(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.ListAccountsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Accounts) != 2 || resp.Total != 2 {
		t.Fatalf("expected 2 accounts, got %+v", resp)
	}
}

func TestAccountHandler_Summary(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		summaryFn: func(ctx context.Context, actor domain.Actor, id string) (*domain.Summary, error) {
			return &domain.Summary{
				ID:            id,
				AccountNumber: "SB00000001",
				Type:          domain.AccountTypeSavings,
				Balance:       decimal.NewFromInt(750),
				Status:        domain.AccountStatusActive,
			}, nil
		},
	})

	req := withActor(httptest.NewRequest(http.MethodGet, "/accounts/acc-1/summary", nil), employeeActor())
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.Summary(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.SummaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Balance.Equal(decimal.NewFromInt(750)) {
		t.Fatalf("expected balance 750, got %s", resp.Balance)
	}
}

func TestAccountHandler_Movement_Success(t *testing.T) {
	var captured usecase.RecordMovementInput
	handler := NewAccountHandler(&accountServiceStub{
		movementFn: func(ctx context.Context, actor domain.Actor, input usecase.RecordMovementInput) (*usecase.MovementResult, error) {
			captured = input
			return &usecase.MovementResult{
				Account: &domain.Account{ID: input.AccountID, Balance: decimal.NewFromInt(600)},
				Transaction: &domain.Transaction{
					ID:         "txn-1",
					AccountID:  input.AccountID,
					Kind:       input.Kind,
					Amount:     input.Amount,
					NewBalance: decimal.NewFromInt(600),
				},
			}, nil
		},
	})

	body, _ := json.Marshal(dto.RecordMovementRequest{
		Amount:          decimal.NewFromInt(100),
		TransactionType: "deposit",
	})

	req := withActor(httptest.NewRequest(http.MethodPatch, "/accounts/acc-1/balance", bytes.NewReader(body)), employeeActor())
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.Movement(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.AccountID != "acc-1" || captured.Kind != domain.TransactionDeposit {
		t.Fatalf("expected input to match request, got %+v", captured)
	}

	var resp dto.MovementResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Transaction.ID != "txn-1" {
		t.Fatalf("expected transaction txn-1, got %+v", resp.Transaction)
	}
}

func TestAccountHandler_Movement_InsufficientFunds(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		movementFn: func(ctx context.Context, actor domain.Actor, input usecase.RecordMovementInput) (*usecase.MovementResult, error) {
			return nil, domain.ErrInsufficientFunds
		},
	})

	body, _ := json.Marshal(dto.RecordMovementRequest{
		Amount:          decimal.NewFromInt(100000),
		TransactionType: "withdrawal",
	})

	req := withActor(httptest.NewRequest(http.MethodPatch, "/accounts/acc-1/balance", bytes.NewReader(body)), employeeActor())
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.Movement(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAccountHandler_Movement_DuplicateReference(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		movementFn: func(ctx context.Context, actor domain.Actor, input usecase.RecordMovementInput) (*usecase.MovementResult, error) {
			return nil, domain.ErrConflict
		},
	})

	body, _ := json.Marshal(dto.RecordMovementRequest{
		Amount:          decimal.NewFromInt(100),
		TransactionType: "deposit",
		ReferenceNumber: "REF-1",
	})

	req := withActor(httptest.NewRequest(http.MethodPatch, "/accounts/acc-1/balance", bytes.NewReader(body)), employeeActor())
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.Movement(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestAccountHandler_Suspend(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		suspendFn: func(ctx context.Context, actor domain.Actor, id, reason string) (*domain.Account, error) {
			if reason != "fraud review" {
				t.Fatalf("expected reason to propagate, got %q", reason)
			}
			return &domain.Account{ID: id, Status: domain.AccountStatusSuspended}, nil
		},
	})

	body, _ := json.Marshal(dto.SuspendAccountRequest{Reason: "fraud review"})
	req := withActor(httptest.NewRequest(http.MethodPatch, "/accounts/acc-1/suspend", bytes.NewReader(body)), employeeActor())
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.Suspend(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAccountHandler_Close_NonZeroBalance(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		closeFn: func(ctx context.Context, actor domain.Actor, id string) (*domain.Account, error) {
			return nil, domain.ErrInvalidState
		},
	})

	req := withActor(httptest.NewRequest(http.MethodPatch, "/accounts/acc-1/close", nil), employeeActor())
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.Close(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
