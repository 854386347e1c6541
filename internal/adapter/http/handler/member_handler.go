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

// MemberService defines the behavior needed by MemberHandler.
type MemberService interface {
	CreateMember(ctx context.Context, actor domain.Actor, input usecase.CreateMemberInput) (*domain.Member, error)
	GetMember(ctx context.Context, actor domain.Actor, id string) (*domain.Member, error)
	ListMembers(ctx context.Context, actor domain.Actor, limit, offset int) ([]*domain.Member, error)
	UpdateMember(ctx context.Context, actor domain.Actor, id string, input usecase.UpdateMemberInput) (*domain.Member, error)
}

// MemberHandler handles member-related HTTP requests.
type MemberHandler struct {
	memberUC MemberService
}

// NewMemberHandler creates a new MemberHandler.
func NewMemberHandler(memberUC MemberService) *MemberHandler {
	return &MemberHandler{memberUC: memberUC}
}

// Create enrolls a customer as a member.
func (h *MemberHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeDomainError(w, "authentication required", err)
		return
	}

	var req dto.CreateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	member, err := h.memberUC.CreateMember(r.Context(), actor, req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "failed to create member", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.MemberFromDomain(member))
}

// Get retrieves a member by ID.
func (h *MemberHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeDomainError(w, "authentication required", err)
		return
	}

	id := chi.URLParam(r, "id")
	member, err := h.memberUC.GetMember(r.Context(), actor, id)
	if err != nil {
		writeDomainError(w, "failed to get member", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MemberFromDomain(member))
}

// List lists members.
func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeDomainError(w, "authentication required", err)
		return
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	members, err := h.memberUC.ListMembers(r.Context(), actor, limit, offset)
	if err != nil {
		writeDomainError(w, "failed to list members", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MembersFromDomain(members))
}

// Update applies a partial member update.
func (h *MemberHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		writeDomainError(w, "authentication required", err)
		return
	}

	var req dto.UpdateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	id := chi.URLParam(r, "id")
	member, err := h.memberUC.UpdateMember(r.Context(), actor, id, req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "failed to update member", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MemberFromDomain(member))
}
