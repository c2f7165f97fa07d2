package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/womni/backoffice/internal/model"
	"github.com/womni/backoffice/internal/store"
)

type createAssociationRequest struct {
	AccountID string `json:"accountId"`
	Role      string `json:"role"`
}

type updateAssociationRequest struct {
	Role string `json:"role"`
}

// CreateAssociation associates an employee with an account under a role.
// POST /v2/employee/{employeeId}/accounts
func (h *EmployeeHandler) CreateAssociation(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")

	var req createAssociationRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.AccountID == "" || req.Role == "" {
		writeError(w, http.StatusBadRequest, "accountId and role are required")
		return
	}

	if _, err := h.store.GetEmployee(r.Context(), employeeID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "employee not found")
			return
		}
		h.serverError(w, r, "get employee", err)
		return
	}
	if _, err := h.store.GetAccount(r.Context(), req.AccountID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "account not found")
			return
		}
		h.serverError(w, r, "get account", err)
		return
	}

	if _, err := h.store.GetAssociation(r.Context(), employeeID, req.AccountID); err == nil {
		writeError(w, http.StatusConflict, "employee is already associated with this account")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		h.serverError(w, r, "get association", err)
		return
	}

	now := time.Now().UTC()
	assoc := model.Association{
		ID:         uuid.Must(uuid.NewV7()).String(),
		EmployeeID: employeeID,
		AccountID:  req.AccountID,
		Role:       req.Role,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := h.store.CreateAssociation(r.Context(), &assoc); err != nil {
		h.serverError(w, r, "create association", err)
		return
	}

	writeResult(w, http.StatusOK, map[string]interface{}{"employeeAccount": assoc})
}

// GetAssociation returns the association between an employee and an account,
// joined with account and employee attributes.
// GET /v2/employee/{employeeId}/accounts/{accountId}
func (h *EmployeeHandler) GetAssociation(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")
	accountID := chi.URLParam(r, "accountId")

	detail, err := h.store.GetAssociationDetail(r.Context(), employeeID, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "employee-account association not found")
			return
		}
		h.serverError(w, r, "get association detail", err)
		return
	}

	writeResult(w, http.StatusOK, map[string]interface{}{"employeeAccount": detail})
}

// UpdateAssociation changes an employee's role on an account.
// PUT /v2/employee/{employeeId}/accounts/{accountId}
func (h *EmployeeHandler) UpdateAssociation(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")
	accountID := chi.URLParam(r, "accountId")

	var req updateAssociationRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Role == "" {
		writeError(w, http.StatusBadRequest, "role is required")
		return
	}

	assoc, err := h.store.UpdateAssociationRole(r.Context(), employeeID, accountID, req.Role)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "employee-account association not found")
			return
		}
		h.serverError(w, r, "update association", err)
		return
	}

	writeResult(w, http.StatusOK, map[string]interface{}{"employeeAccount": assoc})
}
