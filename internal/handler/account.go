package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/womni/backoffice/internal/model"
	"github.com/womni/backoffice/internal/server/middleware"
	"github.com/womni/backoffice/internal/store"
)

// AccountHandler serves account creation and the account-side employee
// listing.
type AccountHandler struct {
	store  *store.Store
	logger *slog.Logger
}

// NewAccountHandler creates an AccountHandler.
func NewAccountHandler(st *store.Store, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{store: st, logger: logger}
}

type createAccountRequest struct {
	Name string `json:"name"`
}

type createdAccount struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Partner string `json:"partner"`
	Account string `json:"account"`
	Active  bool   `json:"active"`
}

// Create creates an account and grants the calling employee the ADMIN role
// on it. Requires an employee bearer token (RequireEmployee middleware).
// POST /v2/account
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetEmployeeClaims(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authorization token is required")
		return
	}

	var req createAccountRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeError(w, http.StatusBadRequest, "account name is required")
		return
	}

	slug := slugify(name)
	if slug == "" {
		writeError(w, http.StatusBadRequest, "account name must contain at least one alphanumeric character")
		return
	}

	exists, err := h.store.SlugExists(r.Context(), slug)
	if err != nil {
		h.serverError(w, r, "check slug", err)
		return
	}
	if exists {
		writeError(w, http.StatusConflict, "an account with this name already exists")
		return
	}

	now := time.Now().UTC()
	account := model.Account{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Partner:   model.DefaultPartner,
		Account:   slug,
		Name:      name,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.store.CreateAccount(r.Context(), &account); err != nil {
		h.serverError(w, r, "create account", err)
		return
	}

	assoc := model.Association{
		ID:         uuid.Must(uuid.NewV7()).String(),
		EmployeeID: claims.EmployeeID,
		AccountID:  account.ID,
		Role:       model.RoleAdmin,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := h.store.CreateAssociation(r.Context(), &assoc); err != nil {
		h.serverError(w, r, "associate creator", err)
		return
	}

	writeResult(w, http.StatusOK, map[string]interface{}{
		"account": createdAccount{
			ID:      account.ID,
			Name:    account.Name,
			Partner: account.Partner,
			Account: account.Account,
			Active:  account.Active,
		},
	})
}

// ListEmployees lists the employees associated with an account. The route is
// behind the dual-path Authenticate middleware; the accountId path parameter
// is the account the caller was authorized against.
// GET /v2/accounts/{accountId}/employees
func (h *AccountHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountId")

	if _, err := h.store.GetAccount(r.Context(), accountID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "account not found")
			return
		}
		h.serverError(w, r, "get account", err)
		return
	}

	employees, err := h.store.ListAccountEmployees(r.Context(), accountID)
	if err != nil {
		h.serverError(w, r, "list account employees", err)
		return
	}

	writeResult(w, http.StatusOK, map[string]interface{}{"employees": employees})
}

// slugify lowercases name and strips everything outside [a-z0-9].
func slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (h *AccountHandler) serverError(w http.ResponseWriter, r *http.Request, op string, err error) {
	h.logger.Error(op,
		"error", err,
		"request_id", middleware.GetRequestID(r.Context()),
	)
	writeError(w, http.StatusInternalServerError, "internal error")
}
