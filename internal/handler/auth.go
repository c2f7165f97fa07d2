package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/womni/backoffice/internal/auth"
	"github.com/womni/backoffice/internal/server/middleware"
	"github.com/womni/backoffice/internal/store"
)

// AuthHandler serves the login endpoint: it verifies an employee's password
// and issues a claims token embedding the employee's account grants.
type AuthHandler struct {
	store    *store.Store
	codec    *auth.TokenCodec
	tokenTTL time.Duration
	logger   *slog.Logger
}

// NewAuthHandler creates an AuthHandler. tokenTTL controls the expiry of
// issued tokens; zero issues tokens without an exp claim.
func NewAuthHandler(st *store.Store, codec *auth.TokenCodec, tokenTTL time.Duration, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{store: st, codec: codec, tokenTTL: tokenTTL, logger: logger}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginUser struct {
	ID                  string    `json:"id"`
	Email               string    `json:"email"`
	Name                string    `json:"name"`
	Locale              string    `json:"locale"`
	Username            string    `json:"username"`
	Firstname           string    `json:"firstname"`
	Lastname            string    `json:"lastname"`
	EmailPersonal       string    `json:"emailPersonal"`
	EmailPersonalStatus string    `json:"emailPersonalStatus"`
	PhonePrefix         string    `json:"phonePrefix"`
	Phone               string    `json:"phone"`
	Active              bool      `json:"active"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

type loginAccount struct {
	ID      string `json:"id"`
	Partner string `json:"partner"`
	Account string `json:"account"`
	Name    string `json:"name"`
}

type loginResponse struct {
	Success  bool           `json:"success"`
	Token    string         `json:"token"`
	User     loginUser      `json:"user"`
	Accounts []loginAccount `json:"accounts"`
}

// Login authenticates an employee by email and password.
// POST /v2/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	employee, err := h.store.GetActiveEmployeeByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.serverError(w, r, "look up employee", err)
		return
	}

	ok, err := auth.VerifyPassword(employee.Passwd, req.Password)
	if err != nil {
		// A malformed stored credential is data corruption, not a bad login.
		h.serverError(w, r, "verify credential", err)
		return
	}
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	granted, err := h.store.ListGrantedAccounts(r.Context(), employee.ID)
	if err != nil {
		h.serverError(w, r, "list granted accounts", err)
		return
	}

	grants := make([]auth.AccountGrant, len(granted))
	accounts := make([]loginAccount, len(granted))
	for i, g := range granted {
		grants[i] = auth.AccountGrant{
			ID:      g.ID,
			Partner: g.Partner,
			Account: g.Account,
			Role:    g.Role,
			Name:    g.Name,
		}
		accounts[i] = loginAccount{ID: g.ID, Partner: g.Partner, Account: g.Account, Name: g.Name}
	}

	token, err := h.codec.Issue(auth.Claims{
		EmployeeID: employee.ID,
		Email:      employee.Email,
		Locale:     employee.Locale,
		Username:   employee.Username,
		Firstname:  employee.Firstname,
		Accounts:   grants,
	}, h.tokenTTL)
	if err != nil {
		h.serverError(w, r, "issue token", err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Success: true,
		Token:   token,
		User: loginUser{
			ID:                  employee.ID,
			Email:               employee.Email,
			Name:                employee.Name(),
			Locale:              employee.Locale,
			Username:            employee.Username,
			Firstname:           employee.Firstname,
			Lastname:            employee.Lastname,
			EmailPersonal:       employee.EmailPersonal,
			EmailPersonalStatus: employee.EmailPersonalStatus,
			PhonePrefix:         employee.PhonePrefix,
			Phone:               employee.Phone,
			Active:              employee.Active,
			CreatedAt:           employee.CreatedAt,
			UpdatedAt:           employee.UpdatedAt,
		},
		Accounts: accounts,
	})
}

// serverError logs the failure with its request ID and returns an opaque 500.
// Credentials and claims never reach the log.
func (h *AuthHandler) serverError(w http.ResponseWriter, r *http.Request, op string, err error) {
	h.logger.Error(op,
		"error", err,
		"request_id", middleware.GetRequestID(r.Context()),
	)
	writeError(w, http.StatusInternalServerError, "internal error")
}
