package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/womni/backoffice/internal/auth"
	"github.com/womni/backoffice/internal/model"
	"github.com/womni/backoffice/internal/server/middleware"
	"github.com/womni/backoffice/internal/store"
)

// EmployeeHandler serves employee creation, search, and the employee-side
// account association endpoints.
type EmployeeHandler struct {
	store  *store.Store
	logger *slog.Logger
}

// NewEmployeeHandler creates an EmployeeHandler.
func NewEmployeeHandler(st *store.Store, logger *slog.Logger) *EmployeeHandler {
	return &EmployeeHandler{store: st, logger: logger}
}

type createEmployeeRequest struct {
	Locale      string `json:"locale"`
	Firstname   string `json:"firstname"`
	Lastname    string `json:"lastname"`
	Email       string `json:"email"`
	PhonePrefix string `json:"phonePrefix"`
	Phone       string `json:"phone"`
	Password    string `json:"password"`
}

// Create registers a new employee with a freshly hashed password.
// POST /v2/employee
func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createEmployeeRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Firstname == "" || req.Lastname == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "firstname, lastname, email and password are required")
		return
	}

	exists, err := h.store.EmailExists(r.Context(), req.Email)
	if err != nil {
		h.serverError(w, r, "check email", err)
		return
	}
	if exists {
		writeError(w, http.StatusConflict, "an employee with this email already exists")
		return
	}

	exists, err = h.store.PhoneExists(r.Context(), req.PhonePrefix, req.Phone)
	if err != nil {
		h.serverError(w, r, "check phone", err)
		return
	}
	if exists {
		writeError(w, http.StatusConflict, "an employee with this phone number already exists")
		return
	}

	passwd, err := auth.HashPassword(req.Password)
	if err != nil {
		h.serverError(w, r, "hash password", err)
		return
	}

	now := time.Now().UTC()
	employee := model.Employee{
		ID:                  uuid.Must(uuid.NewV7()).String(),
		Locale:              req.Locale,
		Firstname:           req.Firstname,
		Lastname:            req.Lastname,
		Email:               req.Email,
		EmailPersonalStatus: "pending",
		PhonePrefix:         req.PhonePrefix,
		Phone:               req.Phone,
		Passwd:              passwd,
		Active:              true,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := h.store.CreateEmployee(r.Context(), &employee); err != nil {
		h.serverError(w, r, "create employee", err)
		return
	}

	writeResult(w, http.StatusOK, map[string]interface{}{"employee": employee})
}

// Search finds employees by email or phone substring.
// GET /v2/employee/search
func (h *EmployeeHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.EmployeeFilter{
		Email:       q.Get("email"),
		Phone:       q.Get("phone"),
		PhonePrefix: q.Get("phonePrefix"),
	}
	if filter.Email == "" && filter.Phone == "" {
		writeError(w, http.StatusBadRequest, "at least one of 'email' or 'phone' must be provided")
		return
	}

	employees, err := h.store.SearchEmployees(r.Context(), filter)
	if err != nil {
		h.serverError(w, r, "search employees", err)
		return
	}

	writeResult(w, http.StatusOK, map[string]interface{}{"users": employees})
}

// ListAccounts lists the accounts associated with an employee.
// GET /v2/employee/{employeeId}/accounts
func (h *EmployeeHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")

	if _, err := h.store.GetEmployee(r.Context(), employeeID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "employee not found")
			return
		}
		h.serverError(w, r, "get employee", err)
		return
	}

	accounts, err := h.store.ListEmployeeAccounts(r.Context(), employeeID)
	if err != nil {
		h.serverError(w, r, "list employee accounts", err)
		return
	}

	writeResult(w, http.StatusOK, map[string]interface{}{"accounts": accounts})
}

func (h *EmployeeHandler) serverError(w http.ResponseWriter, r *http.Request, op string, err error) {
	h.logger.Error(op,
		"error", err,
		"request_id", middleware.GetRequestID(r.Context()),
	)
	writeError(w, http.StatusInternalServerError, "internal error")
}
