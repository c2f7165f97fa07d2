package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/womni/backoffice/internal/auth"
	"github.com/womni/backoffice/internal/model"
)

type contextKeyAuth string

// AuthContextKey is the context key for the resolved authentication context.
const AuthContextKey contextKeyAuth = "auth_context"

// EmployeeClaimsKey is the context key for the verified token claims set by
// RequireEmployee.
const EmployeeClaimsKey contextKeyAuth = "employee_claims"

// Authenticate returns a middleware that resolves the request's identity
// through either the employee bearer-token path or the tenant API-key path.
// The addressed account is taken from the accountId path parameter. On
// success the AuthContext is attached to the request context; otherwise the
// request is rejected with 401, or 500 for repository failures.
func Authenticate(resolver *auth.Resolver, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authCtx, err := resolver.Resolve(r.Context(), auth.Request{
				Header:    r.Header,
				Query:     r.URL.Query(),
				AccountID: chi.URLParam(r, "accountId"),
			})
			if err != nil {
				status, msg := authFailure(err)
				if status == http.StatusInternalServerError {
					logger.Error("authentication failed",
						"error", err,
						"request_id", GetRequestID(r.Context()),
					)
					msg = "authentication error"
				}
				writeAuthError(w, status, msg)
				return
			}
			if authCtx == nil {
				// API-key path found no binding.
				writeAuthError(w, http.StatusUnauthorized, "token is invalid")
				return
			}

			ctx := context.WithValue(r.Context(), AuthContextKey, authCtx)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireEmployee returns a middleware that accepts only the bearer-token
// path, without checking an account grant. Routes that create resources not
// yet tied to an account (such as account creation) use it; the verified
// claims are attached to the request context.
func RequireEmployee(codec *auth.TokenCodec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := r.Header.Get("Authorization")
			if authz == "" {
				writeAuthError(w, http.StatusUnauthorized, "authorization token is required")
				return
			}
			token := trimBearer(authz)
			if token == "" {
				writeAuthError(w, http.StatusUnauthorized, "invalid authorization token")
				return
			}

			claims, err := codec.DecodeAndVerify(token)
			if err != nil {
				status, msg := authFailure(err)
				writeAuthError(w, status, msg)
				return
			}
			if claims.EmployeeID == "" {
				writeAuthError(w, http.StatusUnauthorized, auth.ErrMissingClaim.Error())
				return
			}

			ctx := context.WithValue(r.Context(), EmployeeClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAuthContext extracts the resolved authentication context. Returns nil
// for unauthenticated requests.
func GetAuthContext(ctx context.Context) auth.AuthContext {
	if ac, ok := ctx.Value(AuthContextKey).(auth.AuthContext); ok {
		return ac
	}
	return nil
}

// GetEmployeeClaims extracts the claims set by RequireEmployee. Returns nil
// when the middleware did not run.
func GetEmployeeClaims(ctx context.Context) *auth.Claims {
	if c, ok := ctx.Value(EmployeeClaimsKey).(*auth.Claims); ok {
		return c
	}
	return nil
}

func trimBearer(authz string) string {
	return strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
}

// authFailure maps a resolver error to an HTTP status and client message.
// Auth-specific failures are 401; anything else (repository failures,
// misconfiguration) is 500.
func authFailure(err error) (int, string) {
	switch {
	case errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrMalformedToken),
		errors.Is(err, auth.ErrInvalidSignature),
		errors.Is(err, auth.ErrUndecodableToken),
		errors.Is(err, auth.ErrTokenExpired),
		errors.Is(err, auth.ErrMissingClaim),
		errors.Is(err, auth.ErrUnauthorized):
		return http.StatusUnauthorized, err.Error()
	default:
		return http.StatusInternalServerError, err.Error()
	}
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp, _ := json.Marshal(model.ErrorResponse{Success: false, Error: message})
	w.Write(resp)
}
