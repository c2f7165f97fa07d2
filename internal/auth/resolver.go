package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/womni/backoffice/internal/region"
)

// APIKeyHeader is the fallback header consulted for an API key when the token
// query parameter is absent.
const APIKeyHeader = "x-womni-token"

// Grant is an employee's role on an account, joined with the account's
// display attributes.
type Grant struct {
	Role        string
	Partner     string
	AccountSlug string
	AccountName string
}

// APIKeyBinding is the account a presented API key is bound to.
type APIKeyBinding struct {
	Tenant      string
	Region      string
	AccountID   string
	AccountName string
}

// GrantRepository looks up employee-account grants and API-key bindings. Both
// methods return (nil, nil) when no matching row exists; any error is a
// repository failure the caller must surface as an internal error, distinct
// from an authorization outcome.
type GrantRepository interface {
	EmployeeGrant(ctx context.Context, employeeID, accountID string) (*Grant, error)
	APIKeyBinding(ctx context.Context, key string) (*APIKeyBinding, error)
}

// AuthContext is the identity a request resolved to: an EmployeeContext for
// the bearer-token path or a TenantContext for the API-key path.
type AuthContext interface {
	authContext()
}

// EmployeeContext is an employee acting on an account it holds a grant for.
type EmployeeContext struct {
	EmployeeID  string
	Role        string
	AccountID   string
	AccountSlug string
	Partner     string
	AccountName string
}

// TenantContext is a tenant resolved from an API key, including the regional
// backend its operations route to.
type TenantContext struct {
	Tenant     string
	AccountID  string
	Region     string
	Backend    string
	TenantName string
}

func (EmployeeContext) authContext() {}
func (TenantContext) authContext()   {}

// Request is the narrow slice of an inbound request the resolver needs:
// headers, query parameters, and the account addressed by the path.
type Request struct {
	Header    http.Header
	Query     url.Values
	AccountID string
}

// Resolver authenticates a request via one of two paths: an employee bearer
// token in the Authorization header, or a tenant API key in the token query
// parameter (falling back to the x-womni-token header).
type Resolver struct {
	repo    GrantRepository
	codec   *TokenCodec
	regions *region.Directory
}

// NewResolver creates a resolver over the given grant repository, token
// codec, and region directory.
func NewResolver(repo GrantRepository, codec *TokenCodec, regions *region.Directory) *Resolver {
	return &Resolver{repo: repo, codec: codec, regions: regions}
}

// Resolve authenticates a single request. It returns an AuthContext on
// success, (nil, nil) when the API-key path found no binding (unauthenticated
// is a valid negative result there, not an error), or a typed failure.
// Resolution is stateless and strictly sequential; there is at most one
// repository round trip per path.
func (r *Resolver) Resolve(ctx context.Context, req Request) (AuthContext, error) {
	if authz := req.Header.Get("Authorization"); authz != "" {
		return r.resolveBearer(ctx, authz, req.AccountID)
	}
	return r.resolveAPIKey(ctx, req)
}

func (r *Resolver) resolveBearer(ctx context.Context, authz, accountID string) (AuthContext, error) {
	token := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
	if token == "" {
		return nil, ErrMissingToken
	}

	claims, err := r.codec.DecodeAndVerify(token)
	if err != nil {
		return nil, err
	}
	if claims.EmployeeID == "" {
		return nil, ErrMissingClaim
	}

	grant, err := r.repo.EmployeeGrant(ctx, claims.EmployeeID, accountID)
	if err != nil {
		return nil, fmt.Errorf("look up employee grant: %w", err)
	}
	if grant == nil {
		return nil, ErrUnauthorized
	}

	return EmployeeContext{
		EmployeeID:  claims.EmployeeID,
		Role:        grant.Role,
		AccountID:   accountID,
		AccountSlug: grant.AccountSlug,
		Partner:     grant.Partner,
		AccountName: grant.AccountName,
	}, nil
}

func (r *Resolver) resolveAPIKey(ctx context.Context, req Request) (AuthContext, error) {
	key := req.Query.Get("token")
	if key == "" {
		key = req.Header.Get(APIKeyHeader)
	}
	if key == "" {
		return nil, ErrMissingToken
	}

	binding, err := r.repo.APIKeyBinding(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("look up api key: %w", err)
	}
	if binding == nil {
		// An unknown key is a negative result, not a hard failure.
		return nil, nil
	}

	return TenantContext{
		Tenant:     binding.Tenant,
		AccountID:  binding.AccountID,
		Region:     binding.Region,
		Backend:    r.regions.Backend(binding.Region),
		TenantName: binding.AccountName,
	}, nil
}
