// Package region maps a tenant's configured region to the backend endpoint
// its operations must be routed to.
package region

// Directory resolves region codes to backend endpoints. It is built once at
// startup from configuration and read-only afterwards.
type Directory struct {
	backends    map[string]string
	defaultCode string
}

// DefaultBackends is the built-in region table, used when no regions are
// configured.
var DefaultBackends = map[string]string{
	"eu": "https://eu.backend.womni.store",
	"us": "https://us.backend.womni.store",
}

// NewDirectory creates a directory from a region-to-endpoint map. Unknown
// regions resolve to defaultCode's endpoint. A nil or empty map falls back to
// DefaultBackends.
func NewDirectory(backends map[string]string, defaultCode string) *Directory {
	if len(backends) == 0 {
		backends = DefaultBackends
	}
	return &Directory{backends: backends, defaultCode: defaultCode}
}

// Backend returns the endpoint for code, falling back to the default region's
// endpoint when the code is unknown.
func (d *Directory) Backend(code string) string {
	if b, ok := d.backends[code]; ok {
		return b
	}
	return d.backends[d.defaultCode]
}

// Known reports whether code has a configured backend.
func (d *Directory) Known(code string) bool {
	_, ok := d.backends[code]
	return ok
}
