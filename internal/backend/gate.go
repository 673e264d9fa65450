package backend

import (
	"net/url"
	"sync"

	"pelada/internal/logger"
	"pelada/internal/metrics"
)

const minAnonKeyLength = 20

// Gate decides whether the backend is usable. A nil Gate is unconfigured.
type Gate struct {
	url     string
	anonKey string
	ok      bool

	warnOnce sync.Once
}

func NewGate(endpoint, anonKey string) *Gate {
	return &Gate{
		url:     endpoint,
		anonKey: anonKey,
		ok:      validEndpoint(endpoint) && len(anonKey) > minAnonKeyLength,
	}
}

func validEndpoint(endpoint string) bool {
	u, err := url.Parse(endpoint)
	if err != nil {
		return false
	}
	return u.Scheme == "https" && u.Host != ""
}

func (g *Gate) Configured() bool {
	return g != nil && g.ok
}

func (g *Gate) URL() string {
	if g == nil {
		return ""
	}
	return g.url
}

func (g *Gate) AnonKey() string {
	if g == nil {
		return ""
	}
	return g.anonKey
}

// Unavailable records a short-circuited operation and returns ErrUnavailable.
// The warning is logged once per gate.
func (g *Gate) Unavailable(operation string) error {
	metrics.RecordBackendUnconfigured(operation)
	if g == nil {
		logger.Warn("backend not configured", "operation", operation)
		return ErrUnavailable
	}
	g.warnOnce.Do(func() {
		logger.Warn("backend not configured: set SUPABASE_URL (https) and SUPABASE_ANON_KEY", "operation", operation)
	})
	return ErrUnavailable
}
