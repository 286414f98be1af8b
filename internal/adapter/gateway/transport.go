package gateway

import (
	"net/http"
	"sync"

	"github.com/revcart/storefront/internal/core/port"
)

// Transport decorates every outgoing request with the bearer token and the
// explicit user-id header, and funnels 401/403 answers into the session gate.
// The session reader and hooks are bound after construction because the
// session service itself talks through this transport.
type Transport struct {
	base http.RoundTripper

	mu           sync.RWMutex
	session      port.SessionReader
	unauthorized func()
	forbidden    func()
}

func NewTransport(base http.RoundTripper) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{base: base}
}

// Bind attaches the session reader and the 401/403 reactions.
func (t *Transport) Bind(session port.SessionReader, unauthorized, forbidden func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.session = session
	t.unauthorized = unauthorized
	t.forbidden = forbidden
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.mu.RLock()
	session := t.session
	unauthorized := t.unauthorized
	forbidden := t.forbidden
	t.mu.RUnlock()

	if session != nil {
		if cur, ok := session.Current(); ok {
			req = req.Clone(req.Context())
			req.Header.Set("Authorization", "Bearer "+cur.Token)
			req.Header.Set("X-User-Id", cur.User.UserID)
		}
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		if unauthorized != nil {
			unauthorized()
		}
	case http.StatusForbidden:
		if forbidden != nil {
			forbidden()
		}
	}
	return resp, nil
}
