package context

import (
	"context"

	"github.com/google/uuid"

	"github.com/dtroode/quill-server/internal/model"
)

type principalKey struct{}

// Manager stores the authenticated principal in a request context.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetPrincipalToContext returns a copy of ctx carrying principal.
func (m *Manager) SetPrincipalToContext(ctx context.Context, principal model.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, principal)
}

// GetPrincipalFromContext returns the principal set by the authentication
// middleware. A missing or nil-id principal reports false.
func (m *Manager) GetPrincipalFromContext(ctx context.Context) (model.Principal, bool) {
	principal, ok := ctx.Value(principalKey{}).(model.Principal)
	if !ok || principal.ID == uuid.Nil {
		return model.Principal{}, false
	}
	return principal, true
}
