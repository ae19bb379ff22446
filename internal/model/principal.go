package model

import (
	"context"

	"github.com/google/uuid"
)

// Principal is the authenticated caller derived from a verified token.
type Principal struct {
	ID   uuid.UUID
	Name string
}

type ContextManager interface {
	SetPrincipalToContext(ctx context.Context, principal Principal) context.Context
	GetPrincipalFromContext(ctx context.Context) (Principal, bool)
}
