package service

import (
	"github.com/google/uuid"

	"github.com/dtroode/quill-server/internal/model"
)

// Authorize reports whether principal owns a resource authored by authorID.
func Authorize(principal model.Principal, authorID uuid.UUID) bool {
	if principal.ID == uuid.Nil || authorID == uuid.Nil {
		return false
	}
	return principal.ID == authorID
}
