package service

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/dtroode/quill-server/internal/model"
)

func TestAuthorize(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	sameOwnerParsed := uuid.MustParse(strings.ToUpper(owner.String()))

	tests := []struct {
		name      string
		principal model.Principal
		authorID  uuid.UUID
		want      bool
	}{
		{name: "owner", principal: model.Principal{ID: owner}, authorID: owner, want: true},
		{name: "owner parsed from upper-case text", principal: model.Principal{ID: sameOwnerParsed}, authorID: owner, want: true},
		{name: "other user", principal: model.Principal{ID: uuid.New()}, authorID: owner, want: false},
		{name: "nil principal", principal: model.Principal{}, authorID: owner, want: false},
		{name: "nil author", principal: model.Principal{ID: owner}, authorID: uuid.Nil, want: false},
		{name: "both nil", principal: model.Principal{}, authorID: uuid.Nil, want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Authorize(tt.principal, tt.authorID))
		})
	}
}
