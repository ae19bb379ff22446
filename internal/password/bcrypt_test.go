package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/quill-server/internal/model"
)

func TestNewBcrypt_Cost(t *testing.T) {
	t.Parallel()

	assert.Equal(t, bcrypt.MinCost, NewBcrypt(bcrypt.MinCost).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcrypt(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcrypt(bcrypt.MaxCost+1).cost)
}

func TestBcrypt_HashAndVerify(t *testing.T) {
	t.Parallel()

	h := NewBcrypt(bcrypt.MinCost)

	hash, err := h.Hash("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	assert.True(t, h.Verify("secret1", hash))
	assert.False(t, h.Verify("secret2", hash))
}

func TestBcrypt_HashIsSalted(t *testing.T) {
	t.Parallel()

	h := NewBcrypt(bcrypt.MinCost)

	first, err := h.Hash("secret1")
	require.NoError(t, err)
	second, err := h.Hash("secret1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, h.Verify("secret1", first))
	assert.True(t, h.Verify("secret1", second))
}

func TestBcrypt_HashTooLong(t *testing.T) {
	t.Parallel()

	_, err := NewBcrypt(bcrypt.MinCost).Hash(strings.Repeat("a", 73))
	assert.ErrorIs(t, err, model.ErrPasswordTooLong)
}

func TestBcrypt_VerifyMalformedHash(t *testing.T) {
	t.Parallel()

	h := NewBcrypt(bcrypt.MinCost)

	tests := []struct {
		name string
		hash string
	}{
		{name: "empty", hash: ""},
		{name: "garbage", hash: "not-a-hash"},
		{name: "truncated", hash: "$2a$04$abc"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.False(t, h.Verify("secret1", tt.hash))
		})
	}
}
