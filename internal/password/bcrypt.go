package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/quill-server/internal/model"
)

var _ model.PasswordHasher = (*Bcrypt)(nil)

// Bcrypt implements PasswordHasher with bcrypt.
type Bcrypt struct {
	cost int
}

// NewBcrypt creates a hasher. Costs outside bcrypt's range fall back to bcrypt.DefaultCost.
func NewBcrypt(cost int) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost}
}

// Hash returns a salted bcrypt hash of password.
func (b *Bcrypt) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", model.ErrPasswordTooLong
		}
		return "", fmt.Errorf("%w: %w", model.ErrCryptoUnavailable, err)
	}
	return string(hash), nil
}

// Verify reports whether password matches hash. A malformed hash never matches.
func (b *Bcrypt) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
