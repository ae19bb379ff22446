package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/thejerf/abtime"

	"github.com/dtroode/quill-server/internal/model"
)

// DefaultTTL is the lifetime of issued tokens.
const DefaultTTL = 24 * time.Hour

var _ model.TokenManager = (*JWT)(nil)

// Claims represents JWT claims carrying the principal.
type Claims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID `json:"user_id"`
	Name   string    `json:"name"`
}

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey []byte
	ttl       time.Duration
	clock     abtime.AbstractTime
	parser    *jwt.Parser
}

// NewJWT creates a new JWT token manager. A non-positive ttl means DefaultTTL,
// a nil clock means wall time.
func NewJWT(secretKey string, ttl time.Duration, clock abtime.AbstractTime) *JWT {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if clock == nil {
		clock = abtime.NewRealTime()
	}
	return &JWT{
		secretKey: []byte(secretKey),
		ttl:       ttl,
		clock:     clock,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithTimeFunc(clock.Now),
		),
	}
}

// Issue signs a token for principal valid for the configured TTL.
func (j *JWT) Issue(principal model.Principal) (string, error) {
	now := j.clock.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(ceilSecond(now.Add(j.ttl))),
		},
		UserID: principal.ID,
		Name:   principal.Name,
	})

	tokenString, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Verify validates tokenString and returns the principal it carries. Every
// failure is reported as model.ErrInvalidToken.
func (j *JWT) Verify(tokenString string) (model.Principal, error) {
	claims := &Claims{}
	token, err := j.parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return j.secretKey, nil
	})
	if err != nil {
		return model.Principal{}, fmt.Errorf("%w: %w", model.ErrInvalidToken, err)
	}
	if !token.Valid {
		return model.Principal{}, model.ErrInvalidToken
	}
	if claims.UserID == uuid.Nil {
		return model.Principal{}, fmt.Errorf("%w: missing user id", model.ErrInvalidToken)
	}

	return model.Principal{ID: claims.UserID, Name: claims.Name}, nil
}

// ceilSecond rounds t up to a whole second. NumericDate drops fractions, so
// rounding down would cut the token short of its TTL.
func ceilSecond(t time.Time) time.Time {
	if truncated := t.Truncate(time.Second); truncated.Before(t) {
		return truncated.Add(time.Second)
	}
	return t
}
