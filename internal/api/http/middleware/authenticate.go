package middleware

import (
	"net/http"
	"strings"

	"github.com/dtroode/quill-server/internal/api/http/response"
	"github.com/dtroode/quill-server/internal/apierror"
	"github.com/dtroode/quill-server/internal/logger"
	"github.com/dtroode/quill-server/internal/model"
)

const bearerScheme = "bearer"

// TokenVerifier resolves a principal from a bearer token.
type TokenVerifier interface {
	Verify(token string) (model.Principal, error)
}

// Authenticate validates bearer tokens and injects the principal into the request context.
type Authenticate struct {
	tokens         TokenVerifier
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokens TokenVerifier, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokens: tokens, contextManager: contextManager, logger: logger}
}

// Handler rejects requests without a valid token with 401.
func (m *Authenticate) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, err := m.authenticate(r.Header.Get("Authorization"))
		if err != nil {
			m.logger.Debug("Authenticate: request rejected",
				"path", r.URL.Path,
				"error", err.Error())
			response.Error(w, m.logger, err)
			return
		}

		ctx := m.contextManager.SetPrincipalToContext(r.Context(), principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Authenticate) authenticate(header string) (model.Principal, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return model.Principal{}, apierror.NewErrUnauthenticated(apierror.MsgNoToken)
	}

	scheme, token, found := strings.Cut(header, " ")
	if !strings.EqualFold(scheme, bearerScheme) {
		return model.Principal{}, apierror.NewErrUnauthenticated(apierror.MsgInvalidToken)
	}
	token = strings.TrimSpace(token)
	if !found || token == "" {
		return model.Principal{}, apierror.NewErrUnauthenticated(apierror.MsgNoToken)
	}

	principal, err := m.tokens.Verify(token)
	if err != nil {
		return model.Principal{}, apierror.NewErrUnauthenticated(apierror.MsgInvalidToken)
	}

	return principal, nil
}
