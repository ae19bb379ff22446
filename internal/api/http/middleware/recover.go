package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/dtroode/quill-server/internal/api/http/response"
	"github.com/dtroode/quill-server/internal/apierror"
	"github.com/dtroode/quill-server/internal/logger"
)

// Recover turns handler panics into a 500 response.
type Recover struct {
	logger *logger.Logger
}

func NewRecover(logger *logger.Logger) *Recover {
	return &Recover{logger: logger}
}

func (m *Recover) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			m.logger.Error("HTTP handler panicked",
				"method", r.Method,
				"path", r.URL.Path,
				"panic", fmt.Sprint(rec),
				"stack", string(debug.Stack()))

			response.JSON(w, http.StatusInternalServerError, response.Message{Message: apierror.MsgUnknown})
		}()

		next.ServeHTTP(w, r)
	})
}
