package response

import (
	"encoding/json"
	"net/http"

	"github.com/dtroode/quill-server/internal/apierror"
	"github.com/dtroode/quill-server/internal/logger"
)

// Message is the body of every error and acknowledgement response.
type Message struct {
	Message string `json:"message"`
}

// JSON writes v as a JSON document with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes err as {"message": ...}. API errors keep their kind's status,
// anything else is logged and reported as a generic internal error.
func Error(w http.ResponseWriter, logger *logger.Logger, err error) {
	apiErr, ok := apierror.From(err)
	if !ok {
		logger.Error("HTTP: unexpected error",
			"error", err.Error())
		apiErr = apierror.NewErrInternal(err)
	} else if apiErr.Kind == apierror.KindInternal && apiErr.Err != nil {
		logger.Error("HTTP: internal error",
			"error", apiErr.Err.Error())
	}

	JSON(w, apiErr.StatusCode(), Message{Message: apiErr.Message})
}
