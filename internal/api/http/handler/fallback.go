package handler

import (
	"fmt"
	"net/http"

	"github.com/dtroode/quill-server/internal/api/http/response"
)

// NotFound answers requests for unrouted paths.
func NotFound(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusNotFound, response.Message{
		Message: fmt.Sprintf("Not Found - %s", r.URL.Path),
	})
}

// MethodNotAllowed answers requests whose path exists under another method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusMethodNotAllowed, response.Message{
		Message: fmt.Sprintf("Method Not Allowed - %s %s", r.Method, r.URL.Path),
	})
}
