package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dtroode/quill-server/internal/api/http/response"
	"github.com/dtroode/quill-server/internal/logger"
	"github.com/dtroode/quill-server/internal/model"
)

// Uploads serves stored objects such as avatars.
type Uploads struct {
	storage model.Storage
	logger  *logger.Logger
}

func NewUploads(storage model.Storage, logger *logger.Logger) *Uploads {
	return &Uploads{storage: storage, logger: logger}
}

// Serve streams the object named by the wildcard path segment.
func (h *Uploads) Serve(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if key == "" || strings.Contains(key, "..") {
		h.notFound(w, r)
		return
	}

	info, err := h.storage.Stat(r.Context(), key)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			h.notFound(w, r)
			return
		}
		response.Error(w, h.logger, fmt.Errorf("failed to stat object: %w", err))
		return
	}

	body, err := h.storage.Download(r.Context(), key)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			h.notFound(w, r)
			return
		}
		response.Error(w, h.logger, fmt.Errorf("failed to download object: %w", err))
		return
	}
	defer body.Close()

	contentType := info.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.FormatInt(info.Size, 10))
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, body); err != nil {
		h.logger.Warn("Uploads: failed to stream object",
			"key", key,
			"error", err.Error())
	}
}

func (h *Uploads) notFound(w http.ResponseWriter, r *http.Request) {
	NotFound(w, r)
}
