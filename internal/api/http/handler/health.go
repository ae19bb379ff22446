package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/dtroode/quill-server/internal/api/http/response"
	"github.com/dtroode/quill-server/internal/logger"
)

const healthTimeout = 2 * time.Second

// Pinger reports database reachability.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Health struct {
	db     Pinger
	logger *logger.Logger
}

func NewHealth(db Pinger, logger *logger.Logger) *Health {
	return &Health{db: db, logger: logger}
}

type healthResponse struct {
	Status string `json:"status"`
}

func (h *Health) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Error("Health: database unreachable",
			"error", err.Error())
		response.JSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
		return
	}

	response.JSON(w, http.StatusOK, healthResponse{Status: "ok"})
}
