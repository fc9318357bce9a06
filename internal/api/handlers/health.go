package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/pratik-mahalle/freelancehub/internal/gateway"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/logger"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/utils"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	backend string
	pinger  gateway.Pinger
	logger  *logger.Logger
}

// NewHealthHandler creates a new health handler. pinger checks the data gateway.
func NewHealthHandler(backend string, pinger gateway.Pinger, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		backend: backend,
		pinger:  pinger,
		logger:  log,
	}
}

// Healthz handles liveness probe
// @Summary Liveness probe
// @Description Check if the application is alive
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string "Application is alive"
// @Router /healthz [get]
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccess(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Readyz handles readiness probe
// @Summary Readiness probe
// @Description Check if the data gateway is reachable
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string "Application is ready"
// @Failure 503 {object} utils.ErrorResponse "Service unavailable"
// @Router /readyz [get]
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.pinger != nil {
		if err := h.pinger.Ping(ctx); err != nil {
			h.logger.ErrorWithErr(err, "Gateway ping failed")
			utils.WriteErrorMessage(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Data gateway unreachable")
			return
		}
	}

	utils.WriteSuccess(w, http.StatusOK, map[string]string{
		"status":  "ready",
		"gateway": h.backend,
	})
}
