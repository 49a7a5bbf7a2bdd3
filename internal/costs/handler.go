package costs

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/medvoy/medvoy-platform/internal/observability/metrics"
	"github.com/medvoy/medvoy-platform/pkg/logging"
)

// Handler serves the cost estimate capability.
type Handler struct {
	service *Service
	logger  *logging.Logger
	metrics *metrics.CapabilityMetrics
}

func NewHandler(service *Service, logger *logging.Logger, m *metrics.CapabilityMetrics) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger.Named("costs_handler"), metrics: m}
}

// Estimate handles POST /capabilities/costs.
func (h *Handler) Estimate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req EstimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.observe(http.StatusBadRequest, start)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	est, err := h.service.Estimate(r.Context(), req)
	switch {
	case errors.Is(err, ErrNoData):
		h.observe(http.StatusNotFound, start)
		writeError(w, http.StatusNotFound, "no facilities match that procedure")
		return
	case err != nil:
		h.logger.Error("cost estimate failed", "error", err)
		h.observe(http.StatusInternalServerError, start)
		writeError(w, http.StatusInternalServerError, "cost estimate failed")
		return
	}

	h.observe(http.StatusOK, start)
	writeJSON(w, http.StatusOK, map[string]any{"estimate": est})
}

func (h *Handler) observe(status int, start time.Time) {
	h.metrics.ObserveRequest("costs", strconv.Itoa(status))
	h.metrics.ObserveLatency("costs", time.Since(start).Seconds())
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
