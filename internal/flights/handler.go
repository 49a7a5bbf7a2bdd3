package flights

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/medvoy/medvoy-platform/internal/observability/metrics"
	"github.com/medvoy/medvoy-platform/pkg/logging"
)

// Handler serves the flight search capability.
type Handler struct {
	logger  *logging.Logger
	metrics *metrics.CapabilityMetrics
}

func NewHandler(logger *logging.Logger, m *metrics.CapabilityMetrics) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{logger: logger.Named("flights_handler"), metrics: m}
}

// Search handles POST /capabilities/flights.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.observe(http.StatusBadRequest, start)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	quotes, err := Generate(req)
	if err != nil {
		h.observe(http.StatusBadRequest, start)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.logger.Info("flight search served",
		"origin", req.Origin, "destination", req.Destination, "quotes", len(quotes))
	h.observe(http.StatusOK, start)
	writeJSON(w, http.StatusOK, map[string]any{"flights": quotes})
}

func (h *Handler) observe(status int, start time.Time) {
	h.metrics.ObserveRequest("flights", strconv.Itoa(status))
	h.metrics.ObserveLatency("flights", time.Since(start).Seconds())
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
