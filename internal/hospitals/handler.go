package hospitals

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/medvoy/medvoy-platform/internal/observability/metrics"
	"github.com/medvoy/medvoy-platform/pkg/logging"
)

// Handler serves the hospital search capability.
type Handler struct {
	service *Service
	logger  *logging.Logger
	metrics *metrics.CapabilityMetrics
}

func NewHandler(service *Service, logger *logging.Logger, m *metrics.CapabilityMetrics) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger.Named("hospitals_handler"), metrics: m}
}

// Search handles POST /capabilities/hospitals.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var filter SearchFilter
	if err := json.NewDecoder(r.Body).Decode(&filter); err != nil {
		h.observe(http.StatusBadRequest, start)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	found, err := h.service.Search(r.Context(), filter)
	if err != nil {
		h.logger.Error("hospital search failed", "error", err)
		h.observe(http.StatusInternalServerError, start)
		writeError(w, http.StatusInternalServerError, "hospital search failed")
		return
	}

	h.observe(http.StatusOK, start)
	writeJSON(w, http.StatusOK, map[string]any{"hospitals": found})
}

func (h *Handler) observe(status int, start time.Time) {
	h.metrics.ObserveRequest("hospitals", strconv.Itoa(status))
	h.metrics.ObserveLatency("hospitals", time.Since(start).Seconds())
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
