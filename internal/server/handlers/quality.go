package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/iudanet/deltasync/internal/fallback"
	"github.com/iudanet/deltasync/internal/models"
	"github.com/iudanet/deltasync/pkg/api"
)

// QualityHandler принимает замеры качества соединения и отдает отчеты
type QualityHandler struct {
	logger  *slog.Logger
	service QualityService
}

// NewQualityHandler creates a new quality handler
func NewQualityHandler(logger *slog.Logger, service QualityService) *QualityHandler {
	return &QualityHandler{
		logger:  logger,
		service: service,
	}
}

// Latency обрабатывает POST /api/v1/quality/latency
func (h *QualityHandler) Latency(w http.ResponseWriter, r *http.Request) {
	var req api.LatencyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !authorize(w, r, req.ClientID) {
		return
	}

	qm, err := h.service.RecordLatency(r.Context(), req.ClientID, req.LatencyMs)
	h.respondMetrics(w, "latency", qm, err)
}

// PacketLoss обрабатывает POST /api/v1/quality/packet-loss
func (h *QualityHandler) PacketLoss(w http.ResponseWriter, r *http.Request) {
	var req api.PacketLossRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !authorize(w, r, req.ClientID) {
		return
	}

	qm, err := h.service.RecordPacketLoss(r.Context(), req.ClientID, req.Lost, req.Sent)
	h.respondMetrics(w, "packet_loss", qm, err)
}

// Bandwidth обрабатывает POST /api/v1/quality/bandwidth
func (h *QualityHandler) Bandwidth(w http.ResponseWriter, r *http.Request) {
	var req api.BandwidthRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !authorize(w, r, req.ClientID) {
		return
	}

	if err := h.service.RecordBandwidthUsage(r.Context(), req.ClientID, req.BytesSent, req.BytesReceived); err != nil {
		writeServiceError(w, h.logger, "bandwidth", err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// respondMetrics отдает свежие метрики; nil означает, что замер не сохранился
func (h *QualityHandler) respondMetrics(w http.ResponseWriter, op string, qm *models.ConnectionQualityMetrics, err error) {
	if err != nil {
		writeServiceError(w, h.logger, op, err)
		return
	}
	if qm == nil {
		w.WriteHeader(http.StatusAccepted)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, qm)
}

// Metrics обрабатывает GET /api/v1/quality/{clientID}
func (h *QualityHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	clientID := r.PathValue("clientID")
	if !authorize(w, r, clientID) {
		return
	}

	qm, err := h.service.GetQualityMetrics(r.Context(), clientID)
	if err != nil {
		writeServiceError(w, h.logger, "quality", err)
		return
	}
	if qm == nil {
		writeError(w, http.StatusNotFound, "no quality metrics for client")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, qm)
}

// Report обрабатывает GET /api/v1/quality/{clientID}/report
func (h *QualityHandler) Report(w http.ResponseWriter, r *http.Request) {
	clientID := r.PathValue("clientID")
	if !authorize(w, r, clientID) {
		return
	}

	report, err := h.service.QualityReport(r.Context(), clientID)
	if err != nil {
		writeServiceError(w, h.logger, "report", err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, report)
}

// FallbackHistory обрабатывает GET /api/v1/quality/{clientID}/fallback
func (h *QualityHandler) FallbackHistory(w http.ResponseWriter, r *http.Request) {
	clientID := r.PathValue("clientID")
	if !authorize(w, r, clientID) {
		return
	}

	history, err := h.service.FallbackHistory(r.Context(), clientID)
	if err != nil {
		writeServiceError(w, h.logger, "fallback_history", err)
		return
	}
	if history == nil {
		history = []fallback.Transition{}
	}
	writeJSON(w, h.logger, http.StatusOK, history)
}

// DeactivateFallback обрабатывает POST /api/v1/quality/fallback/deactivate
func (h *QualityHandler) DeactivateFallback(w http.ResponseWriter, r *http.Request) {
	var req api.DeactivateFallbackRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	changed, err := h.service.DeactivateFallback(r.Context(), req.ClientID, req.Reason)
	if err != nil {
		writeServiceError(w, h.logger, "deactivate_fallback", err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, api.DeactivateFallbackResponse{Changed: changed})
}

// Alerts обрабатывает GET /api/v1/alerts?client_id=&since=
// since в миллисекундах Unix; без него отдаются алерты за последний час
func (h *QualityHandler) Alerts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	since := time.Now().Add(-time.Hour)
	if s := q.Get("since"); s != "" {
		ms, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			h.logger.Warn("Invalid since parameter", "since", s, "error", err)
			writeError(w, http.StatusBadRequest, "invalid since parameter")
			return
		}
		since = time.UnixMilli(ms)
	}

	alerts, err := h.service.GetAlerts(r.Context(), q.Get("client_id"), since)
	if err != nil {
		writeServiceError(w, h.logger, "alerts", err)
		return
	}
	if alerts == nil {
		alerts = []models.ConnectionQualityAlert{}
	}
	writeJSON(w, h.logger, http.StatusOK, alerts)
}

// SystemHealth обрабатывает GET /api/v1/health/system
func (h *QualityHandler) SystemHealth(w http.ResponseWriter, r *http.Request) {
	health, err := h.service.GetSystemHealthMetrics(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, "system_health", err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, health)
}
