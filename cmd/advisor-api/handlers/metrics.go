package handlers

import (
	"net/http"
	"time"

	"github.com/campusdesk/email-advisor/internal/observability"
	"github.com/campusdesk/email-advisor/internal/storage"
)

// MetricsHandler serves the dashboard aggregates.
type MetricsHandler struct {
	logger *observability.Logger
	emails *storage.EmailRepository
}

// NewMetricsHandler creates a metrics handler.
func NewMetricsHandler(logger *observability.Logger, emails *storage.EmailRepository) *MetricsHandler {
	return &MetricsHandler{logger: logger, emails: emails}
}

// MetricsDTO is the wire representation of the dashboard aggregates.
type MetricsDTO struct {
	EmailsTotal       int     `json:"emails_total"`
	EmailsToday       int     `json:"emails_today"`
	AutoCount         int     `json:"auto_count"`
	ReviewCount       int     `json:"review_count"`
	AutoSendRate      float64 `json:"auto_send_rate"`
	AvgConfidence     float64 `json:"avg_confidence"`
	AvgAutoConfidence float64 `json:"avg_auto_confidence"`
}

// Get handles GET /metrics.
func (h *MetricsHandler) Get(w http.ResponseWriter, r *http.Request) {
	m, err := h.emails.Metrics(r.Context(), time.Now())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to compute metrics")
		writeError(w, http.StatusInternalServerError, "failed to compute metrics", err.Error())
		return
	}

	dto := MetricsDTO{
		EmailsTotal:       m.EmailsTotal,
		EmailsToday:       m.EmailsToday,
		AutoCount:         m.AutoCount,
		ReviewCount:       m.ReviewCount,
		AvgConfidence:     m.AvgConfidence,
		AvgAutoConfidence: m.AvgAutoConfidence,
	}
	if m.EmailsTotal > 0 {
		dto.AutoSendRate = float64(m.AutoCount) / float64(m.EmailsTotal)
	}
	writeJSON(w, http.StatusOK, dto)
}
