package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/campusdesk/email-advisor/internal/advisor"
	"github.com/campusdesk/email-advisor/internal/cache"
	"github.com/campusdesk/email-advisor/internal/monitoring"
	"github.com/campusdesk/email-advisor/internal/observability"
	"github.com/campusdesk/email-advisor/pkg/advising"
)

// RespondHandler answers ad-hoc queries without persisting them. The
// playground panel of the dashboard uses it.
type RespondHandler struct {
	logger *observability.Logger
	engine *advising.Engine
	cache  cache.Client
	ttl    time.Duration
	audit  *monitoring.AuditLogger
}

// NewRespondHandler creates a respond handler.
func NewRespondHandler(logger *observability.Logger, engine *advising.Engine, cacheClient cache.Client, ttl time.Duration, audit *monitoring.AuditLogger) *RespondHandler {
	return &RespondHandler{logger: logger, engine: engine, cache: cacheClient, ttl: ttl, audit: audit}
}

// RespondRequestDTO is the API request for a direct query.
type RespondRequestDTO struct {
	Query    string            `json:"query"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Respond handles POST /respond. The engine is deterministic, so responses
// are cached by query and metadata until the knowledge base reloads.
func (h *RespondHandler) Respond(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RespondRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, "query is required", "")
		return
	}

	key := cache.ResponseKey(req.Query, req.Metadata)
	if data, err := h.cache.Get(ctx, key); err == nil {
		var cached advisor.Response
		if err := json.Unmarshal(data, &cached); err == nil {
			h.audit.RecordQuery(&cached, true)
			writeJSON(w, http.StatusOK, &cached)
			return
		}
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		h.logger.Warn().Err(err).Msg("Cache lookup failed")
	}

	resp := h.engine.Process(req.Query, req.Metadata)
	h.audit.RecordQuery(resp, false)

	if data, err := json.Marshal(resp); err == nil {
		if err := h.cache.Set(ctx, key, data, h.ttl); err != nil {
			h.logger.Warn().Err(err).Msg("Cache store failed")
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// RankResponseDTO lists every article's score for a query.
type RankResponseDTO struct {
	Matches []advisor.RankedMatch `json:"matches"`
}

// Rank handles POST /rank: scores without rendering, for debugging the
// knowledge base.
func (h *RespondHandler) Rank(w http.ResponseWriter, r *http.Request) {
	var req RespondRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, "query is required", "")
		return
	}

	matches := h.engine.Rank(req.Query)
	if matches == nil {
		matches = []advisor.RankedMatch{}
	}
	writeJSON(w, http.StatusOK, RankResponseDTO{Matches: matches})
}
