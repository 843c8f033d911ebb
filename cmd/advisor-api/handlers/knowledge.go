package handlers

import (
	"net/http"

	"github.com/campusdesk/email-advisor/internal/cache"
	"github.com/campusdesk/email-advisor/internal/knowledge"
	"github.com/campusdesk/email-advisor/internal/observability"
	"github.com/campusdesk/email-advisor/pkg/advising"
)

// KnowledgeHandler manages the live knowledge base.
type KnowledgeHandler struct {
	logger   *observability.Logger
	engine   *advising.Engine
	cache    cache.Client
	loadBase func() (*knowledge.Base, error)
}

// NewKnowledgeHandler creates a knowledge handler.
func NewKnowledgeHandler(logger *observability.Logger, engine *advising.Engine, cacheClient cache.Client, loadBase func() (*knowledge.Base, error)) *KnowledgeHandler {
	return &KnowledgeHandler{logger: logger, engine: engine, cache: cacheClient, loadBase: loadBase}
}

// ArticleDTO is the wire summary of one knowledge base article.
type ArticleDTO struct {
	ID                string   `json:"id"`
	Subject           string   `json:"subject"`
	Utterances        []string `json:"utterances"`
	Categories        []string `json:"categories,omitempty"`
	FollowUpQuestions []string `json:"follow_up_questions,omitempty"`
}

// ListArticles handles GET /knowledge/articles.
func (h *KnowledgeHandler) ListArticles(w http.ResponseWriter, r *http.Request) {
	articles := h.engine.Articles()
	dtos := make([]ArticleDTO, 0, len(articles))
	for _, a := range articles {
		dtos = append(dtos, ArticleDTO{
			ID:                a.ID,
			Subject:           a.Subject,
			Utterances:        a.Utterances,
			Categories:        a.Categories,
			FollowUpQuestions: a.FollowUpQuestions,
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"articles": dtos})
}

// Reload handles POST /knowledge/reload. The base is re-read from its
// configured source, validated, swapped in, and cached responses rendered
// from the old base are invalidated.
func (h *KnowledgeHandler) Reload(w http.ResponseWriter, r *http.Request) {
	base, err := h.loadBase()
	if err != nil {
		h.logger.Error().Err(err).Msg("Knowledge base reload failed")
		writeError(w, http.StatusUnprocessableEntity, "knowledge base reload failed", err.Error())
		return
	}
	if err := h.engine.Reload(base); err != nil {
		writeError(w, http.StatusInternalServerError, "knowledge base swap failed", err.Error())
		return
	}
	if err := h.cache.DeleteByPrefix(r.Context(), cache.ResponsePrefix); err != nil {
		h.logger.Warn().Err(err).Msg("Cache invalidation failed after reload")
	}

	h.logger.Info().Int("articles", base.Len()).Msg("Knowledge base reloaded")
	writeJSON(w, http.StatusOK, map[string]interface{}{"articles": base.Len()})
}
