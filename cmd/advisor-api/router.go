// Package main provides the API router setup.
package main

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/campusdesk/email-advisor/cmd/advisor-api/handlers"
	"github.com/campusdesk/email-advisor/cmd/advisor-api/middleware"
	"github.com/campusdesk/email-advisor/internal/cache"
	"github.com/campusdesk/email-advisor/internal/config"
	"github.com/campusdesk/email-advisor/internal/knowledge"
	"github.com/campusdesk/email-advisor/internal/monitoring"
	"github.com/campusdesk/email-advisor/internal/observability"
	"github.com/campusdesk/email-advisor/internal/storage"
	"github.com/campusdesk/email-advisor/pkg/advising"
)

// Services bundles the dependencies the handlers need.
type Services struct {
	Engine   *advising.Engine
	Emails   *storage.EmailRepository
	Cache    cache.Client
	LoadBase func() (*knowledge.Base, error)
	BasePing func(ctx context.Context) error
}

// NewRouter creates the main API router with all routes configured.
func NewRouter(logger *observability.Logger, cfg *config.Config, svc *Services) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))
	r.Use(chimiddleware.Timeout(cfg.Server.ReadTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy","service":"email-advisor"}`))
	})

	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if svc.BasePing != nil {
			if err := svc.BasePing(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte(`{"status":"unavailable"}`))
				return
			}
		}
		w.Write([]byte(`{"status":"ready"}`))
	})

	audit := monitoring.NewAuditLogger(logger)

	emailHandler := handlers.NewEmailHandler(logger, svc.Emails, svc.Engine, audit)
	respondHandler := handlers.NewRespondHandler(logger, svc.Engine, svc.Cache, cfg.Cache.TTL, audit)
	metricsHandler := handlers.NewMetricsHandler(logger, svc.Emails)
	knowledgeHandler := handlers.NewKnowledgeHandler(logger, svc.Engine, svc.Cache, svc.LoadBase)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/emails", func(r chi.Router) {
			r.Post("/ingest", emailHandler.Ingest)
			r.Get("/", emailHandler.List)
			r.Get("/{emailId}", emailHandler.Get)
			r.Patch("/{emailId}", emailHandler.Update)
			r.Delete("/{emailId}", emailHandler.Delete)
		})

		r.Post("/respond", respondHandler.Respond)
		r.Post("/rank", respondHandler.Rank)

		r.Get("/metrics", metricsHandler.Get)

		r.Route("/knowledge", func(r chi.Router) {
			r.Get("/articles", knowledgeHandler.ListArticles)
			r.Post("/reload", knowledgeHandler.Reload)
		})
	})

	return r
}
