// Package main provides the advising API server entrypoint.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/campusdesk/email-advisor/internal/advisor"
	"github.com/campusdesk/email-advisor/internal/cache"
	"github.com/campusdesk/email-advisor/internal/config"
	"github.com/campusdesk/email-advisor/internal/knowledge"
	"github.com/campusdesk/email-advisor/internal/observability"
	"github.com/campusdesk/email-advisor/internal/storage"
	"github.com/campusdesk/email-advisor/pkg/advising"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if len(os.Args) > 2 && os.Args[1] == "--config" {
		cfgPath = os.Args[2]
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(observability.LogConfig{
		Level:       cfg.Observability.LogLevel,
		Format:      cfg.Observability.LogFormat,
		ServiceName: cfg.Observability.ServiceName,
	})

	logger.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Str("database", cfg.Database.Driver).
		Str("cache", cfg.Cache.Driver).
		Msg("Starting advising API")

	db, err := storage.Open(cfg.DatabaseDriverName(), cfg.DatabaseDSN())
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to open database")
	}
	defer db.Close()

	if err := storage.Migrate(context.Background(), db); err != nil {
		logger.Fatal().Err(err).Msg("Failed to migrate database")
	}

	cacheClient, err := newCacheClient(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect cache")
	}
	defer cacheClient.Close()

	loadBase := knowledgeLoader(cfg)
	base, err := loadBase()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load knowledge base")
	}

	references, err := loadReferences(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load reference corpus")
	}

	engine := advising.New(base,
		advisor.ConfidenceSettings{
			ReviewThreshold:   cfg.Confidence.ReviewThreshold,
			AutoSendThreshold: cfg.Confidence.AutoSendThreshold,
			AmbiguityGap:      cfg.Confidence.AmbiguityGap,
		},
		advisor.WithRetriever(advisor.NewCorpusRetriever(references)),
		advisor.WithReferenceLimit(cfg.Knowledge.ReferenceLimit),
		advisor.WithLogger(logger.WithComponent("advisor")),
	)
	logger.Info().Int("articles", base.Len()).Int("references", len(references)).Msg("Knowledge base loaded")

	router := NewRouter(logger, cfg, &Services{
		Engine:    engine,
		Emails:    storage.NewEmailRepository(db),
		Cache:     cacheClient,
		LoadBase:  loadBase,
		BasePing:  db.PingContext,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("HTTP server listening")
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Error().Err(err).Msg("Server error")
	case sig := <-shutdown:
		logger.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdown)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Graceful shutdown failed")
		if err := srv.Close(); err != nil {
			logger.Error().Err(err).Msg("Forced shutdown failed")
		}
	}

	logger.Info().Msg("Server stopped")
}

func newCacheClient(cfg *config.Config) (cache.Client, error) {
	if cfg.Cache.Driver == "redis" {
		return cache.NewRedisClient(cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			PoolSize: cfg.Cache.Redis.PoolSize,
		})
	}
	return cache.NewMemoryClient(cfg.Cache.MaxEntries), nil
}

// knowledgeLoader returns a closure that re-reads the knowledge base from
// its configured source. The reload endpoint uses the same closure, so
// startup and reload can never diverge.
func knowledgeLoader(cfg *config.Config) func() (*knowledge.Base, error) {
	path := cfg.Knowledge.BasePath
	return func() (*knowledge.Base, error) {
		if path == "" {
			return knowledge.DefaultBase(), nil
		}
		return knowledge.LoadFile(path)
	}
}

func loadReferences(cfg *config.Config) ([]knowledge.ReferenceDoc, error) {
	if cfg.Knowledge.ReferencesPath == "" {
		return knowledge.DefaultReferences(), nil
	}
	return knowledge.LoadReferences(cfg.Knowledge.ReferencesPath)
}
