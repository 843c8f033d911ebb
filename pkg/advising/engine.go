// Package advising exposes the email advising engine to embedding
// applications: the HTTP API, the CLI, and a mailbox sync job all consume
// this facade.
package advising

import (
	"fmt"
	"sync/atomic"

	"github.com/campusdesk/email-advisor/internal/advisor"
	"github.com/campusdesk/email-advisor/internal/knowledge"
)

// Engine wraps the advisor behind an atomic pointer. Processing never
// locks; editing the knowledge base builds a fresh advisor (with new
// indices) and swaps it in, so in-flight queries keep their consistent
// view.
type Engine struct {
	active   atomic.Pointer[advisor.Advisor]
	settings advisor.ConfidenceSettings
	opts     []advisor.Option
}

// New builds an engine from a validated knowledge base. The options are
// retained and re-applied on every reload.
func New(base *knowledge.Base, settings advisor.ConfidenceSettings, opts ...advisor.Option) *Engine {
	e := &Engine{settings: settings, opts: opts}
	e.active.Store(advisor.New(base, settings, opts...))
	return e
}

// Process runs one query through the active advisor.
func (e *Engine) Process(query string, metadata map[string]string) *advisor.Response {
	return e.active.Load().Process(query, metadata)
}

// Rank scores every article against the query without rendering a reply.
func (e *Engine) Rank(query string) []advisor.RankedMatch {
	return e.active.Load().Rank(query)
}

// Settings returns the engine's confidence settings.
func (e *Engine) Settings() advisor.ConfidenceSettings {
	return e.settings
}

// Articles returns the active knowledge base articles in load order.
func (e *Engine) Articles() []knowledge.Article {
	return e.active.Load().Articles()
}

// Reload rebuilds the advisor from an edited knowledge base and swaps it
// in atomically. The previous instance keeps serving until the swap.
func (e *Engine) Reload(base *knowledge.Base) error {
	if base == nil {
		return fmt.Errorf("reload requires a knowledge base")
	}
	e.active.Store(advisor.New(base, e.settings, e.opts...))
	return nil
}
