// Package monitoring records decision audit events for processed emails.
package monitoring

import (
	"github.com/google/uuid"

	"github.com/campusdesk/email-advisor/internal/advisor"
	"github.com/campusdesk/email-advisor/internal/observability"
)

// AuditLogger emits one structured event per advising decision, so the
// auto-send gate is traceable after the fact.
type AuditLogger struct {
	logger *observability.Logger
}

// NewAuditLogger creates an audit logger.
func NewAuditLogger(logger *observability.Logger) *AuditLogger {
	return &AuditLogger{logger: logger.WithComponent("audit")}
}

// RecordDecision logs the outcome of one processed email.
func (a *AuditLogger) RecordDecision(emailID uuid.UUID, resp *advisor.Response) {
	a.logger.Info().
		Str("email_id", emailID.String()).
		Str("decision", string(resp.Decision)).
		Str("article_id", resp.ArticleID).
		Bool("auto_send", resp.AutoSend).
		Float64("confidence", resp.Confidence).
		Int("ranked_matches", len(resp.RankedMatches)).
		Strs("reasons", resp.Reasons).
		Msg("advising decision")
}

// RecordQuery logs a playground query that was not persisted.
func (a *AuditLogger) RecordQuery(resp *advisor.Response, cached bool) {
	a.logger.Info().
		Str("decision", string(resp.Decision)).
		Float64("confidence", resp.Confidence).
		Bool("cached", cached).
		Msg("playground query")
}
