package advisor

import (
	"fmt"
	"strings"

	"github.com/campusdesk/email-advisor/internal/knowledge"
)

// Composer assembles the final subject and body of an outgoing reply.
// Alternate composers can reformat the message without affecting the rest
// of the pipeline.
type Composer interface {
	Compose(article *knowledge.Article, subject, body, query string, metadata map[string]string, refs []Reference) (string, string)
}

// TemplateComposer returns the rendered subject and body unchanged, and
// appends a resources section when references are attached.
type TemplateComposer struct{}

// Compose implements Composer.
func (TemplateComposer) Compose(_ *knowledge.Article, subject, body, _ string, _ map[string]string, refs []Reference) (string, string) {
	if len(refs) == 0 {
		return subject, body
	}
	var b strings.Builder
	b.WriteString(body)
	b.WriteString("\n\nHelpful resources:\n")
	for _, ref := range refs {
		if ref.URL != "" {
			fmt.Fprintf(&b, "- %s (%s)\n", ref.Title, ref.URL)
		} else {
			fmt.Fprintf(&b, "- %s\n", ref.Title)
		}
	}
	return subject, strings.TrimRight(b.String(), "\n")
}
