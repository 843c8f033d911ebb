// Package main provides UI utilities for the advising CLI.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"

	"github.com/campusdesk/email-advisor/internal/advisor"
)

var (
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
	headerColor  = color.New(color.FgCyan, color.Bold)
	dimColor     = color.New(color.Faint)
)

// newSpinner creates a spinner writing to stderr, so piped stdout stays
// clean.
func newSpinner(message string) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message
	s.Writer = os.Stderr
	return s
}

// printResponse renders an advisor response for terminal reading.
func printResponse(resp *advisor.Response) {
	headerColor.Printf("━━━ %s ━━━\n", resp.Subject)
	fmt.Println()
	fmt.Println(resp.Body)
	fmt.Println()

	switch resp.Decision {
	case advisor.DecisionAutoSend:
		successColor.Printf("✓ auto_send (confidence %.2f)\n", resp.Confidence)
	default:
		warnColor.Printf("⚠ needs_review (confidence %.2f)\n", resp.Confidence)
	}

	if len(resp.Reasons) > 0 {
		fmt.Println()
		headerColor.Println("Reasons:")
		for _, reason := range resp.Reasons {
			fmt.Printf("  • %s\n", reason)
		}
	}

	if len(resp.RankedMatches) > 0 {
		fmt.Println()
		headerColor.Println("Ranked matches:")
		for _, m := range resp.RankedMatches {
			fmt.Printf("  %.2f  %s", m.Confidence, m.Subject)
			dimColor.Printf("  (%s)\n", m.ArticleID)
		}
	}

	if len(resp.References) > 0 {
		fmt.Println()
		headerColor.Println("References:")
		for _, ref := range resp.References {
			fmt.Printf("  • %s", ref.Title)
			if ref.URL != "" {
				dimColor.Printf("  %s", ref.URL)
			}
			fmt.Println()
		}
	}

	if len(resp.FollowUpQuestions) > 0 {
		fmt.Println()
		headerColor.Println("Follow-up questions:")
		for _, q := range resp.FollowUpQuestions {
			fmt.Printf("  • %s\n", q)
		}
	}
}
