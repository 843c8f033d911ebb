// Package storage provides database models and repositories for processed
// advising emails.
package storage

import (
	"time"

	"github.com/google/uuid"
)

// EmailStatus tracks whether a stored reply was approved automatically or
// needs manual review.
type EmailStatus string

// EmailStatus values.
const (
	StatusAuto   EmailStatus = "auto"
	StatusReview EmailStatus = "review"
)

// Valid reports whether the status is a known value.
func (s EmailStatus) Valid() bool {
	return s == StatusAuto || s == StatusReview
}

// EmailRecord is one processed email with the engine's verdict.
type EmailRecord struct {
	ID             uuid.UUID
	StudentName    string
	Subject        string
	Body           string
	Confidence     float64
	Status         EmailStatus
	SuggestedReply string
	ArticleID      string
	ReceivedAt     time.Time
}

// EmailUpdate carries the fields an advisor may change after review. Nil
// fields are left untouched.
type EmailUpdate struct {
	Status         *EmailStatus
	SuggestedReply *string
}

// Metrics holds the dashboard aggregates.
type Metrics struct {
	EmailsTotal       int
	EmailsToday       int
	AutoCount         int
	ReviewCount       int
	AvgConfidence     float64
	AvgAutoConfidence float64
}
