// Package handlers provides HTTP handlers for the advising API.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/campusdesk/email-advisor/internal/storage"
)

// EmailDTO is the wire representation of a stored email.
type EmailDTO struct {
	ID             string  `json:"id"`
	StudentName    string  `json:"student_name"`
	Subject        string  `json:"subject"`
	Body           string  `json:"body"`
	Confidence     float64 `json:"confidence"`
	Status         string  `json:"status"`
	SuggestedReply string  `json:"suggested_reply"`
	ArticleID      string  `json:"article_id,omitempty"`
	ReceivedAt     string  `json:"received_at"`
}

func toEmailDTO(email *storage.EmailRecord) EmailDTO {
	return EmailDTO{
		ID:             email.ID.String(),
		StudentName:    email.StudentName,
		Subject:        email.Subject,
		Body:           email.Body,
		Confidence:     email.Confidence,
		Status:         string(email.Status),
		SuggestedReply: email.SuggestedReply,
		ArticleID:      email.ArticleID,
		ReceivedAt:     email.ReceivedAt.UTC().Format(time.RFC3339),
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message, detail string) {
	resp := map[string]string{"error": message}
	if detail != "" {
		resp["detail"] = detail
	}
	writeJSON(w, status, resp)
}
