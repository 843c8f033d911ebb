package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/campusdesk/email-advisor/internal/advisor"
	"github.com/campusdesk/email-advisor/internal/monitoring"
	"github.com/campusdesk/email-advisor/internal/observability"
	"github.com/campusdesk/email-advisor/internal/storage"
	"github.com/campusdesk/email-advisor/pkg/advising"
)

// EmailHandler handles ingesting and managing processed emails.
type EmailHandler struct {
	logger *observability.Logger
	emails *storage.EmailRepository
	engine *advising.Engine
	audit  *monitoring.AuditLogger
}

// NewEmailHandler creates an email handler.
func NewEmailHandler(logger *observability.Logger, emails *storage.EmailRepository, engine *advising.Engine, audit *monitoring.AuditLogger) *EmailHandler {
	return &EmailHandler{logger: logger, emails: emails, engine: engine, audit: audit}
}

// IngestRequestDTO is the API request for email ingestion.
type IngestRequestDTO struct {
	StudentName string            `json:"student_name,omitempty"`
	Subject     string            `json:"subject,omitempty"`
	Body        string            `json:"body"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// IngestResponseDTO pairs the stored record with the engine's full verdict.
type IngestResponseDTO struct {
	Email    EmailDTO          `json:"email"`
	Response *advisor.Response `json:"response"`
}

// Ingest handles POST /emails/ingest. The email is run through the engine,
// the verdict is persisted, and both are returned.
func (h *EmailHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req IngestRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if strings.TrimSpace(req.Body) == "" {
		writeError(w, http.StatusBadRequest, "body is required", "")
		return
	}

	query := req.Body
	if req.Subject != "" {
		query = req.Subject + "\n" + req.Body
	}
	metadata := make(map[string]string, len(req.Metadata)+1)
	for k, v := range req.Metadata {
		metadata[k] = v
	}
	if req.StudentName != "" && metadata["student_name"] == "" {
		metadata["student_name"] = req.StudentName
	}

	resp := h.engine.Process(query, metadata)

	status := storage.StatusReview
	if resp.AutoSend {
		status = storage.StatusAuto
	}
	email := &storage.EmailRecord{
		StudentName:    req.StudentName,
		Subject:        req.Subject,
		Body:           req.Body,
		Confidence:     resp.Confidence,
		Status:         status,
		SuggestedReply: resp.Body,
		ArticleID:      resp.ArticleID,
	}
	if err := h.emails.Create(ctx, email); err != nil {
		h.logger.Error().Err(err).Msg("Failed to store email")
		writeError(w, http.StatusInternalServerError, "failed to store email", err.Error())
		return
	}

	h.audit.RecordDecision(email.ID, resp)

	writeJSON(w, http.StatusCreated, IngestResponseDTO{
		Email:    toEmailDTO(email),
		Response: resp,
	})
}

// List handles GET /emails. An optional status query parameter filters the
// result.
func (h *EmailHandler) List(w http.ResponseWriter, r *http.Request) {
	status := storage.EmailStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		writeError(w, http.StatusBadRequest, "invalid status filter", string(status))
		return
	}

	emails, err := h.emails.List(r.Context(), status)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list emails")
		writeError(w, http.StatusInternalServerError, "failed to list emails", err.Error())
		return
	}

	dtos := make([]EmailDTO, 0, len(emails))
	for _, email := range emails {
		dtos = append(dtos, toEmailDTO(email))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"emails": dtos})
}

// Get handles GET /emails/{emailId}.
func (h *EmailHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.emailID(w, r)
	if !ok {
		return
	}
	email, err := h.emails.GetByID(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "email not found", "")
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to load email")
		writeError(w, http.StatusInternalServerError, "failed to load email", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toEmailDTO(email))
}

// UpdateRequestDTO carries an advisor's edits. Absent fields are left
// unchanged.
type UpdateRequestDTO struct {
	Status         *string `json:"status,omitempty"`
	SuggestedReply *string `json:"suggested_reply,omitempty"`
}

// Update handles PATCH /emails/{emailId}.
func (h *EmailHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.emailID(w, r)
	if !ok {
		return
	}

	var req UpdateRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	update := storage.EmailUpdate{SuggestedReply: req.SuggestedReply}
	if req.Status != nil {
		status := storage.EmailStatus(*req.Status)
		if !status.Valid() {
			writeError(w, http.StatusBadRequest, "invalid status", *req.Status)
			return
		}
		update.Status = &status
	}

	email, err := h.emails.Update(r.Context(), id, update)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "email not found", "")
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to update email")
		writeError(w, http.StatusInternalServerError, "failed to update email", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toEmailDTO(email))
}

// Delete handles DELETE /emails/{emailId}.
func (h *EmailHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.emailID(w, r)
	if !ok {
		return
	}
	err := h.emails.Delete(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "email not found", "")
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to delete email")
		writeError(w, http.StatusInternalServerError, "failed to delete email", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *EmailHandler) emailID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "emailId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid email id", err.Error())
		return uuid.Nil, false
	}
	return id, true
}
