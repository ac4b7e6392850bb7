package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/MikeSquared-Agency/promisekeeper/internal/detector"
	"github.com/MikeSquared-Agency/promisekeeper/internal/events"
)

type promisesResponse struct {
	Promises []detector.CommitmentRecord `json:"promises"`
}

// detectChat handles POST /api/openai
func (s *Server) detectChat(w http.ResponseWriter, r *http.Request) {
	if !s.detector.Configured() {
		writeError(w, http.StatusInternalServerError, detector.ErrConfiguration.Error())
		return
	}

	var req detector.ChatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	records, err := s.detector.DetectChat(r.Context(), req)
	if err != nil {
		s.writeDetectError(w, r, err, "Failed to process message with OpenAI")
		return
	}

	source := req.Source
	if source == "" {
		source = detector.SourceSlack
	}
	s.respondPromises(w, r, source, records)
}

// detectThread handles POST /api/openai/gmail
func (s *Server) detectThread(w http.ResponseWriter, r *http.Request) {
	if !s.detector.Configured() {
		writeError(w, http.StatusInternalServerError, detector.ErrConfiguration.Error())
		return
	}

	var req detector.ThreadRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	records, err := s.detector.DetectThread(r.Context(), req)
	if err != nil {
		s.writeDetectError(w, r, err, "Failed to process Gmail thread with OpenAI")
		return
	}
	s.respondPromises(w, r, detector.SourceGmail, records)
}

func (s *Server) respondPromises(w http.ResponseWriter, r *http.Request, source detector.Source, records []detector.CommitmentRecord) {
	if records == nil {
		records = []detector.CommitmentRecord{}
	}

	s.publish(r.Context(), events.SubjectPromisesDetected, events.PromisesDetected{
		Source:     string(source),
		Count:      len(records),
		DetectedAt: time.Now().UTC().Format(time.RFC3339),
	})
	writeJSON(w, http.StatusOK, promisesResponse{Promises: records})
}

// writeDetectError maps detector failures to the JSON error envelope.
func (s *Server) writeDetectError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var validationErr *detector.ValidationError
	var providerErr *detector.ProviderError

	switch {
	case errors.As(err, &validationErr):
		writeError(w, http.StatusBadRequest, validationErr.Message)
	case errors.Is(err, detector.ErrConfiguration):
		writeError(w, http.StatusInternalServerError, err.Error())
	case errors.As(err, &providerErr):
		s.logger.ErrorContext(r.Context(), "model provider call failed",
			"status", providerErr.StatusCode,
			"error", err,
		)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   fallback,
			Details: providerErr.Error(),
		})
	default:
		s.logger.ErrorContext(r.Context(), "promise detection failed", "error", err)
		writeError(w, http.StatusInternalServerError, fallback)
	}
}
