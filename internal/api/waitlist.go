package api

import (
	"errors"
	"net/http"

	"github.com/MikeSquared-Agency/promisekeeper/internal/events"
	"github.com/MikeSquared-Agency/promisekeeper/internal/waitlist"
)

// joinWaitlist handles POST /api/waitlist
func (s *Server) joinWaitlist(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	joinedOn, err := s.waitlist.Join(r.Context(), body.Email)
	if err != nil {
		if errors.Is(err, waitlist.ErrEmailRequired) {
			writeError(w, http.StatusBadRequest, "Email is required")
			return
		}
		s.logger.ErrorContext(r.Context(), "waitlist signup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to add to waitlist")
		return
	}

	s.publish(r.Context(), events.SubjectWaitlistJoined, events.WaitlistJoined{
		JoinedOn: joinedOn.Format(waitlist.DateLayout),
	})
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
