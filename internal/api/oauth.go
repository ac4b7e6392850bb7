package api

import (
	"errors"
	"net/http"

	"github.com/MikeSquared-Agency/promisekeeper/internal/oauth"
)

// basecampAuth handles GET /api/basecamp/auth
func (s *Server) basecampAuth(w http.ResponseWriter, r *http.Request) {
	authURL, err := s.basecamp.AuthURL(r.URL.Query().Get("state"))
	if err != nil {
		if !errors.Is(err, oauth.ErrNotConfigured) {
			s.logger.ErrorContext(r.Context(), "failed to build basecamp auth url", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to initiate OAuth flow")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"authUrl": authURL})
}

// basecampToken handles POST /api/basecamp/token
func (s *Server) basecampToken(w http.ResponseWriter, r *http.Request) {
	if !s.basecamp.CanExchange() {
		writeError(w, http.StatusInternalServerError, oauth.ErrNotConfigured.Error())
		return
	}

	var body struct {
		Code string `json:"code"`
	}
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if body.Code == "" {
		writeError(w, http.StatusBadRequest, "Authorization code is required")
		return
	}

	resp, err := s.basecamp.ExchangeCode(r.Context(), body.Code)
	s.relayToken(w, r, resp, err, "Failed to exchange code for token")
}

// basecampRefresh handles POST /api/basecamp/refresh
func (s *Server) basecampRefresh(w http.ResponseWriter, r *http.Request) {
	if !s.basecamp.CanRefresh() {
		writeError(w, http.StatusInternalServerError, oauth.ErrNotConfigured.Error())
		return
	}

	var body struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if body.RefreshToken == "" {
		writeError(w, http.StatusBadRequest, "Refresh token is required")
		return
	}

	resp, err := s.basecamp.Refresh(r.Context(), body.RefreshToken)
	s.relayToken(w, r, resp, err, "Failed to refresh token")
}

// relayToken passes the upstream token JSON through, or reports why it
// could not.
func (s *Server) relayToken(w http.ResponseWriter, r *http.Request, resp *oauth.TokenResponse, err error, failMsg string) {
	if err != nil {
		if errors.Is(err, oauth.ErrNotConfigured) {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		s.logger.ErrorContext(r.Context(), "basecamp token request failed", "error", err)
		writeError(w, http.StatusInternalServerError, failMsg)
		return
	}

	if !resp.OK() {
		s.logger.WarnContext(r.Context(), "basecamp rejected token request", "status", resp.StatusCode)
		writeJSON(w, resp.StatusCode, errorResponse{Error: failMsg, Details: string(resp.Body)})
		return
	}

	token, ok := resp.JSON()
	if !ok {
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "Invalid token response format",
			Details: string(resp.Body),
		})
		return
	}
	writeJSON(w, http.StatusOK, token)
}

// basecampCallback handles GET /api/basecamp/callback
func (s *Server) basecampCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	code := q.Get("code")
	if code == "" {
		writeError(w, http.StatusBadRequest, "Authorization code not received")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := oauth.WriteCallbackPage(w, oauth.BasecampRedirectURL(s.appScheme, code, q.Get("state"))); err != nil {
		s.logger.ErrorContext(r.Context(), "failed to render callback page", "error", err)
	}
}

// slackCallback handles GET /api/slack/callback
func (s *Server) slackCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	code := q.Get("code")
	if code == "" {
		http.Error(w, "Missing code in query params", http.StatusBadRequest)
		return
	}
	http.Redirect(w, r, oauth.SlackRedirectURL(s.appScheme, code, q.Get("state")), http.StatusTemporaryRedirect)
}
