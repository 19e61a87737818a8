package api

import (
	"errors"
	"net/http"
	"regexp"
	"slices"

	"github.com/cid-docencia/wa-responder/internal/biz/domain"
	"github.com/cid-docencia/wa-responder/internal/biz/usecase"
	"github.com/cid-docencia/wa-responder/internal/infra/whatsapp"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// stringSetting serves GET and PUT for a single string setting.
// field is the JSON property used in both directions.
func (s *Server) stringSetting(key, field, label string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		switch r.Method {
		case http.MethodGet:
			value, err := s.stores.Settings.GetString(ctx, key)
			if err != nil && !errors.Is(err, domain.ErrNotFound) {
				s.writeFailure(w, err, "getting "+key)
				return
			}
			s.writeJSON(w, http.StatusOK, map[string]string{field: value})

		case http.MethodPut:
			var req map[string]string
			if err := decodeJSON(w, r, &req); err != nil || req[field] == "" {
				s.writeError(w, http.StatusBadRequest, label+" is required")
				return
			}
			if err := s.stores.Settings.SetString(ctx, key, req[field]); err != nil {
				s.writeFailure(w, err, "updating "+key)
				return
			}
			s.writeMessage(w, http.StatusOK, label+" updated successfully")

		default:
			s.methodNotAllowed(w)
		}
	}
}

func (s *Server) handleAccessToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		status, err := s.usecases.Token.Status(ctx)
		if errors.Is(err, domain.ErrNotFound) {
			s.writeMessage(w, http.StatusNotFound, "Access token not found")
			return
		}
		if err != nil {
			s.writeFailure(w, err, "fetching access token")
			return
		}
		s.writeJSON(w, http.StatusOK, status)

	case http.MethodPut:
		var req struct {
			AccessToken string `json:"accessToken"`
		}
		if err := decodeJSON(w, r, &req); err != nil || req.AccessToken == "" {
			s.writeMessage(w, http.StatusBadRequest, "Access token is required")
			return
		}
		if err := s.usecases.Token.SetAccessToken(ctx, req.AccessToken); err != nil {
			s.writeFailure(w, err, "updating access token")
			return
		}
		s.writeMessage(w, http.StatusOK, "Access token updated successfully")

	default:
		s.methodNotAllowed(w)
	}
}

func (s *Server) handleLongLivedToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.methodNotAllowed(w)
		return
	}

	var req struct {
		ShortLivedToken string `json:"shortLivedToken"`
	}
	if err := decodeJSON(w, r, &req); err != nil || req.ShortLivedToken == "" {
		s.writeMessage(w, http.StatusBadRequest, "Short-lived token is required")
		return
	}

	token, err := s.usecases.Token.ExchangeShortLived(r.Context(), req.ShortLivedToken)
	if errors.Is(err, usecase.ErrAppNotConfigured) {
		s.writeMessage(w, http.StatusBadRequest, "Facebook App ID or App Secret not configured")
		return
	}
	var apiErr *whatsapp.APIError
	if errors.As(err, &apiErr) {
		s.log.Error("Token exchange rejected", "status", apiErr.StatusCode, "error", apiErr.Message)
		s.writeMessage(w, http.StatusInternalServerError, apiErr.Message)
		return
	}
	if err != nil {
		s.log.Error("Token exchange failed", "error", err)
		s.writeMessage(w, http.StatusInternalServerError, "Failed to generate long-lived token")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"longLivedToken": token})
}

func (s *Server) handleWhitelist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == http.MethodGet {
		emails, err := s.stores.Settings.GetWhitelist(ctx)
		if err != nil {
			s.writeFailure(w, err, "getting emails")
			return
		}
		if len(emails) == 0 {
			s.writeError(w, http.StatusNotFound, "No emails found")
			return
		}
		s.writeJSON(w, http.StatusOK, map[string]any{"emails": emails})
		return
	}

	if r.Method != http.MethodPost && r.Method != http.MethodDelete {
		s.methodNotAllowed(w)
		return
	}

	var req struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(w, r, &req); err != nil || !emailPattern.MatchString(req.Email) {
		s.writeError(w, http.StatusBadRequest, "Valid email is required")
		return
	}

	emails, err := s.stores.Settings.GetWhitelist(ctx)
	if err != nil {
		s.writeFailure(w, err, "getting emails")
		return
	}
	exists := slices.Contains(emails, req.Email)

	if r.Method == http.MethodPost {
		if exists {
			s.writeError(w, http.StatusConflict, "Email already exists")
			return
		}
		if err := s.stores.Settings.SetWhitelist(ctx, append(emails, req.Email)); err != nil {
			s.writeFailure(w, err, "adding email")
			return
		}
		s.writeMessage(w, http.StatusCreated, "Email added successfully")
		return
	}

	if !exists {
		s.writeError(w, http.StatusNotFound, "Email not found")
		return
	}
	remaining := slices.DeleteFunc(slices.Clone(emails), func(e string) bool { return e == req.Email })
	if err := s.stores.Settings.SetWhitelist(ctx, remaining); err != nil {
		s.writeFailure(w, err, "removing email")
		return
	}
	s.writeMessage(w, http.StatusOK, "Email removed successfully")
}
