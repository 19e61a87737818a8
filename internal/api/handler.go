package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cid-docencia/wa-responder/internal/biz/domain"
)

// ============ Condition Handlers ============

func (s *Server) handleConditions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w)
		return
	}

	table, err := s.stores.Conditions.List(r.Context())
	if err != nil {
		s.writeFailure(w, err, "getting conditions")
		return
	}
	if table == nil {
		table = domain.ConditionTable{}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"conditions": table})
}

func (s *Server) handleConditionItem(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/conditions/")
	if id == "" {
		s.writeError(w, http.StatusBadRequest, "No ID provided")
		return
	}
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		c, err := s.stores.Conditions.Get(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "No condition found")
			return
		}
		if err != nil {
			s.writeFailure(w, err, "getting condition")
			return
		}
		s.writeJSON(w, http.StatusOK, c)

	case http.MethodPut, http.MethodPost:
		var c domain.Condition
		if err := decodeJSON(w, r, &c); err != nil {
			s.writeError(w, http.StatusBadRequest, "Invalid condition: "+err.Error())
			return
		}
		c.ID = id
		if err := c.Validate(); err != nil {
			s.writeFailure(w, err, "saving condition")
			return
		}
		if err := s.stores.Conditions.Put(ctx, &c); err != nil {
			s.writeFailure(w, err, "saving condition")
			return
		}
		s.writeJSON(w, http.StatusOK, c)

	case http.MethodDelete:
		err := s.stores.Conditions.Delete(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "No condition found")
			return
		}
		if err != nil {
			s.writeFailure(w, err, "deleting condition")
			return
		}
		s.writeJSON(w, http.StatusOK, map[string]any{"success": true})

	default:
		s.methodNotAllowed(w)
	}
}

// ============ Chat Handlers ============

func (s *Server) handleChats(w http.ResponseWriter, r *http.Request) {
	phone := r.URL.Query().Get("phoneNumber")
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		if phone != "" {
			messages, err := s.stores.Chats.List(ctx, phone)
			if err != nil {
				s.writeFailure(w, err, "fetching chats")
				return
			}
			if len(messages) == 0 {
				s.writeError(w, http.StatusNotFound, "No chat found for phone number: "+phone)
				return
			}
			s.writeJSON(w, http.StatusOK, map[string]any{"phoneNumber": phone, "messages": messages})
			return
		}

		chats, err := s.stores.Chats.ListAll(ctx)
		if err != nil {
			s.writeFailure(w, err, "fetching chats")
			return
		}
		if len(chats) == 0 {
			s.writeError(w, http.StatusNotFound, "No chats found")
			return
		}
		s.writeJSON(w, http.StatusOK, map[string]any{"chats": chats})

	case http.MethodDelete:
		if phone == "" {
			s.writeError(w, http.StatusBadRequest, "Phone number is required")
			return
		}
		if err := s.stores.Chats.Delete(ctx, phone); err != nil {
			s.writeFailure(w, err, "deleting chat")
			return
		}
		s.writeJSON(w, http.StatusOK, map[string]any{"success": true})

	default:
		s.methodNotAllowed(w)
	}
}

// ============ Bot Status Handlers ============

// BotStatusResponse is the effective automation state of a sender
type BotStatusResponse struct {
	Enabled   bool   `json:"enabled"`
	ExpiresIn *int64 `json:"expiresIn"` // Milliseconds until re-enabled
}

// BotStatusRequest updates the automation state of a sender
type BotStatusRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	Enabled     *bool  `json:"enabled"`
	Expiration  *int64 `json:"expiration,omitempty"` // Epoch milliseconds
}

func (s *Server) handleBotStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		phone := r.URL.Query().Get("phoneNumber")
		if phone == "" {
			s.writeError(w, http.StatusBadRequest, "Phone number is required")
			return
		}
		enabled, expiresIn, err := s.usecases.BotStatus.Get(ctx, phone)
		if err != nil {
			s.writeFailure(w, err, "getting bot status")
			return
		}
		resp := BotStatusResponse{Enabled: enabled}
		if expiresIn != nil {
			ms := expiresIn.Milliseconds()
			resp.ExpiresIn = &ms
		}
		s.writeJSON(w, http.StatusOK, resp)

	case http.MethodPost:
		var req BotStatusRequest
		if err := decodeJSON(w, r, &req); err != nil {
			s.writeError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
			return
		}
		if req.PhoneNumber == "" || req.Enabled == nil {
			s.writeError(w, http.StatusBadRequest, "Phone number and enabled status are required")
			return
		}
		var expiration *time.Time
		if req.Expiration != nil && *req.Expiration > 0 {
			exp := time.UnixMilli(*req.Expiration)
			expiration = &exp
		}
		if err := s.usecases.BotStatus.Set(ctx, req.PhoneNumber, *req.Enabled, expiration, "admin"); err != nil {
			s.writeFailure(w, err, "updating bot status")
			return
		}
		s.writeJSON(w, http.StatusOK, map[string]any{"success": true})

	default:
		s.methodNotAllowed(w)
	}
}

// ============ Messaging Handlers ============

// SendMessageRequest is a manual operator message
type SendMessageRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	Message     string `json:"message"`
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.methodNotAllowed(w)
		return
	}

	var req SendMessageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	if req.PhoneNumber == "" || req.Message == "" {
		s.writeError(w, http.StatusBadRequest, "Phone number and message are required")
		return
	}

	if err := s.usecases.Messaging.SendManual(r.Context(), req.PhoneNumber, req.Message); err != nil {
		s.writeFailure(w, err, "sending message")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// ============ Layout Handlers ============

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		layout, err := s.stores.Layout.Get(ctx)
		if errors.Is(err, domain.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "No layout data found")
			return
		}
		if err != nil {
			s.writeFailure(w, err, "retrieving layout")
			return
		}
		s.writeJSON(w, http.StatusOK, layout)

	case http.MethodPost:
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil || !json.Valid(body) {
			s.writeError(w, http.StatusBadRequest, "Layout must be valid JSON")
			return
		}
		if err := s.stores.Layout.Save(ctx, json.RawMessage(body)); err != nil {
			s.writeFailure(w, err, "saving layout")
			return
		}
		s.writeJSON(w, http.StatusOK, map[string]any{"success": true})

	default:
		s.methodNotAllowed(w)
	}
}
