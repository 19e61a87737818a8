package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/cid-docencia/wa-responder/internal/biz/domain"
	"github.com/cid-docencia/wa-responder/internal/biz/repo"
	"github.com/cid-docencia/wa-responder/internal/infra/whatsapp"
)

const eventReceived = "EVENT_RECEIVED"

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleWebhookVerify(w, r)
	case http.MethodPost:
		s.handleWebhookEvent(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleWebhookVerify answers Meta's subscription handshake
func (s *Server) handleWebhookVerify(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	mode := q.Get("hub.mode")
	token := q.Get("hub.verify_token")
	challenge := q.Get("hub.challenge")

	stored, err := s.stores.Settings.GetString(r.Context(), repo.SettingVerificationToken)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		s.log.Error("Failed to load verification token", "error", err)
		http.Error(w, "Error verifying webhook", http.StatusInternalServerError)
		return
	}

	if mode != "subscribe" || stored == "" || token != stored {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	s.log.Info("Webhook verified")
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(challenge))
}

// handleWebhookEvent processes a message delivery.
// Delivery failures of replies never change the acknowledgement.
func (s *Server) handleWebhookEvent(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, "Error processing webhook", http.StatusInternalServerError)
		return
	}

	if s.config.WebhookSecret != "" {
		if !whatsapp.VerifySignature(body, r.Header.Get(whatsapp.SignatureHeader), s.config.WebhookSecret) {
			s.log.Warn("Rejected webhook with invalid signature")
			http.Error(w, "Invalid signature", http.StatusUnauthorized)
			return
		}
	}

	var payload whatsapp.WebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		s.log.Error("Failed to decode webhook", "error", err)
		http.Error(w, "Error processing webhook", http.StatusInternalServerError)
		return
	}

	messages := payload.InboundMessages()
	if err := s.usecases.Responder.ProcessMessages(r.Context(), messages); err != nil {
		s.log.Error("Failed to process webhook", "error", err)
		http.Error(w, "Error processing webhook", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(eventReceived))
}
