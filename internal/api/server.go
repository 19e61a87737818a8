package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/cid-docencia/wa-responder/internal/biz"
	"github.com/cid-docencia/wa-responder/internal/biz/domain"
	"github.com/cid-docencia/wa-responder/internal/biz/repo"
)

// Stores are the repositories the admin API reads and writes directly
type Stores struct {
	Conditions repo.ConditionRepo
	Chats      repo.ChatRepo
	Settings   repo.SettingsRepo
	Layout     repo.LayoutRepo
}

// Config configures the HTTP server
type Config struct {
	ListenAddr    string
	AdminToken    string
	WebhookSecret string // Empty disables signature verification
}

// Server serves the WhatsApp webhook and the admin API
type Server struct {
	usecases *biz.Usecases
	stores   Stores
	config   Config
	log      *slog.Logger

	server *http.Server
}

// NewServer creates a new API server
func NewServer(usecases *biz.Usecases, stores Stores, config Config, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		usecases: usecases,
		stores:   stores,
		config:   config,
		log:      log.With("component", "api"),
	}
}

// Handler builds the route table
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Meta webhook
	mux.HandleFunc("/webhook", s.handleWebhook)

	admin := http.NewServeMux()

	// Rule table
	admin.HandleFunc("/api/conditions", s.handleConditions)
	admin.HandleFunc("/api/conditions/", s.handleConditionItem)

	// Conversations
	admin.HandleFunc("/api/chats", s.handleChats)
	admin.HandleFunc("/api/bot-status", s.handleBotStatus)
	admin.HandleFunc("/api/send-message", s.handleSendMessage)

	// Account settings
	admin.HandleFunc("/api/settings/verification-token", s.stringSetting(repo.SettingVerificationToken, "verificationToken", "Verification token"))
	admin.HandleFunc("/api/settings/phone-number-id", s.stringSetting(repo.SettingPhoneNumberID, "phoneNumberId", "Phone number ID"))
	admin.HandleFunc("/api/settings/app-id", s.stringSetting(repo.SettingAppID, "appId", "App ID"))
	admin.HandleFunc("/api/settings/app-secret", s.stringSetting(repo.SettingAppSecret, "appSecret", "App secret"))
	admin.HandleFunc("/api/settings/access-token", s.handleAccessToken)
	admin.HandleFunc("/api/settings/long-lived-token", s.handleLongLivedToken)
	admin.HandleFunc("/api/settings/whitelist", s.handleWhitelist)

	// Editor layout
	admin.HandleFunc("/api/layout", s.handleLayout)

	mux.Handle("/api/", s.requireAdmin(admin))

	// Health check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return s.logRequests(mux)
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:              s.config.ListenAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.log.Info("Starting HTTP server", "addr", s.config.ListenAddr)
	err := s.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// ============ Helpers ============

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (s *Server) writeMessage(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"message": message})
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

// writeFailure maps err onto the response status.
// Internal errors are logged and answered with a generic message.
func (s *Server) writeFailure(w http.ResponseWriter, err error, action string) {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		s.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		s.writeError(w, http.StatusNotFound, "Not found")
	default:
		s.log.Error("Request failed", "action", action, "error", err)
		s.writeError(w, http.StatusInternalServerError, "Error "+action)
	}
}

func (s *Server) methodNotAllowed(w http.ResponseWriter) {
	s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}
