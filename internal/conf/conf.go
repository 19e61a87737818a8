package conf

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cid-docencia/wa-responder/internal/biz/domain"
	"github.com/cid-docencia/wa-responder/internal/biz/usecase"
	"github.com/cid-docencia/wa-responder/internal/infra/whatsapp"
)

// Session policies
const (
	SessionPolicyTwo    = "two"
	SessionPolicySingle = "single"
)

// Config represents application configuration
type Config struct {
	// HTTP server configuration
	Server ServerConfig

	// SQLite storage configuration
	Storage StorageConfig

	// Graph API configuration
	WhatsApp WhatsAppConfig

	// Admin API configuration
	Admin AdminConfig

	// Welcome session configuration
	Session SessionConfig

	// Background job configuration
	Scheduler SchedulerConfig

	// Logging configuration
	Logging LoggingConfig

	// Reply texts (loaded from YAML)
	Messages *MessagesConfig

	// Values that could not be loaded, reported by Validate
	loadErrors []*ConfigError
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	ListenAddr string
}

// StorageConfig contains database configuration
type StorageConfig struct {
	DBPath string
}

// WhatsAppConfig contains Graph API configuration
type WhatsAppConfig struct {
	BaseURL    string
	APIVersion string
	AppSecret  string // Verifies X-Hub-Signature-256 when set
}

// AdminConfig contains admin API configuration
type AdminConfig struct {
	Token  string
	APIURL string // Used by the MCP tools
}

// SessionConfig contains welcome session configuration
type SessionConfig struct {
	Policy      string
	WindowHours int
}

// SchedulerConfig contains background job configuration
type SchedulerConfig struct {
	TokenCheckInterval time.Duration // 0 disables the token refresh job
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format    string
	Level     string
	AddSource bool
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	var loadErrors []*ConfigError

	// Database path
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		homeDir, _ := os.UserHomeDir()
		dbPath = filepath.Join(homeDir, ".wa-responder", "responder.db")
	}

	listenAddr := os.Getenv("LISTEN_ADDR")
	if listenAddr == "" {
		listenAddr = ":8080"
	}

	// Session window
	windowHours := 12
	if val := os.Getenv("SESSION_WINDOW_HOURS"); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			loadErrors = append(loadErrors, &ConfigError{Field: "SESSION_WINDOW_HOURS", Message: "not an integer: " + val})
		} else {
			windowHours = parsed
		}
	}

	policy := strings.ToLower(strings.TrimSpace(os.Getenv("SESSION_POLICY")))
	if policy == "" {
		policy = SessionPolicyTwo
	}

	// Token refresh check interval
	tokenInterval := 6 * time.Hour
	if val := os.Getenv("TOKEN_REFRESH_CHECK_INTERVAL"); val != "" {
		parsed, err := time.ParseDuration(val)
		if err != nil {
			loadErrors = append(loadErrors, &ConfigError{Field: "TOKEN_REFRESH_CHECK_INTERVAL", Message: "not a duration: " + val})
		} else {
			tokenInterval = parsed
		}
	}

	apiURL := os.Getenv("RESPONDER_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:8080"
	}

	// Load reply texts from YAML
	messagesConfig, err := LoadMessagesConfig(os.Getenv("MESSAGES_CONFIG_PATH"))
	if err != nil {
		loadErrors = append(loadErrors, &ConfigError{Field: "MESSAGES_CONFIG_PATH", Message: err.Error()})
		messagesConfig = DefaultMessagesConfig()
	}

	return &Config{
		Server: ServerConfig{
			ListenAddr: listenAddr,
		},
		Storage: StorageConfig{
			DBPath: dbPath,
		},
		WhatsApp: WhatsAppConfig{
			BaseURL:    os.Getenv("GRAPH_API_BASE"),
			APIVersion: os.Getenv("GRAPH_API_VERSION"),
			AppSecret:  os.Getenv("WEBHOOK_APP_SECRET"),
		},
		Admin: AdminConfig{
			Token:  os.Getenv("ADMIN_TOKEN"),
			APIURL: apiURL,
		},
		Session: SessionConfig{
			Policy:      policy,
			WindowHours: windowHours,
		},
		Scheduler: SchedulerConfig{
			TokenCheckInterval: tokenInterval,
		},
		Logging: LoggingConfig{
			Format:    os.Getenv("LOG_FORMAT"),
			Level:     os.Getenv("LOG_LEVEL"),
			AddSource: os.Getenv("LOG_ADD_SOURCE") == "true",
		},
		Messages:   messagesConfig,
		loadErrors: loadErrors,
	}
}

// ToSessionPolicy converts to the domain session policy
func (c *SessionConfig) ToSessionPolicy() domain.SessionPolicy {
	window := time.Duration(c.WindowHours) * time.Hour
	if c.Policy == SessionPolicySingle {
		return domain.SingleMessageLookback{Window: window}
	}
	return domain.TwoMessageLookback{Window: window}
}

// ToResponderConfig converts to responder configuration
func (c *Config) ToResponderConfig() usecase.ResponderConfig {
	preambles := usecase.DefaultPreambles
	if c.Messages != nil {
		preambles = usecase.Preambles{
			Welcome:       c.Messages.Preambles.Welcome,
			NotUnderstood: c.Messages.Preambles.NotUnderstood,
		}
	}
	return usecase.ResponderConfig{
		Policy:    c.Session.ToSessionPolicy(),
		Preambles: preambles,
	}
}

// ToWhatsAppConfig converts to Graph API client configuration
func (c *WhatsAppConfig) ToWhatsAppConfig() whatsapp.Config {
	return whatsapp.Config{
		BaseURL:    c.BaseURL,
		APIVersion: c.APIVersion,
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if len(c.loadErrors) > 0 {
		return c.loadErrors[0]
	}
	if c.Admin.Token == "" {
		return &ConfigError{Field: "ADMIN_TOKEN", Message: "required"}
	}
	if c.Session.Policy != SessionPolicyTwo && c.Session.Policy != SessionPolicySingle {
		return &ConfigError{Field: "SESSION_POLICY", Message: "must be \"two\" or \"single\""}
	}
	if c.Session.WindowHours <= 0 {
		return &ConfigError{Field: "SESSION_WINDOW_HOURS", Message: "must be positive"}
	}
	if c.Scheduler.TokenCheckInterval < 0 {
		return &ConfigError{Field: "TOKEN_REFRESH_CHECK_INTERVAL", Message: "must not be negative"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
