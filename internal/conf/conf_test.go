package conf

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cid-docencia/wa-responder/internal/biz/domain"
	"github.com/cid-docencia/wa-responder/internal/biz/usecase"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DB_PATH", "LISTEN_ADDR", "ADMIN_TOKEN", "WEBHOOK_APP_SECRET",
		"GRAPH_API_BASE", "GRAPH_API_VERSION", "SESSION_POLICY",
		"SESSION_WINDOW_HOURS", "TOKEN_REFRESH_CHECK_INTERVAL",
		"LOG_FORMAT", "LOG_LEVEL", "MESSAGES_CONFIG_PATH", "RESPONDER_API_URL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := LoadFromEnv()
	assert.Equal(t, ":8080", cfg.Server.ListenAddr)
	assert.Equal(t, "responder.db", filepath.Base(cfg.Storage.DBPath))
	assert.Equal(t, SessionPolicyTwo, cfg.Session.Policy)
	assert.Equal(t, 12, cfg.Session.WindowHours)
	assert.Equal(t, 6*time.Hour, cfg.Scheduler.TokenCheckInterval)
	require.NotNil(t, cfg.Messages)

	var cfgErr *ConfigError
	require.True(t, errors.As(cfg.Validate(), &cfgErr))
	assert.Equal(t, "ADMIN_TOKEN", cfgErr.Field)
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ADMIN_TOKEN", "secret")
	t.Setenv("SESSION_POLICY", "single")
	t.Setenv("SESSION_WINDOW_HOURS", "24")
	t.Setenv("TOKEN_REFRESH_CHECK_INTERVAL", "0")
	t.Setenv("DB_PATH", "/tmp/x.db")

	cfg := LoadFromEnv()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "/tmp/x.db", cfg.Storage.DBPath)
	assert.Equal(t, time.Duration(0), cfg.Scheduler.TokenCheckInterval)

	policy := cfg.Session.ToSessionPolicy()
	assert.Equal(t, domain.SingleMessageLookback{Window: 24 * time.Hour}, policy)
}

func TestValidate_BadPolicy(t *testing.T) {
	clearEnv(t)
	t.Setenv("ADMIN_TOKEN", "secret")
	t.Setenv("SESSION_POLICY", "three")

	err := LoadFromEnv().Validate()
	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "SESSION_POLICY", cfgErr.Field)
}

func TestValidate_UnparsableValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "window hours", key: "SESSION_WINDOW_HOURS", value: "twelve"},
		{name: "token interval", key: "TOKEN_REFRESH_CHECK_INTERVAL", value: "6 hours"},
		{name: "messages path", key: "MESSAGES_CONFIG_PATH", value: filepath.Join(t.TempDir(), "missing.yaml")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("ADMIN_TOKEN", "secret")
			t.Setenv(tt.key, tt.value)

			cfg := LoadFromEnv()
			var cfgErr *ConfigError
			require.True(t, errors.As(cfg.Validate(), &cfgErr))
			assert.Equal(t, tt.key, cfgErr.Field)
			// defaults stay usable
			assert.Equal(t, 12, cfg.Session.WindowHours)
			assert.Equal(t, 6*time.Hour, cfg.Scheduler.TokenCheckInterval)
			require.NotNil(t, cfg.Messages)
		})
	}
}

func TestValidate_UnparsableMessagesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "messages.yaml")
	require.NoError(t, os.WriteFile(path, []byte("preambles: [\n"), 0o644))
	t.Setenv("ADMIN_TOKEN", "secret")
	t.Setenv("MESSAGES_CONFIG_PATH", path)

	err := LoadFromEnv().Validate()
	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "MESSAGES_CONFIG_PATH", cfgErr.Field)
	assert.Contains(t, cfgErr.Message, "failed to parse")
}

func TestLoadMessagesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.yaml")
	require.NoError(t, os.WriteFile(path, []byte("preambles:\n  welcome: \"Hi! \"\n"), 0644))

	cfg, err := LoadMessagesConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Hi! ", cfg.Preambles.Welcome)
	assert.Equal(t, usecase.DefaultPreambles.NotUnderstood, cfg.Preambles.NotUnderstood)
	assert.Equal(t, path, cfg.Source)

	_, err = LoadMessagesConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestToResponderConfig(t *testing.T) {
	cfg := &Config{
		Session:  SessionConfig{Policy: SessionPolicyTwo, WindowHours: 12},
		Messages: &MessagesConfig{Preambles: PreamblesConfig{Welcome: "W", NotUnderstood: "N"}},
	}

	rc := cfg.ToResponderConfig()
	assert.Equal(t, "W", rc.Preambles.Welcome)
	assert.Equal(t, "N", rc.Preambles.NotUnderstood)
	assert.Equal(t, domain.TwoMessageLookback{Window: 12 * time.Hour}, rc.Policy)
}

func TestLoadConditionsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conditions.yaml")
	content := `conditions:
  - id: default
    text: "Elige una opción"
    buttons:
      - id: courses
        title: Cursos
      - id: contact
        title: Contacto
  - id: courses
    text: "Nuestros cursos"
    keywords: [curso, cursos]
  - id: contact
    text: "Escríbenos"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	table, err := LoadConditionsFile(path)
	require.NoError(t, err)
	require.Len(t, table, 3)
	assert.Equal(t, []string{"default", "courses", "contact"}, []string{table[0].ID, table[1].ID, table[2].ID})
	assert.Equal(t, domain.Buttons{{ID: "courses", Title: "Cursos"}, {ID: "contact", Title: "Contacto"}}, table[0].Buttons)
	assert.Equal(t, []string{"curso", "cursos"}, table[1].Keywords)
}

func TestLoadConditionsFile_Invalid(t *testing.T) {
	dir := t.TempDir()

	dup := filepath.Join(dir, "dup.yaml")
	require.NoError(t, os.WriteFile(dup, []byte("conditions:\n  - id: a\n  - id: a\n"), 0o644))
	_, err := LoadConditionsFile(dup)
	assert.Error(t, err)

	noID := filepath.Join(dir, "noid.yaml")
	require.NoError(t, os.WriteFile(noID, []byte("conditions:\n  - text: hi\n"), 0o644))
	_, err = LoadConditionsFile(noID)
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))

	_, err = LoadConditionsFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
