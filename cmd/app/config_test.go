package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilyakutilin/telegram_notifier/telegram"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("TGNOTIFY_TELEGRAM__TOKEN", "env-token")

	cfg, err := loadConfig("")

	require.NoError(t, err)
	assert.False(t, cfg.Debug)
	assert.Equal(t, "env-token", cfg.Telegram.Token)
	assert.Equal(t, telegram.DefaultBaseURL, cfg.Telegram.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.Telegram.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Empty(t, cfg.Telegram.Recipients)
	assert.Empty(t, cfg.Metrics.Textfile)
}

func TestLoadConfig_File(t *testing.T) {
	path := writeConfigFile(t, `
debug: true
log:
  level: warn
  format: console
telegram:
  token: file-token
  base_url: http://localhost:8081/bot
  timeout: 5s
  recipients:
    - "123456"
    - "@news"
    - alice
metrics:
  textfile: /var/lib/node_exporter/tgnotify.prom
`)

	cfg, err := loadConfig(path)

	require.NoError(t, err)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "file-token", cfg.Telegram.Token)
	assert.Equal(t, "http://localhost:8081/bot", cfg.Telegram.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Telegram.Timeout)
	assert.Equal(t, []string{"123456", "@news", "alice"}, cfg.Telegram.Recipients)
	assert.Equal(t, "/var/lib/node_exporter/tgnotify.prom", cfg.Metrics.Textfile)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
telegram:
  token: file-token
  recipients: [alice]
`)
	t.Setenv("TGNOTIFY_TELEGRAM__TOKEN", "env-token")
	t.Setenv("TGNOTIFY_TELEGRAM__RECIPIENTS", "bob, 42 ,,@news")
	t.Setenv("TGNOTIFY_LOG__LEVEL", "debug")

	cfg, err := loadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "env-token", cfg.Telegram.Token)
	assert.Equal(t, []string{"bob", "42", "@news"}, cfg.Telegram.Recipients)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing token",
			content: "debug: false\n",
			wantErr: "telegram.token is required",
		},
		{
			name:    "duplicate recipients",
			content: "telegram:\n  token: t\n  recipients: [alice, bob, alice]\n",
			wantErr: "telegram.recipients has duplicates: alice",
		},
		{
			name:    "bad log format",
			content: "telegram:\n  token: t\nlog:\n  format: xml\n",
			wantErr: "log.format",
		},
		{
			name:    "bad log level",
			content: "telegram:\n  token: t\nlog:\n  level: loud\n",
			wantErr: "log.level",
		},
		{
			name:    "sub-millisecond timeout",
			content: "telegram:\n  token: t\n  timeout: 500ns\n",
			wantErr: "telegram.timeout must be at least 1ms",
		},
		{
			name:    "non positive timeout",
			content: "telegram:\n  token: t\n  timeout: 0s\n",
			wantErr: "telegram.timeout must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(writeConfigFile(t, tt.content))
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoadConfig_Timeout(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     string
		want    time.Duration
	}{
		{"bare integer is milliseconds", "timeout: 2000", "", 2 * time.Second},
		{"fractional milliseconds", "timeout: 1.5", "", 1500 * time.Microsecond},
		{"duration string", "timeout: 750ms", "", 750 * time.Millisecond},
		{"quoted integer", `timeout: "3000"`, "", 3 * time.Second},
		{"env integer", "timeout: 5s", "250", 250 * time.Millisecond},
		{"env duration", "timeout: 5s", "1m", time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.env != "" {
				t.Setenv("TGNOTIFY_TELEGRAM__TIMEOUT", tt.env)
			}
			path := writeConfigFile(t, "telegram:\n  token: t\n  "+tt.content+"\n")

			cfg, err := loadConfig(path)

			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Telegram.Timeout)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "failed to load config file")
}

func TestEnvToKey(t *testing.T) {
	key, value := envToKey("TGNOTIFY_TELEGRAM__BASE_URL", "http://x")
	assert.Equal(t, "telegram.base_url", key)
	assert.Equal(t, "http://x", value)

	key, value = envToKey("TGNOTIFY_DEBUG", "true")
	assert.Equal(t, "debug", key)
	assert.Equal(t, "true", value)
}
