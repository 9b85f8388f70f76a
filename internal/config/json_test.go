package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSONConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

// TestParseJSON_FullConfig verifies that every section of the JSON file is
// mapped onto the structured config, including duration strings.
func TestParseJSON_FullConfig(t *testing.T) {
	path := writeTempJSONConfig(t, `{
		"app": {"token_sign_key": "k", "token_issuer": "go-plan-it", "token_duration": "2h"},
		"server": {"http_address": "0.0.0.0:9000", "request_timeout": "30s"},
		"storage": {
			"backend": "caldav",
			"db": {"dsn": "events.db"},
			"file": {"path": "events.json"},
			"caldav": {"url": "https://caldav.example.com", "username": "u", "password": "p", "calendar_name": "PlanIt Calendar"}
		},
		"advisor": {"base_url": "https://gen.example.com", "model": "gemini-pro", "api_key": "key", "timeout": "10s"},
		"notify": {"push_gateway_url": "https://push.example.com/send", "digest_time": "07:45", "timezone": "UTC"}
	}`)

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "k", cfg.App.TokenSignKey)
	assert.Equal(t, "go-plan-it", cfg.App.TokenIssuer)
	assert.Equal(t, 2*time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, "0.0.0.0:9000", cfg.Server.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, BackendCalDAV, cfg.Storage.Backend)
	assert.Equal(t, "events.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "events.json", cfg.Storage.File.Path)
	assert.Equal(t, "https://caldav.example.com", cfg.Storage.CalDAV.URL)
	assert.Equal(t, "PlanIt Calendar", cfg.Storage.CalDAV.CalendarName)
	assert.Equal(t, "gemini-pro", cfg.Advisor.Model)
	assert.Equal(t, 10*time.Second, cfg.Advisor.Timeout)
	assert.Equal(t, "https://push.example.com/send", cfg.Notify.PushGatewayURL)
	assert.Equal(t, "07:45", cfg.Notify.DigestTime)
}

// TestParseJSON_MissingFile verifies the error path for an unreadable file.
func TestParseJSON_MissingFile(t *testing.T) {
	_, err := parseJSON(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

// TestParseJSON_InvalidJSON verifies the error path for malformed content.
func TestParseJSON_InvalidJSON(t *testing.T) {
	path := writeTempJSONConfig(t, "{not json")
	_, err := parseJSON(path)
	assert.Error(t, err)
}

// TestDuration_UnmarshalNumeric verifies that numeric nanosecond values are
// accepted alongside duration strings.
func TestDuration_UnmarshalNumeric(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalJSON([]byte("1500000000")))
	assert.Equal(t, 1500*time.Millisecond, time.Duration(d))

	require.NoError(t, d.UnmarshalJSON([]byte(`"1m30s"`)))
	assert.Equal(t, 90*time.Second, time.Duration(d))
}
