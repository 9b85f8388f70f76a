package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseEnv_PopulatesNestedFields verifies that env variables with nested
// prefixes land in the right struct fields.
func TestParseEnv_PopulatesNestedFields(t *testing.T) {
	t.Setenv("APP_TOKEN_SIGN_KEY", "sekret")
	t.Setenv("APP_TOKEN_DURATION", "45m")
	t.Setenv("SERVER_ADDRESS", "localhost:8081")
	t.Setenv("STORAGE_BACKEND", "sqlite")
	t.Setenv("STORAGE_DB_DATABASE_URI", "planit.db")
	t.Setenv("STORAGE_CALDAV_CALENDAR_NAME", "PlanIt Calendar")
	t.Setenv("ADVISOR_API_KEY", "gk-123")
	t.Setenv("NOTIFY_DIGEST_TIME", "08:30")

	var cfg StructuredConfig
	require.NoError(t, parseEnv(&cfg))

	assert.Equal(t, "sekret", cfg.App.TokenSignKey)
	assert.Equal(t, 45*time.Minute, cfg.App.TokenDuration)
	assert.Equal(t, "localhost:8081", cfg.Server.HTTPAddress)
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "planit.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "PlanIt Calendar", cfg.Storage.CalDAV.CalendarName)
	assert.Equal(t, "gk-123", cfg.Advisor.APIKey)
	assert.Equal(t, "08:30", cfg.Notify.DigestTime)
}

// TestParseEnv_EmptyEnvironment verifies that parsing with no variables set
// succeeds and leaves the config zero-valued.
func TestParseEnv_EmptyEnvironment(t *testing.T) {
	var cfg StructuredConfig
	require.NoError(t, parseEnv(&cfg))
	assert.Equal(t, StructuredConfig{}, cfg)
}

// TestValidate_UnknownBackend verifies that an unsupported backend value is
// rejected.
func TestValidate_UnknownBackend(t *testing.T) {
	cfg := &StructuredConfig{Storage: Storage{Backend: "postgres"}}
	assert.ErrorIs(t, cfg.validate(), ErrUnknownStorageBackend)
}

// TestValidate_CalDAVRequiresCredentials verifies that the caldav backend is
// rejected without username/password.
func TestValidate_CalDAVRequiresCredentials(t *testing.T) {
	cfg := &StructuredConfig{Storage: Storage{Backend: BackendCalDAV}}
	assert.ErrorIs(t, cfg.validate(), ErrInvalidStorageConfigs)

	cfg.Storage.CalDAV.Username = "user@example.com"
	cfg.Storage.CalDAV.Password = "app-password"
	assert.NoError(t, cfg.validate())
}
