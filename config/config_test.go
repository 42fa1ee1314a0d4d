package config

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "0123456789abcdef0123456789abcdef"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENV", "staging")
	t.Setenv("JWT_SECRET", secret)
	t.Setenv("DATABASE_URL", "postgres://localhost/blog")
	t.Setenv("RESEND_API_KEY", "re_test")
	t.Setenv("MAIL_FROM", "blog@example.com")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "9090", cfg.MetricsPort)
	assert.Equal(t, StorePostgres, cfg.Store)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoad_ShortSecret_Rejected(t *testing.T) {
	t.Setenv("ENV", "staging")
	t.Setenv("JWT_SECRET", "short")
	t.Setenv("DATABASE_URL", "postgres://localhost/blog")
	t.Setenv("RESEND_API_KEY", "re_test")
	t.Setenv("MAIL_FROM", "blog@example.com")

	_, err := Load()

	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "JWTSecret"), err.Error())
}

func TestLoad_MemoryStore_NoDatabaseURLNeeded(t *testing.T) {
	t.Setenv("ENV", "staging")
	t.Setenv("STORE", StoreMemory)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", secret)
	t.Setenv("RESEND_API_KEY", "re_test")
	t.Setenv("MAIL_FROM", "blog@example.com")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoad_ProductionWithoutMailKey_Rejected(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("JWT_SECRET", secret)
	t.Setenv("DATABASE_URL", "postgres://localhost/blog")
	t.Setenv("RESEND_API_KEY", "")
	t.Setenv("MAIL_FROM", "")

	_, err := Load()

	assert.Error(t, err)
}
