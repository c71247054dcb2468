package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-secret", cfg.JWT.Secret)
	assert.Equal(t, 3005, cfg.Server.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWT.AdminSupSession)
	assert.Equal(t, 12*time.Hour, cfg.JWT.AdminSession)
	assert.Equal(t, 30*time.Minute, cfg.JWT.SupSession)
	assert.Equal(t, "ASF/P/25-26/", cfg.Invoice.NumberPrefix)
	assert.EqualValues(t, 13, cfg.Invoice.StartNumber)
	assert.Equal(t, 3, cfg.Invoice.NumberWidth)
	assert.Equal(t, 25, cfg.Invoice.Lookback)
	assert.Equal(t, 30, cfg.Invoice.DefaultDueDays)
	assert.Equal(t, "EMP", cfg.Employee.IDPrefix)
	assert.EqualValues(t, 1001, cfg.Employee.StartNumber)
	assert.False(t, cfg.StorageEnabled())
	assert.False(t, cfg.IsProduction())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("PORT", "8080")
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("STORAGE_BUCKET", "invoices")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.StorageEnabled())
	assert.Equal(t, "postgres://postgres:pw@db.internal:5432/asf_db?sslmode=disable", cfg.DSN())
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.EqualError(t, err, "JWT_SECRET is required")
}
