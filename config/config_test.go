package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/corretora?sslmode=disable")
	t.Setenv("JWT_SECRET_KEY", "segredo")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.DBTimeout)
	assert.True(t, cfg.AutoMigrate)
	assert.Equal(t, "HS256", cfg.JWTAlgorithm)
	assert.Equal(t, 20*time.Minute, cfg.TokenExpiry)
	assert.Equal(t, bcrypt.DefaultCost, cfg.BcryptCost)
}

func TestLoadConfig_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "9000")
	t.Setenv("ENV", "production")
	t.Setenv("DB_TIMEOUT_SEC", "0")
	t.Setenv("AUTO_MIGRATE", "false")
	t.Setenv("JWT_ALGORITHM", "hs512")
	t.Setenv("JWT_EXPIRY_MIN", "60")
	t.Setenv("BCRYPT_COST", "12")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "production", cfg.Environment)
	assert.Zero(t, cfg.DBTimeout)
	assert.False(t, cfg.AutoMigrate)
	assert.Equal(t, "HS512", cfg.JWTAlgorithm)
	assert.Equal(t, time.Hour, cfg.TokenExpiry)
	assert.Equal(t, 12, cfg.BcryptCost)
}

func TestLoadConfig_InvalidNumbersFallBack(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_TIMEOUT_SEC", "cinco")
	t.Setenv("AUTO_MIGRATE", "talvez")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.DBTimeout)
	assert.True(t, cfg.AutoMigrate)
}

func TestLoadConfig_MissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET_KEY", "")

	cfg, err := LoadConfig()

	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "DATABASE_URL")
	assert.Contains(t, err.Error(), "JWT_SECRET_KEY")
}

func TestLoadConfig_NonPositiveExpiry(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_EXPIRY_MIN", "0")

	_, err := LoadConfig()

	assert.Error(t, err)
}

func TestDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/corretora")
	t.Setenv("JWT_SECRET_KEY", "")

	dsn, err := DatabaseURL()
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/corretora", dsn)

	t.Setenv("DATABASE_URL", "")
	_, err = DatabaseURL()
	assert.Error(t, err)
}
