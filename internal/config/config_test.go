package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_ValidFile(t *testing.T) {
	path := writeConfig(t, `{"website_url":"https://acme.com","use_browser":true,"listen_addr":":8080"}`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "https://acme.com", cfg.WebsiteURL)
	assert.True(t, cfg.UseBrowser)
	assert.Equal(t, ":8080", cfg.ListenAddr)
}

func TestLoad_EmptyPath(t *testing.T) {
	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := writeConfig(t, `{not json`)

	_, err := Load(path)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parse config JSON")
}

func TestValidate_MissingSubmissionFile(t *testing.T) {
	cfg := &Config{Submission: "/nonexistent/submission.json"}
	assert.Error(t, cfg.Validate())
}

func TestFromEnv_FlagsWinOverEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env/db")
	t.Setenv("GEMINI_API_KEY", "env-key")

	cfg := &Config{DatabaseURL: "postgres://flag/db"}
	cfg.FromEnv()

	assert.Equal(t, "postgres://flag/db", cfg.DatabaseURL)
	assert.Equal(t, "env-key", cfg.APIKey)
}

func TestNewJWTConfig(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRATION_HOURS", "48")

	cfg, err := NewJWTConfig()

	require.NoError(t, err)
	assert.Equal(t, "test-secret", cfg.Secret)
	assert.Equal(t, 48, cfg.ExpirationHours)
}

func TestNewJWTConfig_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := NewJWTConfig()

	assert.Error(t, err)
}

func TestNewJWTConfig_InvalidExpiration(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRATION_HOURS", "zero")

	_, err := NewJWTConfig()

	assert.Error(t, err)
}

func TestPasswordConfig_HashAndVerify(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: 10}

	hash, err := cfg.HashPassword("hunter22")

	require.NoError(t, err)
	assert.True(t, cfg.VerifyPassword("hunter22", hash))
	assert.False(t, cfg.VerifyPassword("hunter23", hash))
}

func TestPasswordConfig_PepperChangesVerification(t *testing.T) {
	peppered := &PasswordConfig{BcryptCost: 10, Pepper: "pepper"}
	plain := &PasswordConfig{BcryptCost: 10}

	hash, err := peppered.HashPassword("hunter22")

	require.NoError(t, err)
	assert.True(t, peppered.VerifyPassword("hunter22", hash))
	assert.False(t, plain.VerifyPassword("hunter22", hash))
}

func TestNewPasswordConfig_CostOutOfRange(t *testing.T) {
	t.Setenv("BCRYPT_COST", "4")

	_, err := NewPasswordConfig()

	assert.Error(t, err)
}
