package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("ENV", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("RESERVED_BRANCH_CODES", "")
	t.Setenv("RECOGNIZED_PDF_HOSTS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.Equal(t, []string{"CSE", "CSE-AIML"}, cfg.ReservedBranchCodes)
	assert.Equal(t, []string{"drive.google.com", "docs.google.com"}, cfg.RecognizedPDFHosts)
	assert.Equal(t, "END_SEM", cfg.DefaultExamTypeCode)
	assert.Empty(t, cfg.CORSAllowedOrigins)
}

func TestLoad_Lists(t *testing.T) {
	t.Setenv("RESERVED_BRANCH_CODES", " IT , ,ECE")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://papers.example.edu")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"IT", "ECE"}, cfg.ReservedBranchCodes)
	assert.Equal(t, []string{"https://papers.example.edu"}, cfg.CORSAllowedOrigins)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("SESSION_TTL", "soon")

	_, err := Load()
	assert.ErrorContains(t, err, "SESSION_TTL")
}

func TestLoad_ProdRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET")

	t.Setenv("JWT_SECRET", "a-real-secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.AppEnv)
}
