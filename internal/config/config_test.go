package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "a-long-enough-test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "localhost", cfg.PostgresHost)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.InDelta(t, 0.5, cfg.RelatedThreshold, 1e-9)
	assert.Equal(t, 8, cfg.RelatedLimit)
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsShortJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "short")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadThreshold(t *testing.T) {
	t.Setenv("JWT_SECRET", "a-long-enough-test-secret")
	t.Setenv("RELATED_SIMILARITY_THRESHOLD", "1.5")

	_, err := Load()
	assert.Error(t, err)
}

func TestDerivedConfig(t *testing.T) {
	t.Setenv("JWT_SECRET", "a-long-enough-test-secret")
	t.Setenv("POSTGRES_DB_NAME", "storefront_test")

	cfg, err := Load()
	require.NoError(t, err)

	pg := cfg.Postgres()
	assert.Equal(t, "storefront_test", pg.DBName)
	assert.Contains(t, pg.DSN(), "storefront_test")

	assert.Equal(t, "localhost:6379", cfg.Redis().Addr())
}
