package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "eventlens-events", cfg.DynamoDBTable)
	assert.Equal(t, "DateIndex", cfg.IndexName)
	assert.Equal(t, 15*time.Second, cfg.LLMTimeout)
	assert.Equal(t, 1000, cfg.GeocodeCacheCapacity)
	assert.True(t, cfg.EnableCORS)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":9090")
	t.Setenv("TABLE_NAME", "events-prod")
	t.Setenv("LLM_TIMEOUT", "30s")
	t.Setenv("GEOCODE_CACHE_CAPACITY", "250")
	t.Setenv("ENABLE_CORS", "false")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.ServerAddress)
	assert.Equal(t, "events-prod", cfg.DynamoDBTable)
	assert.Equal(t, 30*time.Second, cfg.LLMTimeout)
	assert.Equal(t, 250, cfg.GeocodeCacheCapacity)
	assert.False(t, cfg.EnableCORS)
}

func TestLoadConfig_YAMLFileWithEnvWinning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server_address: ":7070"
dynamodb_table: file-table
llm_model: mixtral-8x7b
llm_timeout: 45s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("TABLE_NAME", "env-table")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.ServerAddress)
	assert.Equal(t, "mixtral-8x7b", cfg.LLMModel)
	assert.Equal(t, 45*time.Second, cfg.LLMTimeout)
	assert.Equal(t, "env-table", cfg.DynamoDBTable, "environment overrides the file")
}

func TestLoadConfig_BadDurationInFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("llm_timeout: soon\n"), 0o600))
	t.Setenv("CONFIG_FILE", path)

	_, err := LoadConfig()

	assert.Error(t, err)
}

func TestValidate_ProductionRequiresSecrets(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")

	_, err := LoadConfig()
	require.Error(t, err)

	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("LLM_API_KEY", "key")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}
