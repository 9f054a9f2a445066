package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("SLOT_GRANULARITY_MINUTES", "")
	t.Setenv("PLAN_BRONZE_LIMIT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 15, cfg.SlotGranularity)
	assert.Equal(t, 30, cfg.SubscriptionDurationDays)

	bronze, ok := cfg.Catalog().Lookup("bronze")
	require.True(t, ok)
	assert.Equal(t, 20, bronze.MonthlyLimit)
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "scheduler.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
server_port = "9090"
slot_granularity_minutes = 30
cors_origins = ["https://app.example.com"]

[plans.gold]
monthly_limit = 0

[plans.platinum]
name = "Platina"
monthly_limit = 500
`), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("SERVER_PORT", "")
	t.Setenv("SLOT_GRANULARITY_MINUTES", "")
	t.Setenv("PLAN_BRONZE_LIMIT", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, 30, cfg.SlotGranularity)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.CORSOrigins)

	catalog := cfg.Catalog()
	bronze, _ := catalog.Lookup("bronze")
	assert.Equal(t, 5, bronze.MonthlyLimit)

	gold, _ := catalog.Lookup("gold")
	assert.True(t, gold.Unlimited())

	platinum, ok := catalog.Lookup("platinum")
	require.True(t, ok)
	assert.Equal(t, "Platina", platinum.Name)

	t.Setenv("SERVER_PORT", "7070")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.ServerPort)
}

func TestLoadRejectsBadNumbers(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("SLOT_GRANULARITY_MINUTES", "quinze")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("SLOT_GRANULARITY_MINUTES", "0")
	_, err = Load()
	assert.Error(t, err)
}
