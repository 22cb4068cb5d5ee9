package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.NotNil(t, cfg)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.NotEmpty(t, cfg.DBPath)
	assert.NotEmpty(t, cfg.DataDir)
	assert.True(t, cfg.Watch)
	assert.Equal(t, "Asia/Tokyo", cfg.Timezone)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadCustomValues(t *testing.T) {
	t.Setenv("TRAILPLAN_LISTEN_ADDR", ":9000")
	t.Setenv("TRAILPLAN_DB_PATH", "/custom/db.sqlite")
	t.Setenv("TRAILPLAN_DATA_DIR", "/custom/fixtures")
	t.Setenv("TRAILPLAN_WATCH", "false")
	t.Setenv("TRAILPLAN_LOG_LEVEL", "debug")
	t.Setenv("TRAILPLAN_LOG_FORMAT", "text")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "/custom/db.sqlite", cfg.DBPath)
	assert.Equal(t, "/custom/fixtures", cfg.DataDir)
	assert.False(t, cfg.Watch)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoadInvalidBool(t *testing.T) {
	t.Setenv("TRAILPLAN_WATCH", "sometimes")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestLocation(t *testing.T) {
	cfg := &Config{Timezone: "UTC"}
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())

	cfg.Timezone = "Mars/Olympus_Mons"
	_, err = cfg.Location()
	assert.Error(t, err)
}
