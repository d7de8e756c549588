package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "CATALOG_CONFIG_PATH", "CATALOG_BRAND_PATH", "LOG_LEVEL", "LOG_FILE", "CHAT_RESPONSE_DELAY_MS", "CHAT_DEBUG"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.Server.Addr)
	require.Equal(t, "data/simulation_config.json", cfg.Catalog.ConfigPath)
	require.Equal(t, "data/brand_data.txt", cfg.Catalog.BrandPath)
	require.Equal(t, "info", cfg.Log.Level)
	require.Empty(t, cfg.Log.File)
	require.Equal(t, 500*time.Millisecond, cfg.Chat.ResponseDelay)
	require.False(t, cfg.Chat.Debug)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "127.0.0.1:9090")
	t.Setenv("CATALOG_CONFIG_PATH", "/srv/sim.json")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FILE", "/var/log/moosebot.log")
	t.Setenv("CHAT_RESPONSE_DELAY_MS", "0")
	t.Setenv("CHAT_DEBUG", "true")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:9090", cfg.Server.Addr)
	require.Equal(t, "/srv/sim.json", cfg.Catalog.ConfigPath)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "/var/log/moosebot.log", cfg.Log.File)
	require.Zero(t, cfg.Chat.ResponseDelay)
	require.True(t, cfg.Chat.Debug)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"PORT":                   "80 80",
		"CHAT_RESPONSE_DELAY_MS": "soon",
		"CHAT_DEBUG":             "maybe",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			_, err := Load()
			require.Error(t, err)
			require.Contains(t, err.Error(), key)
		})
	}

	t.Run("negative delay", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CHAT_RESPONSE_DELAY_MS", "-1")
		_, err := Load()
		require.ErrorContains(t, err, "must not be negative")
	})
}
