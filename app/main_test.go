package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, `{
		"server-address": ":8080",
		"timeout-duration-secs": 7,
		"chain": {"node-url": "http://localhost:4001"}
	}`)

	config, err := loadConfig(path)
	require.NoError(t, err)

	require.Equal(t, ":8080", config.ServerAddress)
	require.Equal(t, 7, config.ServerTimeoutDurationSecs)
	require.Equal(t, "http://localhost:4001", config.Chain.NodeURL)

	// Defaults survive for keys the file does not set.
	require.Equal(t, DefaultConfig.Router.MaxHops, config.Router.MaxHops)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	path := writeConfigFile(t, `{
		"server-address": ":8080",
		"chain": {"node-url": "http://localhost:4001"}
	}`)

	t.Setenv("VQS_SERVER_ADDRESS", ":9999")
	t.Setenv("VQS_CHAIN_NODE_URL", "http://override:4001")

	config, err := loadConfig(path)
	require.NoError(t, err)

	require.Equal(t, ":9999", config.ServerAddress)
	require.Equal(t, "http://override:4001", config.Chain.NodeURL)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}

func TestOverridePort(t *testing.T) {
	require.Equal(t, ":9090", overridePort(":8080", "9090"))
	require.Equal(t, "127.0.0.1:9090", overridePort("127.0.0.1:8080", "9090"))
	require.Equal(t, ":9090", overridePort("not-an-address", "9090"))
}
