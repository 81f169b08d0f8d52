package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, defaultNetwork, cfg.Network)
	require.Equal(t, defaultDataDir, cfg.DataDir)
	require.Equal(t, uint32(defaultMaxQueryLimit), cfg.MaxQueryLimit)
}

func TestLoadReadsEnvironmentOverrides(t *testing.T) {
	t.Setenv("DRIVECORE_NETWORK", "mainnet")
	t.Setenv("DRIVECORE_DATA_DIR", "/var/lib/drivecore")
	t.Setenv("DRIVECORE_MAX_QUERY_LIMIT", "500")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "mainnet", cfg.Network)
	require.Equal(t, "/var/lib/drivecore", cfg.DataDir)
	require.Equal(t, uint32(500), cfg.MaxQueryLimit)
}
