// Package config loads the small set of orchestration-only settings this
// repository's core never reads directly: which network to join, where to
// keep the data directory, and the query-RPC limit ceiling. None of these
// govern deterministic state-transition semantics; they configure the
// process around the core.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

const (
	envPrefix = "DRIVECORE"

	defaultNetwork       = "testnet"
	defaultDataDir       = "./data"
	defaultMaxQueryLimit = 100
)

// Config is the orchestration surface read from the environment.
type Config struct {
	Network       string `mapstructure:"network"`
	DataDir       string `mapstructure:"data_dir"`
	MaxQueryLimit uint32 `mapstructure:"max_query_limit"`
}

// Load reads DRIVECORE_NETWORK, DRIVECORE_DATA_DIR, and
// DRIVECORE_MAX_QUERY_LIMIT from the environment, falling back to sane
// defaults for anything unset.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("network", defaultNetwork)
	v.SetDefault("data_dir", defaultDataDir)
	v.SetDefault("max_query_limit", defaultMaxQueryLimit)

	for _, key := range []string{"network", "data_dir", "max_query_limit"} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	cfg := &Config{
		Network:       v.GetString("network"),
		DataDir:       v.GetString("data_dir"),
		MaxQueryLimit: v.GetUint32("max_query_limit"),
	}
	return cfg, nil
}
