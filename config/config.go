// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const EnvPrefix = "EXOCLUST"

// Config is filled from flags, EXOCLUST_* environment variables and .env
type Config struct {
	// zap level name
	LogLevel string `mapstructure:"log-level"`

	// path to the sqlite cluster db, empty disables it
	DB string `mapstructure:"db"`

	// annotation files are the directory entries ending with this
	Suffix string `mapstructure:"suffix"`

	// listen address of the cluster browser
	Addr string `mapstructure:"addr"`
}

// SetDefaults registers defaults and environment binding on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log-level", "info")
	v.SetDefault("db", "")
	v.SetDefault("suffix", ".out")
	v.SetDefault("addr", "0.0.0.0:8080")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// New returns a Config populated by v.
func New(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	if c.Suffix == "" {
		c.Suffix = ".out"
	}
	return &c, nil
}
