// Package config resolves dirgrowth settings from flags, environment variables and defaults.
package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by dirgrowth.
const EnvPrefix = "DIRGROWTH"

// Keys shared by flags, environment variables and the resolved Config.
const (
	KeyStartTime   = "start-time"
	KeyEndTime     = "end-time"
	KeyFollowLinks = "follow-links"
	KeyOutput      = "output"
	KeyWorkers     = "workers"
	KeyLogLevel    = "log-level"
)

// Outputs lists the accepted output formats.
//
//nolint:gochecknoglobals // Config constant
var Outputs = []string{"human", "bytes", "json"}

// Config stores the resolved settings of one invocation.
type Config struct {
	StartTime   string `mapstructure:"start-time"`
	EndTime     string `mapstructure:"end-time"`
	FollowLinks bool   `mapstructure:"follow-links"`
	Output      string `mapstructure:"output"`
	Workers     int    `mapstructure:"workers"`
	LogLevel    string `mapstructure:"log-level"`
}

// Level returns the parsed log level.
func (c Config) Level() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}

	return level, nil
}

// Validate checks the settings that can be checked without touching the filesystem.
func (c Config) Validate() error {
	if !slices.Contains(Outputs, c.Output) {
		return fmt.Errorf("invalid output format %q: must be one of %v", c.Output, Outputs)
	}

	if c.Workers < 0 {
		return fmt.Errorf("workers cannot be negative, got %d", c.Workers)
	}

	if _, err := c.Level(); err != nil {
		return err
	}

	return nil
}

// Load resolves the configuration. Flags that were set explicitly win over
// DIRGROWTH_* environment variables, which win over the flag defaults.
func Load(flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(flags); err != nil {
		return Config{}, fmt.Errorf("binding flags: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding configuration: %w", err)
	}

	cfg.Output = strings.ToLower(cfg.Output)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
