// Package cli bootstraps the example binaries: configuration from the
// environment and flags, logging and profiling.
package cli

import (
	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

// Config holds the settings shared by all examples. Values are read from the
// environment first and can be overridden by flags.
type Config struct {
	LogLevel  string `env:"KIND_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"KIND_LOG_FORMAT" envDefault:"console"`

	// run without a window
	Headless bool `env:"KIND_HEADLESS"`

	// stop after this many frames, zero runs forever
	Frames int `env:"KIND_FRAMES"`

	// cpu or mem
	Profile string `env:"KIND_PROFILE"`

	// measure and show timings of systems and schedules
	Stats bool `env:"KIND_STATS"`
}

// LoadConfig reads the Config from the environment.
func LoadConfig() (Config, error) {
	var config Config
	if err := env.Parse(&config); err != nil {
		return Config{}, errors.Wrap(err, "parse env")
	}

	return config, nil
}

// RegisterFlags adds flags for all fields of the config to the command.
// The current values are used as defaults.
func (c *Config) RegisterFlags(cmd *cobra.Command) {
	flags := cmd.Flags()

	flags.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: debug, info, warn or error")
	flags.StringVar(&c.LogFormat, "log-format", c.LogFormat, "log format: console or json")
	flags.BoolVar(&c.Headless, "headless", c.Headless, "run without opening a window")
	flags.IntVar(&c.Frames, "frames", c.Frames, "number of frames to run, 0 runs forever")
	flags.StringVar(&c.Profile, "profile", c.Profile, "write a cpu or mem profile")
	flags.BoolVar(&c.Stats, "stats", c.Stats, "measure system timings")
}
