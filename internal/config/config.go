// Package config loads the optional .ksymtbl.yaml configuration file and
// layers environment-variable overrides on top of it.
package config

import (
	"fmt"

	"github.com/spf13/viper"
	"github.com/xyproto/env/v2"
)

// Config carries the tunables a build may want to override without
// touching CLI flags every invocation.
type Config struct {
	// DenyPatterns overrides the symbol filter's default deny-rule
	// regex list (spec §4.2). Empty means "use the built-in default".
	DenyPatterns []string `mapstructure:"deny_patterns" yaml:"deny_patterns"`
	// Compress turns the substring compressor on by default.
	Compress bool `mapstructure:"compress" yaml:"compress"`
	// SplitStrategy selects the compressor's initial-split strategy:
	// "windowed" (spec default) or "underscore" (supplemented legacy mode).
	SplitStrategy string `mapstructure:"split_strategy" yaml:"split_strategy"`
	// BigEndian packs O2S/S2O pairs big-endian instead of the little-endian
	// default.
	BigEndian bool `mapstructure:"big_endian" yaml:"big_endian"`
}

// defaults is the windowed, uncompressed, little-endian baseline assumed
// when no configuration is supplied.
func defaults() Config {
	return Config{
		SplitStrategy: "windowed",
	}
}

// Load reads path (if non-empty) as a YAML config file via viper, then
// applies KSYMTBL_* environment variable overrides via xyproto/env.
// An empty path is not an error; the caller gets defaults() with env
// overrides applied. A non-empty path that cannot be read is an error.
func Load(path string) (Config, error) {
	cfg := defaults()

	if path != "" {
		v := viper.New()
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := v.Unmarshal(&cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if env.Has("KSYMTBL_COMPRESS") {
		cfg.Compress = env.Bool("KSYMTBL_COMPRESS")
	}
	if env.Has("KSYMTBL_SPLIT_STRATEGY") {
		cfg.SplitStrategy = env.Str("KSYMTBL_SPLIT_STRATEGY")
	}
	if env.Has("KSYMTBL_BIG_ENDIAN") {
		cfg.BigEndian = env.Bool("KSYMTBL_BIG_ENDIAN")
	}

	return cfg, nil
}
