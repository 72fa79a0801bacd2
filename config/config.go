// Package config loads go-nde settings from YAML.
package config

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// SearchPaths are tried in order when Load is given no path.
var SearchPaths = []string{"go-nde.yaml", "configs/go-nde.yaml"}

type Config struct {
	Log     LogConfig     `yaml:"log"`
	Decoder DecoderConfig `yaml:"decoder"`
	Dump    DumpConfig    `yaml:"dump"`
	Export  ExportConfig  `yaml:"export"`
}

type LogConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
}

type DecoderConfig struct {
	MaxRedirectHops    int  `yaml:"max_redirect_hops"`
	StrictPrimaryIndex bool `yaml:"strict_primary_index"`
	Workers            int  `yaml:"workers"`
}

type DumpConfig struct {
	Format string `yaml:"format"` // display, json, sexp
}

type ExportConfig struct {
	Format string `yaml:"format"` // json, sexp, sql, sqlite
	Output string `yaml:"output"`
	Table  string `yaml:"table"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Log:     LogConfig{Level: "info"},
		Decoder: DecoderConfig{MaxRedirectHops: 64, Workers: 1},
		Dump:    DumpConfig{Format: "display"},
		Export:  ExportConfig{Format: "sexp", Output: "main.out", Table: "tracks"},
	}
}

// Load reads the config at path over the defaults. With an empty path the
// SearchPaths are tried and the defaults are used when none exists.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		for _, p := range SearchPaths {
			data, err := os.ReadFile(p)
			if err != nil {
				continue
			}
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return cfg, errors.Wrapf(err, "parse %s", p)
			}
			applyDefaults(cfg)
			return cfg, nil
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse %s", path)
	}
	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Decoder.MaxRedirectHops <= 0 {
		cfg.Decoder.MaxRedirectHops = 64
	}
	if cfg.Decoder.Workers <= 0 {
		cfg.Decoder.Workers = 1
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Dump.Format == "" {
		cfg.Dump.Format = "display"
	}
	if cfg.Export.Format == "" {
		cfg.Export.Format = "sexp"
	}
	if cfg.Export.Output == "" {
		cfg.Export.Output = "main.out"
	}
	if cfg.Export.Table == "" {
		cfg.Export.Table = "tracks"
	}
}

// Logger builds a zap logger for these settings. verbose forces debug level.
func (c LogConfig) Logger(verbose bool) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(c.Level))
	if err != nil {
		return nil, errors.Wrapf(err, "log level %q", c.Level)
	}
	if verbose {
		level = zap.DebugLevel
	}
	zc := zap.NewProductionConfig()
	if c.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
