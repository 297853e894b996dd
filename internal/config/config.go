// go-ldp
// Copyright (c) 2025 The go-ldp Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// This file is part of go-ldp.
//
// go-ldp is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 3 of the License, or (at your option) any later version.
//
// go-ldp is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with go-ldp; if not, write to the Free Software Foundation,
// Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.

// Package config loads ldpctl configuration from file, environment and flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/engdoreis/go-ldp"
	"github.com/engdoreis/go-ldp/tp"
	"github.com/engdoreis/go-ldp/transport/uart"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. LDP_LINK_PORT.
const EnvPrefix = "LDP"

// ConfigEnvVar names the config file when --config is not given.
const ConfigEnvVar = "LDP_CONFIG"

var errInvalid = errors.New("invalid configuration")

// LinkConfig describes the serial link and protocol session
type LinkConfig struct {
	Port         string        `mapstructure:"port" yaml:"port"`
	Baud         int           `mapstructure:"baud" yaml:"baud"`
	Timeout      time.Duration `mapstructure:"timeout" yaml:"timeout"`
	PollInterval time.Duration `mapstructure:"poll_interval" yaml:"poll_interval"`
	MaxBody      int           `mapstructure:"max_body" yaml:"max_body"`
	RegionSize   int           `mapstructure:"region_size" yaml:"region_size"`
	Address      uint8         `mapstructure:"address" yaml:"address"`
}

// LumberjackConfig configures the rotating log file
type LumberjackConfig struct {
	Filename   string `mapstructure:"filename" yaml:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age" yaml:"max_age"`
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
}

// LoggingConfig configures log level and output
type LoggingConfig struct {
	Level  string           `mapstructure:"level" yaml:"level"`
	Format string           `mapstructure:"format" yaml:"format"`
	File   LumberjackConfig `mapstructure:"file" yaml:"file"`
}

// MetricsConfig configures the Prometheus endpoint. An empty Addr disables it.
type MetricsConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
	Path string `mapstructure:"path" yaml:"path"`
}

// Config is the top level configuration
type Config struct {
	Link    LinkConfig    `mapstructure:"link" yaml:"link"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
}

// flagKeys maps command line flags to configuration keys.
var flagKeys = map[string]string{
	"port":         "link.port",
	"baud":         "link.baud",
	"timeout":      "link.timeout",
	"address":      "link.address",
	"max-body":     "link.max_body",
	"log-level":    "logging.level",
	"log-format":   "logging.format",
	"log-file":     "logging.file.filename",
	"metrics-addr": "metrics.addr",
}

// Load reads configuration from path (or $LDP_CONFIG), then applies
// environment overrides and any flags in flags that were set. A missing
// file is not an error when no path was given.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = v.GetString("config")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("ldpctl")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("link.port", "")
	v.SetDefault("link.baud", uart.DefaultBaudRate)
	v.SetDefault("link.timeout", tp.DefaultTimeout)
	v.SetDefault("link.poll_interval", uart.DefaultPollInterval)
	v.SetDefault("link.max_body", ldp.DefaultMaxBodySize)
	v.SetDefault("link.region_size", 0)
	v.SetDefault("link.address", 0)

	v.SetDefault("logging.level", "")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file.filename", "")
	v.SetDefault("logging.file.max_size", 10)
	v.SetDefault("logging.file.max_backups", 3)
	v.SetDefault("logging.file.max_age", 28)
	v.SetDefault("logging.file.compress", true)

	v.SetDefault("metrics.addr", "")
	v.SetDefault("metrics.path", "/metrics")
}

// Validate checks value ranges
func (c *Config) Validate() error {
	switch {
	case c.Link.Baud <= 0:
		return fmt.Errorf("%w: link.baud must be positive, got %d", errInvalid, c.Link.Baud)
	case c.Link.Timeout <= 0:
		return fmt.Errorf("%w: link.timeout must be positive, got %v", errInvalid, c.Link.Timeout)
	case c.Link.PollInterval <= 0:
		return fmt.Errorf("%w: link.poll_interval must be positive, got %v", errInvalid, c.Link.PollInterval)
	case c.Link.MaxBody < 0:
		return fmt.Errorf("%w: link.max_body must not be negative, got %d", errInvalid, c.Link.MaxBody)
	case c.Link.RegionSize != 0 && c.Link.RegionSize < ldp.RequiredRegionSize(c.Link.MaxBody):
		return fmt.Errorf("%w: link.region_size %d is below the %d bytes max_body %d needs",
			errInvalid, c.Link.RegionSize, ldp.RequiredRegionSize(c.Link.MaxBody), c.Link.MaxBody)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("%w: logging.format must be console or json, got %q", errInvalid, c.Logging.Format)
	}
	return nil
}

// Region returns the session memory size the configuration asks for
func (c *Config) Region() int {
	if c.Link.RegionSize > 0 {
		return c.Link.RegionSize
	}
	return ldp.RequiredRegionSize(c.Link.MaxBody)
}
