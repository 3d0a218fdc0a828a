// Package config loads networkmonitor's runtime configuration from a
// YAML file and/or NETWORKMONITOR_-prefixed environment variables,
// with defaults for the endpoint path and port, the STOMP destination,
// the log level and the connect timeout.
package config

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config is the full set of knobs the CLI and Monitor need. Field tags
// are mapstructure, viper's decode target, not encoding/json.
type Config struct {
	Host       string `mapstructure:"host"`
	Path       string `mapstructure:"path"`
	Port       string `mapstructure:"port"`
	CACertPath string `mapstructure:"ca_cert"`

	Login    string `mapstructure:"login"`
	Passcode string `mapstructure:"passcode"`

	Destination string `mapstructure:"destination"`

	LayoutFile string `mapstructure:"layout_file"`
	LogLevel   string `mapstructure:"log_level"`

	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

// Load reads defaults, then an optional YAML file at path (if
// non-empty), then environment variables, in increasing priority.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("path", "/ws")
	v.SetDefault("port", "443")
	v.SetDefault("destination", "/topic/passenger-events")
	v.SetDefault("log_level", "info")
	v.SetDefault("connect_timeout", 60*time.Second)

	v.SetEnvPrefix("NETWORKMONITOR")
	v.AutomaticEnv()
	for _, key := range []string{"host", "ca_cert", "login", "passcode", "layout_file"} {
		if err := v.BindEnv(key); err != nil {
			return Config{}, errors.Wrapf(err, "config: bind env %s", key)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrap(err, "config: read config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "config: unmarshal")
	}
	return cfg, nil
}
