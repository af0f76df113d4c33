// Package config loads settings for the hxbs command from hxbs.yaml and
// HXBS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pthm/hxbs"
	"github.com/spf13/viper"
)

// ConfigFileName is the file searched for in the working directory.
const ConfigFileName = "hxbs"

// EnvPrefix prefixes environment overrides, e.g. HXBS_COLLAPSE_DURATION.
const EnvPrefix = "HXBS"

// Config is the loaded configuration.
type Config struct {
	Addr     string         `mapstructure:"addr"`
	Key      string         `mapstructure:"key"`
	Debug    bool           `mapstructure:"debug"`
	Collapse CollapseConfig `mapstructure:"collapse"`
}

// CollapseConfig holds panel defaults.
type CollapseConfig struct {
	Duration  time.Duration  `mapstructure:"duration"`
	Dimension hxbs.Dimension `mapstructure:"dimension"`
	ResetSize bool           `mapstructure:"reset_size"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":8080")
	v.SetDefault("key", "")
	v.SetDefault("debug", false)
	v.SetDefault("collapse.duration", hxbs.DefaultTransitionDuration)
	v.SetDefault("collapse.dimension", string(hxbs.DefaultDimension))
	v.SetDefault("collapse.reset_size", true)
}

// New returns a viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads path, or hxbs.yaml in the working directory when path is
// empty. A missing default file is not an error.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(ConfigFileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return Parse(v)
}

// Parse decodes and validates v.
func Parse(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if !c.Collapse.Dimension.Valid() {
		return &hxbs.ConfigError{
			Field: "collapse.dimension",
			Value: string(c.Collapse.Dimension),
			Err:   hxbs.ErrInvalidDimension,
		}
	}
	// Hosts read a zero duration as "use the default".
	if c.Collapse.Duration <= 0 {
		return fmt.Errorf("config: collapse.duration must be positive, got %s", c.Collapse.Duration)
	}
	return nil
}

// SigningKey returns the props key, falling back to a development key
// when none is configured.
func (c *Config) SigningKey() []byte {
	if c.Key == "" {
		return []byte("hxbs-development-key-change-me!!")
	}
	return []byte(c.Key)
}
