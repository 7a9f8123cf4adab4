// Package config loads the settings of the tap tools.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"honnef.co/go/tap/io/pointer"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variables that override settings. The setting
// "double_click_threshold" is overridden by TAP_DOUBLE_CLICK_THRESHOLD, and
// "logger.level" by TAP_LOGGER_LEVEL.
const EnvPrefix = "TAP"

type Settings struct {
	// DoubleClickThreshold is the longest time between two presses that still counts as a
	// multi-click.
	DoubleClickThreshold time.Duration `mapstructure:"double_click_threshold" yaml:"double_click_threshold"`
	// RepeatDelay and RepeatInterval configure repeating clicks that don't set their own.
	RepeatDelay    time.Duration `mapstructure:"repeat_delay" yaml:"repeat_delay"`
	RepeatInterval time.Duration `mapstructure:"repeat_interval" yaml:"repeat_interval"`

	Logger LoggerConfig `mapstructure:"logger" yaml:"logger"`
}

type LoggerConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	// Format is "console" or "json".
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	// LogFile, if set, additionally logs JSON to a rotated file.
	LogFile    string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize    int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int    `mapstructure:"max_age" yaml:"max_age"`
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("double_click_threshold", pointer.DefaultDoubleClickThreshold.String())
	v.SetDefault("repeat_delay", "500ms")
	v.SetDefault("repeat_interval", "100ms")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "tap")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 7)
	v.SetDefault("logger.compress", false)
}

// Default returns the default settings.
func Default() Settings {
	v := viper.New()
	SetDefaults(v)
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		panic(fmt.Sprintf("unreachable: invalid defaults: %s", err))
	}
	return s
}

// Load reads settings into v from the configuration file at path, which may be empty, and
// from the environment. Without a path, a file named tap.{yaml,toml,json} in the working
// directory is read if it exists.
func Load(v *viper.Viper, path string) (Settings, error) {
	SetDefaults(v)
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("tap")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return s, nil
}

func (s Settings) Validate() error {
	if s.DoubleClickThreshold <= 0 {
		return fmt.Errorf("double_click_threshold must be positive, got %v", s.DoubleClickThreshold)
	}
	if s.RepeatDelay < 0 || s.RepeatInterval < 0 {
		return fmt.Errorf("repeat_delay and repeat_interval must not be negative, got %v and %v",
			s.RepeatDelay, s.RepeatInterval)
	}
	switch s.Logger.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logger.format must be \"console\" or \"json\", got %q", s.Logger.Format)
	}
	return nil
}
