// Package config provides configuration management functionality for the timerctl application.
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/multierr"
)

// Configuration keys
const (
	KeyDuration      = "duration"
	KeyInterval      = "interval"
	KeyLogLevel      = "log_level"
	KeyDisplayFormat = "display.format"
)

// DisplayFormat selects how the run command renders durations.
type DisplayFormat string

const (
	// FormatReadable renders H:MM:SS.
	FormatReadable DisplayFormat = "readable"
	// FormatMillis renders raw millisecond counts.
	FormatMillis DisplayFormat = "ms"
)

// DefaultInterval matches the controller's own default tick period.
const DefaultInterval = 100 * time.Millisecond

// GetValue retrieves a configuration value by key
func GetValue(key string) (string, error) {
	if !viper.IsSet(key) {
		return "", fmt.Errorf("key '%s' not found in configuration", key)
	}
	return viper.GetString(key), nil
}

// SetValue sets a configuration value by key and persists it to the config file
func SetValue(key string, value string) error {
	viper.Set(key, value)
	return viper.WriteConfig()
}

// Timer holds the resolved settings for a countdown run
type Timer struct {
	Duration time.Duration
	Interval time.Duration
	LogLevel slog.Level
	Format   DisplayFormat
}

// Load resolves the timer configuration from viper and validates it.
// Every invalid key is reported, not only the first.
func Load() (*Timer, error) {
	cfg := &Timer{
		Interval: DefaultInterval,
		LogLevel: slog.LevelInfo,
		Format:   FormatReadable,
	}

	var errs error
	if viper.IsSet(KeyDuration) {
		d, err := durationValue(KeyDuration)
		errs = multierr.Append(errs, err)
		cfg.Duration = d
	}
	if viper.IsSet(KeyInterval) {
		d, err := durationValue(KeyInterval)
		errs = multierr.Append(errs, err)
		cfg.Interval = d
	}
	if viper.IsSet(KeyLogLevel) {
		level, err := ParseLevel(viper.GetString(KeyLogLevel))
		errs = multierr.Append(errs, err)
		cfg.LogLevel = level
	}
	if viper.IsSet(KeyDisplayFormat) {
		cfg.Format = DisplayFormat(viper.GetString(KeyDisplayFormat))
	}

	if err := multierr.Append(errs, cfg.Validate()); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyFlags applies flag overrides to config (called from command layer).
// Zero values leave the configured setting untouched.
func (c *Timer) ApplyFlags(duration, interval time.Duration) {
	if duration != 0 {
		c.Duration = duration
	}
	if interval != 0 {
		c.Interval = interval
	}
}

// ParseLevel converts a log_level value (debug, info, warn, error) to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, &ValidationError{Key: KeyLogLevel, Msg: fmt.Sprintf("unknown level %q", s)}
	}
	return level, nil
}

func durationValue(key string) (time.Duration, error) {
	raw := viper.GetString(key)
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, &ValidationError{Key: key, Msg: fmt.Sprintf("invalid duration %q", raw), Err: err}
	}
	return d, nil
}
