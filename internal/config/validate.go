package config

import (
	"fmt"

	"go.uber.org/multierr"
)

// ValidationError reports a problem with a single configuration key
type ValidationError struct {
	Key string
	Msg string
	Err error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Key, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Key, e.Msg)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate checks the resolved settings and returns all problems combined.
func (c *Timer) Validate() error {
	var errs error
	if c.Duration < 0 {
		errs = multierr.Append(errs, &ValidationError{Key: KeyDuration, Msg: "must not be negative"})
	}
	if c.Interval < 0 {
		errs = multierr.Append(errs, &ValidationError{Key: KeyInterval, Msg: "must not be negative"})
	}
	switch c.Format {
	case FormatReadable, FormatMillis:
	default:
		errs = multierr.Append(errs, &ValidationError{Key: KeyDisplayFormat, Msg: fmt.Sprintf("unknown format %q", c.Format)})
	}
	return errs
}
