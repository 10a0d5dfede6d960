package checker

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// ErrInvalidConfig is the sentinel error wrapped by ConfigError
var ErrInvalidConfig = errors.New("invalid checker config")

// ConfigError is returned by Config.Validate when a construction parameter is
// out of range. It wraps ErrInvalidConfig for errors.Is() compatibility.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid checker config: %s: %s", e.Field, e.Reason)
}

// Unwrap returns ErrInvalidConfig
func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }

// Config holds the construction parameters of a Checker
type Config[O any, V comparable] struct {
	// Mode is fixed for the lifetime of the Checker. The zero value is ModeMulti.
	Mode Mode
	// Min is the floor on retained selections in Multi mode
	Min int
	// Max caps selections in Multi mode. Zero means the number of enabled options.
	Max int
	// Accessor reads value and disabled flag from options
	Accessor Accessor[O, V]
	// Initial pre-seeds the selection. Seeds are not checked against the option list.
	Initial []V
	// PruneStale drops selected values missing from a replaced option list
	PruneStale bool
	// Publisher receives change and rejection events. Nil disables publishing.
	Publisher Publisher
	// Logger receives debug output about rejected operations. Nil discards.
	Logger *log.Logger
}

// Validate reports the first invalid construction parameter
func (c Config[O, V]) Validate() error {
	if c.Mode != ModeMulti && c.Mode != ModeSingle {
		return &ConfigError{Field: "Mode", Reason: fmt.Sprintf("unknown mode %d", int(c.Mode))}
	}
	if c.Accessor.Value == nil {
		return &ConfigError{Field: "Accessor.Value", Reason: "must not be nil"}
	}
	if c.Accessor.Disabled == nil {
		return &ConfigError{Field: "Accessor.Disabled", Reason: "must not be nil"}
	}
	if c.Min < 0 {
		return &ConfigError{Field: "Min", Reason: fmt.Sprintf("must be >= 0, got %d", c.Min)}
	}
	if c.Max < 0 {
		return &ConfigError{Field: "Max", Reason: fmt.Sprintf("must be >= 0, got %d", c.Max)}
	}
	if c.Max > 0 && c.Min > c.Max {
		return &ConfigError{Field: "Min", Reason: fmt.Sprintf("min %d exceeds max %d", c.Min, c.Max)}
	}

	if c.Mode == ModeSingle {
		if c.Min > 1 {
			return &ConfigError{Field: "Min", Reason: "single mode holds at most one value"}
		}
		if c.Max > 1 {
			return &ConfigError{Field: "Max", Reason: "single mode holds at most one value"}
		}
		if len(c.Initial) > 1 {
			return &ConfigError{Field: "Initial", Reason: "single mode holds at most one value"}
		}
	}

	if c.Max > 0 && len(c.Initial) > c.Max {
		return &ConfigError{Field: "Initial", Reason: fmt.Sprintf("%d values exceed max %d", len(c.Initial), c.Max)}
	}
	seen := make(map[V]struct{}, len(c.Initial))
	for _, v := range c.Initial {
		if _, dup := seen[v]; dup {
			return &ConfigError{Field: "Initial", Reason: fmt.Sprintf("duplicate value %v", v)}
		}
		seen[v] = struct{}{}
	}
	return nil
}
