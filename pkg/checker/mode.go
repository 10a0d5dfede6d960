package checker

import (
	"fmt"
	"strings"
)

// Mode selects the cardinality model of a Checker
type Mode int

const (
	// ModeMulti allows any number of selected values, bounded by Min and Max (checkbox semantics)
	ModeMulti Mode = iota
	// ModeSingle allows at most one selected value (radio semantics)
	ModeSingle
)

func (m Mode) String() string {
	switch m {
	case ModeMulti:
		return "multi"
	case ModeSingle:
		return "single"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses a mode name. "checkbox" and "radio" are accepted as aliases.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "multi", "checkbox":
		return ModeMulti, nil
	case "single", "radio":
		return ModeSingle, nil
	default:
		return ModeMulti, fmt.Errorf("unknown mode %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (m Mode) MarshalText() ([]byte, error) {
	if m != ModeMulti && m != ModeSingle {
		return nil, fmt.Errorf("unknown mode %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
