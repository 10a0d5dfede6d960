package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"

	"checker/pkg/checker"
)

// ErrInvalidScenario is wrapped by every scenario validation failure
var ErrInvalidScenario = errors.New("invalid scenario")

// Action names a scenario step
type Action string

const (
	ActionCheck      Action = "check"
	ActionCheckAll   Action = "check_all"
	ActionSetOptions Action = "set_options"
)

// Scenario is a checker definition plus a scripted sequence of operations
type Scenario struct {
	Name    string           `toml:"name"`
	Checker CheckerSettings  `toml:"checker"`
	Options []checker.Record `toml:"options"`
	Steps   []Step           `toml:"steps"`
}

// CheckerSettings holds the construction parameters of the checker
type CheckerSettings struct {
	Mode          checker.Mode `toml:"mode"`
	Min           int          `toml:"min"`
	Max           int          `toml:"max,omitempty"`
	ValueField    string       `toml:"value_field,omitempty"`
	DisabledField string       `toml:"disabled_field,omitempty"`
	PruneStale    bool         `toml:"prune_stale,omitempty"`
	Initial       []any        `toml:"initial,omitempty"`
}

// Step is one operation replayed against the checker
type Step struct {
	Action Action `toml:"action"`
	// Value identifies the option to check
	Value any `toml:"value,omitempty"`
	// Options replaces the option list for set_options
	Options []checker.Record `toml:"options,omitempty"`
	// Expect is the selection required after the step. Nil means unchecked.
	Expect *[]any `toml:"expect,omitempty"`
}

// CheckerConfig builds the checker.Config described by the settings
func (s *Scenario) CheckerConfig(pub checker.Publisher, logger *log.Logger) checker.Config[checker.Record, any] {
	return checker.Config[checker.Record, any]{
		Mode:       s.Checker.Mode,
		Min:        s.Checker.Min,
		Max:        s.Checker.Max,
		Accessor:   checker.FieldAccessor(s.Checker.ValueField, s.Checker.DisabledField),
		Initial:    s.Checker.Initial,
		PruneStale: s.Checker.PruneStale,
		Publisher:  pub,
		Logger:     logger,
	}
}

// Validate checks the scenario structure and the checker settings
func (s *Scenario) Validate() error {
	for _, v := range s.Checker.Initial {
		if err := checkScalar(v); err != nil {
			return fmt.Errorf("%w: initial: %v", ErrInvalidScenario, err)
		}
	}
	if err := s.CheckerConfig(nil, nil).Validate(); err != nil {
		return err
	}
	acc := checker.FieldAccessor(s.Checker.ValueField, s.Checker.DisabledField)

	if err := checkRecords(acc, s.Options); err != nil {
		return fmt.Errorf("%w: options: %v", ErrInvalidScenario, err)
	}

	for i, step := range s.Steps {
		n := i + 1
		switch step.Action {
		case ActionCheck:
			if err := checkScalar(step.Value); err != nil {
				return fmt.Errorf("%w: step %d: value: %v", ErrInvalidScenario, n, err)
			}
		case ActionCheckAll:
		case ActionSetOptions:
			if err := checkRecords(acc, step.Options); err != nil {
				return fmt.Errorf("%w: step %d: options: %v", ErrInvalidScenario, n, err)
			}
		default:
			return fmt.Errorf("%w: step %d: unknown action %q", ErrInvalidScenario, n, step.Action)
		}
		if step.Expect != nil {
			for _, v := range *step.Expect {
				if err := checkScalar(v); err != nil {
					return fmt.Errorf("%w: step %d: expect: %v", ErrInvalidScenario, n, err)
				}
			}
		}
	}
	return nil
}

func checkRecords(acc checker.Accessor[checker.Record, any], records []checker.Record) error {
	for i, r := range records {
		if err := checkScalar(acc.Value(r)); err != nil {
			return fmt.Errorf("option %d: %v", i+1, err)
		}
	}
	return nil
}

// checkScalar rejects values that cannot serve as option identities
func checkScalar(v any) error {
	switch v.(type) {
	case nil:
		return errors.New("missing value")
	case []any, map[string]any:
		return fmt.Errorf("value %v is not a scalar", v)
	default:
		return nil
	}
}

// ConfigService loads and stores scenario files
type ConfigService interface {
	Load(path string) (*Scenario, error)
	Parse(data []byte) (*Scenario, error)
	Save(scenario *Scenario, path string) error
}

type configService struct{}

// NewConfigService creates a new config service
func NewConfigService() ConfigService {
	return &configService{}
}

// Load reads and validates the scenario at path
func (cs *configService) Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	scenario, err := cs.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if scenario.Name == "" {
		scenario.Name = filepath.Base(path)
	}
	return scenario, nil
}

// Parse decodes and validates a TOML scenario. Unknown keys are rejected.
func (cs *configService) Parse(data []byte) (*Scenario, error) {
	var scenario Scenario
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	return &scenario, nil
}

// Save writes scenario as TOML, creating the parent directory if needed
func (cs *configService) Save(scenario *Scenario, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create scenario directory: %w", err)
	}

	data, err := toml.Marshal(scenario)
	if err != nil {
		return fmt.Errorf("failed to marshal scenario: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write scenario file: %w", err)
	}
	return nil
}

// DefaultScenario returns a small multi-select scenario exercising the cap,
// a disabled option and the select-all toggle
func DefaultScenario() *Scenario {
	selected := func(values ...any) *[]any {
		v := append([]any{}, values...)
		return &v
	}
	return &Scenario{
		Name:    "example",
		Checker: CheckerSettings{Mode: checker.ModeMulti},
		Options: []checker.Record{
			{"value": int64(1), "label": "one", "disabled": false},
			{"value": int64(2), "label": "two", "disabled": false},
			{"value": int64(3), "label": "three", "disabled": true},
		},
		Steps: []Step{
			{Action: ActionCheck, Value: int64(1), Expect: selected(int64(1))},
			{Action: ActionCheck, Value: int64(2), Expect: selected(int64(1), int64(2))},
			{Action: ActionCheck, Value: int64(3), Expect: selected(int64(1), int64(2))},
			{Action: ActionCheckAll, Expect: selected()},
		},
	}
}
