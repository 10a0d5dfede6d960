// Package scenario replays scripted checker operations and records the
// selection after every step.
package scenario

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/charmbracelet/log"

	"checker/internal/config"
	"checker/pkg/checker"
)

// ErrUnknownOption is returned when a check step names a value missing from the option list
var ErrUnknownOption = errors.New("unknown option")

// StepResult is the observed outcome of one step
type StepResult struct {
	Index     int
	Action    config.Action
	Value     any
	Selection []any
	AllActive bool
	Changed   bool
	// Rejected is set when the step degraded to a no-op
	Rejected checker.RejectReason
	Events   []checker.EventType
	Expected *[]any
	Passed   bool
}

// Result collects the step results of a scenario run
type Result struct {
	Name     string
	Mode     checker.Mode
	Steps    []StepResult
	Failures int
}

// OK reports whether every expectation held
func (r *Result) OK() bool { return r.Failures == 0 }

// Runner replays scenarios
type Runner struct {
	pub    checker.Publisher
	logger *log.Logger
}

// NewRunner creates a runner. Events are forwarded to pub when it is not nil.
func NewRunner(pub checker.Publisher, logger *log.Logger) *Runner {
	if pub == nil {
		pub = checker.NullPublisher{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{pub: pub, logger: logger.WithPrefix("scenario")}
}

// tally records events of the current step before forwarding them
type tally struct {
	mu       sync.Mutex
	next     checker.Publisher
	types    []checker.EventType
	rejected checker.RejectReason
}

func (t *tally) Publish(e checker.Event) {
	t.mu.Lock()
	t.types = append(t.types, e.Type())
	if r, ok := e.(checker.CheckRejectedEvent[any]); ok {
		t.rejected = r.Reason
	}
	t.mu.Unlock()
	t.next.Publish(e)
}

func (t *tally) reset() ([]checker.EventType, checker.RejectReason) {
	t.mu.Lock()
	defer t.mu.Unlock()
	types, rejected := t.types, t.rejected
	t.types, t.rejected = nil, ""
	return types, rejected
}

// Run builds the checker described by s and replays its steps in order.
// A failed expectation is recorded in the result; malformed steps abort the run.
func (r *Runner) Run(ctx context.Context, s *config.Scenario) (*Result, error) {
	events := &tally{next: r.pub}
	c, err := checker.New(s.CheckerConfig(events, r.logger))
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	c.SetOptions(s.Options)
	events.reset()

	acc := checker.FieldAccessor(s.Checker.ValueField, s.Checker.DisabledField)
	result := &Result{Name: s.Name, Mode: c.Mode()}
	r.logger.Info("running scenario", "name", s.Name, "mode", c.Mode(), "steps", len(s.Steps))

	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		before := c.Selection()
		switch step.Action {
		case config.ActionCheck:
			option, ok := lookup(acc, c.Options(), step.Value)
			if !ok {
				return result, fmt.Errorf("scenario %q: step %d: %w %v", s.Name, i+1, ErrUnknownOption, step.Value)
			}
			c.Check(option)
		case config.ActionCheckAll:
			c.CheckAll()
		case config.ActionSetOptions:
			c.SetOptions(step.Options)
		default:
			return result, fmt.Errorf("scenario %q: step %d: %w: unknown action %q", s.Name, i+1, config.ErrInvalidScenario, step.Action)
		}

		types, rejected := events.reset()
		sr := StepResult{
			Index:     i + 1,
			Action:    step.Action,
			Value:     step.Value,
			Selection: c.Selection(),
			AllActive: c.IsAllActive(),
			Rejected:  rejected,
			Events:    types,
			Expected:  step.Expect,
			Passed:    true,
		}
		sr.Changed = !slices.Equal(before, sr.Selection)
		if step.Expect != nil && !slices.Equal(*step.Expect, sr.Selection) {
			sr.Passed = false
			result.Failures++
			r.logger.Warn("expectation failed", "step", sr.Index, "want", *step.Expect, "got", sr.Selection)
		}
		result.Steps = append(result.Steps, sr)
	}

	r.logger.Info("scenario finished", "name", s.Name, "failures", result.Failures)
	return result, nil
}

func lookup(acc checker.Accessor[checker.Record, any], options []checker.Record, value any) (checker.Record, bool) {
	for _, o := range options {
		if acc.Value(o) == value {
			return o, true
		}
	}
	return nil, false
}
