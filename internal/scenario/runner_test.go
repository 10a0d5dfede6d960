package scenario

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checker/internal/config"
	"checker/pkg/checker"
)

func parse(t *testing.T, input string) *config.Scenario {
	t.Helper()
	s, err := config.NewConfigService().Parse([]byte(input))
	require.NoError(t, err)
	return s
}

func TestRun_DefaultScenarioPasses(t *testing.T) {
	t.Parallel()

	res, err := NewRunner(nil, nil).Run(context.Background(), config.DefaultScenario())
	require.NoError(t, err)
	require.True(t, res.OK())
	require.Len(t, res.Steps, 4)

	assert.Equal(t, []any{int64(1)}, res.Steps[0].Selection)
	assert.True(t, res.Steps[0].Changed)

	third := res.Steps[2]
	assert.False(t, third.Changed)
	assert.Equal(t, checker.ReasonDisabled, third.Rejected)
	assert.Equal(t, []checker.EventType{checker.EventCheckRejected}, third.Events)

	last := res.Steps[3]
	assert.Empty(t, last.Selection)
	assert.Equal(t, []checker.EventType{checker.EventSelectionCleared}, last.Events)
}

func TestRun_RecordsFailedExpectation(t *testing.T) {
	t.Parallel()

	s := parse(t, `
[checker]
max = 1

[[options]]
value = "a"

[[options]]
value = "b"

[[steps]]
action = "check"
value = "a"

[[steps]]
action = "check"
value = "b"
expect = ["a", "b"]
`)

	res, err := NewRunner(nil, nil).Run(context.Background(), s)
	require.NoError(t, err)
	assert.False(t, res.OK())
	assert.Equal(t, 1, res.Failures)
	assert.True(t, res.Steps[0].Passed)
	assert.False(t, res.Steps[1].Passed)
	assert.Equal(t, []any{"b"}, res.Steps[1].Selection)
}

func TestRun_SingleMode(t *testing.T) {
	t.Parallel()

	s := parse(t, `
[checker]
mode = "radio"

[[options]]
value = "x"

[[options]]
value = "y"

[[steps]]
action = "check"
value = "x"
expect = ["x"]

[[steps]]
action = "check"
value = "y"
expect = ["y"]

[[steps]]
action = "check_all"
expect = ["y"]
`)

	res, err := NewRunner(nil, nil).Run(context.Background(), s)
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.Equal(t, checker.ModeSingle, res.Mode)
	assert.Equal(t, checker.ReasonUnsupported, res.Steps[2].Rejected)
}

func TestRun_SetOptionsChangesCap(t *testing.T) {
	t.Parallel()

	s := parse(t, `
[[options]]
value = 1

[[options]]
value = 2

[[steps]]
action = "check"
value = 1

[[steps]]
action = "set_options"

[[steps.options]]
value = 1

[[steps.options]]
value = 2

[[steps.options]]
value = 3

[[steps]]
action = "check"
value = 3
expect = [1, 3]

[[steps]]
action = "check_all"
expect = [1, 2, 3]
`)

	res, err := NewRunner(nil, nil).Run(context.Background(), s)
	require.NoError(t, err)
	assert.True(t, res.OK(), "%+v", res.Steps)
	assert.Equal(t, []checker.EventType{checker.EventOptionsReplaced}, res.Steps[1].Events)
	assert.True(t, res.Steps[3].AllActive)
}

func TestRun_UnknownOption(t *testing.T) {
	t.Parallel()

	s := parse(t, `
[[options]]
value = 1

[[steps]]
action = "check"
value = 2
`)

	_, err := NewRunner(nil, nil).Run(context.Background(), s)
	require.ErrorIs(t, err, ErrUnknownOption)
}

func TestRun_InvalidChecker(t *testing.T) {
	t.Parallel()

	s := config.DefaultScenario()
	s.Checker.Min = -1

	_, err := NewRunner(nil, nil).Run(context.Background(), s)
	require.ErrorIs(t, err, checker.ErrInvalidConfig)
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := NewRunner(nil, nil).Run(ctx, config.DefaultScenario())
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, res.Steps)
}

type counter struct{ n int }

func (c *counter) Publish(checker.Event) { c.n++ }

func TestRun_ForwardsEvents(t *testing.T) {
	t.Parallel()

	pub := &counter{}
	_, err := NewRunner(pub, nil).Run(context.Background(), config.DefaultScenario())
	require.NoError(t, err)

	// options replaced, two changes, one rejection, one clear
	assert.Equal(t, 5, pub.n)
}
