package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"checker/internal/scenario"
	"checker/pkg/checker"
)

func TestFormatValues(t *testing.T) {
	assert.Equal(t, "[]", formatValues(nil))
	assert.Equal(t, `[1, "b", true]`, formatValues([]any{int64(1), "b", true}))
}

func TestRenderResult(t *testing.T) {
	want := []any{"a"}
	res := &scenario.Result{
		Name: "demo",
		Mode: checker.ModeMulti,
		Steps: []scenario.StepResult{
			{Index: 1, Action: "check", Value: "a", Selection: []any{"a"}, Expected: &want, Passed: true},
			{Index: 2, Action: "check_all", Selection: []any{"a"}, Rejected: checker.ReasonMaxReached, Passed: true},
		},
	}

	out := renderResult(res)
	assert.Contains(t, out, "scenario demo")
	assert.Contains(t, out, `check "a"`)
	assert.Contains(t, out, "rejected: max_reached")
	assert.Contains(t, out, "PASS demo")
}
