package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"checker/internal/scenario"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	passStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	failStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	rejectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	stepStyle     = lipgloss.NewStyle().Width(4).Align(lipgloss.Right)
	actionStyle   = lipgloss.NewStyle().Width(18).PaddingLeft(2)
	selStyle      = lipgloss.NewStyle().Width(20)
)

// formatValues renders values the way they appear in scenario files
func formatValues(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = formatValue(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func formatValue(v any) string {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprint(v)
}

// renderResult renders the trace of a scenario run
func renderResult(res *scenario.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", titleStyle.Render("scenario "+res.Name), rejectedStyle.Render("("+res.Mode.String()+")"))
	for _, step := range res.Steps {
		action := string(step.Action)
		if step.Value != nil {
			action += " " + formatValue(step.Value)
		}

		var notes []string
		if step.Rejected != "" {
			notes = append(notes, rejectedStyle.Render("rejected: "+string(step.Rejected)))
		}
		if step.Expected != nil {
			if step.Passed {
				notes = append(notes, passStyle.Render("ok"))
			} else {
				notes = append(notes, failStyle.Render("want "+formatValues(*step.Expected)))
			}
		}

		line := lipgloss.JoinHorizontal(lipgloss.Top,
			stepStyle.Render(fmt.Sprint(step.Index)),
			actionStyle.Render(action),
			selStyle.Render(formatValues(step.Selection)),
			strings.Join(notes, " "),
		)
		b.WriteString(strings.TrimRight(line, " ") + "\n")
	}

	if res.OK() {
		fmt.Fprintf(&b, "%s %s\n", passStyle.Render("PASS"), res.Name)
	} else {
		fmt.Fprintf(&b, "%s %s (%d failed)\n", failStyle.Render("FAIL"), res.Name, res.Failures)
	}
	return b.String()
}
