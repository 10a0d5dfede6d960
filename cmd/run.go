package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"checker/internal/config"
	"checker/internal/eventbus"
	"checker/internal/scenario"
	"checker/pkg/checker"
)

// errScenarioFailed is returned when at least one expectation did not hold
var errScenarioFailed = errors.New("scenario expectations failed")

var runCmd = &cobra.Command{
	Use:   "run <scenario.toml>...",
	Short: "Replay scenarios and print the selection after each step",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScenarios(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

var loggedEvents = []checker.EventType{
	checker.EventSelectionChanged,
	checker.EventAllSelected,
	checker.EventSelectionCleared,
	checker.EventOptionsReplaced,
	checker.EventCheckRejected,
}

func runScenarios(cmd *cobra.Command, paths []string) error {
	log := getLogger()
	svc := config.NewConfigService()

	bus := eventbus.New(log)
	defer bus.Close()
	for _, t := range loggedEvents {
		bus.Subscribe(t, func(e checker.Event) {
			log.Debug("event", "type", e.Type(), "payload", fmt.Sprintf("%+v", e))
		})
	}

	runner := scenario.NewRunner(bus, log)
	failed := 0
	for _, path := range paths {
		s, err := svc.Load(path)
		if err != nil {
			return err
		}
		res, err := runner.Run(cmd.Context(), s)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), renderResult(res))
		if !res.OK() {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errScenarioFailed, failed, len(paths))
	}
	return nil
}
