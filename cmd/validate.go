package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"checker/internal/config"
	"checker/pkg/checker"
)

var validateCmd = &cobra.Command{
	Use:   "validate <scenario.toml>...",
	Short: "Check scenario files without replaying them",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := config.NewConfigService()
		for _, path := range args {
			s, err := svc.Load(path)
			if err != nil {
				return err
			}
			if _, err := checker.New(s.CheckerConfig(nil, getLogger())); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%s, %d options, %d steps)\n",
				path, s.Checker.Mode, len(s.Options), len(s.Steps))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
