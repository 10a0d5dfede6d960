package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"checker/internal/config"
)

var forceInit bool

var initCmd = &cobra.Command{
	Use:   "init <scenario.toml>",
	Short: "Write an example scenario file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if _, err := os.Stat(path); err == nil && !forceInit {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := config.NewConfigService().Save(config.DefaultScenario(), path); err != nil {
			return err
		}
		getLogger().Info("scenario written", "path", path)
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "overwrite an existing file")
	rootCmd.AddCommand(initCmd)
}
