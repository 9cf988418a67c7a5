package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"courseops/internal/config"
)

func newRootCmd(cfg *config.Config) *cobra.Command {
	var (
		jsonOutput bool
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   "courseops",
		Short: "Courseops generates, publishes, and assigns weekly course tasks",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			warning, err := configureLoggerForCLI(logLevel, cfg.LogLevel)
			if err != nil {
				return err
			}
			if warning != "" {
				fmt.Fprintln(os.Stderr, warning)
			}
			return nil
		},
	}

	cmd.Version = version
	cmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output JSON")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newSrvCmd(cfg),
		newRunCmd(cfg, &jsonOutput),
		newPlanCmd(cfg, &jsonOutput),
		newPublishCmd(cfg, &jsonOutput),
		newAssignCmd(cfg, &jsonOutput),
		newBoardCmd(cfg, &jsonOutput),
		newLabelsCmd(cfg, &jsonOutput),
		newListCmd(cfg, &jsonOutput),
		newShowCmd(cfg, &jsonOutput),
		newUpdateCmd(cfg, &jsonOutput),
		newCloseCmd(cfg, &jsonOutput),
		newReopenCmd(cfg, &jsonOutput),
		newContributorCmd(cfg, &jsonOutput),
		newAdminCmd(cfg, &jsonOutput),
		newConfigCmd(cfg, &jsonOutput),
		newInfoCmd(cfg, &jsonOutput),
	)

	return cmd
}
