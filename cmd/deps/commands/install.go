package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/deps/internal/app"
)

func (c *CLI) newInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Bootstrap the toolchain if needed and install all packages",
		Args:  cobra.NoArgs,
		RunE:  c.runInstall,
	}
	addInstallFlags(cmd)
	return cmd
}

func addInstallFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("dry-run", false, "Print what would be installed without running anything")
	cmd.Flags().Bool("fail-fast", false, "Stop at the first failed package (overrides onFailure)")
}

func (c *CLI) runInstall(cmd *cobra.Command, _ []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	failFast, _ := cmd.Flags().GetBool("fail-fast")

	report, err := c.app.Install(cmd.Context(), app.InstallOptions{
		ConfigPath: configPath,
		DryRun:     dryRun,
		FailFast:   failFast,
	})
	if report != nil {
		printReport(cmd.OutOrStdout(), report, colorizer(cmd))
	}
	return err
}
