package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/deps/internal/app"
)

func (c *CLI) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which packages are on PATH and when they were last installed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")

			inv, err := c.app.Status(cmd.Context(), app.StatusOptions{ConfigPath: configPath})
			if err != nil {
				return err
			}
			printInventory(cmd.OutOrStdout(), inv, colorizer(cmd), c.now())
			return nil
		},
	}
}
