// Package commands implements the CLI commands for deps.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mitchellh/colorstring"
	"github.com/spf13/cobra"
	"go.trai.ch/deps/internal/app"
	"go.trai.ch/deps/internal/build"
	"go.trai.ch/deps/internal/core/domain"
	"golang.org/x/term"
)

// CLI represents the command line interface for deps.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
	now     func() time.Time
}

// Application represents the application logic interface.
type Application interface {
	Install(ctx context.Context, opts app.InstallOptions) (*domain.Report, error)
	Status(ctx context.Context, opts app.StatusOptions) (*domain.Inventory, error)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	c := &CLI{
		app: a,
		now: time.Now,
	}

	rootCmd := &cobra.Command{
		Use:   "deps",
		Short: "Install the Go toolchain and the configured Go packages",
		Long: "deps makes sure the toolchain is installed, bootstrapping it with the\n" +
			"system package manager when missing, then installs every package listed\n" +
			"in the manifest. Running it without a subcommand is the same as 'deps install'.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		RunE:          c.runInstall,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the manifest (default: ./deps.yaml, then built-in)")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	addInstallFlags(rootCmd)

	c.rootCmd = rootCmd
	rootCmd.AddCommand(c.newInstallCmd())
	rootCmd.AddCommand(c.newStatusCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// WithClock replaces the time source used for receipt ages. Used for testing.
func (c *CLI) WithClock(now func() time.Time) *CLI {
	c.now = now
	return c
}

func colorizer(cmd *cobra.Command) colorstring.Colorize {
	noColor, _ := cmd.Flags().GetBool("no-color")
	return colorstring.Colorize{
		Colors:  colorstring.DefaultColors,
		Disable: noColor || os.Getenv("NO_COLOR") != "" || !isTerminal(cmd.OutOrStdout()),
		Reset:   true,
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
