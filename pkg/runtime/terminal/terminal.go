package terminal

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/de-tools/gym-reports/pkg/runtime/terminal/commands"
	"github.com/de-tools/gym-reports/pkg/runtime/terminal/export"
	"github.com/de-tools/gym-reports/pkg/services/report"
	"github.com/de-tools/gym-reports/pkg/services/tenant"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	registry report.Registry
	tenants  tenant.Registry
	reporter *export.Reporter
	now      func() time.Time
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Registry report.Registry
	Tenants  tenant.Registry
	Output   io.Writer
	Now      func() time.Time
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	cli := &CLI{
		registry: opts.Registry,
		tenants:  opts.Tenants,
		reporter: export.NewReporter(opts.Output),
		now:      opts.Now,
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	return cli
}

func (cli *CLI) Execute(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(ctx)
}

// SetArgs overrides os.Args, mostly for tests.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "gym-reports",
		Short:         "Gym report exports",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(commands.NewExportCmd(cli.registry, cli.tenants, cli.now))
	cmd.AddCommand(commands.NewSummaryCmd(cli.registry, cli.tenants, cli.reporter, cli.now))
	cmd.AddCommand(commands.NewFamiliesCmd(cli.registry))

	return cmd
}
