package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tiancaiamao/bench-csv"
	"github.com/tiancaiamao/bench-csv/internal/cli"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	return cli.Execute(newRootCommand(stdin), args, stdout, stderr)
}

func newRootCommand(stdin io.Reader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Extract serial load latencies as size,value lines",
		Long: `parse reads benchmark output on stdin and writes "size,value" on stdout for
every line like "512-KiB serial loads   4.01". Other lines are ignored.`,
		Example: `  uarch-bench --test-name=memory/load-serial/* | parse > loads.csv`,
		Version: version,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return cli.Usagef("unexpected arguments %q, input is read from stdin", args)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInline(cmd, stdin)
		},
	}

	cli.AddGlobalFlags(cmd)
	cmd.Flags().String("pattern", benchcsv.DefaultInlinePattern, "pattern to search; its first two groups are written")

	return cmd
}

func runInline(cmd *cobra.Command, stdin io.Reader) error {
	cfg, logger, err := cli.Setup(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ic, err := cfg.InlineExtractorConfig()
	if err != nil {
		return cli.Usage(err)
	}
	logger.Debug("pattern", zap.Stringer("pattern", ic.Pattern))

	var (
		chart *benchcsv.Chart
		sink  func(benchcsv.Pair)
	)
	if cfg.Chart.Output != "" {
		chart = benchcsv.NewChart(cfg.Chart.Title, "KiB")
		sink = chart.AddPair
	}

	if err := benchcsv.ExtractInline(ic, stdin, cmd.OutOrStdout(), sink); err != nil {
		return err
	}

	return cli.WriteChart(cfg, logger, chart)
}
