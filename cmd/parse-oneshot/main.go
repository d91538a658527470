package main

import (
	"io"
	"os"
	"strconv"
	"strings"

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
	return cli.Execute(newRootCommand(stdin), columnArgs(args), stdout, stderr)
}

// columnArgs rewrites numbers that continue a column list, as in "-c 1 -1",
// into "--columns=N" so they keep their order. Left alone, negative numbers
// parse as shorthand flags.
func columnArgs(args []string) []string {
	out := make([]string, 0, len(args))
	inColumns := false
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "--":
			return append(out, args[i:]...)
		case a == "-c" || a == "--columns":
			out = append(out, a)
			if i+1 < len(args) {
				i++
				out = append(out, args[i])
			}
			inColumns = true
		case strings.HasPrefix(a, "-c") || strings.HasPrefix(a, "--columns="):
			out = append(out, a)
			inColumns = true
		case inColumns && isInt(a):
			out = append(out, "--columns="+a)
		default:
			out = append(out, a)
			inColumns = false
		}
	}
	return out
}

func isInt(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}

func newRootCommand(stdin io.Reader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse-oneshot -c COLUMN [COLUMN...]",
		Short: "Extract sample columns from oneshot benchmark sections",
		Long: `parse-oneshot reads benchmark output on stdin and, for every row between
a start tag and an end tag, writes the sample number taken from the row name
followed by the selected columns as one comma separated line on stdout.
The line after the start tag is the header and is skipped.`,
		Example: `  # Sample number plus columns 3 and 5
  uarch-bench --timer=libpfc | parse-oneshot -c 3 5

  # Render a scatter page as well
  parse-oneshot -c 3,5 --html samples.html < bench.log > samples.csv`,
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSection(cmd, args, stdin)
		},
	}

	cli.AddGlobalFlags(cmd)
	cmd.Flags().StringSliceP("columns", "c", nil, "columns to extract (required)")
	cmd.Flags().String("start-tag", benchcsv.DefaultStartTag, "pattern of the line opening a section")
	cmd.Flags().String("end-tag", benchcsv.DefaultEndTag, "pattern of the line closing a section")
	cmd.Flags().String("name-pattern", benchcsv.DefaultNamePattern, "pattern of row names; the first group is the sample number")

	return cmd
}

func runSection(cmd *cobra.Command, args []string, stdin io.Reader) error {
	// numbers split from the column list by other flags arrive as arguments
	if len(args) > 0 && !cmd.Flags().Changed("columns") {
		return cli.Usagef("unexpected arguments %q, columns are given with -c", args)
	}

	cfg, logger, err := cli.Setup(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg.Section.Columns = append(cfg.Section.Columns, args...)
	sc, err := cfg.SectionExtractorConfig()
	if err != nil {
		return cli.Usage(err)
	}

	ex := benchcsv.NewSectionExtractor(sc, logger)
	var (
		chart *benchcsv.Chart
		sink  func(benchcsv.Record)
	)
	if cfg.Chart.Output != "" {
		chart = benchcsv.NewChart(cfg.Chart.Title, "sample")
		sink = func(r benchcsv.Record) {
			chart.AddRecord(r, benchcsv.SeriesNames(ex.Headings(), sc.Columns))
		}
	}

	if err := ex.Run(stdin, cmd.OutOrStdout(), sink); err != nil {
		return err
	}
	logger.Debug("input done", zap.Int("sections", ex.Sections()), zap.Stringer("state", ex.State()))

	return cli.WriteChart(cfg, logger, chart)
}
