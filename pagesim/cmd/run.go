package cmd

import (
	"fmt"
	"io"

	"github.com/sarchlab/pagesim/datarecording"
	"github.com/sarchlab/pagesim/render"
	"github.com/sarchlab/pagesim/replacement"
	"github.com/sarchlab/pagesim/report"
	"github.com/sarchlab/pagesim/tracefile"
	"github.com/sarchlab/pagesim/tracing"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run FRAMES FILE POLICY",
	Short: "Simulate one replacement policy on a trace file.",
	Long: "`run FRAMES FILE POLICY` replays the trace in FILE with FRAMES " +
		"frames under POLICY (fifo, lru or opt; extra is an alias of opt), " +
		"prints the frame table after every reference and the miss rate.",
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := parseRunArgs(args)
		if err != nil {
			return err
		}

		opts.quiet, _ = cmd.Flags().GetBool("quiet")
		opts.record = cmd.Flags().Changed("record")
		opts.recordName, _ = cmd.Flags().GetString("record")
		opts.csv = cmd.Flags().Changed("csv")
		opts.csvName, _ = cmd.Flags().GetString("csv")

		return runSingle(opts, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolP("quiet", "q", false,
		"Only print the miss rate")
	runCmd.Flags().String("record", "",
		"Record the run and its steps into NAME.sqlite3")
	runCmd.Flags().String("csv", "",
		"Write the steps of the run into NAME.csv")
}

type runOptions struct {
	frames int
	file   string
	policy replacement.Kind

	quiet      bool
	record     bool
	recordName string
	csv        bool
	csvName    string
}

func parseRunArgs(args []string) (runOptions, error) {
	frames, err := parseIntArg("number of memory frames", args[0])
	if err != nil {
		return runOptions{}, err
	}

	if frames < 1 || frames > cfg.MaxFrames {
		return runOptions{}, fmt.Errorf(
			"range of number of memory frames is [1, %d], received %d",
			cfg.MaxFrames, frames)
	}

	policy, err := replacement.ParseKind(args[2])
	if err != nil {
		return runOptions{}, fmt.Errorf(
			"algorithm usage (lru, fifo, or opt); received %s: %w",
			args[2], err)
	}

	return runOptions{frames: frames, file: args[1], policy: policy}, nil
}

func runSingle(opts runOptions, out io.Writer) (err error) {
	trace, err := tracefile.Load(opts.file)
	if err != nil {
		return err
	}

	sim := replacement.NewSimulator(opts.policy)

	var printer *render.StepPrinter
	if !opts.quiet {
		printer = render.NewStepPrinter(out)
		sim.AcceptHook(printer)
	}

	if opts.record {
		recorder := datarecording.New(opts.recordName)
		defer func() {
			if cerr := recorder.Close(); err == nil {
				err = cerr
			}
		}()

		tracing.CollectTrace(sim, tracing.NewDBTracer(recorder))
	}

	if opts.csv {
		csvTracer := tracing.NewCSVTracer(opts.csvName)
		csvTracer.Init()
		defer func() {
			if cerr := csvTracer.Close(); err == nil {
				err = cerr
			}
		}()

		tracing.CollectTrace(sim, csvTracer)
	}

	result := sim.Run(trace, opts.frames)

	if printer != nil && printer.Err() != nil {
		return printer.Err()
	}

	_, err = fmt.Fprintf(out, "\n%s\n", report.FormatMissRate(result))

	return err
}
