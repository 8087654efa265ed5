package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sarchlab/pagesim/datarecording"
	"github.com/sarchlab/pagesim/monitoring"
	"github.com/sarchlab/pagesim/report"
	"github.com/sarchlab/pagesim/tracefile"
	"github.com/sarchlab/pagesim/tracing"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats MIN MAX INC FILE",
	Short: "Sweep all policies over a range of frame counts.",
	Long: "`stats MIN MAX INC FILE` runs LRU, FIFO and OPT on the trace in " +
		"FILE with MIN, MIN+INC, ... up to MAX frames, prints one line per " +
		"run and writes the miss rates into a table file.",
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := parseStatsArgs(args)
		if err != nil {
			return err
		}

		opts.output, _ = cmd.Flags().GetString("output")
		if opts.output == "" {
			opts.output = cfg.RatesFile
		}

		opts.record = cmd.Flags().Changed("record")
		opts.recordName, _ = cmd.Flags().GetString("record")
		opts.monitor, _ = cmd.Flags().GetBool("monitor")
		opts.monitorPort, _ = cmd.Flags().GetInt("monitor-port")
		if !cmd.Flags().Changed("monitor-port") {
			opts.monitorPort = cfg.MonitorPort
		}
		opts.openBrowser, _ = cmd.Flags().GetBool("open-browser")

		return runStats(opts, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringP("output", "o", "",
		"File to write the miss-rate table to (default from PAGESIM_RATES_FILE, pagerates.txt)")
	statsCmd.Flags().String("record", "",
		"Record every run of the sweep into NAME.sqlite3")
	statsCmd.Flags().Bool("monitor", false,
		"Serve the monitoring page while the sweep runs")
	statsCmd.Flags().Int("monitor-port", 0,
		"Port of the monitoring server (default from PAGESIM_MONITOR_PORT, random)")
	statsCmd.Flags().Bool("open-browser", false,
		"Open the monitoring page in a browser")
}

type statsOptions struct {
	sweep  report.FrameSweep
	file   string
	output string

	record      bool
	recordName  string
	monitor     bool
	monitorPort int
	openBrowser bool
}

func parseStatsArgs(args []string) (statsOptions, error) {
	names := []string{
		"minimum number of frames",
		"maximum number of frames",
		"frame number increment",
	}

	values := make([]int, len(names))
	for i, name := range names {
		v, err := parseIntArg(name, args[i])
		if err != nil {
			return statsOptions{}, err
		}

		values[i] = v
	}

	sweep := report.FrameSweep{Min: values[0], Max: values[1], Inc: values[2]}
	if err := sweep.Validate(cfg.MinSweepFrames, cfg.MaxFrames); err != nil {
		return statsOptions{}, err
	}

	return statsOptions{sweep: sweep, file: args[3]}, nil
}

func runStats(opts statsOptions, out io.Writer) (err error) {
	trace, err := tracefile.Load(opts.file)
	if err != nil {
		return err
	}

	builder := report.MakeSweeperBuilder().WithConsole(out)

	if opts.record {
		recorder := datarecording.New(opts.recordName)
		defer func() {
			if cerr := recorder.Close(); err == nil {
				err = cerr
			}
		}()

		tracer := tracing.NewDBTracer(recorder).SkipSteps()
		builder = builder.WithHook(tracing.NewTraceHook(tracer))
	}

	if opts.monitor {
		m := startMonitor(
			monitoring.NewMonitor().WithMaxFrames(cfg.MaxFrames),
			opts.monitorPort, opts.openBrowser)
		defer shutdownMonitor(m)

		total := len(report.DefaultPolicies) * len(opts.sweep.Frames())
		bar := m.CreateProgressBar("sweep "+opts.file, uint64(total))
		defer m.CompleteProgressBar(bar)

		builder = builder.
			WithHook(tracing.NewTraceHook(m)).
			WithProgress(bar)
	}

	table, err := builder.Build().Sweep(trace, opts.sweep)
	if err != nil {
		return err
	}

	return table.Save(opts.output)
}

func startMonitor(
	m *monitoring.Monitor,
	port int,
	openBrowser bool,
) *monitoring.Monitor {
	m.WithPortNumber(port).StartServer()

	if openBrowser {
		if err := m.OpenBrowser(); err != nil {
			fmt.Fprintf(os.Stderr, "Cannot open browser: %v\n", err)
		}
	}

	return m
}

func shutdownMonitor(m *monitoring.Monitor) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := m.Shutdown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Cannot stop monitoring server: %v\n", err)
	}
}
