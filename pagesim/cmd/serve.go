package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sarchlab/pagesim/monitoring"
	"github.com/sarchlab/pagesim/tracing"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the monitoring page until interrupted.",
	Long: "`serve` starts the monitoring server. Simulations can be " +
		"requested with POST /api/simulate. Runs stored by --record can " +
		"be listed with --recording NAME.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		port, _ := cmd.Flags().GetInt("port")
		if !cmd.Flags().Changed("port") {
			port = cfg.MonitorPort
		}

		recording, _ := cmd.Flags().GetString("recording")
		openBrowser, _ := cmd.Flags().GetBool("open-browser")

		ctx, stop := signal.NotifyContext(
			cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		m := monitoring.NewMonitor().WithMaxFrames(cfg.MaxFrames)
		if err := loadRecording(ctx, m, recording); err != nil {
			return err
		}

		startMonitor(m, port, openBrowser)
		defer shutdownMonitor(m)

		<-ctx.Done()

		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().Int("port", 0,
		"Port of the monitoring server (default from PAGESIM_MONITOR_PORT, random)")
	serveCmd.Flags().String("recording", "",
		"List the runs of NAME.sqlite3")
	serveCmd.Flags().Bool("open-browser", false,
		"Open the monitoring page in a browser")
}

func loadRecording(
	ctx context.Context,
	m *monitoring.Monitor,
	name string,
) error {
	if name == "" {
		return nil
	}

	reader, err := tracing.OpenRecording(name)
	if err != nil {
		return err
	}
	defer reader.Close()

	runs, err := reader.ListRuns(ctx)
	if err != nil {
		return fmt.Errorf("reading recording %s: %w", name, err)
	}

	m.AddRuns(runs)

	return nil
}
