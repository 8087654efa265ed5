// Package cmd provides the command-line interface of pagesim.
package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/sarchlab/pagesim/config"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// cfg is loaded before any subcommand runs.
var cfg = config.Default()

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pagesim",
	Short: "pagesim simulates page replacement policies on reference traces.",
	Long: `pagesim simulates the FIFO, LRU and OPT page replacement policies ` +
		`on page reference traces. It runs single simulations, sweeps over ` +
		`frame counts, generates random traces and serves a monitoring page.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}

		cfg = loaded

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. It exits the process through atexit so that recordings are
// flushed.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

func parseIntArg(name, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer; received %q", name, value)
	}

	return n, nil
}
