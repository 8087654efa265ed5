package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/sarchlab/pagesim/tracefile"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate RANGE COUNT FILE [SEED]",
	Short: "Generate a random page reference trace.",
	Long: "`generate RANGE COUNT FILE [SEED]` writes COUNT pages drawn from " +
		"[0, RANGE) into FILE, never repeating the previous page. Files " +
		"ending in .sz or .lz4 are compressed. SEED defaults to the " +
		"current time.",
	Args: cobra.RangeArgs(3, 4),
	RunE: func(_ *cobra.Command, args []string) error {
		opts, err := parseGenerateArgs(args, uint64(time.Now().UnixNano()))
		if err != nil {
			return err
		}

		return runGenerate(opts)
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

type generateOptions struct {
	rangeSize int
	count     int
	file      string
	seed      uint64
}

func parseGenerateArgs(args []string, defaultSeed uint64) (generateOptions, error) {
	rangeSize, err := strconv.Atoi(args[0])
	if err != nil || rangeSize < 1 || rangeSize > cfg.MaxRange {
		return generateOptions{}, fmt.Errorf(
			"%w: range must be an integer in [1, %d]; received %q",
			tracefile.ErrInvalidRange, cfg.MaxRange, args[0])
	}

	count, err := strconv.Atoi(args[1])
	if err != nil || count < 1 {
		return generateOptions{}, fmt.Errorf(
			"%w: count must be a positive integer; received %q",
			tracefile.ErrInvalidCount, args[1])
	}

	opts := generateOptions{
		rangeSize: rangeSize,
		count:     count,
		file:      args[2],
		seed:      defaultSeed,
	}

	if len(args) == 4 {
		opts.seed, err = strconv.ParseUint(args[3], 10, 64)
		if err != nil {
			return generateOptions{}, fmt.Errorf(
				"seed must be a non-negative integer; received %q", args[3])
		}
	}

	return opts, nil
}

func runGenerate(opts generateOptions) error {
	trace, err := tracefile.Generate(opts.rangeSize, opts.count, opts.seed)
	if err != nil {
		return err
	}

	return tracefile.Save(opts.file, trace)
}
