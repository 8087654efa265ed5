package report

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/sarchlab/pagesim/hooking"
	"github.com/sarchlab/pagesim/replacement"
)

// ErrInvalidSweep is returned for frame sweeps that cannot be run.
var ErrInvalidSweep = errors.New("invalid frame sweep")

// DefaultPolicies is the order in which sweeps run the policies.
var DefaultPolicies = []replacement.Kind{
	replacement.KindLRU,
	replacement.KindFIFO,
	replacement.KindOPT,
}

// FrameSweep selects the frame counts Min, Min+Inc, ... up to Max.
type FrameSweep struct {
	Min, Max, Inc int
}

// Validate checks the sweep against the allowed frame counts.
func (s FrameSweep) Validate(minFrames, maxFrames int) error {
	switch {
	case s.Min < minFrames:
		return fmt.Errorf(
			"%w: minimum number of frames can be no less than %d; received %d",
			ErrInvalidSweep, minFrames, s.Min)
	case s.Max > maxFrames:
		return fmt.Errorf(
			"%w: maximum number of frames can be no more than %d; received %d",
			ErrInvalidSweep, maxFrames, s.Max)
	case s.Min > s.Max:
		return fmt.Errorf(
			"%w: minimum number of frames cannot be more than maximum number of frames",
			ErrInvalidSweep)
	case s.Inc <= 0:
		return fmt.Errorf(
			"%w: frame number increment must be a positive integer; received %d",
			ErrInvalidSweep, s.Inc)
	}

	return nil
}

// Frames lists the frame counts of the sweep.
func (s FrameSweep) Frames() []int {
	if s.Inc <= 0 {
		return nil
	}

	frames := []int{}
	for f := s.Min; f <= s.Max; f += s.Inc {
		frames = append(frames, f)
	}

	return frames
}

// Progress is told about every finished run.
type Progress interface {
	IncrementFinished(amount uint64)
}

// A Sweeper runs several policies over a range of frame counts. Console
// lines label the optimal policy OPT, where older tools printed EXTRA.
type Sweeper struct {
	policies []replacement.Kind
	hooks    []hooking.Hook
	progress Progress
	console  io.Writer
}

// Runs returns how many simulations Sweep performs for the given sweep.
func (s *Sweeper) Runs(sweep FrameSweep) int {
	return len(s.policies) * len(sweep.Frames())
}

// Sweep simulates every policy for every frame count of the sweep. The
// trace is shared by all runs and is not modified. Sweeps starting below one
// frame or with a non-positive increment return ErrInvalidSweep.
func (s *Sweeper) Sweep(
	trace []replacement.PageID,
	sweep FrameSweep,
) (*Table, error) {
	if err := sweep.Validate(1, math.MaxInt); err != nil {
		return nil, err
	}

	frames := sweep.Frames()
	table := &Table{Frames: frames}

	for _, kind := range s.policies {
		sim := replacement.NewSimulator(kind)
		for _, h := range s.hooks {
			sim.AcceptHook(h)
		}

		row := Row{Policy: kind}
		for _, frameCount := range frames {
			result := sim.Run(trace, frameCount)
			row.Results = append(row.Results, result)

			if err := s.println(FormatRunLine(kind, frameCount, result)); err != nil {
				return nil, err
			}

			if s.progress != nil {
				s.progress.IncrementFinished(1)
			}
		}

		if err := s.println(""); err != nil {
			return nil, err
		}

		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

func (s *Sweeper) println(line string) error {
	if s.console == nil {
		return nil
	}

	_, err := fmt.Fprintln(s.console, line)

	return err
}

// SweeperBuilder configures a Sweeper.
type SweeperBuilder struct {
	policies []replacement.Kind
	hooks    []hooking.Hook
	progress Progress
	console  io.Writer
}

// MakeSweeperBuilder creates a builder for sweeps over DefaultPolicies.
func MakeSweeperBuilder() SweeperBuilder {
	return SweeperBuilder{
		policies: DefaultPolicies,
	}
}

// WithPolicies sets the policies and their order.
func (b SweeperBuilder) WithPolicies(policies ...replacement.Kind) SweeperBuilder {
	b.policies = policies
	return b
}

// WithHook attaches a hook to the simulator of every policy.
func (b SweeperBuilder) WithHook(hook hooking.Hook) SweeperBuilder {
	b.hooks = append(append([]hooking.Hook(nil), b.hooks...), hook)
	return b
}

// WithProgress reports every finished run to p.
func (b SweeperBuilder) WithProgress(p Progress) SweeperBuilder {
	b.progress = p
	return b
}

// WithConsole prints one line per run, and a blank line per policy, to w.
func (b SweeperBuilder) WithConsole(w io.Writer) SweeperBuilder {
	b.console = w
	return b
}

// Build creates the Sweeper.
func (b SweeperBuilder) Build() *Sweeper {
	if len(b.policies) == 0 {
		panic("a sweep needs at least one policy")
	}

	return &Sweeper{
		policies: b.policies,
		hooks:    b.hooks,
		progress: b.progress,
		console:  b.console,
	}
}
