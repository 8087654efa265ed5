package replacement

import (
	"github.com/rs/xid"
	"github.com/sarchlab/pagesim/hooking"
)

// Hook positions at which a Simulator invokes its hooks.
var (
	// HookPosRunStart carries a RunInfo.
	HookPosRunStart = &hooking.HookPos{Name: "RunStart"}

	// HookPosStep carries a Step, once per trace position.
	HookPosStep = &hooking.HookPos{Name: "Step"}

	// HookPosRunEnd carries a RunSummary.
	HookPosRunEnd = &hooking.HookPos{Name: "RunEnd"}
)

// RunInfo describes a run that is about to start.
type RunInfo struct {
	ID          string
	Policy      Kind
	FrameCount  int
	TraceLength int
}

// RunSummary describes a finished run.
type RunSummary struct {
	RunInfo
	Result Result
}

// Step describes the outcome of one reference.
type Step struct {
	RunID string

	// Index is the position of the reference in the trace.
	Index int
	Page  PageID

	// Slot holds the page after the step, whether it was a hit or a miss.
	Slot int
	Hit  bool

	// Counted is true if the table was filled before the step.
	Counted bool

	// Frames is a copy of the frame table after the step.
	Frames FrameTable
}

// Fault reports whether the step is a counted fault.
func (s Step) Fault() bool {
	return !s.Hit && s.Counted
}

// A Simulator runs one policy and publishes the run to its hooks.
type Simulator struct {
	hooking.HookableBase

	kind Kind
}

// NewSimulator creates a Simulator for the given policy.
func NewSimulator(kind Kind) *Simulator {
	return &Simulator{kind: kind}
}

// Policy returns the policy the simulator runs.
func (s *Simulator) Policy() Kind {
	return s.kind
}

// Run simulates the trace with frameCount frames. Hooks are invoked
// synchronously. Without hooks, no step is materialized.
//
// frameCount must be positive and trace must not be empty.
func (s *Simulator) Run(trace []PageID, frameCount int) Result {
	mustBeValidRun(trace, frameCount)

	chooser := newChooser(s.kind, trace, frameCount)
	if s.NumHooks() == 0 {
		return simulate(trace, frameCount, chooser, nil)
	}

	info := RunInfo{
		ID:          xid.New().String(),
		Policy:      s.kind,
		FrameCount:  frameCount,
		TraceLength: len(trace),
	}
	s.invoke(HookPosRunStart, info)

	result := simulate(trace, frameCount, chooser,
		func(step Step, frames FrameTable) {
			step.RunID = info.ID
			step.Frames = frames.Clone()
			s.invoke(HookPosStep, step)
		})

	s.invoke(HookPosRunEnd, RunSummary{RunInfo: info, Result: result})

	return result
}

func (s *Simulator) invoke(pos *hooking.HookPos, item any) {
	s.InvokeHook(hooking.HookCtx{
		Domain: s,
		Pos:    pos,
		Item:   item,
	})
}
