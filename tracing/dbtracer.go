package tracing

import (
	"sync"

	"github.com/sarchlab/pagesim/datarecording"
	"github.com/sarchlab/pagesim/replacement"
	"github.com/tebeka/atexit"
)

// DBTracer is a tracer that stores runs, and optionally their steps, into a
// DataRecorder.
type DBTracer struct {
	mu      sync.Mutex
	backend datarecording.DataRecorder

	recordSteps bool
}

// NewDBTracer creates a new DBTracer that records runs and steps.
func NewDBTracer(dataRecorder datarecording.DataRecorder) *DBTracer {
	dataRecorder.CreateTable(runTableName, runEntry{})
	dataRecorder.CreateTable(stepTableName, stepEntry{})

	t := &DBTracer{
		backend:     dataRecorder,
		recordSteps: true,
	}

	atexit.Register(func() {
		t.Terminate()
	})

	return t
}

// SkipSteps stops the tracer from recording steps. Runs are still recorded.
func (t *DBTracer) SkipSteps() *DBTracer {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.recordSteps = false

	return t
}

// StartRun does nothing. A run is recorded once it ends.
func (t *DBTracer) StartRun(replacement.RunInfo) {}

// Step records a step.
func (t *DBTracer) Step(step replacement.Step) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.recordSteps {
		return
	}

	t.backend.InsertData(stepTableName, stepEntryOf(step))
}

// EndRun records the run.
func (t *DBTracer) EndRun(summary replacement.RunSummary) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.backend.InsertData(runTableName, runEntryOf(summary))
}

// Terminate flushes the recorded entries.
func (t *DBTracer) Terminate() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.backend.Flush()
}
