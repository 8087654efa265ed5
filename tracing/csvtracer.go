package tracing

import (
	"bufio"
	"fmt"
	"os"
	"sync"

	"github.com/rs/xid"
	"github.com/sarchlab/pagesim/replacement"
	"github.com/tebeka/atexit"
)

// CSVTracer is a tracer that stores every step into a CSV file.
type CSVTracer struct {
	mu   sync.Mutex
	path string
	file *os.File
	w    *bufio.Writer

	runs       map[string]replacement.RunInfo
	steps      []replacement.Step
	bufferSize int
}

// NewCSVTracer creates a new CSVTracer. The file is path.csv; an empty path
// selects a generated name. Call Init before use.
func NewCSVTracer(path string) *CSVTracer {
	return &CSVTracer{
		path:       path,
		runs:       make(map[string]replacement.RunInfo),
		bufferSize: 1000,
	}
}

// Filename returns the CSV file.
func (t *CSVTracer) Filename() string {
	return t.path + ".csv"
}

// Init creates the CSV file. It panics if the file already exists.
func (t *CSVTracer) Init() {
	if t.path == "" {
		t.path = "pagesim_trace_" + xid.New().String()
	}

	filename := t.Filename()
	_, err := os.Stat(filename)
	if err == nil {
		panic(fmt.Errorf("file %s already exists", filename))
	}

	file, err := os.Create(filename)
	if err != nil {
		panic(err)
	}
	t.file = file
	t.w = bufio.NewWriter(file)

	fmt.Fprintf(t.w, "RunID, Policy, FrameCount, Index, Page, Slot, Hit, Fault, Frames\n")

	atexit.Register(func() {
		err := t.Close()
		if err != nil {
			panic(err)
		}
	})
}

// StartRun remembers the run so that its steps can name the policy.
func (t *CSVTracer) StartRun(info replacement.RunInfo) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.runs[info.ID] = info
}

// Step buffers a step.
func (t *CSVTracer) Step(step replacement.Step) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.steps = append(t.steps, step)
	if len(t.steps) >= t.bufferSize {
		t.flush()
	}
}

// EndRun writes the buffered steps of the run.
func (t *CSVTracer) EndRun(summary replacement.RunSummary) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.flush()
	delete(t.runs, summary.ID)
}

// Flush writes the buffered steps to the file.
func (t *CSVTracer) Flush() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.flush()
}

func (t *CSVTracer) flush() {
	if t.w == nil {
		return
	}

	for _, step := range t.steps {
		info := t.runs[step.RunID]

		fmt.Fprintf(t.w, "%s, %s, %d, %d, %d, %d, %t, %t, %s\n",
			step.RunID,
			info.Policy,
			info.FrameCount,
			step.Index,
			step.Page,
			step.Slot,
			step.Hit,
			step.Fault(),
			formatFrames(step.Frames),
		)
	}

	t.steps = nil
}

// Close flushes the buffered steps and closes the file.
func (t *CSVTracer) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.file == nil {
		return nil
	}

	t.flush()

	err := t.w.Flush()
	if cerr := t.file.Close(); err == nil {
		err = cerr
	}

	t.file = nil
	t.w = nil

	return err
}
