package monitoring

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/sarchlab/pagesim/hooking"
	"github.com/sarchlab/pagesim/replacement"
	"github.com/sarchlab/pagesim/tracing"
	"github.com/syifan/goseth"
)

// RunRecord is a finished run as the monitor reports it.
type RunRecord struct {
	ID          string `json:"id"`
	Policy      string `json:"policy"`
	FrameCount  int    `json:"frame_count"`
	TraceLength int    `json:"trace_length"`
	Faults      int    `json:"faults"`
	References  int    `json:"references"`
	Misses      int    `json:"misses"`

	// MissRate is nil when no reference was counted.
	MissRate *float64 `json:"miss_rate"`

	// FinishedAt is the Unix time in milliseconds.
	FinishedAt int64 `json:"finished_at"`
}

func newRunRecord(s replacement.RunSummary) *RunRecord {
	r := &RunRecord{
		ID:          s.ID,
		Policy:      s.Policy.String(),
		FrameCount:  s.FrameCount,
		TraceLength: s.TraceLength,
		Faults:      s.Result.Faults,
		References:  s.Result.References,
		Misses:      s.Result.Misses,
		FinishedAt:  time.Now().UnixMilli(),
	}

	if rate := s.Result.MissRate(); !math.IsNaN(rate) {
		r.MissRate = &rate
	}

	return r
}

var _ tracing.Tracer = (*Monitor)(nil)

// StartRun does nothing. Runs are listed once they finish.
func (m *Monitor) StartRun(replacement.RunInfo) {}

// Step does nothing. The monitor does not keep steps.
func (m *Monitor) Step(replacement.Step) {}

// EndRun adds the run to the list of finished runs.
func (m *Monitor) EndRun(summary replacement.RunSummary) {
	m.addRun(newRunRecord(summary))
}

// AddRuns lists runs that finished elsewhere, for example runs read from a
// recording.
func (m *Monitor) AddRuns(summaries []replacement.RunSummary) {
	for _, s := range summaries {
		m.addRun(newRunRecord(s))
	}
}

func (m *Monitor) addRun(r *RunRecord) {
	m.runsLock.Lock()
	defer m.runsLock.Unlock()

	m.runs = append(m.runs, r)
	if len(m.runs) > m.maxRuns {
		m.runs = append([]*RunRecord(nil), m.runs[len(m.runs)-m.maxRuns:]...)
	}
}

// Runs returns the finished runs, oldest first.
func (m *Monitor) Runs() []RunRecord {
	m.runsLock.Lock()
	defer m.runsLock.Unlock()

	runs := make([]RunRecord, 0, len(m.runs))
	for _, r := range m.runs {
		runs = append(runs, *r)
	}

	return runs
}

func (m *Monitor) findRun(id string) *RunRecord {
	m.runsLock.Lock()
	defer m.runsLock.Unlock()

	for _, r := range m.runs {
		if r.ID == id {
			return r
		}
	}

	return nil
}

// Simulate runs a simulation and lists it with the finished runs.
func (m *Monitor) Simulate(
	kind replacement.Kind,
	trace []replacement.PageID,
	frameCount int,
) *RunRecord {
	var record *RunRecord

	sim := replacement.NewSimulator(kind)
	sim.AcceptHook(hooking.HookFunc(func(ctx hooking.HookCtx) {
		if ctx.Pos == replacement.HookPosRunEnd {
			record = newRunRecord(ctx.Item.(replacement.RunSummary))
			m.addRun(record)
		}
	}))

	sim.Run(trace, frameCount)

	return record
}

func (m *Monitor) listRuns(w http.ResponseWriter, r *http.Request) {
	policy := r.URL.Query().Get("policy")

	runs := []RunRecord{}
	for _, run := range m.Runs() {
		if policy == "" || strings.EqualFold(run.Policy, policy) {
			runs = append(runs, run)
		}
	}

	writeJSON(w, runs)
}

func (m *Monitor) runDetails(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	run := m.findRun(id)
	if run == nil {
		http.Error(w, "Run not found", http.StatusNotFound)
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(run)
	serializer.SetMaxDepth(1)

	field := r.URL.Query().Get("field")
	if field != "" {
		err := serializer.SetEntryPoint(strings.Split(field, "."))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	err := serializer.Serialize(w)
	dieOnErr(err)
}

type simulateReq struct {
	Policy string `json:"policy"`
	Frames int    `json:"frames"`
	Trace  []int  `json:"trace"`
}

func (m *Monitor) parseSimulateReq(
	r *http.Request,
) (replacement.Kind, []replacement.PageID, int, error) {
	req := simulateReq{}

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		return 0, nil, 0, fmt.Errorf("invalid request body: %w", err)
	}

	kind, err := replacement.ParseKind(req.Policy)
	if err != nil {
		return 0, nil, 0, err
	}

	if req.Frames < 1 || req.Frames > m.maxFrames {
		return 0, nil, 0, fmt.Errorf(
			"number of frames must be between 1 and %d; received %d",
			m.maxFrames, req.Frames)
	}

	if len(req.Trace) == 0 {
		return 0, nil, 0, fmt.Errorf("trace must not be empty")
	}

	trace := make([]replacement.PageID, len(req.Trace))
	for i, p := range req.Trace {
		if p < 0 {
			return 0, nil, 0, fmt.Errorf(
				"page %d at position %d is negative", p, i)
		}

		trace[i] = replacement.PageID(p)
	}

	return kind, trace, req.Frames, nil
}

func (m *Monitor) simulate(w http.ResponseWriter, r *http.Request) {
	kind, trace, frameCount, err := m.parseSimulateReq(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, m.Simulate(kind, trace, frameCount))
}
