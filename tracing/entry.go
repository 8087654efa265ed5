package tracing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sarchlab/pagesim/replacement"
)

const (
	runTableName  = "runs"
	stepTableName = "steps"

	emptySlot = "-"
)

type runEntry struct {
	ID          string
	Policy      string
	FrameCount  int
	TraceLength int
	Faults      int
	References  int
	Misses      int
}

func runEntryOf(s replacement.RunSummary) runEntry {
	return runEntry{
		ID:          s.ID,
		Policy:      s.Policy.String(),
		FrameCount:  s.FrameCount,
		TraceLength: s.TraceLength,
		Faults:      s.Result.Faults,
		References:  s.Result.References,
		Misses:      s.Result.Misses,
	}
}

func (e runEntry) summary() (replacement.RunSummary, error) {
	kind, err := replacement.ParseKind(e.Policy)
	if err != nil {
		return replacement.RunSummary{}, fmt.Errorf("run %s: %w", e.ID, err)
	}

	return replacement.RunSummary{
		RunInfo: replacement.RunInfo{
			ID:          e.ID,
			Policy:      kind,
			FrameCount:  e.FrameCount,
			TraceLength: e.TraceLength,
		},
		Result: replacement.Result{
			Faults:     e.Faults,
			References: e.References,
			Misses:     e.Misses,
		},
	}, nil
}

type stepEntry struct {
	RunID    string
	Position int
	Page     int
	Slot     int
	Hit      bool
	Counted  bool
	Frames   string
}

func stepEntryOf(s replacement.Step) stepEntry {
	return stepEntry{
		RunID:    s.RunID,
		Position: s.Index,
		Page:     int(s.Page),
		Slot:     s.Slot,
		Hit:      s.Hit,
		Counted:  s.Counted,
		Frames:   formatFrames(s.Frames),
	}
}

func (e stepEntry) step() (replacement.Step, error) {
	frames, err := parseFrames(e.Frames)
	if err != nil {
		return replacement.Step{}, fmt.Errorf(
			"step %d of run %s: %w", e.Position, e.RunID, err)
	}

	return replacement.Step{
		RunID:   e.RunID,
		Index:   e.Position,
		Page:    replacement.PageID(e.Page),
		Slot:    e.Slot,
		Hit:     e.Hit,
		Counted: e.Counted,
		Frames:  frames,
	}, nil
}

// formatFrames lists the resident pages separated by blanks, with "-" for
// an empty slot.
func formatFrames(frames replacement.FrameTable) string {
	fields := make([]string, len(frames))
	for i, slot := range frames {
		if slot.Occupied {
			fields[i] = strconv.Itoa(int(slot.Page))
		} else {
			fields[i] = emptySlot
		}
	}

	return strings.Join(fields, " ")
}

func parseFrames(s string) (replacement.FrameTable, error) {
	fields := strings.Fields(s)
	frames := replacement.NewFrameTable(len(fields))

	for i, field := range fields {
		if field == emptySlot {
			continue
		}

		page, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("bad frame %q", field)
		}

		frames[i] = replacement.Slot{Page: replacement.PageID(page), Occupied: true}
	}

	return frames, nil
}
