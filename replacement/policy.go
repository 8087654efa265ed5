package replacement

import (
	"errors"
	"fmt"
	"strings"
)

// Kind selects a replacement policy.
type Kind int

// Supported policies.
const (
	KindFIFO Kind = iota
	KindLRU
	KindOPT
)

// ErrUnknownPolicy is returned by ParseKind for names it does not know.
var ErrUnknownPolicy = errors.New("unknown replacement policy")

// Kinds returns all supported policies.
func Kinds() []Kind {
	return []Kind{KindFIFO, KindLRU, KindOPT}
}

func (k Kind) String() string {
	switch k {
	case KindFIFO:
		return "FIFO"
	case KindLRU:
		return "LRU"
	case KindOPT:
		return "OPT"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind converts a policy name into a Kind. Names are case-insensitive;
// "extra" is accepted as an alias of "opt".
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "fifo":
		return KindFIFO, nil
	case "lru":
		return KindLRU, nil
	case "opt", "extra":
		return KindOPT, nil
	default:
		return 0, fmt.Errorf("%w: %q (want fifo, lru or opt)",
			ErrUnknownPolicy, name)
	}
}

// A victimChooser holds the auxiliary state of one policy for one run.
type victimChooser interface {
	// beforeReference is called once per trace position, before the
	// lookup.
	beforeReference()

	// onHit is called when the page was found in slot.
	onHit(slot int)

	// victim picks the slot to load the page at position into. While
	// warming, the returned slot must be unoccupied.
	victim(position int, frames FrameTable, warming bool) int

	// onPlace is called after a page has been loaded into slot.
	onPlace(slot int)
}

func newChooser(kind Kind, trace []PageID, frameCount int) victimChooser {
	switch kind {
	case KindFIFO:
		return newFIFOChooser(frameCount)
	case KindLRU:
		return newLRUChooser(frameCount)
	case KindOPT:
		return newOPTChooser(trace, frameCount)
	default:
		panic(fmt.Sprintf("replacement policy %s is not supported", kind))
	}
}

// Run simulates one policy over trace with frameCount frames.
//
// frameCount must be positive and trace must not be empty.
func Run(kind Kind, trace []PageID, frameCount int) Result {
	mustBeValidRun(trace, frameCount)

	return simulate(trace, frameCount, newChooser(kind, trace, frameCount), nil)
}

// FIFO simulates the first-in-first-out policy.
func FIFO(trace []PageID, frameCount int) Result {
	return Run(KindFIFO, trace, frameCount)
}

// LRU simulates the least-recently-used policy.
func LRU(trace []PageID, frameCount int) Result {
	return Run(KindLRU, trace, frameCount)
}

// OPT simulates Belady's optimal policy.
func OPT(trace []PageID, frameCount int) Result {
	return Run(KindOPT, trace, frameCount)
}

func mustBeValidRun(trace []PageID, frameCount int) {
	if frameCount <= 0 {
		panic(fmt.Sprintf("frame count must be positive, got %d", frameCount))
	}

	if len(trace) == 0 {
		panic("trace must not be empty")
	}
}

// simulate walks the trace once. observe, if not nil, sees every step.
func simulate(
	trace []PageID,
	frameCount int,
	chooser victimChooser,
	observe func(step Step, frames FrameTable),
) Result {
	frames := NewFrameTable(frameCount)
	acct := accounting{frameCount: frameCount}

	for position, page := range trace {
		chooser.beforeReference()

		slot := frames.Locate(page)
		hit := slot != notFound
		counted := acct.begin()

		if hit {
			chooser.onHit(slot)
		} else {
			slot = chooser.victim(position, frames, !counted)
			frames.place(slot, page)
			chooser.onPlace(slot)
			acct.miss(counted)
		}

		if observe != nil {
			observe(Step{
				Index:   position,
				Page:    page,
				Slot:    slot,
				Hit:     hit,
				Counted: counted,
			}, frames)
		}
	}

	return acct.result
}
