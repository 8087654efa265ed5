package tracefile

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/sarchlab/pagesim/replacement"
)

// DefaultMaxRange is the largest page range the command line accepts unless
// configured otherwise.
const DefaultMaxRange = 100

var (
	// ErrInvalidRange is returned for page ranges that cannot produce the
	// requested trace.
	ErrInvalidRange = errors.New("invalid range specification")

	// ErrInvalidCount is returned for non-positive trace lengths.
	ErrInvalidCount = errors.New("invalid count specification")
)

// Generate returns count pages drawn uniformly from [0, rangeSize). No page
// equals the page right before it. The same seed always produces the same
// trace.
func Generate(rangeSize, count int, seed uint64) ([]replacement.PageID, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: count must be at least 1, got %d",
			ErrInvalidCount, count)
	}

	if rangeSize < 1 {
		return nil, fmt.Errorf("%w: range must be at least 1, got %d",
			ErrInvalidRange, rangeSize)
	}

	if rangeSize < 2 && count > 1 {
		return nil, fmt.Errorf(
			"%w: a range of %d cannot avoid repeating the previous page",
			ErrInvalidRange, rangeSize)
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	trace := make([]replacement.PageID, count)
	trace[0] = replacement.PageID(rng.IntN(rangeSize))

	for i := 1; i < count; i++ {
		// Draw among the other rangeSize-1 pages and skip over the
		// previous one.
		page := rng.IntN(rangeSize - 1)
		if page >= int(trace[i-1]) {
			page++
		}

		trace[i] = replacement.PageID(page)
	}

	return trace, nil
}
