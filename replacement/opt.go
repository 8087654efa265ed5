package replacement

import (
	"math"
	"sort"
)

// neverUsed is the distance of a page that is not referenced again.
const neverUsed = math.MaxInt

// futureIndex maps every page to the ascending positions it occurs at.
type futureIndex map[PageID][]int

func newFutureIndex(trace []PageID) futureIndex {
	index := make(futureIndex)
	for position, page := range trace {
		index[page] = append(index[page], position)
	}

	return index
}

// distance returns how many steps after position the page is next
// referenced, counting position itself as zero.
func (f futureIndex) distance(page PageID, position int) int {
	occurrences := f[page]

	i := sort.SearchInts(occurrences, position)
	if i == len(occurrences) {
		return neverUsed
	}

	return occurrences[i] - position
}

// optChooser evicts the page whose next use is farthest in the future.
type optChooser struct {
	future    futureIndex
	distances []int
	allocated int
}

func newOPTChooser(trace []PageID, frameCount int) *optChooser {
	return &optChooser{
		future:    newFutureIndex(trace),
		distances: make([]int, frameCount),
	}
}

func (c *optChooser) beforeReference() {}

func (c *optChooser) onHit(int) {}

func (c *optChooser) victim(position int, frames FrameTable, warming bool) int {
	if warming {
		return c.allocated
	}

	for i, s := range frames {
		c.distances[i] = c.future.distance(s.Page, position)
	}

	return slotWithMax(c.distances)
}

func (c *optChooser) onPlace(int) {
	c.allocated++
}
