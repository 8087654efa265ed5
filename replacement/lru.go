package replacement

// lruChooser tracks how many references ago each slot was last used.
type lruChooser struct {
	ages []int
}

func newLRUChooser(frameCount int) *lruChooser {
	return &lruChooser{ages: make([]int, frameCount)}
}

func (c *lruChooser) beforeReference() {
	ageAll(c.ages)
}

func (c *lruChooser) onHit(slot int) {
	c.ages[slot] = 0
}

// victim fills empty slots first. The age of an empty slot does not say it
// is empty, so warm-up cannot rely on the ages alone.
func (c *lruChooser) victim(_ int, frames FrameTable, warming bool) int {
	if warming {
		return frames.FirstFree()
	}

	return slotWithMax(c.ages)
}

func (c *lruChooser) onPlace(slot int) {
	c.ages[slot] = 0
}
