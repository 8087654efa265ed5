package replacement

// fifoChooser evicts slots in load order using a circular cursor.
type fifoChooser struct {
	cursor     int
	frameCount int
}

func newFIFOChooser(frameCount int) *fifoChooser {
	return &fifoChooser{frameCount: frameCount}
}

func (c *fifoChooser) beforeReference() {}

func (c *fifoChooser) onHit(int) {}

// victim returns the cursor. During warm-up the cursor walks the empty
// slots in order, so no special case is needed.
func (c *fifoChooser) victim(int, FrameTable, bool) int {
	return c.cursor
}

func (c *fifoChooser) onPlace(int) {
	c.cursor = (c.cursor + 1) % c.frameCount
}
