package replacement

// PageID identifies a virtual page. Valid identifiers are non-negative.
type PageID int

const notFound = -1

// A Slot is one physical frame. An unoccupied slot holds no page.
type Slot struct {
	Page     PageID
	Occupied bool
}

// FrameTable is the ordered set of physical frames of one run.
type FrameTable []Slot

// NewFrameTable creates a table of frameCount empty slots.
func NewFrameTable(frameCount int) FrameTable {
	return make(FrameTable, frameCount)
}

// Locate returns the slot that holds page, or -1 if the page is not
// resident.
func (t FrameTable) Locate(page PageID) int {
	for i, s := range t {
		if s.Occupied && s.Page == page {
			return i
		}
	}

	return notFound
}

// FirstFree returns the lowest unoccupied slot, or -1 if the table is full.
func (t FrameTable) FirstFree() int {
	for i, s := range t {
		if !s.Occupied {
			return i
		}
	}

	return notFound
}

// Occupied returns the number of slots holding a page.
func (t FrameTable) Occupied() int {
	n := 0
	for _, s := range t {
		if s.Occupied {
			n++
		}
	}

	return n
}

// Clone returns a copy that does not share storage with t.
func (t FrameTable) Clone() FrameTable {
	c := make(FrameTable, len(t))
	copy(c, t)

	return c
}

func (t FrameTable) place(slot int, page PageID) {
	t[slot] = Slot{Page: page, Occupied: true}
}

// ageAll increments every age by one.
func ageAll(ages []int) {
	for i := range ages {
		ages[i]++
	}
}

// slotWithMax returns the index of the largest value. The first index wins
// ties.
func slotWithMax(values []int) int {
	maxIndex := 0
	for i := 1; i < len(values); i++ {
		if values[i] > values[maxIndex] {
			maxIndex = i
		}
	}

	return maxIndex
}
