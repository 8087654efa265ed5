package replacement

import "math"

// Result is the accounting of one run.
type Result struct {
	// Faults counts misses on counted references.
	Faults int

	// References counts the references made after the frame table was
	// filled for the first time.
	References int

	// Misses counts every miss, warm-up included.
	Misses int
}

// MissRate returns Faults/References as a percentage. It is NaN when no
// reference was counted.
func (r Result) MissRate() float64 {
	if r.References == 0 {
		return math.NaN()
	}

	return float64(r.Faults) / float64(r.References) * 100
}

type accounting struct {
	frameCount int
	allocated  int
	result     Result
}

func (a *accounting) filled() bool {
	return a.allocated >= a.frameCount
}

// begin reports whether the reference that is starting is counted.
func (a *accounting) begin() bool {
	counted := a.filled()
	if counted {
		a.result.References++
	}

	return counted
}

func (a *accounting) miss(counted bool) {
	a.allocated++
	a.result.Misses++

	if counted {
		a.result.Faults++
	}
}
