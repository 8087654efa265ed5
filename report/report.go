// Package report turns run results into miss rates, console lines and rate
// tables.
package report

import (
	"fmt"

	"github.com/sarchlab/pagesim/replacement"
)

// FormatMissRate renders the summary of a single run, for example
// "Miss Rate = 6 / 9 = 66.67%". An undefined rate prints as NaN.
func FormatMissRate(r replacement.Result) string {
	return fmt.Sprintf("Miss Rate = %d / %d = %3.2f%%",
		r.Faults, r.References, r.MissRate())
}

// FormatRunLine renders one run of a sweep, for example
// "LRU,   3 frames: Miss Rate =   7 /   9 = 77.78%". The optimal policy is
// labeled OPT, not EXTRA.
func FormatRunLine(
	kind replacement.Kind,
	frameCount int,
	r replacement.Result,
) string {
	return fmt.Sprintf("%s, %3d frames: Miss Rate = %3d / %3d = %3.2f%%",
		kind, frameCount, r.Faults, r.References, r.MissRate())
}
