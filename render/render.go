// Package render prints the frame table after every step of a run.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/sarchlab/pagesim/hooking"
	"github.com/sarchlab/pagesim/replacement"
)

// StepPrinter is a hook that writes one line per step, for example
//
//	 4: [ 4| 2| 3] F
//
// The page comes first, then the frames in slot order. Empty frames are
// blank. A trailing F marks a counted fault.
type StepPrinter struct {
	w   io.Writer
	err error
}

// NewStepPrinter creates a StepPrinter that writes to w.
func NewStepPrinter(w io.Writer) *StepPrinter {
	return &StepPrinter{w: w}
}

// Func prints steps and ignores every other hook position.
func (p *StepPrinter) Func(ctx hooking.HookCtx) {
	if ctx.Pos != replacement.HookPosStep || p.err != nil {
		return
	}

	step := ctx.Item.(replacement.Step)
	_, p.err = io.WriteString(p.w, FormatStep(step))
}

// Err returns the first write error, if any. Printing stops after it.
func (p *StepPrinter) Err() error {
	return p.err
}

// FormatStep renders a single step, including the newline.
func FormatStep(step replacement.Step) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%2d: [", step.Page)

	for i, slot := range step.Frames {
		if i > 0 {
			b.WriteByte('|')
		}

		if slot.Occupied {
			fmt.Fprintf(&b, "%2d", slot.Page)
		} else {
			b.WriteString("  ")
		}
	}

	b.WriteByte(']')

	if step.Fault() {
		b.WriteString(" F")
	}

	b.WriteByte('\n')

	return b.String()
}
