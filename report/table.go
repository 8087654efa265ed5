package report

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/sarchlab/pagesim/replacement"
)

// Row holds the results of one policy, in sweep order.
type Row struct {
	Policy  replacement.Kind
	Results []replacement.Result
}

// Table is the outcome of a sweep.
type Table struct {
	Frames []int
	Rows   []Row
}

// Result returns the result of a policy at a frame count.
func (t *Table) Result(
	kind replacement.Kind,
	frameCount int,
) (replacement.Result, bool) {
	for _, row := range t.Rows {
		if row.Policy != kind {
			continue
		}

		for i, f := range t.Frames {
			if f == frameCount {
				return row.Results[i], true
			}
		}
	}

	return replacement.Result{}, false
}

// WriteTo writes the rates table. The first line lists the frame counts;
// every following line holds the miss rates of one policy.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: bufio.NewWriter(w)}

	for _, f := range t.Frames {
		fmt.Fprintf(cw, "%d ", f)
	}
	fmt.Fprint(cw, "\n")

	for _, row := range t.Rows {
		for _, r := range row.Results {
			fmt.Fprintf(cw, "%3.2f ", r.MissRate())
		}
		fmt.Fprint(cw, "\n")
	}

	if cw.err != nil {
		return cw.n, cw.err
	}

	return cw.n, cw.w.Flush()
}

// Save writes the rates table to path, replacing any existing file.
func (t *Table) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot open file %s for writing: %w", path, err)
	}

	if _, err := t.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return f.Close()
}

type countingWriter struct {
	w   *bufio.Writer
	n   int64
	err error
}

func (c *countingWriter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}

	n, err := c.w.Write(p)
	c.n += int64(n)
	c.err = err

	return n, err
}
