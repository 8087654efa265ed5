// Package tracefile reads, writes and generates page reference traces.
//
// A trace file holds page identifiers separated by white space. Files ending
// in ".sz" are snappy framed streams and files ending in ".lz4" are lz4
// frames; any other file is plain text.
package tracefile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/golang/snappy"
	"github.com/pierrec/lz4/v4"
	"github.com/sarchlab/pagesim/replacement"
)

var (
	// ErrEmptyTrace is returned when a trace holds no reference.
	ErrEmptyTrace = errors.New("trace is empty")

	// ErrMalformedTrace is returned when a token is not a page identifier.
	ErrMalformedTrace = errors.New("malformed trace")
)

// Compression returns the compression implied by the file name: "snappy",
// "lz4" or "" for plain text.
func Compression(path string) string {
	switch filepath.Ext(path) {
	case ".sz":
		return "snappy"
	case ".lz4":
		return "lz4"
	default:
		return ""
	}
}

// Read parses a whitespace-separated trace.
func Read(r io.Reader) ([]replacement.PageID, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	trace := []replacement.PageID{}
	for scanner.Scan() {
		token := scanner.Text()

		page, err := strconv.Atoi(token)
		if err != nil || page < 0 {
			return nil, fmt.Errorf("%w: token %d is %q, want a non-negative integer",
				ErrMalformedTrace, len(trace), token)
		}

		trace = append(trace, replacement.PageID(page))
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading trace: %w", err)
	}

	if len(trace) == 0 {
		return nil, ErrEmptyTrace
	}

	return trace, nil
}

// Load reads the trace stored at path.
func Load(path string) ([]replacement.PageID, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open file %s for reading: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	switch Compression(path) {
	case "snappy":
		r = snappy.NewReader(f)
	case "lz4":
		r = lz4.NewReader(f)
	}

	trace, err := Read(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return trace, nil
}

// Write writes the trace in the format that Read accepts.
func Write(w io.Writer, trace []replacement.PageID) error {
	bw := bufio.NewWriter(w)
	for _, page := range trace {
		if _, err := fmt.Fprintf(bw, "%d ", page); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// Save writes the trace to path, replacing any existing file.
func Save(path string, trace []replacement.PageID) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create file %s: %w", path, err)
	}

	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	var w io.WriteCloser
	switch Compression(path) {
	case "snappy":
		w = snappy.NewBufferedWriter(f)
	case "lz4":
		w = lz4.NewWriter(f)
	default:
		return Write(f, trace)
	}

	return writeAndClose(w, trace)
}

// writeAndClose writes the trace into a compressor and always closes it. The
// first error wins.
func writeAndClose(w io.WriteCloser, trace []replacement.PageID) error {
	err := Write(w, trace)

	if closeErr := w.Close(); err == nil {
		err = closeErr
	}

	return err
}
