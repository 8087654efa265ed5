package tracing

import (
	"context"

	"github.com/sarchlab/pagesim/datarecording"
	"github.com/sarchlab/pagesim/replacement"
)

// RecordingReader reads back the runs and steps a DBTracer recorded.
type RecordingReader struct {
	reader datarecording.DataReader
}

// OpenRecording opens the recording with the given name, as passed to
// datarecording.New.
func OpenRecording(name string) (*RecordingReader, error) {
	reader, err := datarecording.NewReader(name)
	if err != nil {
		return nil, err
	}

	return NewRecordingReader(reader), nil
}

// NewRecordingReader reads a recording through an open DataReader.
func NewRecordingReader(reader datarecording.DataReader) *RecordingReader {
	reader.MapTable(runTableName, runEntry{})
	reader.MapTable(stepTableName, stepEntry{})

	return &RecordingReader{reader: reader}
}

// ListRuns returns the recorded runs in recording order.
func (r *RecordingReader) ListRuns(
	ctx context.Context,
) ([]replacement.RunSummary, error) {
	results, _, err := r.reader.Query(ctx, runTableName,
		datarecording.QueryParams{OrderBy: "rowid"})
	if err != nil {
		return nil, err
	}

	runs := make([]replacement.RunSummary, 0, len(results))
	for _, result := range results {
		run, err := result.(*runEntry).summary()
		if err != nil {
			return nil, err
		}

		runs = append(runs, run)
	}

	return runs, nil
}

// ListSteps returns the recorded steps of a run, ordered by trace position.
// A run recorded without steps has none.
func (r *RecordingReader) ListSteps(
	ctx context.Context,
	runID string,
) ([]replacement.Step, error) {
	results, _, err := r.reader.Query(ctx, stepTableName,
		datarecording.QueryParams{
			Where:   datarecording.QuoteIdentifier("RunID") + " = ?",
			Args:    []any{runID},
			OrderBy: datarecording.QuoteIdentifier("Position"),
		})
	if err != nil {
		return nil, err
	}

	steps := make([]replacement.Step, 0, len(results))
	for _, result := range results {
		step, err := result.(*stepEntry).step()
		if err != nil {
			return nil, err
		}

		steps = append(steps, step)
	}

	return steps, nil
}

// Close closes the recording.
func (r *RecordingReader) Close() error {
	return r.reader.Close()
}
