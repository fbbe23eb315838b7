package dataset

import (
	"context"
	"fmt"
	"strings"
)

// Batch is a columnar set of per-event truth values for one data source.
type Batch struct {
	Events  []int64
	Columns map[string][]float64
}

// Column returns the named column and whether the batch carries it.
func (b *Batch) Column(name string) ([]float64, bool) {
	col, ok := b.Columns[name]
	return col, ok
}

// TruthSource is the boundary to the external storage engine. The core
// requests columns by name; it never issues SQL itself. A nil or empty
// indices slice requests every event in the table.
type TruthSource interface {
	QueryTruth(ctx context.Context, table, indexColumn string, columns []string, indices []int64) (*Batch, error)
}

// UnknownColumnError indicates a request for truth columns the schema does
// not declare. This is the only path by which a training run can discover a
// missing truth column; it triggers before any batch is materialized.
type UnknownColumnError struct {
	Columns []string
	Table   string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("unknown truth column(s) %s: not declared by table %q",
		strings.Join(e.Columns, ", "), e.Table)
}

// LoadTruth fetches the requested columns for the given events. Every
// requested column is checked against the schema's truth set before the
// source is touched.
func LoadTruth(ctx context.Context, src TruthSource, s *Schema, columns []string, indices []int64) (*Batch, error) {
	var missing []string
	for _, col := range columns {
		if !s.HasTruthColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &UnknownColumnError{Columns: missing, Table: s.TruthTable}
	}

	batch, err := src.QueryTruth(ctx, s.TruthTable, s.IndexColumn, columns, indices)
	if err != nil {
		return nil, fmt.Errorf("failed to load truth columns from %q: %w", s.TruthTable, err)
	}
	return batch, nil
}
