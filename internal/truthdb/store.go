// Package truthdb is the SQLite-backed implementation of the storage-engine
// boundary. The configuration core only ever speaks dataset.TruthSource; this
// adapter owns the SQL.
package truthdb

import (
	"context"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vk/graphtrain/internal/dataset"
)

// Store serves truth columns from a SQLite database.
type Store struct {
	db *gorm.DB
}

// Open connects to the SQLite database at the given path.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open truth database %q: %w", path, err)
	}
	return &Store{db: db}, nil
}

// New wraps an existing gorm connection, used by tests with an in-memory
// database.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// QueryTruth implements dataset.TruthSource. Rows come back ordered by the
// index column so batches are reproducible. A nil or empty indices slice
// selects every event in the table.
func (s *Store) QueryTruth(ctx context.Context, table, indexColumn string, columns []string, indices []int64) (*dataset.Batch, error) {
	selected := append([]string{indexColumn}, columns...)

	q := s.db.WithContext(ctx).Table(table).Select(selected).Order(indexColumn)
	if len(indices) > 0 {
		q = q.Where(indexColumn+" IN ?", indices)
	}

	var rows []map[string]any
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query truth table %q: %w", table, err)
	}

	batch := &dataset.Batch{Columns: make(map[string][]float64, len(columns))}
	for _, row := range rows {
		event, err := asInt64(row[indexColumn])
		if err != nil {
			return nil, fmt.Errorf("table %q, column %q: %w", table, indexColumn, err)
		}
		batch.Events = append(batch.Events, event)

		for _, col := range columns {
			v, err := asFloat64(row[col])
			if err != nil {
				return nil, fmt.Errorf("table %q, column %q: %w", table, col, err)
			}
			batch.Columns[col] = append(batch.Columns[col], v)
		}
	}
	return batch, nil
}

func asInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case float64:
		return int64(n), nil
	default:
		return 0, fmt.Errorf("expected integer value, got %T", v)
	}
}

func asFloat64(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int64:
		return float64(n), nil
	case int:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("expected numeric value, got %T", v)
	}
}
