package loader

import (
	"context"
	"fmt"
	"strings"

	"github.com/vvka-141/pgload/internal/schema"
	"github.com/vvka-141/pgload/pkg/pgload"
)

// ProgressFunc is called after every batch with the number of rows inserted so far.
type ProgressFunc func(inserted, total int)

// LoadRows inserts every row of ds into the table described by s and returns
// the number of rows inserted. Rows go out in groups of batchSize, one
// ExecBatch call per group; a non-positive batchSize means
// pgload.DefaultBatchSize. A dataset without rows issues no statement.
//
// Row cells must be in s.InsertColumns() order. nil cells are stored as NULL.
func LoadRows(ctx context.Context, tx pgload.Tx, s pgload.TableSchema, ds pgload.Dataset, batchSize int, progress ProgressFunc) (int, error) {
	total := len(ds.Rows)
	if total == 0 {
		return 0, nil
	}

	if batchSize <= 0 {
		batchSize = pgload.DefaultBatchSize
	}

	insertSQL := InsertSQL(s)

	for start := 0; start < total; start += batchSize {
		end := min(start+batchSize, total)

		if err := tx.ExecBatch(ctx, insertSQL, ds.Rows[start:end]); err != nil {
			return 0, fmt.Errorf("%w: failed to insert rows %d-%d into %s: %w",
				pgload.ErrDatabase, start+1, end, s.Table, err)
		}

		if progress != nil {
			progress(end, total)
		}
	}

	return total, nil
}

// InsertSQL returns the parameterized single-row INSERT for s.
// A schema without columns inserts a row of defaults.
func InsertSQL(s pgload.TableSchema) string {
	table := schema.QuoteIdentifier(s.Table)
	cols := s.InsertColumns()
	if len(cols) == 0 {
		return fmt.Sprintf("INSERT INTO %s DEFAULT VALUES", table)
	}

	quoted := make([]string, len(cols))
	placeholders := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = schema.QuoteIdentifier(c)
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(quoted, ", "), strings.Join(placeholders, ", "))
}
