package schema

import (
	"fmt"
	"strings"

	"github.com/vvka-141/pgload/pkg/pgload"
)

// Build derives the table definition for a dataset. Column order follows the
// dataset. A label that sanitizes to the surrogate key name is renamed.
//
// Returns an error wrapping pgload.ErrSchema when two labels produce the same
// identifier.
func Build(table string, ds pgload.Dataset) (pgload.TableSchema, error) {
	schema := pgload.TableSchema{
		Table:   table,
		Columns: make([]pgload.ColumnSpec, 0, len(ds.Columns)),
	}

	seen := make(map[string]string, len(ds.Columns))

	for _, col := range ds.Columns {
		name := Sanitize(col.Label)
		if strings.EqualFold(name, pgload.SurrogateKeyColumn) {
			name = pgload.RenamedKeyColumn
		}

		key := strings.ToLower(name)
		if prev, ok := seen[key]; ok {
			return pgload.TableSchema{}, fmt.Errorf("%w: columns %q and %q both map to %q in table %q",
				pgload.ErrSchema, prev, col.Label, name, table)
		}
		seen[key] = col.Label

		schema.Columns = append(schema.Columns, pgload.ColumnSpec{
			Name: name,
			Type: InferType(col),
		})
	}

	return schema, nil
}
