package loader

import (
	"context"
	"fmt"
	"strings"

	"github.com/vvka-141/pgload/internal/schema"
	"github.com/vvka-141/pgload/pkg/pgload"
)

// Provision replaces the destination table with an empty one matching s.
// The table gets an auto-incrementing surrogate key followed by s.Columns in order.
func Provision(ctx context.Context, tx pgload.Tx, s pgload.TableSchema) error {
	if err := tx.Exec(ctx, DropTableSQL(s.Table)); err != nil {
		return fmt.Errorf("%w: failed to drop table %s: %w", pgload.ErrDatabase, s.Table, err)
	}

	if err := tx.Exec(ctx, CreateTableSQL(s)); err != nil {
		return fmt.Errorf("%w: failed to create table %s: %w", pgload.ErrDatabase, s.Table, err)
	}

	return nil
}

// DropTableSQL returns the statement removing table and everything depending on it.
func DropTableSQL(table string) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", schema.QuoteIdentifier(table))
}

// CreateTableSQL returns the CREATE TABLE statement for s.
func CreateTableSQL(s pgload.TableSchema) string {
	defs := make([]string, 0, len(s.Columns)+1)
	defs = append(defs, schema.QuoteIdentifier(pgload.SurrogateKeyColumn)+" BIGSERIAL PRIMARY KEY")
	for _, c := range s.Columns {
		defs = append(defs, schema.QuoteIdentifier(c.Name)+" "+c.Type.SQL())
	}

	return fmt.Sprintf("CREATE TABLE %s (\n    %s\n)", schema.QuoteIdentifier(s.Table), strings.Join(defs, ",\n    "))
}
