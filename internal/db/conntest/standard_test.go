//go:build conntest

package conntest

import (
	"context"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/pgload/internal/db"
	"github.com/vvka-141/pgload/internal/logging"
	"github.com/vvka-141/pgload/pkg/pgload"
)

func TestStandardConnection_UserPassword(t *testing.T) {
	config := parseConnString(t, stdContainer)
	conn := connectWithConfig(t, config)

	loadRoundTrip(t, conn, "std_roundtrip")

	check, err := pgx.Connect(context.Background(), stdContainer.ConnString)
	require.NoError(t, err)
	defer check.Close(context.Background())

	var n int
	require.NoError(t, check.QueryRow(context.Background(), `SELECT count(*) FROM std_roundtrip WHERE n IS NULL`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestStandardConnection_WrongPassword(t *testing.T) {
	config := parseConnString(t, stdContainer)
	config.Password = "definitely-wrong-password"

	connector, err := db.NewConnector(config, logging.NewNullLogger())
	require.NoError(t, err)

	_, err = connector.Connect(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, pgload.ErrConnectionFailed)
	assert.True(t,
		strings.Contains(err.Error(), "password") ||
			strings.Contains(err.Error(), "authentication"),
		"error should mention authentication: %v", err)
}

func TestStandardConnection_MissingDatabase(t *testing.T) {
	config := parseConnString(t, stdContainer)
	config.Database = "pgload_no_such_db"

	connector, err := db.NewConnector(config, logging.NewNullLogger())
	require.NoError(t, err)

	_, err = connector.Connect(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `database "pgload_no_such_db" does not exist`)
}

func TestStandardConnection_RequireTLS(t *testing.T) {
	config := parseConnString(t, stdContainer)
	config.SSLMode = "require"

	conn := connectWithConfig(t, config)
	loadRoundTrip(t, conn, "tls_roundtrip")
}

func TestStandardConnection_RollbackDiscardsWork(t *testing.T) {
	ctx := context.Background()
	conn := connectWithConfig(t, parseConnString(t, stdContainer))

	tx, err := conn.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Exec(ctx, `CREATE TABLE rolled_back (id BIGSERIAL PRIMARY KEY)`))
	require.NoError(t, tx.Rollback(ctx))
	require.NoError(t, tx.Rollback(ctx), "second rollback is a no-op")

	tx, err = conn.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx) //nolint:errcheck
	err = tx.Exec(ctx, `SELECT 1 FROM rolled_back`)
	require.Error(t, err)
}

func TestStandardConnection_BatchFailureNamesRow(t *testing.T) {
	ctx := context.Background()
	conn := connectWithConfig(t, parseConnString(t, stdContainer))

	tx, err := conn.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx) //nolint:errcheck

	require.NoError(t, tx.Exec(ctx, `CREATE TEMP TABLE strict_n (n BIGINT NOT NULL)`))
	err = tx.ExecBatch(ctx, `INSERT INTO strict_n (n) VALUES ($1)`, [][]any{{int64(1)}, {nil}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch row 2")
}
