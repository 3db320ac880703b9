package services_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/pgload/internal/csvread"
	"github.com/vvka-141/pgload/internal/db"
	"github.com/vvka-141/pgload/internal/files/scanner"
	"github.com/vvka-141/pgload/internal/logging"
	"github.com/vvka-141/pgload/internal/services"
	testhelpers "github.com/vvka-141/pgload/internal/testing"
	"github.com/vvka-141/pgload/pkg/pgload"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func newService(t *testing.T, config *pgload.ConnectionConfig) *services.LoadService {
	t.Helper()
	logger := logging.NewNullLogger()
	connector, err := db.NewConnector(config, logger)
	require.NoError(t, err)

	return services.NewLoadService(
		connector,
		scanner.NewScanner(),
		func(d rune) pgload.Parser { return csvread.NewParser(d) },
		logger,
	)
}

func columnTypes(t *testing.T, config *pgload.ConnectionConfig, table string) map[string]string {
	t.Helper()
	pool := testhelpers.GetTestPool(t, config)
	rows, err := pool.Query(context.Background(),
		`SELECT column_name, data_type FROM information_schema.columns WHERE table_schema = 'public' AND table_name = $1`, table)
	require.NoError(t, err)
	defer rows.Close()

	types := map[string]string{}
	for rows.Next() {
		var name, typ string
		require.NoError(t, rows.Scan(&name, &typ))
		types[name] = typ
	}
	require.NoError(t, rows.Err())
	return types
}

func TestLoadService_EndToEnd(t *testing.T) {
	connString := testhelpers.RequireDatabase(t)
	config := testhelpers.CreateTestDB(t, connString, "pgload_test_end_to_end")

	dir := writeFiles(t, map[string]string{
		"a.csv": "id,Name,score,active,visited\n1,Ann,1.5,true,2024-01-02\n2,Bob,,false,2024-02-03\n",
		"b.csv": "x,y\n1,2\n3\n",
		"notes.txt": "ignored",
	})

	summary, err := newService(t, config).Run(context.Background(), pgload.LoadConfig{SourcePath: dir})
	require.NoError(t, err)

	require.Len(t, summary.Results, 2)
	assert.Equal(t, "a.csv", summary.Results[0].FileName)
	assert.Equal(t, pgload.StatusSuccess, summary.Results[0].Status)
	assert.Equal(t, 2, summary.Results[0].Rows)
	assert.Equal(t, 5, summary.Results[0].Columns)

	assert.Equal(t, "b.csv", summary.Results[1].FileName)
	assert.Equal(t, pgload.StatusFailed, summary.Results[1].Status)
	assert.ErrorIs(t, summary.Results[1].Err, pgload.ErrParse)

	pool := testhelpers.GetTestPool(t, config)
	assert.Equal(t, 2, testhelpers.CountRows(t, pool, "a"))
	assert.False(t, testhelpers.TableExists(t, pool, "b"), "a failed file leaves no table")

	assert.Equal(t, map[string]string{
		"id":          "bigint",
		"original_id": "bigint",
		"name":        "text",
		"score":       "double precision",
		"active":      "boolean",
		"visited":     "date",
	}, columnTypes(t, config, "a"))

	var name string
	var originalID int64
	var score *float64
	require.NoError(t, pool.QueryRow(context.Background(),
		`SELECT original_id, name, score FROM a WHERE original_id = 2`).Scan(&originalID, &name, &score))
	assert.Equal(t, "Bob", name)
	assert.Nil(t, score, "empty cell is stored as NULL")
}

func TestLoadService_ReloadReplacesTable(t *testing.T) {
	connString := testhelpers.RequireDatabase(t)
	config := testhelpers.CreateTestDB(t, connString, "pgload_test_reload")
	svc := newService(t, config)

	dir := writeFiles(t, map[string]string{"items.csv": "sku\nA\nB\nC\n"})
	_, err := svc.Run(context.Background(), pgload.LoadConfig{SourcePath: dir})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "items.csv"), []byte("sku,qty\nZ,4\n"), 0644))
	summary, err := svc.Run(context.Background(), pgload.LoadConfig{SourcePath: dir})
	require.NoError(t, err)
	assert.Equal(t, pgload.StatusSuccess, summary.Results[0].Status)

	pool := testhelpers.GetTestPool(t, config)
	assert.Equal(t, 1, testhelpers.CountRows(t, pool, "items"))
	assert.Contains(t, columnTypes(t, config, "items"), "qty")
}

func TestLoadService_FailedReloadKeepsPreviousTable(t *testing.T) {
	connString := testhelpers.RequireDatabase(t)
	config := testhelpers.CreateTestDB(t, connString, "pgload_test_failed_reload")
	svc := newService(t, config)

	dir := writeFiles(t, map[string]string{"items.csv": "sku\nA\nB\n"})
	_, err := svc.Run(context.Background(), pgload.LoadConfig{SourcePath: dir})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "items.csv"), []byte("sku,SKU\nZ,Y\n"), 0644))
	summary, err := svc.Run(context.Background(), pgload.LoadConfig{SourcePath: dir})
	require.NoError(t, err)
	assert.ErrorIs(t, summary.Results[0].Err, pgload.ErrSchema)

	pool := testhelpers.GetTestPool(t, config)
	assert.Equal(t, 2, testhelpers.CountRows(t, pool, "items"), "rollback restores the earlier table")
}

func TestLoadService_BatchedInsertAndDelimiter(t *testing.T) {
	connString := testhelpers.RequireDatabase(t)
	config := testhelpers.CreateTestDB(t, connString, "pgload_test_batches")

	content := "n;label\n"
	for i := 0; i < 2500; i++ {
		content += "1;x\n"
	}
	dir := writeFiles(t, map[string]string{"Big Export (2024).csv": content})

	summary, err := newService(t, config).Run(context.Background(), pgload.LoadConfig{
		SourcePath:  dir,
		Delimiter:   ';',
		BatchSize:   1000,
		FileTimeout: time.Minute,
	})
	require.NoError(t, err)
	assert.Equal(t, "big_export_2024", summary.Results[0].TableName)
	assert.Equal(t, 2500, summary.Results[0].Rows)

	pool := testhelpers.GetTestPool(t, config)
	assert.Equal(t, 2500, testhelpers.CountRows(t, pool, "big_export_2024"))
}
