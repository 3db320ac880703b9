package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/vvka-141/pgload/pkg/pgload"
)

type mockConnector struct {
	conn      *mockDBConnection
	err       error
	calls     int
	onConnect func()
}

func (m *mockConnector) Connect(_ context.Context) (pgload.DBConnection, error) {
	m.calls++
	if m.onConnect != nil {
		m.onConnect()
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.conn, nil
}

// mockDBConnection hands out recording transactions. failOn, when set,
// decides whether a statement fails; it sees every Exec and ExecBatch.
type mockDBConnection struct {
	beginErr error
	failOn   func(sql string) error
	txs      []*mockTx
	closed   bool
}

func (m *mockDBConnection) Begin(_ context.Context) (pgload.Tx, error) {
	if m.beginErr != nil {
		return nil, m.beginErr
	}
	tx := &mockTx{failOn: m.failOn}
	m.txs = append(m.txs, tx)
	return tx, nil
}

func (m *mockDBConnection) Close(_ context.Context) error {
	m.closed = true
	return nil
}

type mockTx struct {
	failOn     func(sql string) error
	statements []string
	batches    int
	batchRows  int
	committed  bool
	rolledBack bool
}

func (m *mockTx) Exec(_ context.Context, sql string, _ ...any) error {
	m.statements = append(m.statements, sql)
	if m.failOn != nil {
		return m.failOn(sql)
	}
	return nil
}

func (m *mockTx) ExecBatch(_ context.Context, sql string, rows [][]any) error {
	m.statements = append(m.statements, sql)
	m.batches++
	m.batchRows += len(rows)
	if m.failOn != nil {
		return m.failOn(sql)
	}
	return nil
}

func (m *mockTx) Commit(_ context.Context) error {
	m.committed = true
	return nil
}

func (m *mockTx) Rollback(_ context.Context) error {
	if !m.committed {
		m.rolledBack = true
	}
	return nil
}

type mockFileScanner struct {
	files []string
	err   error
}

func (m *mockFileScanner) ListFiles(_, _ string) ([]string, error) {
	return m.files, m.err
}

// mockParser returns canned datasets by path. onParse runs before each
// parse and lets a test act between files.
type mockParser struct {
	datasets map[string]pgload.Dataset
	errs     map[string]error
	onParse  func(path string)
	parsed   []string
}

func (m *mockParser) Parse(path string) (pgload.Dataset, error) {
	m.parsed = append(m.parsed, path)
	if m.onParse != nil {
		m.onParse(path)
	}
	if err, ok := m.errs[path]; ok {
		return pgload.Dataset{}, err
	}
	if ds, ok := m.datasets[path]; ok {
		return ds, nil
	}
	return pgload.Dataset{}, fmt.Errorf("%w: %s: no such test file", pgload.ErrParse, path)
}

func (m *mockParser) factory() ParserFactory {
	return func(rune) pgload.Parser { return m }
}

type mockLogger struct {
	mu       sync.Mutex
	messages []string
}

func (m *mockLogger) record(level, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, level+" "+fmt.Sprintf(format, args...))
}

func (m *mockLogger) Verbose(format string, args ...interface{}) { m.record("VERBOSE", format, args...) }
func (m *mockLogger) Info(format string, args ...interface{})    { m.record("INFO", format, args...) }
func (m *mockLogger) Error(format string, args ...interface{})   { m.record("ERROR", format, args...) }
