package loader

import (
	"context"
	"errors"
)

type execCall struct {
	sql  string
	rows [][]any
}

// recordingTx records statements and can fail on the Nth ExecBatch call (1-based).
type recordingTx struct {
	execs       []string
	batches     []execCall
	failBatchAt int
	failExec    string
}

func (tx *recordingTx) Exec(_ context.Context, sql string, _ ...any) error {
	tx.execs = append(tx.execs, sql)
	if tx.failExec != "" && sql == tx.failExec {
		return errors.New("exec rejected")
	}
	return nil
}

func (tx *recordingTx) ExecBatch(_ context.Context, sql string, rows [][]any) error {
	tx.batches = append(tx.batches, execCall{sql: sql, rows: rows})
	if tx.failBatchAt > 0 && len(tx.batches) == tx.failBatchAt {
		return errors.New("batch rejected")
	}
	return nil
}

func (tx *recordingTx) Commit(context.Context) error   { return nil }
func (tx *recordingTx) Rollback(context.Context) error { return nil }
