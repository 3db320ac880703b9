package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/vvka-141/pgload/pkg/pgload"
)

// ConnAdapter adapts a *pgx.Conn to the pgload.DBConnection interface.
type ConnAdapter struct {
	conn    *pgx.Conn
	onClose func()
}

// NewConnAdapter wraps conn. onClose, if non-nil, runs after the connection
// is closed and releases resources tied to it (such as a cloud dialer).
func NewConnAdapter(conn *pgx.Conn, onClose func()) *ConnAdapter {
	if conn == nil {
		panic("conn cannot be nil")
	}
	return &ConnAdapter{conn: conn, onClose: onClose}
}

func (a *ConnAdapter) Begin(ctx context.Context) (pgload.Tx, error) {
	tx, err := a.conn.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &txAdapter{tx: tx}, nil
}

func (a *ConnAdapter) Close(ctx context.Context) error {
	err := a.conn.Close(ctx)
	if a.onClose != nil {
		a.onClose()
		a.onClose = nil
	}
	return err
}

// txAdapter adapts pgx.Tx to pgload.Tx.
type txAdapter struct {
	tx pgx.Tx
}

func (t *txAdapter) Exec(ctx context.Context, sql string, args ...any) error {
	_, err := t.tx.Exec(ctx, sql, args...)
	return err
}

func (t *txAdapter) ExecBatch(ctx context.Context, sql string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, row := range rows {
		batch.Queue(sql, row...)
	}

	results := t.tx.SendBatch(ctx, batch)
	for i := range rows {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return fmt.Errorf("batch row %d: %w", i+1, err)
		}
	}
	return results.Close()
}

func (t *txAdapter) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *txAdapter) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}
