package pgload

import "context"

// Connector is a unified interface for establishing database connections.
// Different implementations handle various authentication methods
// (standard credentials, certificates, cloud IAM, etc.).
type Connector interface {
	// Connect establishes a single connection to the database.
	// The returned connection should be closed by the caller when done.
	Connect(ctx context.Context) (DBConnection, error)
}

// DBConnection is the one database session a run uses.
//
// Thread-Safety: not safe for concurrent use. A run loads files one at a time.
type DBConnection interface {
	// Begin opens a transaction. At most one transaction is open at a time.
	Begin(ctx context.Context) (Tx, error)

	// Close ends the session. An open transaction is rolled back by the server.
	Close(ctx context.Context) error
}

// Tx is a database transaction scoped to one file.
type Tx interface {
	// Exec executes a statement without returning rows.
	Exec(ctx context.Context, sql string, args ...any) error

	// ExecBatch executes sql once per row in a single round trip.
	// Each row supplies the statement's positional arguments.
	ExecBatch(ctx context.Context, sql string, rows [][]any) error

	Commit(ctx context.Context) error

	// Rollback aborts the transaction. Calling it after Commit is a no-op.
	Rollback(ctx context.Context) error
}
