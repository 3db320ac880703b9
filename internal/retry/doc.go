// Package retry re-attempts database connection establishment when the
// failure looks temporary: the server is starting up, refusing connections
// for a moment, or the network dropped a packet.
//
// Only connection establishment is retried. Statements inside a load
// transaction are never re-run; a failed file is rolled back and reported.
//
// # Example Usage
//
//	executor := retry.NewExecutor(
//	    retry.NewPostgreSQLErrorClassifier(),
//	    retry.NewExponentialBackoff(3, retry.WithInitialDelay(200*time.Millisecond)),
//	)
//
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return connect(ctx)
//	})
//
// Executor instances are safe for concurrent use. WithOnRetry returns a copy.
package retry
