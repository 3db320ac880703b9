package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgconn/ctxwatch"
	"github.com/vvka-141/pgload/internal/retry"
	"github.com/vvka-141/pgload/pkg/pgload"
)

// cancelGracePeriod is how long a cancelled statement may take to stop
// before the connection is torn down.
const cancelGracePeriod = 5 * time.Second

// configureConn routes server notices to the logger and makes context
// cancellation send a cancel request instead of closing the socket, so the
// session survives a file that hits its timeout.
func configureConn(connConfig *pgx.ConnConfig, logger pgload.Logger) {
	connConfig.OnNotice = func(_ *pgconn.PgConn, notice *pgconn.Notice) {
		logger.Verbose("[%s] %s", notice.Severity, notice.Message)
	}
	connConfig.BuildContextWatcherHandler = func(pgConn *pgconn.PgConn) ctxwatch.Handler {
		return &pgconn.CancelRequestContextWatcherHandler{
			Conn:          pgConn,
			DeadlineDelay: cancelGracePeriod,
		}
	}
}

// retryLogger reports connection retries at verbose level.
func retryLogger(logger pgload.Logger) func(attempt int, err error, delay time.Duration) {
	return func(attempt int, err error, delay time.Duration) {
		logger.Verbose("Connection attempt %d failed, retrying in %v: %v", attempt+1, delay.Round(time.Millisecond), err)
	}
}

// StandardConnector implements the Connector interface for password and
// client certificate authentication with automatic retry on transient failures.
type StandardConnector struct {
	config        *pgload.ConnectionConfig
	logger        pgload.Logger
	retryExecutor *retry.Executor
}

// NewStandardConnector creates a new StandardConnector with the given configuration.
// Retry behavior uses pgload defaults: DefaultRetryMaxAttempts attempts,
// exponential backoff starting at DefaultRetryInitialDelay, max DefaultRetryMaxDelay.
func NewStandardConnector(config *pgload.ConnectionConfig, logger pgload.Logger) *StandardConnector {
	if config == nil {
		panic("config cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &StandardConnector{
		config:        config,
		logger:        logger,
		retryExecutor: retry.NewDefaultExecutor().WithOnRetry(retryLogger(logger)),
	}
}

// Connect opens a single connection using standard authentication with automatic retry.
func (c *StandardConnector) Connect(ctx context.Context) (pgload.DBConnection, error) {
	conn, err := connectWithRetry(ctx, c.retryExecutor, c.config, c.logger)
	if err != nil {
		return nil, err
	}
	return NewConnAdapter(conn, nil), nil
}

// connectWithRetry parses config and dials until success, a permanent error,
// or the retry budget is spent.
func connectWithRetry(ctx context.Context, executor *retry.Executor, config *pgload.ConnectionConfig, logger pgload.Logger) (*pgx.Conn, error) {
	connConfig, err := pgx.ParseConfig(BuildConnectionString(config))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid connection parameters: %w", pgload.ErrConnectionFailed, err)
	}
	configureConn(connConfig, logger)

	var conn *pgx.Conn
	err = executor.Execute(ctx, func(ctx context.Context) error {
		conn, err = pgx.ConnectConfig(ctx, connConfig)
		if err != nil {
			return wrapConnectionError(err, config.Host, config.Port, config.Database)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", pgload.ErrConnectionFailed, err)
	}
	return conn, nil
}

// NewConnector is a factory function that creates the appropriate Connector
// based on the ConnectionConfig's AuthMethod.
func NewConnector(config *pgload.ConnectionConfig, logger pgload.Logger) (pgload.Connector, error) {
	switch config.AuthMethod {
	case pgload.AuthMethodStandard:
		return NewStandardConnector(config, logger), nil
	case pgload.AuthMethodCertificate:
		if config.SSLCert == "" || config.SSLKey == "" {
			return nil, fmt.Errorf("%w: certificate auth requires --sslcert and --sslkey", pgload.ErrInvalidConfig)
		}
		return NewStandardConnector(config, logger), nil
	case pgload.AuthMethodAWSIAM:
		return newAWSConnector(config, logger)
	case pgload.AuthMethodGoogleIAM:
		return newGoogleConnector(config, logger)
	case pgload.AuthMethodAzureEntraID:
		return newAzureConnector(config, logger)
	default:
		return nil, fmt.Errorf("unsupported auth method %v: %w", config.AuthMethod, pgload.ErrUnsupportedAuthMethod)
	}
}

// wrapConnectionError wraps raw pgx connection errors with actionable guidance.
func wrapConnectionError(err error, host string, port int, database string) error {
	errStr := strings.ToLower(err.Error())
	addr := fmt.Sprintf("%s:%d", host, port)

	switch {
	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "actively refused"):
		return fmt.Errorf(`connection refused to %s

Check that PostgreSQL is running (pg_isready -h %s -p %d) and that
host and port are correct.

Original error: %w`, addr, host, port, err)

	case strings.Contains(errStr, "no such host") || strings.Contains(errStr, "no host"):
		return fmt.Errorf(`cannot resolve host "%s"

Check the hostname spelling and DNS.

Original error: %w`, host, err)

	case strings.Contains(errStr, "password authentication failed"):
		return fmt.Errorf(`password authentication failed for database "%s"

Check the username and password ($PGPASSWORD, ~/.pgpass or -W).

Original error: %w`, database, err)

	case strings.Contains(errStr, "does not exist"):
		return fmt.Errorf(`database "%s" does not exist

Create it first:
  createdb %s

Original error: %w`, database, database, err)

	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "timed out"):
		return fmt.Errorf(`connection timed out to %s

The server may be unreachable or a firewall may be dropping packets.

Original error: %w`, addr, err)

	case strings.Contains(errStr, "ssl") || strings.Contains(errStr, "tls"):
		return fmt.Errorf(`SSL/TLS connection error

Check --sslmode, and --sslcert/--sslkey/--sslrootcert for certificate auth.

Original error: %w`, err)

	case strings.Contains(errStr, "too many connections"):
		return fmt.Errorf(`too many connections to database "%s"

The server's max_connections limit is reached.

Original error: %w`, database, err)

	default:
		return fmt.Errorf("failed to connect to database: %w", err)
	}
}

// newAWSConnector creates a token-based connector with the AWS IAM token provider.
func newAWSConnector(config *pgload.ConnectionConfig, logger pgload.Logger) (pgload.Connector, error) {
	endpoint := fmt.Sprintf("%s:%d", config.Host, config.Port)

	tokenProvider, err := NewAWSIAMTokenProvider(endpoint, config.AWSRegion, config.Username)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", pgload.ErrInvalidConfig, err)
	}

	return NewTokenBasedConnector(config, tokenProvider, "AWS IAM", logger), nil
}

// newGoogleConnector creates a GoogleCloudSQLConnector for Google Cloud SQL IAM authentication.
func newGoogleConnector(config *pgload.ConnectionConfig, logger pgload.Logger) (pgload.Connector, error) {
	if config.GoogleInstance == "" {
		return nil, fmt.Errorf("%w: Google Cloud SQL IAM auth requires --google-instance (project:region:instance)", pgload.ErrInvalidConfig)
	}
	if config.Username == "" {
		return nil, fmt.Errorf("%w: Google Cloud SQL IAM auth requires username (-U)", pgload.ErrInvalidConfig)
	}

	return NewGoogleCloudSQLConnector(config, config.GoogleInstance, logger), nil
}

// newAzureConnector creates a token-based connector with the Azure Entra ID token provider.
// Explicit tenant, client and secret select Service Principal auth; otherwise
// the DefaultAzureCredential chain is used.
func newAzureConnector(config *pgload.ConnectionConfig, logger pgload.Logger) (pgload.Connector, error) {
	var tokenProvider TokenProvider
	var err error

	if config.AzureTenantID != "" && config.AzureClientID != "" && config.AzureClientSecret != "" {
		tokenProvider, err = NewAzureServicePrincipalProvider(
			config.AzureTenantID,
			config.AzureClientID,
			config.AzureClientSecret,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create Azure Service Principal provider: %w", err)
		}
	} else {
		tokenProvider, err = NewAzureDefaultCredentialProvider()
		if err != nil {
			return nil, fmt.Errorf("failed to create Azure Default Credential provider: %w", err)
		}
	}

	return NewTokenBasedConnector(config, tokenProvider, "Azure", logger), nil
}
