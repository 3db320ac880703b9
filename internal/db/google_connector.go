package db

import (
	"context"
	"fmt"
	"net"

	"cloud.google.com/go/cloudsqlconn"
	"github.com/jackc/pgx/v5"
	"github.com/vvka-141/pgload/pkg/pgload"
)

// GoogleCloudSQLConnector implements the Connector interface for Google Cloud SQL
// using IAM database authentication via the Cloud SQL Go Connector.
// The dialer lives as long as the returned connection and is closed with it.
type GoogleCloudSQLConnector struct {
	config   *pgload.ConnectionConfig
	instance string
	logger   pgload.Logger
}

// NewGoogleCloudSQLConnector creates a connector for Google Cloud SQL IAM authentication.
// instance is the instance connection name in format: project:region:instance
func NewGoogleCloudSQLConnector(config *pgload.ConnectionConfig, instance string, logger pgload.Logger) *GoogleCloudSQLConnector {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &GoogleCloudSQLConnector{
		config:   config,
		instance: instance,
		logger:   logger,
	}
}

// Connect opens a connection through the Cloud SQL dialer, which handles
// authentication and TLS.
func (c *GoogleCloudSQLConnector) Connect(ctx context.Context) (pgload.DBConnection, error) {
	dialer, err := cloudsqlconn.NewDialer(ctx, cloudsqlconn.WithIAMAuthN())
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Cloud SQL dialer: %w", pgload.ErrConnectionFailed, err)
	}

	dsn := fmt.Sprintf(
		"user=%s dbname=%s sslmode=disable",
		c.config.Username,
		c.config.Database,
	)
	if c.config.AppName != "" {
		dsn += " application_name=" + c.config.AppName
	}

	connConfig, err := pgx.ParseConfig(dsn)
	if err != nil {
		dialer.Close()
		return nil, fmt.Errorf("%w: invalid connection parameters: %w", pgload.ErrConnectionFailed, err)
	}

	connConfig.DialFunc = func(ctx context.Context, _, _ string) (net.Conn, error) {
		return dialer.Dial(ctx, c.instance)
	}
	configureConn(connConfig, c.logger)

	conn, err := pgx.ConnectConfig(ctx, connConfig)
	if err != nil {
		dialer.Close()
		return nil, fmt.Errorf("%w: instance %s: %w", pgload.ErrConnectionFailed, c.instance, err)
	}

	c.logger.Verbose("Connected to Cloud SQL instance %s", c.instance)
	return NewConnAdapter(conn, func() { _ = dialer.Close() }), nil
}
