package db

import (
	"fmt"
	"os"
	"strconv"

	"github.com/vvka-141/pgload/internal/config"
	"github.com/vvka-141/pgload/pkg/pgload"
)

// GranularConnFlags represents connection parameters from CLI flags.
// These follow PostgreSQL standard flag conventions (-h, -p, -U, -d).
//
// Password is not a flag. Use $PGPASSWORD, ~/.pgpass, the connection
// string, or the -W prompt.
type GranularConnFlags struct {
	Host     string
	Port     int
	Username string
	Database string
	SSLMode  string
}

// IsEmpty reports whether no host-selecting flag was given. Database is
// excluded because -d may override the database of a connection string.
func (g *GranularConnFlags) IsEmpty() bool {
	return g.Host == "" && g.Port == 0 && g.Username == "" && g.SSLMode == ""
}

// CertFlags holds client certificate paths.
type CertFlags struct {
	SSLCert     string
	SSLKey      string
	SSLRootCert string
}

// AzureFlags selects Azure Entra ID authentication. The client secret is
// only read from $AZURE_CLIENT_SECRET.
type AzureFlags struct {
	Enabled  bool
	TenantID string // overrides AZURE_TENANT_ID
	ClientID string // overrides AZURE_CLIENT_ID
}

// AWSFlags selects AWS RDS IAM authentication.
type AWSFlags struct {
	Enabled bool
	Region  string // overrides AWS_REGION
}

// GoogleFlags selects Google Cloud SQL IAM authentication.
type GoogleFlags struct {
	Enabled  bool
	Instance string // project:region:instance
}

// EnvVars represents the environment variables that feed connection resolution.
// See: https://www.postgresql.org/docs/current/libpq-envars.html
type EnvVars struct {
	PGHOST        string
	PGPORT        string
	PGUSER        string
	PGPASSWORD    string
	PGDATABASE    string
	PGSSLMODE     string
	PGSSLCERT     string
	PGSSLKEY      string
	PGSSLROOTCERT string

	PGLOAD_CONNECTION_STRING string
	DATABASE_URL             string // Heroku/Rails convention

	AZURE_TENANT_ID     string
	AZURE_CLIENT_ID     string
	AZURE_CLIENT_SECRET string
	AWS_REGION          string
}

// LoadFromEnvironment reads EnvVars from the process environment.
func LoadFromEnvironment() *EnvVars {
	return &EnvVars{
		PGHOST:                   os.Getenv("PGHOST"),
		PGPORT:                   os.Getenv("PGPORT"),
		PGUSER:                   os.Getenv("PGUSER"),
		PGPASSWORD:               os.Getenv("PGPASSWORD"),
		PGDATABASE:               os.Getenv("PGDATABASE"),
		PGSSLMODE:                os.Getenv("PGSSLMODE"),
		PGSSLCERT:                os.Getenv("PGSSLCERT"),
		PGSSLKEY:                 os.Getenv("PGSSLKEY"),
		PGSSLROOTCERT:            os.Getenv("PGSSLROOTCERT"),
		PGLOAD_CONNECTION_STRING: os.Getenv("PGLOAD_CONNECTION_STRING"),
		DATABASE_URL:             os.Getenv("DATABASE_URL"),
		AZURE_TENANT_ID:          os.Getenv("AZURE_TENANT_ID"),
		AZURE_CLIENT_ID:          os.Getenv("AZURE_CLIENT_ID"),
		AZURE_CLIENT_SECRET:      os.Getenv("AZURE_CLIENT_SECRET"),
		AWS_REGION:               os.Getenv("AWS_REGION"),
	}
}

// connectionString returns the first non-empty connection string from the
// environment: PGLOAD_CONNECTION_STRING, then DATABASE_URL.
func (e *EnvVars) connectionString() string {
	if e.PGLOAD_CONNECTION_STRING != "" {
		return e.PGLOAD_CONNECTION_STRING
	}
	return e.DATABASE_URL
}

// ResolveConnectionParams resolves connection parameters using PostgreSQL-standard precedence:
//
//  1. --connection flag
//  2. Granular flags (-h, -p, -U, -d), each falling back to PG* variables,
//     then pgload.yaml, then defaults (localhost:5432, sslmode=prefer)
//  3. PGLOAD_CONNECTION_STRING or DATABASE_URL, used only when no granular
//     flag was given
//
// -d always overrides the database of a connection string. An empty
// database defaults to the user name, as libpq does.
//
// The auth method comes from the --azure/--aws/--google flags, then the
// pgload.yaml auth_method, then certificate auth when a client certificate
// is configured, and finally standard password auth.
//
// Passing both --connection and granular host flags is an error.
func ResolveConnectionParams(
	connStringFlag string,
	granularFlags *GranularConnFlags,
	azureFlags *AzureFlags,
	awsFlags *AWSFlags,
	googleFlags *GoogleFlags,
	certFlags *CertFlags,
	envVars *EnvVars,
	projectConfig *config.ProjectConfig,
) (*pgload.ConnectionConfig, error) {
	if granularFlags == nil {
		granularFlags = &GranularConnFlags{}
	}
	if azureFlags == nil {
		azureFlags = &AzureFlags{}
	}
	if awsFlags == nil {
		awsFlags = &AWSFlags{}
	}
	if googleFlags == nil {
		googleFlags = &GoogleFlags{}
	}
	if certFlags == nil {
		certFlags = &CertFlags{}
	}
	if envVars == nil {
		envVars = &EnvVars{}
	}

	var pc config.ConnectionConfig
	if projectConfig != nil {
		pc = projectConfig.Connection
	}

	if connStringFlag != "" && !granularFlags.IsEmpty() {
		return nil, fmt.Errorf(
			"%w: cannot specify both --connection and granular flags (-h, -p, -U, --sslmode)\n"+
				"Choose one approach:\n"+
				"  1. Connection string: --connection \"postgresql://user@localhost:5432/mydb\"\n"+
				"  2. Granular flags: -h localhost -p 5432 -U myuser -d mydb\n"+
				"  3. Environment variables: export PGHOST=localhost PGPORT=5432 PGUSER=myuser",
			pgload.ErrInvalidConfig,
		)
	}

	var cfg *pgload.ConnectionConfig
	var err error

	connStr := connStringFlag
	if connStr == "" && granularFlags.IsEmpty() {
		connStr = envVars.connectionString()
	}

	if connStr != "" {
		cfg, err = resolveFromConnectionString(connStr, envVars)
	} else {
		cfg, err = resolveFromGranularParams(granularFlags, envVars, pc)
	}
	if err != nil {
		return nil, err
	}

	if granularFlags.Database != "" {
		cfg.Database = granularFlags.Database
	}
	if cfg.Database == "" {
		cfg.Database = cfg.Username
	}

	applyCertificates(cfg, certFlags, envVars, pc)

	if err := applyAuthMethod(cfg, azureFlags, awsFlags, googleFlags, envVars, pc); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveFromConnectionString parses a connection string and applies
// environment fallbacks for parameters it leaves unset.
func resolveFromConnectionString(connStr string, envVars *EnvVars) (*pgload.ConnectionConfig, error) {
	cfg, err := ParseConnectionString(connStr)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid connection string: %w", pgload.ErrInvalidConfig, err)
	}

	if cfg.SSLMode == "" {
		cfg.SSLMode = envVars.PGSSLMODE
	}
	if cfg.SSLMode == "" {
		cfg.SSLMode = defaultSSLMode
	}
	if cfg.Username == "" {
		cfg.Username = envVars.PGUSER
	}
	if cfg.Username == "" {
		cfg.Username = currentOSUser()
	}
	if cfg.Password == "" {
		cfg.Password = envVars.PGPASSWORD
	}
	if cfg.Database == "" {
		cfg.Database = envVars.PGDATABASE
	}

	return cfg, nil
}

// resolveFromGranularParams builds ConnectionConfig with precedence
// flag > environment variable > pgload.yaml > default for each parameter.
func resolveFromGranularParams(
	flags *GranularConnFlags,
	envVars *EnvVars,
	pc config.ConnectionConfig,
) (*pgload.ConnectionConfig, error) {
	cfg := newDefaultConfig()

	cfg.Host = firstNonEmpty(flags.Host, envVars.PGHOST, pc.Host, defaultHost)

	switch {
	case flags.Port != 0:
		cfg.Port = flags.Port
	case envVars.PGPORT != "":
		port, err := strconv.Atoi(envVars.PGPORT)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid $PGPORT value '%s': must be an integer", pgload.ErrInvalidConfig, envVars.PGPORT)
		}
		cfg.Port = port
	case pc.Port != 0:
		cfg.Port = pc.Port
	default:
		cfg.Port = defaultPort
	}

	cfg.Username = firstNonEmpty(flags.Username, envVars.PGUSER, pc.Username, currentOSUser())
	cfg.Password = envVars.PGPASSWORD
	cfg.Database = firstNonEmpty(envVars.PGDATABASE, pc.Database)
	cfg.SSLMode = firstNonEmpty(flags.SSLMode, envVars.PGSSLMODE, pc.SSLMode, defaultSSLMode)

	return cfg, nil
}

func applyCertificates(cfg *pgload.ConnectionConfig, flags *CertFlags, envVars *EnvVars, pc config.ConnectionConfig) {
	cfg.SSLCert = firstNonEmpty(flags.SSLCert, cfg.SSLCert, envVars.PGSSLCERT, pc.SSLCert)
	cfg.SSLKey = firstNonEmpty(flags.SSLKey, cfg.SSLKey, envVars.PGSSLKEY, pc.SSLKey)
	cfg.SSLRootCert = firstNonEmpty(flags.SSLRootCert, cfg.SSLRootCert, envVars.PGSSLROOTCERT, pc.SSLRootCert)
}

func applyAuthMethod(
	cfg *pgload.ConnectionConfig,
	azure *AzureFlags,
	aws *AWSFlags,
	google *GoogleFlags,
	envVars *EnvVars,
	pc config.ConnectionConfig,
) error {
	enabled := 0
	for _, on := range []bool{azure.Enabled, aws.Enabled, google.Enabled} {
		if on {
			enabled++
		}
	}
	if enabled > 1 {
		return fmt.Errorf("%w: --azure, --aws and --google are mutually exclusive", pgload.ErrInvalidConfig)
	}

	switch {
	case azure.Enabled:
		cfg.AuthMethod = pgload.AuthMethodAzureEntraID
	case aws.Enabled:
		cfg.AuthMethod = pgload.AuthMethodAWSIAM
	case google.Enabled:
		cfg.AuthMethod = pgload.AuthMethodGoogleIAM
	case pc.AuthMethod != "":
		method, err := pgload.ParseAuthMethod(pc.AuthMethod)
		if err != nil {
			return fmt.Errorf("%w: pgload.yaml auth_method: %w", pgload.ErrInvalidConfig, err)
		}
		cfg.AuthMethod = method
	case cfg.SSLCert != "" && cfg.SSLKey != "":
		cfg.AuthMethod = pgload.AuthMethodCertificate
	default:
		cfg.AuthMethod = pgload.AuthMethodStandard
	}

	switch cfg.AuthMethod {
	case pgload.AuthMethodAzureEntraID:
		cfg.AzureTenantID = firstNonEmpty(azure.TenantID, envVars.AZURE_TENANT_ID, pc.AzureTenantID)
		cfg.AzureClientID = firstNonEmpty(azure.ClientID, envVars.AZURE_CLIENT_ID, pc.AzureClientID)
		cfg.AzureClientSecret = envVars.AZURE_CLIENT_SECRET
	case pgload.AuthMethodAWSIAM:
		cfg.AWSRegion = firstNonEmpty(aws.Region, envVars.AWS_REGION, pc.AWSRegion)
	case pgload.AuthMethodGoogleIAM:
		cfg.GoogleInstance = firstNonEmpty(google.Instance, pc.GoogleInstance)
	}

	return nil
}

func currentOSUser() string {
	return firstNonEmpty(os.Getenv("USER"), os.Getenv("USERNAME"))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
