package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/pgload/internal/config"
	"github.com/vvka-141/pgload/internal/db"
	"github.com/vvka-141/pgload/pkg/pgload"
)

// connectionFlags holds the connection-related flag values.
type connectionFlags struct {
	connection     string
	host           string
	port           int
	username       string
	database       string
	sslMode        string
	azure          bool
	azureTenantID  string
	azureClientID  string
	aws            bool
	awsRegion      string
	google         bool
	googleInstance string
	sslCert        string
	sslKey         string
	sslRootCert    string
}

// loadSettingFlags holds the flags that shape a load run.
type loadSettingFlags struct {
	pattern     string
	delimiter   string
	batchSize   int
	fileTimeout time.Duration
	configPath  string
}

// resolveConnectionFromFlags resolves connection configuration from flags,
// the environment and project config.
func resolveConnectionFromFlags(
	flags connectionFlags,
	envVars *db.EnvVars,
	projectCfg *config.ProjectConfig,
) (*pgload.ConnectionConfig, error) {
	granularFlags := &db.GranularConnFlags{
		Host:     flags.host,
		Port:     flags.port,
		Username: flags.username,
		Database: flags.database,
		SSLMode:  flags.sslMode,
	}

	azureFlags := &db.AzureFlags{
		Enabled:  flags.azure,
		TenantID: flags.azureTenantID,
		ClientID: flags.azureClientID,
	}

	awsFlags := &db.AWSFlags{
		Enabled: flags.aws,
		Region:  flags.awsRegion,
	}

	googleFlags := &db.GoogleFlags{
		Enabled:  flags.google,
		Instance: flags.googleInstance,
	}

	certFlags := &db.CertFlags{
		SSLCert:     flags.sslCert,
		SSLKey:      flags.sslKey,
		SSLRootCert: flags.sslRootCert,
	}

	return db.ResolveConnectionParams(
		flags.connection,
		granularFlags,
		azureFlags,
		awsFlags,
		googleFlags,
		certFlags,
		envVars,
		projectCfg,
	)
}

// loadProjectConfig loads .env and the project configuration.
// An explicit path must exist; pgload.yaml in the source directory is optional.
func loadProjectConfig(sourcePath, explicitPath string) (*config.ProjectConfig, error) {
	_ = godotenv.Load()

	if explicitPath != "" {
		projectCfg, err := config.LoadFile(explicitPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w: %w", explicitPath, pgload.ErrInvalidConfig, err)
		}
		return projectCfg, nil
	}

	projectCfg, err := config.Load(sourcePath)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, nil // Config file not found is not an error
		}
		return nil, fmt.Errorf("failed to load %s: %w: %w", config.ConfigFileName, pgload.ErrInvalidConfig, err)
	}
	return projectCfg, nil
}

// buildLoadConfig merges pgload.yaml load settings with the flags the user
// set explicitly. Flags win; unset values keep their built-in defaults.
func buildLoadConfig(
	cmd *cobra.Command,
	flags loadSettingFlags,
	sourcePath string,
	projectCfg *config.ProjectConfig,
	verbose bool,
) (pgload.LoadConfig, error) {
	cfg := pgload.LoadConfig{
		SourcePath:  sourcePath,
		Verbose:     verbose,
		FileTimeout: pgload.DefaultFileTimeout,
	}

	if projectCfg != nil {
		fromFile := pgload.LoadConfig{}
		if err := projectCfg.Load.ApplyTo(&fromFile); err != nil {
			return pgload.LoadConfig{}, err
		}
		cfg.Pattern = fromFile.Pattern
		cfg.Delimiter = fromFile.Delimiter
		cfg.BatchSize = fromFile.BatchSize
		if projectCfg.Load.FileTimeout != "" {
			cfg.FileTimeout = fromFile.FileTimeout
		}
	}

	changed := cmd.Flags().Changed
	if changed("pattern") {
		cfg.Pattern = flags.pattern
	}
	if changed("delimiter") {
		d, err := config.ParseDelimiter(flags.delimiter)
		if err != nil {
			return pgload.LoadConfig{}, err
		}
		cfg.Delimiter = d
	}
	if changed("batch-size") {
		if flags.batchSize <= 0 {
			return pgload.LoadConfig{}, fmt.Errorf("--batch-size must be positive, got %d: %w", flags.batchSize, pgload.ErrInvalidConfig)
		}
		cfg.BatchSize = flags.batchSize
	}
	if changed("file-timeout") {
		cfg.FileTimeout = flags.fileTimeout
	}

	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return pgload.LoadConfig{}, err
	}
	return cfg, nil
}

// logConnectionVerbose logs connection details when verbose mode is enabled.
func logConnectionVerbose(logger pgload.Logger, connConfig *pgload.ConnectionConfig) {
	logger.Verbose("Connection resolved: %s", db.DescribeConnection(connConfig))
	if connConfig.SSLCert != "" {
		logger.Verbose("  SSL Cert: %s", connConfig.SSLCert)
	}
	if connConfig.SSLKey != "" {
		logger.Verbose("  SSL Key: %s", connConfig.SSLKey)
	}
	if connConfig.SSLRootCert != "" {
		logger.Verbose("  SSL Root Cert: %s", connConfig.SSLRootCert)
	}
}
