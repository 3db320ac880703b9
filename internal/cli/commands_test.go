package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Subcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	assert.True(t, names["load"], "load command registered")
	assert.True(t, names["version"], "version command registered")
}

func TestRootCommand_PersistentFlags(t *testing.T) {
	for _, name := range []string{"verbose", "no-color", "help"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "missing persistent flag --%s", name)
	}
	assert.Equal(t, "v", rootCmd.PersistentFlags().Lookup("verbose").Shorthand)
	assert.Empty(t, rootCmd.PersistentFlags().Lookup("help").Shorthand, "-h belongs to --host")
}

func TestLoadCommand_Flags(t *testing.T) {
	shorthands := map[string]string{
		"host":     "h",
		"port":     "p",
		"username": "U",
		"database": "d",
		"password": "W",
	}
	for name, short := range shorthands {
		flag := loadCmd.Flags().Lookup(name)
		require.NotNil(t, flag, "missing flag --%s", name)
		assert.Equal(t, short, flag.Shorthand, "shorthand of --%s", name)
	}

	for _, name := range []string{
		"connection", "sslmode", "sslcert", "sslkey", "sslrootcert",
		"azure", "azure-tenant-id", "azure-client-id",
		"aws", "aws-region", "google", "google-instance",
		"pattern", "delimiter", "batch-size", "file-timeout", "config",
	} {
		assert.NotNil(t, loadCmd.Flags().Lookup(name), "missing flag --%s", name)
	}
}

func TestLoadCommand_FlagDefaults(t *testing.T) {
	assert.Equal(t, "*.csv", loadCmd.Flags().Lookup("pattern").DefValue)
	assert.Equal(t, ",", loadCmd.Flags().Lookup("delimiter").DefValue)
	assert.Equal(t, "1000", loadCmd.Flags().Lookup("batch-size").DefValue)
	assert.Equal(t, "30m0s", loadCmd.Flags().Lookup("file-timeout").DefValue)
}
