package pgload_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/pgload/pkg/pgload"
)

func TestLoadConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     pgload.LoadConfig
		wantErr bool
	}{
		{"valid", pgload.LoadConfig{SourcePath: "./data"}, false},
		{"missing source", pgload.LoadConfig{}, true},
		{"negative batch", pgload.LoadConfig{SourcePath: "./data", BatchSize: -1}, true},
		{"negative timeout", pgload.LoadConfig{SourcePath: "./data", FileTimeout: -time.Second}, true},
		{"quote delimiter", pgload.LoadConfig{SourcePath: "./data", Delimiter: '"'}, true},
		{"semicolon delimiter", pgload.LoadConfig{SourcePath: "./data", Delimiter: ';'}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, pgload.ErrInvalidConfig))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfig_WithDefaults(t *testing.T) {
	cfg := pgload.LoadConfig{SourcePath: "./data"}.WithDefaults()

	assert.Equal(t, pgload.DefaultFilePattern, cfg.Pattern)
	assert.Equal(t, pgload.DefaultDelimiter, cfg.Delimiter)
	assert.Equal(t, pgload.DefaultBatchSize, cfg.BatchSize)
	assert.NotEqual(t, uuid.Nil, cfg.RunID)

	id := uuid.New()
	assert.Equal(t, id, pgload.LoadConfig{RunID: id}.WithDefaults().RunID)

	custom := pgload.LoadConfig{SourcePath: "./data", Pattern: "*.tsv", Delimiter: '\t', BatchSize: 50}.WithDefaults()
	assert.Equal(t, "*.tsv", custom.Pattern)
	assert.Equal(t, '\t', custom.Delimiter)
	assert.Equal(t, 50, custom.BatchSize)
}

func TestAuthMethod_String(t *testing.T) {
	assert.Equal(t, "Standard", pgload.AuthMethodStandard.String())
	assert.Equal(t, "AWS IAM", pgload.AuthMethodAWSIAM.String())
	assert.Equal(t, "Unknown(42)", pgload.AuthMethod(42).String())
	assert.False(t, pgload.AuthMethod(42).IsValid())
	assert.True(t, pgload.AuthMethodAzureEntraID.IsValid())
}

func TestParseAuthMethod(t *testing.T) {
	m, err := pgload.ParseAuthMethod("aws")
	require.NoError(t, err)
	assert.Equal(t, pgload.AuthMethodAWSIAM, m)

	m, err = pgload.ParseAuthMethod("")
	require.NoError(t, err)
	assert.Equal(t, pgload.AuthMethodStandard, m)

	_, err = pgload.ParseAuthMethod("kerberos")
	assert.ErrorIs(t, err, pgload.ErrUnsupportedAuthMethod)
}
