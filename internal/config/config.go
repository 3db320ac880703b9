package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/pgload/pkg/pgload"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

type ConnectionConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	Username       string `yaml:"username"`
	Database       string `yaml:"database"`
	SSLMode        string `yaml:"sslmode"`
	SSLCert        string `yaml:"sslcert,omitempty"`
	SSLKey         string `yaml:"sslkey,omitempty"`
	SSLRootCert    string `yaml:"sslrootcert,omitempty"`
	AuthMethod     string `yaml:"auth_method,omitempty"`
	AzureTenantID  string `yaml:"azure_tenant_id,omitempty"`
	AzureClientID  string `yaml:"azure_client_id,omitempty"`
	AWSRegion      string `yaml:"aws_region,omitempty"`
	GoogleInstance string `yaml:"google_instance,omitempty"`
}

// LoadSettings holds the defaults for a load run. Empty fields leave the
// built-in defaults in place.
type LoadSettings struct {
	Pattern     string `yaml:"pattern,omitempty"`
	Delimiter   string `yaml:"delimiter,omitempty"`
	BatchSize   int    `yaml:"batch_size,omitempty"`
	FileTimeout string `yaml:"file_timeout,omitempty"`
}

type ProjectConfig struct {
	Connection ConnectionConfig `yaml:"connection"`
	Load       LoadSettings     `yaml:"load"`
}

const ConfigFileName = "pgload.yaml"

// Load reads pgload.yaml from dir.
func Load(dir string) (*ProjectConfig, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads a config file from an explicit path.
func LoadFile(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// ApplyTo fills the zero fields of cfg from the settings.
func (s LoadSettings) ApplyTo(cfg *pgload.LoadConfig) error {
	if cfg.Pattern == "" {
		cfg.Pattern = s.Pattern
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = s.BatchSize
	}
	if cfg.Delimiter == 0 && s.Delimiter != "" {
		d, err := ParseDelimiter(s.Delimiter)
		if err != nil {
			return err
		}
		cfg.Delimiter = d
	}
	if cfg.FileTimeout == 0 && s.FileTimeout != "" {
		timeout, err := time.ParseDuration(s.FileTimeout)
		if err != nil {
			return fmt.Errorf("invalid file_timeout %q: %w", s.FileTimeout, pgload.ErrInvalidConfig)
		}
		cfg.FileTimeout = timeout
	}
	return nil
}

// ParseDelimiter accepts a single character, or the names "tab", "\t",
// "comma", "semicolon" and "pipe".
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "tab", `\t`:
		return '\t', nil
	case "comma":
		return ',', nil
	case "semicolon":
		return ';', nil
	case "pipe":
		return '|', nil
	}

	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q: %w", s, pgload.ErrInvalidConfig)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}
