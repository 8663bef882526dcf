package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/emistat-io/emistat/internal/dataset"
)

// Source formats accepted in config files and inferred from extensions.
const (
	FormatCSV    = "csv"
	FormatSQLite = "sqlite"
)

// Config describes where the dataset lives and how its columns map onto the
// required fields. Every field is optional; flags override file values and
// unset column mappings fall back to the reference dataset's header.
type Config struct {
	Source  SourceConfig  `yaml:"source,omitempty"`
	Columns ColumnsConfig `yaml:"columns,omitempty"`
}

// SourceConfig locates the dataset.
type SourceConfig struct {
	// Path to the CSV file or SQLite database.
	Path string `yaml:"path,omitempty"`

	// Format is "csv" or "sqlite". When empty it is inferred from the
	// path extension (.db/.sqlite/.sqlite3 mean sqlite, anything else csv).
	Format string `yaml:"format,omitempty"`

	// Table names the SQLite table; ignored for CSV sources.
	Table string `yaml:"table,omitempty"`
}

// ColumnsConfig maps source columns, including the optional categorical
// sector column the analysis core does not require.
type ColumnsConfig struct {
	dataset.Columns `yaml:",inline"`

	// Sector names the default categorical column for the sectors command.
	Sector string `yaml:"sector,omitempty"`
}

// LoadConfig reads and parses a config YAML file.
// Unknown fields are rejected to catch typos.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Source.Format != "" && cfg.Source.Format != FormatCSV && cfg.Source.Format != FormatSQLite {
		return nil, fmt.Errorf("invalid source format %q: must be %q or %q",
			cfg.Source.Format, FormatCSV, FormatSQLite)
	}

	return &cfg, nil
}

// inferFormat picks a source format from the path extension.
func inferFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite
	default:
		return FormatCSV
	}
}
