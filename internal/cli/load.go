package cli

import (
	"github.com/emistat-io/emistat/internal/dataset"
	"github.com/emistat-io/emistat/internal/engine"
)

// loadedConfig resolves the effective config: file values when --config was
// given, overridden by flags.
func loadedConfig(opts *RootOptions) (*Config, error) {
	cfg := &Config{}
	if opts.Config != "" {
		loaded, err := LoadConfig(opts.Config)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "invalid config", err)
		}
		cfg = loaded
	}
	if opts.Data != "" {
		cfg.Source.Path = opts.Data
		// A flag-supplied path gets its format from the extension; an
		// explicit config format only governs the config's own path.
		cfg.Source.Format = ""
	}
	return cfg, nil
}

// loadAnalyzer loads the dataset named by flags/config and builds the
// analyzer over it. A missing or unreadable source aborts with exit code 2
// before any operation runs.
func loadAnalyzer(opts *RootOptions) (*engine.Analyzer, *Config, error) {
	cfg, err := loadedConfig(opts)
	if err != nil {
		return nil, nil, err
	}

	if cfg.Source.Path == "" {
		return nil, nil, NewExitError(ExitCommandError, "no dataset given: use --data or a config file")
	}

	format := cfg.Source.Format
	if format == "" {
		format = inferFormat(cfg.Source.Path)
	}

	var table *dataset.Table
	switch format {
	case FormatCSV:
		table, err = dataset.LoadCSV(cfg.Source.Path, cfg.Columns.Columns)
	case FormatSQLite:
		table, err = dataset.LoadSQLite(cfg.Source.Path, cfg.Source.Table, cfg.Columns.Columns)
	}
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to load dataset", err)
	}

	return engine.New(table), cfg, nil
}
