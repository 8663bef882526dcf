package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_WellFormed(t *testing.T) {
	path := writeFile(t, "config.yaml", `
source:
  path: data/emissions.db
  format: sqlite
  table: emissions
columns:
  country: nation
  year: yr
  emission: co2_mt
  sector: industry
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "data/emissions.db", cfg.Source.Path)
	assert.Equal(t, FormatSQLite, cfg.Source.Format)
	assert.Equal(t, "emissions", cfg.Source.Table)
	assert.Equal(t, "nation", cfg.Columns.Country)
	assert.Equal(t, "industry", cfg.Columns.Sector)
}

func TestLoadConfig_UnknownFieldRejected(t *testing.T) {
	path := writeFile(t, "config.yaml", `
source:
  path: data.csv
  formt: csv
`)

	_, err := LoadConfig(path)
	require.Error(t, err, "strict decoding must reject unknown fields")
}

func TestLoadConfig_InvalidFormat(t *testing.T) {
	path := writeFile(t, "config.yaml", `
source:
  path: data.xlsx
  format: xlsx
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid source format")
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig("does-not-exist.yaml")
	require.Error(t, err)
}

func TestInferFormat(t *testing.T) {
	assert.Equal(t, FormatSQLite, inferFormat("emissions.db"))
	assert.Equal(t, FormatSQLite, inferFormat("emissions.sqlite"))
	assert.Equal(t, FormatSQLite, inferFormat("EMISSIONS.SQLITE3"))
	assert.Equal(t, FormatCSV, inferFormat("emissions.csv"))
	assert.Equal(t, FormatCSV, inferFormat("emissions"))
}
