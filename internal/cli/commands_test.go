package cli

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchCommand_Text(t *testing.T) {
	out, err := execute(t, "search", "Kenya", "--data", writeDataset(t))
	require.NoError(t, err)
	assert.Equal(t, "Emissions for Kenya:\n  2020: 17.90 Mt\n", out)
}

func TestSearchCommand_UnknownCountry(t *testing.T) {
	out, err := execute(t, "search", "Atlantis", "--data", writeDataset(t))
	require.NoError(t, err, "an unknown country is an empty result, not an error")
	assert.Contains(t, out, "No emission data found")
}

func TestSearchCommand_JSON(t *testing.T) {
	out, err := execute(t, "search", "Algeria", "--data", writeDataset(t), "--format", "json")
	require.NoError(t, err)

	resp := decodeResponse(t, out)
	assert.Equal(t, "ok", resp.Status)
	assert.NotEmpty(t, resp.TraceID)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Algeria", data["country"])
	records, ok := data["records"].([]any)
	require.True(t, ok)
	assert.Len(t, records, 2)
}

func TestSearchCommand_NoDataset(t *testing.T) {
	_, err := execute(t, "search", "Kenya")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestSearchCommand_MissingDatasetFile(t *testing.T) {
	_, err := execute(t, "search", "Kenya", "--data", filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTotalCommand_Text(t *testing.T) {
	out, err := execute(t, "total", "2020", "--data", writeDataset(t))
	require.NoError(t, err)
	assert.Equal(t, "Total CO2 emissions for 2020: 729.30 Mt\n", out)
}

func TestTotalCommand_YearWithoutData(t *testing.T) {
	out, err := execute(t, "total", "1900", "--data", writeDataset(t))
	require.NoError(t, err)
	assert.Equal(t, "No emission data found for year 1900.\n", out)
}

func TestTotalCommand_InvalidYear(t *testing.T) {
	_, err := execute(t, "total", "twenty-twenty", "--data", writeDataset(t))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTopCommand_Text(t *testing.T) {
	out, err := execute(t, "top", "2020", "3", "--data", writeDataset(t))
	require.NoError(t, err)
	assert.Equal(t,
		"Top 3 emitters in 2020:\n"+
			"  1. South Africa: 435.90 Mt\n"+
			"  2. Algeria: 171.20 Mt\n"+
			"  3. Nigeria: 104.30 Mt\n",
		out)
}

func TestTopCommand_InvalidN(t *testing.T) {
	_, err := execute(t, "top", "2020", "0", "--data", writeDataset(t))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestTopCommand_InvalidN_JSONEmitsStructuredError(t *testing.T) {
	// The "--" keeps -2 out of flag parsing so it reaches the command as
	// a positional argument.
	out, err := execute(t, "top", "--data", writeDataset(t), "--format", "json", "2020", "--", "-2")
	require.Error(t, err)

	resp := decodeResponse(t, out)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeInvalidArg, resp.Error.Code)
}

func TestTopCommand_YearWithoutData(t *testing.T) {
	out, err := execute(t, "top", "1800", "5", "--data", writeDataset(t))
	require.NoError(t, err)
	assert.Contains(t, out, "No emission data found for any country in 1800.")
}

func TestTrendCommand_Text(t *testing.T) {
	out, err := execute(t, "trend", "Algeria", "--data", writeDataset(t))
	require.NoError(t, err)
	assert.Equal(t,
		"Emission trend for Algeria:\n"+
			"  2010: 88.40 Mt\n"+
			"  2020: 171.20 Mt\n"+
			"Observations: 2, mean 129.80 Mt, peak 171.20 Mt in 2020\n",
		out)
}

func TestSectorsCommand_Text(t *testing.T) {
	out, err := execute(t, "sectors", "--column", "Sector", "--data", writeDataset(t))
	require.NoError(t, err)
	assert.Equal(t,
		"Emissions by Sector:\n"+
			"  Agriculture: 17.90 Mt\n"+
			"  Energy: 799.80 Mt\n",
		out)
}

func TestSectorsCommand_UnavailableColumn(t *testing.T) {
	out, err := execute(t, "sectors", "--column", "Region", "--data", writeDataset(t))
	require.NoError(t, err, "a missing column is a capability gap, not a failure")
	assert.Contains(t, out, "Sector aggregation unavailable")
}

func TestSectorsCommand_NoColumnGiven(t *testing.T) {
	out, err := execute(t, "sectors", "--data", writeDataset(t))
	require.NoError(t, err)
	assert.Contains(t, out, "Sector aggregation unavailable")
}

func TestSectorsCommand_ColumnFromConfig(t *testing.T) {
	data := writeDataset(t)
	config := writeFile(t, "config.yaml", "columns:\n  sector: Sector\n")

	out, err := execute(t, "sectors", "--data", data, "--config", config)
	require.NoError(t, err)
	assert.Contains(t, out, "Emissions by Sector:")
}

func TestCommands_ConfigColumnMapping(t *testing.T) {
	data := writeFile(t, "custom.csv", `nation,yr,co2_mt
Kenya,2020,17.9
`)
	config := writeFile(t, "config.yaml", `
columns:
  country: nation
  year: yr
  emission: co2_mt
`)

	out, err := execute(t, "search", "Kenya", "--data", data, "--config", config)
	require.NoError(t, err)
	assert.Contains(t, out, "2020: 17.90 Mt")
}

func TestCommands_SQLiteDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "emissions.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE emissions (
		"Country" TEXT,
		"Year" INTEGER,
		"Total CO2 Emission excluding LUCF (Mt)" REAL
	)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO emissions VALUES ('Kenya', 2020, 17.9), ('Nigeria', 2020, 104.3)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	out, err := execute(t, "total", "2020", "--data", path)
	require.NoError(t, err)
	assert.Equal(t, "Total CO2 emissions for 2020: 122.20 Mt\n", out)
}

func TestRootCommand_InvalidFormat(t *testing.T) {
	_, err := execute(t, "search", "Kenya", "--data", writeDataset(t), "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}
