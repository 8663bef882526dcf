package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// fixtureCSV mirrors a small slice of the reference dataset, with a Sector
// column for aggregation tests.
const fixtureCSV = `Country,Year,Total CO2 Emission excluding LUCF (Mt),Sector
Nigeria,2020,104.3,Energy
South Africa,2020,435.9,Energy
Kenya,2020,17.9,Agriculture
Algeria,2020,171.2,Energy
Algeria,2010,88.4,Energy
`

// writeDataset writes the fixture CSV to a temp dir and returns its path.
func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "emissions.csv")
	require.NoError(t, os.WriteFile(path, []byte(fixtureCSV), 0644))
	return path
}

// writeFile writes arbitrary fixture content and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// execute runs the root command with the given args and captures stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

// decodeResponse parses a JSON-mode CLI response.
func decodeResponse(t *testing.T, raw string) CLIResponse {
	t.Helper()
	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(raw), &resp))
	return resp
}
