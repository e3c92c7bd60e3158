package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/mockid/internal/core"
)

const testDataset = `{"111111111111":{"name":"Asha","age":30,"gender":"Female","address":{"city":"Pune","state":"Maharashtra"}},` +
	`"222222222222":{"name":"Ravi","age":45,"gender":"Male","address":{"city":"Delhi","state":"Delhi"}},` +
	`"333333333334":{"name":"Ravindra","age":61,"gender":"Male","address":{"city":"Mumbai","state":"Maharashtra"}}}`

func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mockData.json")
	require.NoError(t, os.WriteFile(path, []byte(testDataset), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := Execute(context.Background(), args, &out, &errOut)
	return out.String(), errOut.String(), code
}

func TestCommands(t *testing.T) {
	data := writeDataset(t)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"stats", []string{"stats"}, []string{"Total Records: 3", "Male: 2 (66.67%)", "1. Maharashtra: 2 (66.67%)"}},
		{"random default", []string{"random"}, []string{"3 Random Records", "3. Aadhaar: "}},
		{"random count", []string{"random", "2"}, []string{"2 Random Records", "2. Aadhaar: "}},
		{"search", []string{"search", "ravi"}, []string{"Found 2 results:", "1. Ravi (222222222222)", "2. Ravindra (333333333334)"}},
		{"search with flags", []string{"search", "ravi", "--min-age", "50"}, []string{"Found 1 results:", "1. Ravindra"}},
		{"search none", []string{"search", "zzz"}, []string{"No results found."}},
		{"lookup found", []string{"lookup", "111111111111"}, []string{`"name": "Asha"`}},
		{"lookup absent", []string{"lookup", "999999999999"}, []string{"Record not found."}},
		{"states", []string{"states"}, []string{"1. Delhi\n2. Maharashtra\n"}},
		{"cities", []string{"cities"}, []string{"1. Delhi\n2. Mumbai\n3. Pune\n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, errOut, code := run(t, append(tt.args, "--data", data)...)
			require.Equal(t, 0, code, errOut)
			for _, want := range tt.want {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestCommands_DataFromEnv(t *testing.T) {
	t.Setenv("DATASET_PATH", writeDataset(t))

	out, errOut, code := run(t, "states")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "Maharashtra")
}

func TestRandom_HeadingShowsClampedCount(t *testing.T) {
	t.Setenv("QUERY_MAX_SAMPLE", "2")

	out, errOut, code := run(t, "random", "500", "--data", writeDataset(t))
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "2 Random Records")
	assert.NotContains(t, out, "500 Random Records")
	assert.NotContains(t, out, "3. Aadhaar: ")
}

func TestLookup_InvalidID(t *testing.T) {
	out, errOut, code := run(t, "lookup", "12345", "--data", "/does/not/exist.json")

	assert.Equal(t, 1, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "Aadhaar number must be exactly 12 digits (Code: ARG001)")
}

func TestCommands_MissingDataset(t *testing.T) {
	_, errOut, code := run(t, "stats", "--data", filepath.Join(t.TempDir(), "missing.json"))

	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "open dataset")
	assert.Contains(t, errOut, "--data")
}

func TestCommands_InvalidSearchFlag(t *testing.T) {
	_, errOut, code := run(t, "search", "ravi", "--min-age", "old", "--data", writeDataset(t))

	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "ARG002")
}

func TestReduceCommand(t *testing.T) {
	in := writeDataset(t)
	out := filepath.Join(t.TempDir(), "reduced.json")

	stdout, errOut, code := run(t, "reduce", "--in", in, "--out", out, "--target", "2")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, stdout, "Source records: 3")
	assert.Contains(t, stdout, "Records: 2")
	assert.Contains(t, stdout, "GitHub compatible: ✅ Yes")

	records, err := core.LoadFile(out)
	require.NoError(t, err)
	assert.Len(t, records, 2)
	_, err = core.NewStore(records)
	assert.NoError(t, err)
}

func TestReduceCommand_JSModule(t *testing.T) {
	in := writeDataset(t)
	out := filepath.Join(t.TempDir(), "mockData.js")

	_, errOut, code := run(t, "reduce", "--in", in, "--out", out, "--target", "10", "--js-module")
	require.Equal(t, 0, code, errOut)

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "const mockData = {"))
	assert.True(t, strings.HasSuffix(string(raw), "module.exports = mockData;"))

	records, err := core.LoadFile(out)
	require.NoError(t, err)
	assert.Len(t, records, 3, "target above size keeps everything")
}

func TestReduceCommand_RequiresFlags(t *testing.T) {
	_, errOut, code := run(t, "reduce", "--in", writeDataset(t))
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, `"out"`)
}
