package coveragereport_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/openkraft/rulegate/internal/adapters/outbound/coveragereport"
	"github.com/openkraft/rulegate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const summary = `{
  "total": {"lines": {"total": 10, "covered": 9, "pct": 90}},
  "/app/src/a.ts": {
    "statements": {"total": 10, "covered": 9, "pct": 90},
    "branches": {"total": 10, "covered": 8, "pct": 79.9},
    "functions": {"total": 2, "covered": 2, "pct": 100},
    "lines": {"total": 10, "covered": 10, "pct": 100}
  },
  "src/b.ts": {"statements": 50, "branches": 60, "functions": 70, "lines": 80},
  "src/empty.ts": {
    "statements": {"total": 0, "covered": 0, "pct": "Unknown"},
    "branches": {"total": 0, "covered": 0, "pct": 100},
    "functions": {"total": 0, "covered": 0, "pct": 100},
    "lines": {"total": 0, "covered": 0, "pct": 100}
  }
}`

const final = `{
  "/app/src/c.ts": {
    "path": "/app/src/c.ts",
    "statementMap": {
      "0": {"start": {"line": 1, "column": 0}, "end": {"line": 1, "column": 10}},
      "1": {"start": {"line": 2, "column": 0}, "end": {"line": 2, "column": 10}},
      "2": {"start": {"line": 2, "column": 12}, "end": {"line": 2, "column": 20}},
      "3": {"start": {"line": 3, "column": 0}, "end": {"line": 3, "column": 10}}
    },
    "fnMap": {"0": {}},
    "branchMap": {"0": {}},
    "s": {"0": 1, "1": 0, "2": 3, "3": 0},
    "f": {"0": 1},
    "b": {"0": [1, 0, 0]}
  }
}`

func writeReport(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	return dir
}

func TestRead_Summary(t *testing.T) {
	entries, err := coveragereport.New().Read(writeReport(t, coveragereport.SummaryFile, summary))
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, domain.CoverageEntry{Path: "/app/src/a.ts", Statements: 90, Branches: 79.9, Functions: 100, Lines: 100}, entries[0])
	assert.Equal(t, domain.CoverageEntry{Path: "src/b.ts", Statements: 50, Branches: 60, Functions: 70, Lines: 80}, entries[1])
	assert.Equal(t, 100.0, entries[2].Statements)
}

func TestRead_FallsBackToFinal(t *testing.T) {
	entries, err := coveragereport.New().Read(writeReport(t, coveragereport.FinalFile, final))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, "/app/src/c.ts", e.Path)
	assert.Equal(t, 50.0, e.Statements)
	assert.Equal(t, 100.0, e.Functions)
	assert.Equal(t, 33.33, e.Branches)
	assert.Equal(t, 66.67, e.Lines)
}

func TestRead_PrefersSummary(t *testing.T) {
	dir := writeReport(t, coveragereport.SummaryFile, summary)
	require.NoError(t, os.WriteFile(filepath.Join(dir, coveragereport.FinalFile), []byte(final), 0644))

	entries, err := coveragereport.New().Read(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestRead_MissingIsConfigError(t *testing.T) {
	_, err := coveragereport.New().Read(t.TempDir())
	require.Error(t, err)
	var cfgErr *domain.ConfigError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestRead_Malformed(t *testing.T) {
	_, err := coveragereport.New().Read(writeReport(t, coveragereport.SummaryFile, `[1,2`))
	assert.Error(t, err)
}
