package sarif_test

import (
	"bytes"
	"encoding/json"
	"testing"

	gosarif "github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/openkraft/rulegate/internal/adapters/outbound/sarif"
	"github.com/openkraft/rulegate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	r := domain.NewReport("imports", "/app")
	r.Add(
		domain.Errorf("imports/relative-path", "src/a.ts", 3, "relative import %q", "../b").WithHint("use @/b"),
		domain.Errorf("imports/relative-path", "src/c.ts", 7, "relative import %q", "../d"),
		domain.Warnf("structure/missing-test", "src/domains/x/components/Card", 0, "no test"),
	)
	r.AddFailure(domain.ToolchainFailure{Rule: "coverage/generation-failed", Command: "npm run test:coverage", ExitCode: 1, Message: "coverage generation failed"})

	var buf bytes.Buffer
	require.NoError(t, sarif.Write(&buf, r))

	var log gosarif.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &log))
	require.Len(t, log.Runs, 1)
	run := log.Runs[0]

	assert.Equal(t, "rulegate", run.Tool.Driver.Name)
	assert.Len(t, run.Tool.Driver.Rules, 3, "rules are deduplicated by id")
	require.Len(t, run.Results, 4)

	first := run.Results[0]
	assert.Equal(t, "imports/relative-path", *first.RuleID)
	assert.Equal(t, "error", *first.Level)
	assert.Contains(t, *first.Message.Text, "use @/b")
	require.Len(t, first.Locations, 1)
	assert.Equal(t, "src/a.ts", *first.Locations[0].PhysicalLocation.ArtifactLocation.URI)
	assert.Equal(t, 3, *first.Locations[0].PhysicalLocation.Region.StartLine)

	assert.Equal(t, "warning", *run.Results[2].Level)
	assert.Empty(t, run.Results[3].Locations)
}

func TestWrite_EmptyReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sarif.Write(&buf, domain.NewReport("bypass", "/app")))
	assert.Contains(t, buf.String(), `"version": "2.1.0"`)
}
