package tui_test

import (
	"strings"
	"testing"

	"github.com/openkraft/rulegate/internal/adapters/outbound/tui"
	"github.com/openkraft/rulegate/internal/domain"
	"github.com/stretchr/testify/assert"
)

func sampleReport() *domain.Report {
	r := domain.NewReport("structure", "/app")
	r.Commit = "0123456789abcdef0123456789abcdef01234567"
	r.Add(
		domain.Errorf("structure/missing-index", "src/domains/teams", 0, "missing index.ts").WithHint("add an index.ts that re-exports the public API"),
		domain.Warnf("structure/missing-test", "src/domains/teams/components/Card", 0, "component has no test"),
		domain.Errorf("imports/relative-path", "src/domains/teams", 4, "relative import %q", "../x"),
	)
	return r
}

func TestRenderReport_GroupsByFile(t *testing.T) {
	out := tui.RenderReport(sampleReport())

	assert.Contains(t, out, "rulegate structure")
	assert.Contains(t, out, "FAILED")
	assert.Contains(t, out, "0123456")
	assert.Equal(t, 1, strings.Count(out, "src/domains/teams\n"), "one header per file")
	assert.Contains(t, out, "missing index.ts")
	assert.Contains(t, out, "→ add an index.ts")
	assert.Contains(t, out, "structure failed: 2 errors, 1 warnings, 0 toolchain failures")
}

func TestRenderReport_Passed(t *testing.T) {
	out := tui.RenderReport(domain.NewReport("imports", "/app"))
	assert.Contains(t, out, "PASSED")
	assert.Contains(t, out, "No violations found.")
}

func TestRenderReport_ToolchainFailure(t *testing.T) {
	r := domain.NewReport("coverage", "/app")
	r.AddFailure(domain.ToolchainFailure{
		Rule:     "coverage/generation-failed",
		Command:  "npm run test:coverage",
		ExitCode: 2,
		Output:   "FAIL src/a.test.ts\n",
		Message:  "coverage generation failed",
	})
	out := tui.RenderReport(r)
	assert.Contains(t, out, "coverage generation failed")
	assert.Contains(t, out, "npm run test:coverage")
	assert.Contains(t, out, "FAIL src/a.test.ts")
	assert.Contains(t, out, "FAILED")
}

func TestRenderSuite(t *testing.T) {
	out := tui.RenderSuite([]*domain.Report{domain.NewReport("imports", "/app"), sampleReport()})
	assert.Contains(t, out, "1 of 2 validators failed")

	out = tui.RenderSuite([]*domain.Report{domain.NewReport("imports", "/app")})
	assert.Contains(t, out, "all 1 validators passed")
}

func TestRenderClassification(t *testing.T) {
	out := tui.RenderClassification("../x", domain.ImportInternalRelativeForbidden, "relative-parent")
	assert.Contains(t, out, "internal-relative-forbidden")
	assert.Contains(t, out, "relative-parent")
}
