// Package sarif renders a report as a SARIF 2.1.0 log so findings can be
// uploaded to code-scanning dashboards.
package sarif

import (
	"fmt"
	"io"

	gosarif "github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/openkraft/rulegate/internal/domain"
)

const (
	toolName = "rulegate"
	toolURI  = "https://github.com/openkraft/rulegate"
)

// Write encodes reports as one SARIF run per report.
func Write(w io.Writer, reports ...*domain.Report) error {
	log, err := gosarif.New(gosarif.Version210)
	if err != nil {
		return fmt.Errorf("creating SARIF report: %w", err)
	}

	for _, r := range reports {
		log.AddRun(buildRun(r))
	}
	return log.PrettyWrite(w)
}

func buildRun(r *domain.Report) *gosarif.Run {
	run := gosarif.NewRunWithInformationURI(toolName, toolURI)
	for _, v := range r.Violations {
		level := toSarifLevel(v.Severity)
		rule := run.AddRule(v.Rule).
			WithDescription(v.Rule).
			WithDefaultConfiguration(gosarif.NewReportingConfiguration().WithLevel(level))

		msg := v.Message
		if v.Hint != "" {
			msg += " (" + v.Hint + ")"
		}
		result := gosarif.NewRuleResult(rule.ID).
			WithMessage(gosarif.NewTextMessage(msg)).
			WithLevel(level)
		if v.File != "" {
			region := gosarif.NewRegion()
			if v.Line > 0 {
				region = region.WithStartLine(v.Line)
			}
			result = result.WithLocations([]*gosarif.Location{
				gosarif.NewLocation().WithPhysicalLocation(
					gosarif.NewPhysicalLocation().
						WithArtifactLocation(gosarif.NewArtifactLocation().WithUri(v.File)).
						WithRegion(region),
				),
			})
		}
		run.AddResult(result)
	}

	for _, f := range r.Failures {
		rule := run.AddRule(f.Rule).
			WithDescription(f.Rule).
			WithDefaultConfiguration(gosarif.NewReportingConfiguration().WithLevel("error"))
		run.AddResult(gosarif.NewRuleResult(rule.ID).
			WithMessage(gosarif.NewTextMessage(fmt.Sprintf("%s: %q exited with code %d", f.Message, f.Command, f.ExitCode))).
			WithLevel("error"))
	}
	return run
}

func toSarifLevel(s domain.Severity) string {
	if s == domain.SeverityWarning {
		return "warning"
	}
	return "error"
}
