package application

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/openkraft/rulegate/internal/domain"
	"github.com/openkraft/rulegate/internal/domain/coverage"
)

// CoverageService regenerates the coverage report and applies per-file
// thresholds to every source file.
type CoverageService struct {
	loader *ProjectLoader
	runner domain.CommandRunner
	reader domain.CoverageReader
	logger hclog.Logger
}

func NewCoverageService(
	loader *ProjectLoader,
	runner domain.CommandRunner,
	reader domain.CoverageReader,
	logger hclog.Logger,
) *CoverageService {
	return &CoverageService{loader: loader, runner: runner, reader: reader, logger: named(logger, ValidatorCoverage)}
}

func (s *CoverageService) Name() string { return ValidatorCoverage }

// Validate runs the coverage command first. When it exits non-zero the
// report carries a toolchain failure and no threshold is evaluated.
func (s *CoverageService) Validate(ctx context.Context, projectPath string) (*domain.Report, error) {
	p, err := s.loader.Load(projectPath)
	if err != nil {
		return nil, err
	}
	cfg := p.Config.Coverage
	report := p.NewReport(ValidatorCoverage)

	if cfg.Command != "" {
		s.logger.Info("generating coverage", "command", cfg.Command)
		res, err := s.runner.Run(ctx, p.Path, cfg.Command)
		if err != nil {
			return nil, fmt.Errorf("generating coverage: %w", err)
		}
		if res.ExitCode != 0 {
			report.AddFailure(domain.ToolchainFailure{
				Rule:     coverage.RuleGenerationFails,
				Command:  res.Command,
				ExitCode: res.ExitCode,
				Output:   res.Output,
				Message:  "coverage generation failed",
			})
			return report, nil
		}
	}

	reportDir := cfg.ReportDir
	if !filepath.IsAbs(reportDir) {
		reportDir = filepath.Join(p.Path, reportDir)
	}
	entries, err := s.reader.Read(reportDir)
	if err != nil {
		return nil, fmt.Errorf("reading coverage: %w", err)
	}

	gate := coverage.NewGate(coverage.NewCanonicalizer(p.Path, p.Config.SourceRoot), cfg)
	report.Add(gate.Evaluate(p.Inventory.Files, entries)...)
	report.Normalize()
	s.logger.Debug("coverage evaluated", "entries", len(entries), "violations", len(report.Violations))
	return report, nil
}
