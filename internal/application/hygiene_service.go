package application

import (
	"context"

	"github.com/hashicorp/go-hclog"
	"github.com/openkraft/rulegate/internal/domain"
	"github.com/openkraft/rulegate/internal/domain/hygiene"
)

// HygieneService flags lint suppressions, stray console calls, components in
// .ts files and oversized files.
type HygieneService struct {
	loader *ProjectLoader
	logger hclog.Logger
}

func NewHygieneService(loader *ProjectLoader, logger hclog.Logger) *HygieneService {
	return &HygieneService{loader: loader, logger: named(logger, ValidatorHygiene)}
}

func (s *HygieneService) Name() string { return ValidatorHygiene }

func (s *HygieneService) Validate(_ context.Context, projectPath string) (*domain.Report, error) {
	p, err := s.loader.Load(projectPath)
	if err != nil {
		return nil, err
	}

	checker := hygiene.New(p.Config.Hygiene)
	report := p.NewReport(ValidatorHygiene)
	for _, f := range p.SourceFiles(hygiene.Applies) {
		content, ok := readSource(s.logger, f)
		if !ok {
			continue
		}
		report.Add(checker.CheckFile(f, content)...)
	}
	report.Normalize()
	return report, nil
}
