package application

import (
	"context"

	"github.com/hashicorp/go-hclog"
	"github.com/openkraft/rulegate/internal/domain"
	"github.com/openkraft/rulegate/internal/domain/classify"
	"github.com/openkraft/rulegate/internal/domain/imports"
)

// ImportService enforces alias-prefixed internal imports.
type ImportService struct {
	loader *ProjectLoader
	logger hclog.Logger
}

func NewImportService(loader *ProjectLoader, logger hclog.Logger) *ImportService {
	return &ImportService{loader: loader, logger: named(logger, ValidatorImports)}
}

func (s *ImportService) Name() string { return ValidatorImports }

func (s *ImportService) Validate(_ context.Context, projectPath string) (*domain.Report, error) {
	p, err := s.loader.Load(projectPath)
	if err != nil {
		return nil, err
	}

	enforcer := imports.New(classify.FromConfig(p.Config), p.Config.AliasPrefix)
	report := p.NewReport(ValidatorImports)
	files := p.SourceFiles(func(f domain.FileRecord) bool { return p.Config.IsSourceExt(f.Ext) })
	for _, f := range files {
		content, ok := readSource(s.logger, f)
		if !ok {
			continue
		}
		report.Add(enforcer.CheckFile(f.RelPath, content)...)
	}
	report.Normalize()
	s.logger.Debug("imports checked", "files", len(files), "violations", len(report.Violations))
	return report, nil
}

// Classify explains how target would be classified under the project's
// configuration.
func (s *ImportService) Classify(projectPath, target string) (domain.ImportClass, string, error) {
	_, cfg, err := s.loader.LoadConfig(projectPath)
	if err != nil {
		return "", "", err
	}
	class, row := classify.FromConfig(cfg).Explain(target)
	return class, row, nil
}
