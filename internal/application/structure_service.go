package application

import (
	"context"

	"github.com/hashicorp/go-hclog"
	"github.com/openkraft/rulegate/internal/domain"
	"github.com/openkraft/rulegate/internal/domain/structure"
)

// StructureService validates directory layout and file naming.
type StructureService struct {
	loader *ProjectLoader
	logger hclog.Logger
}

func NewStructureService(loader *ProjectLoader, logger hclog.Logger) *StructureService {
	return &StructureService{loader: loader, logger: named(logger, ValidatorStructure)}
}

func (s *StructureService) Name() string { return ValidatorStructure }

func (s *StructureService) Validate(_ context.Context, projectPath string) (*domain.Report, error) {
	p, err := s.loader.Load(projectPath)
	if err != nil {
		return nil, err
	}
	return s.ValidateProject(p)
}

// ValidateProject runs the structure rules over an already loaded project.
func (s *StructureService) ValidateProject(p *Project) (*domain.Report, error) {
	vs, err := structure.Validate(p.Inventory, p.Config)
	if err != nil {
		return nil, err
	}
	report := p.NewReport(ValidatorStructure)
	report.Add(vs...)
	report.Normalize()
	s.logger.Debug("structure validated", "rules", len(p.Config.Conventions), "violations", len(report.Violations))
	return report, nil
}

func named(logger hclog.Logger, name string) hclog.Logger {
	if logger == nil {
		return hclog.NewNullLogger()
	}
	return logger.Named(name)
}
