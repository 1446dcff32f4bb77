package application

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/openkraft/rulegate/internal/domain"
)

const (
	RuleLintFailed      = "toolchain/lint"
	RuleTypeCheckFailed = "toolchain/type-check"
)

// ToolchainService runs the lint and type-check commands as black boxes.
type ToolchainService struct {
	loader *ProjectLoader
	runner domain.CommandRunner
	logger hclog.Logger
}

func NewToolchainService(loader *ProjectLoader, runner domain.CommandRunner, logger hclog.Logger) *ToolchainService {
	return &ToolchainService{loader: loader, runner: runner, logger: named(logger, ValidatorToolchain)}
}

func (s *ToolchainService) Name() string { return ValidatorToolchain }

// Validate runs every configured command even after one of them fails.
func (s *ToolchainService) Validate(ctx context.Context, projectPath string) (*domain.Report, error) {
	abs, cfg, err := s.loader.LoadConfig(projectPath)
	if err != nil {
		return nil, err
	}
	report := domain.NewReport(ValidatorToolchain, abs)
	report.Commit = s.loader.commitHash(abs)

	steps := []struct {
		rule, label, command string
	}{
		{RuleLintFailed, "lint reported errors or warnings", cfg.Toolchain.Lint},
		{RuleTypeCheckFailed, "type check reported errors", cfg.Toolchain.TypeCheck},
	}
	for _, step := range steps {
		if step.command == "" {
			continue
		}
		s.logger.Info("running", "command", step.command)
		res, err := s.runner.Run(ctx, abs, step.command)
		if err != nil {
			return nil, fmt.Errorf("running toolchain: %w", err)
		}
		if res.ExitCode != 0 {
			report.AddFailure(domain.ToolchainFailure{
				Rule:     step.rule,
				Command:  res.Command,
				ExitCode: res.ExitCode,
				Output:   res.Output,
				Message:  step.label,
			})
		}
	}
	return report, nil
}
