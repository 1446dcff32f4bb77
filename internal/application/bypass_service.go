package application

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"

	"github.com/hashicorp/go-hclog"
	"github.com/openkraft/rulegate/internal/domain"
	"github.com/openkraft/rulegate/internal/domain/bypass"
)

// BypassService scans the hook, validator scripts, shortcuts, recent commits
// and environment for attempts to skip validation.
type BypassService struct {
	loader    *ProjectLoader
	shortcuts domain.ShortcutReader
	commits   domain.CommitLog
	env       domain.EnvLookup
	logger    hclog.Logger
}

func NewBypassService(
	loader *ProjectLoader,
	shortcuts domain.ShortcutReader,
	commits domain.CommitLog,
	env domain.EnvLookup,
	logger hclog.Logger,
) *BypassService {
	if env == nil {
		env = os.LookupEnv
	}
	return &BypassService{loader: loader, shortcuts: shortcuts, commits: commits, env: env, logger: named(logger, ValidatorBypass)}
}

func (s *BypassService) Name() string { return ValidatorBypass }

func (s *BypassService) Validate(_ context.Context, projectPath string) (*domain.Report, error) {
	abs, cfg, err := s.loader.LoadConfig(projectPath)
	if err != nil {
		return nil, err
	}
	bc := cfg.Bypass
	d := bypass.FromConfig(bc)
	report := domain.NewReport(ValidatorBypass, abs)
	report.Commit = s.loader.commitHash(abs)

	// 1. hook script
	if bc.HookScript != "" {
		content, err := os.ReadFile(filepath.Join(abs, bc.HookScript))
		switch {
		case errors.Is(err, os.ErrNotExist):
			report.Add(bypass.MissingHook(bc.HookScript))
		case err != nil:
			s.logger.Warn("cannot read hook", "file", bc.HookScript, "error", err)
			report.Add(bypass.MissingHook(bc.HookScript))
		default:
			report.Add(d.CheckHook(bc.HookScript, string(content), bc.RequiredHookSteps)...)
		}
	}

	// 2. validator scripts
	for _, rel := range s.validatorScripts(abs, bc.ValidatorScripts) {
		content, err := os.ReadFile(filepath.Join(abs, rel))
		if err != nil {
			s.logger.Warn("skipping unreadable script", "file", rel, "error", err)
			continue
		}
		report.Add(d.CheckScript(rel, string(content))...)
	}

	// 3. command shortcuts
	if bc.ShortcutsManifest != "" && s.shortcuts != nil {
		scripts, err := s.shortcuts.Shortcuts(filepath.Join(abs, bc.ShortcutsManifest))
		if err != nil {
			s.logger.Debug("no shortcuts", "manifest", bc.ShortcutsManifest, "error", err)
		} else {
			report.Add(d.CheckShortcuts(bc.ShortcutsManifest, scripts)...)
		}
	}

	// 4. recent commits
	if bc.CommitDepth > 0 && s.commits != nil {
		subjects, err := s.commits.RecentSubjects(abs, bc.CommitDepth)
		if err != nil {
			s.logger.Debug("no commit history", "error", err)
		} else {
			report.Add(d.CheckCommitSubjects(subjects)...)
		}
	}

	// 5. environment
	report.Add(bypass.CheckEnv(bc.EnvVars, s.env)...)

	report.Normalize()
	return report, nil
}

// validatorScripts expands the configured globs relative to the project and
// drops the bypass detectors themselves.
func (s *BypassService) validatorScripts(abs string, patterns []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(abs, pattern))
		if err != nil {
			s.logger.Warn("bad validator script pattern", "pattern", pattern, "error", err)
			continue
		}
		for _, m := range matches {
			rel, err := filepath.Rel(abs, m)
			if err != nil {
				continue
			}
			rel = filepath.ToSlash(rel)
			if seen[rel] || bypass.IsDetectorName(filepath.Base(m)) {
				continue
			}
			if info, err := os.Stat(m); err != nil || info.IsDir() {
				continue
			}
			seen[rel] = true
			out = append(out, rel)
		}
	}
	sort.Strings(out)
	return out
}
