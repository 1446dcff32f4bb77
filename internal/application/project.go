package application

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/openkraft/rulegate/internal/domain"
)

// Validator names.
const (
	ValidatorStructure = "structure"
	ValidatorImports   = "imports"
	ValidatorCoverage  = "coverage"
	ValidatorBypass    = "bypass"
	ValidatorHygiene   = "hygiene"
	ValidatorToolchain = "toolchain"
)

// Validator runs one independent check over a project and returns its report.
// A returned error means the check could not run at all.
type Validator interface {
	Name() string
	Validate(ctx context.Context, projectPath string) (*domain.Report, error)
}

// Project is the state shared by every validator for one run.
type Project struct {
	Path      string
	Config    domain.ProjectConfig
	Inventory *domain.Inventory
	Commit    string
}

// NewReport starts a report stamped with the project root and commit.
func (p *Project) NewReport(validator string) *domain.Report {
	r := domain.NewReport(validator, p.Path)
	r.Commit = p.Commit
	return r
}

// SourceFiles returns the inventoried files below the source root whose
// extension passes keep.
func (p *Project) SourceFiles(keep func(domain.FileRecord) bool) []domain.FileRecord {
	root := strings.Trim(p.Config.SourceRoot, "/")
	var files []domain.FileRecord
	candidates := p.Inventory.Files
	if root != "" && root != "." {
		candidates = p.Inventory.FilesUnder(root)
	}
	for _, f := range candidates {
		if keep(f) {
			files = append(files, f)
		}
	}
	return files
}

// ProjectLoader loads configuration, inventory and revision for a project.
type ProjectLoader struct {
	scanner      domain.InventoryScanner
	configLoader domain.ConfigLoader
	commits      domain.CommitLog
	logger       hclog.Logger
}

func NewProjectLoader(
	scanner domain.InventoryScanner,
	configLoader domain.ConfigLoader,
	commits domain.CommitLog,
	logger hclog.Logger,
) *ProjectLoader {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &ProjectLoader{scanner: scanner, configLoader: configLoader, commits: commits, logger: logger}
}

// LoadConfig resolves projectPath and loads its configuration.
func (l *ProjectLoader) LoadConfig(projectPath string) (string, domain.ProjectConfig, error) {
	abs, err := filepath.Abs(projectPath)
	if err != nil {
		return "", domain.ProjectConfig{}, err
	}
	cfg, err := l.configLoader.Load(abs)
	if err != nil {
		return "", domain.ProjectConfig{}, fmt.Errorf("loading config: %w", err)
	}
	return abs, cfg, nil
}

// Load builds the Project. A missing source root is a configuration error.
func (l *ProjectLoader) Load(projectPath string) (*Project, error) {
	abs, cfg, err := l.LoadConfig(projectPath)
	if err != nil {
		return nil, err
	}

	if cfg.SourceRoot != "" && cfg.SourceRoot != "." {
		info, err := os.Stat(filepath.Join(abs, cfg.SourceRoot))
		if err != nil || !info.IsDir() {
			return nil, domain.NewConfigError("source root %q not found in %s", cfg.SourceRoot, abs)
		}
	}

	inv, err := l.scanner.Scan(abs, cfg.ExcludeDirs...)
	if err != nil {
		return nil, fmt.Errorf("scanning project: %w", err)
	}
	l.logger.Debug("inventory scanned", "root", abs, "files", len(inv.Files), "dirs", len(inv.Dirs))

	return &Project{Path: abs, Config: cfg, Inventory: inv, Commit: l.commitHash(abs)}, nil
}

func (l *ProjectLoader) commitHash(abs string) string {
	if l.commits == nil {
		return ""
	}
	hash, err := l.commits.CommitHash(abs)
	if err != nil {
		l.logger.Debug("no commit hash", "error", err)
		return ""
	}
	return hash
}

// readSource reads f, logging and skipping unreadable files.
func readSource(logger hclog.Logger, f domain.FileRecord) (string, bool) {
	data, err := os.ReadFile(f.AbsPath)
	if err != nil {
		logger.Warn("skipping unreadable file", "file", f.RelPath, "error", err)
		return "", false
	}
	return string(data), true
}
