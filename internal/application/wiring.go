package application

import (
	"github.com/hashicorp/go-hclog"
	"github.com/openkraft/rulegate/internal/domain"
)

// Adapters bundles the outbound ports a full validator set needs.
type Adapters struct {
	Scanner   domain.InventoryScanner
	Config    domain.ConfigLoader
	Commits   domain.CommitLog
	Runner    domain.CommandRunner
	Coverage  domain.CoverageReader
	Shortcuts domain.ShortcutReader
	Env       domain.EnvLookup
}

// Services is every validator wired to one set of adapters.
type Services struct {
	Loader    *ProjectLoader
	Structure *StructureService
	Imports   *ImportService
	Coverage  *CoverageService
	Bypass    *BypassService
	Hygiene   *HygieneService
	Toolchain *ToolchainService
	Suite     *SuiteService
}

// NewServices wires the validators. The suite runs the static checks first
// and the slow toolchain and coverage commands last.
func NewServices(a Adapters, logger hclog.Logger) *Services {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	loader := NewProjectLoader(a.Scanner, a.Config, a.Commits, logger)
	s := &Services{
		Loader:    loader,
		Structure: NewStructureService(loader, logger),
		Imports:   NewImportService(loader, logger),
		Coverage:  NewCoverageService(loader, a.Runner, a.Coverage, logger),
		Bypass:    NewBypassService(loader, a.Shortcuts, a.Commits, a.Env, logger),
		Hygiene:   NewHygieneService(loader, logger),
		Toolchain: NewToolchainService(loader, a.Runner, logger),
	}
	s.Suite = NewSuiteService(logger, s.Structure, s.Imports, s.Hygiene, s.Bypass, s.Toolchain, s.Coverage)
	return s
}
