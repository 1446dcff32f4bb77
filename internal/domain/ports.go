package domain

import "context"

// InventoryScanner walks a project directory and returns its file inventory.
type InventoryScanner interface {
	Scan(projectPath string, exclusions ...string) (*Inventory, error)
}

// ConfigLoader loads project configuration.
type ConfigLoader interface {
	Load(projectPath string) (ProjectConfig, error)
}

// CommandResult is the outcome of one toolchain invocation.
type CommandResult struct {
	Command  string `json:"command"`
	ExitCode int    `json:"exit_code"`
	Output   string `json:"output"`
}

// CommandRunner executes a shell command line in dir and blocks until it exits.
// A non-zero exit is reported through CommandResult, not as an error.
type CommandRunner interface {
	Run(ctx context.Context, dir, command string) (CommandResult, error)
}

// CoverageReader loads per-file coverage from a report directory.
// Entry paths are returned exactly as the report spells them.
type CoverageReader interface {
	Read(reportDir string) ([]CoverageEntry, error)
}

// ShortcutReader returns the named command shortcuts of a manifest file.
type ShortcutReader interface {
	Shortcuts(manifestPath string) (map[string]string, error)
}

// CommitLog reads version control history.
type CommitLog interface {
	CommitHash(projectPath string) (string, error)
	RecentSubjects(projectPath string, n int) ([]string, error)
}

// EnvLookup reads an environment variable.
type EnvLookup func(key string) (string, bool)
