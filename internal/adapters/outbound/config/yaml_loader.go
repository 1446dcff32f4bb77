package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/openkraft/rulegate/internal/domain"
	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file looked up in the project root.
const FileName = ".rulegate.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .rulegate.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .rulegate.yaml from projectPath.
// Returns DefaultConfig if the file does not exist.
func (l *YAMLLoader) Load(projectPath string) (domain.ProjectConfig, error) {
	data, err := os.ReadFile(filepath.Join(projectPath, FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.ProjectConfig{}, &domain.ConfigError{Msg: "reading " + FileName, Err: err}
	}

	var cfg domain.ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.ProjectConfig{}, &domain.ConfigError{Msg: "loading " + FileName, Err: fmt.Errorf("parsing %s: %w", FileName, err)}
	}

	// Validate before merging so typos in the raw input are reported.
	if err := cfg.Validate(); err != nil {
		return domain.ProjectConfig{}, &domain.ConfigError{Msg: "loading " + FileName, Err: fmt.Errorf("invalid %s: %w", FileName, err)}
	}

	return mergeConfig(domain.DefaultConfig(), cfg), nil
}

// mergeConfig overlays explicit overrides on top of the built-in defaults.
// Explicit (non-zero) values always win; lists replace, never append.
func mergeConfig(base, override domain.ProjectConfig) domain.ProjectConfig {
	result := base

	str(&result.SourceRoot, override.SourceRoot)
	str(&result.AliasPrefix, override.AliasPrefix)
	str(&result.LogLevel, override.LogLevel)
	list(&result.ExternalPackages, override.ExternalPackages)
	list(&result.ExcludeDirs, override.ExcludeDirs)
	list(&result.SourceExtensions, override.SourceExtensions)
	if len(override.Conventions) > 0 {
		result.Conventions = override.Conventions
	}

	c := override.Coverage
	str(&result.Coverage.Command, c.Command)
	str(&result.Coverage.ReportDir, c.ReportDir)
	if c.Threshold > 0 {
		result.Coverage.Threshold = c.Threshold
	}
	if len(c.Exemptions) > 0 {
		result.Coverage.Exemptions = c.Exemptions
	}

	b := override.Bypass
	str(&result.Bypass.HookScript, b.HookScript)
	str(&result.Bypass.ShortcutsManifest, b.ShortcutsManifest)
	str(&result.Bypass.PermissionMarker, b.PermissionMarker)
	list(&result.Bypass.ValidatorScripts, b.ValidatorScripts)
	list(&result.Bypass.RequiredHookSteps, b.RequiredHookSteps)
	list(&result.Bypass.EnvVars, b.EnvVars)
	list(&result.Bypass.SelfNames, b.SelfNames)
	if b.CommitDepth > 0 {
		result.Bypass.CommitDepth = b.CommitDepth
	}

	h := override.Hygiene
	if h.MaxFileLines > 0 {
		result.Hygiene.MaxFileLines = h.MaxFileLines
	}
	list(&result.Hygiene.LoggerFiles, h.LoggerFiles)
	list(&result.Hygiene.SuppressionMarkers, h.SuppressionMarkers)

	str(&result.Toolchain.Lint, override.Toolchain.Lint)
	str(&result.Toolchain.TypeCheck, override.Toolchain.TypeCheck)

	return result
}

func str(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func list(dst *[]string, v []string) {
	if len(v) > 0 {
		*dst = v
	}
}
