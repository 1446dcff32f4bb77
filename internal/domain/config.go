package domain

import (
	"fmt"
	"strings"
)

// ProjectConfig holds project-level configuration loaded from .rulegate.yaml.
type ProjectConfig struct {
	SourceRoot       string           `yaml:"source_root"       json:"source_root"`
	AliasPrefix      string           `yaml:"alias_prefix"      json:"alias_prefix"`
	ExternalPackages []string         `yaml:"external_packages" json:"external_packages"`
	ExcludeDirs      []string         `yaml:"exclude_dirs"      json:"exclude_dirs"`
	SourceExtensions []string         `yaml:"source_extensions" json:"source_extensions"`
	Conventions      []ConventionRule `yaml:"conventions"       json:"conventions"`
	Coverage         CoverageConfig   `yaml:"coverage"          json:"coverage"`
	Bypass           BypassConfig     `yaml:"bypass"            json:"bypass"`
	Hygiene          HygieneConfig    `yaml:"hygiene"           json:"hygiene"`
	Toolchain        ToolchainConfig  `yaml:"toolchain"         json:"toolchain"`
	LogLevel         string           `yaml:"log_level"         json:"log_level,omitempty"`
}

// CoverageConfig configures the coverage gate.
type CoverageConfig struct {
	Command    string              `yaml:"command"    json:"command"`
	ReportDir  string              `yaml:"report_dir" json:"report_dir"`
	Threshold  float64             `yaml:"threshold"  json:"threshold"`
	Exemptions []CoverageExemption `yaml:"exemptions" json:"exemptions,omitempty"`
}

// CoverageExemption lowers the required percentage for a single file.
// A reason is mandatory so every exemption is reviewable.
type CoverageExemption struct {
	Path    string  `yaml:"path"    json:"path"`
	Minimum float64 `yaml:"minimum" json:"minimum"`
	Reason  string  `yaml:"reason"  json:"reason"`
}

// BypassConfig configures the anti-bypass detectors.
type BypassConfig struct {
	HookScript        string   `yaml:"hook_script"         json:"hook_script"`
	ValidatorScripts  []string `yaml:"validator_scripts"   json:"validator_scripts"`
	ShortcutsManifest string   `yaml:"shortcuts_manifest"  json:"shortcuts_manifest"`
	CommitDepth       int      `yaml:"commit_depth"        json:"commit_depth"`
	RequiredHookSteps []string `yaml:"required_hook_steps" json:"required_hook_steps"`
	EnvVars           []string `yaml:"bypass_env_vars"     json:"bypass_env_vars"`
	PermissionMarker  string   `yaml:"permission_marker"   json:"permission_marker"`
	SelfNames         []string `yaml:"self_names"          json:"self_names"`
}

// HygieneConfig configures the source hygiene validator.
type HygieneConfig struct {
	MaxFileLines       int      `yaml:"max_file_lines"      json:"max_file_lines"`
	LoggerFiles        []string `yaml:"logger_files"        json:"logger_files"`
	SuppressionMarkers []string `yaml:"suppression_markers" json:"suppression_markers"`
}

// ToolchainConfig names the lint and type-check commands run as black boxes.
type ToolchainConfig struct {
	Lint      string `yaml:"lint"       json:"lint"`
	TypeCheck string `yaml:"type_check" json:"type_check"`
}

// DefaultThreshold is the per-metric minimum coverage percentage.
const DefaultThreshold = 80.0

// DefaultConfig returns the built-in rulebook.
func DefaultConfig() ProjectConfig {
	return ProjectConfig{
		SourceRoot:  "src",
		AliasPrefix: "@/",
		ExternalPackages: []string{
			"react", "react-dom", "@testing-library", "@vitejs",
			"zustand", "react-router", "date-fns", "clsx",
		},
		ExcludeDirs:      []string{"node_modules", "dist", "build", "coverage", ".git"},
		SourceExtensions: []string{".ts", ".tsx", ".js", ".jsx"},
		Conventions:      DefaultConventions(),
		Coverage: CoverageConfig{
			Command:   "npm run test:coverage",
			ReportDir: "coverage",
			Threshold: DefaultThreshold,
		},
		Bypass: BypassConfig{
			HookScript:        ".husky/pre-commit",
			ValidatorScripts:  []string{"scripts/validate-*"},
			ShortcutsManifest: "package.json",
			CommitDepth:       10,
			RequiredHookSteps: []string{
				"npm run lint", "npm run type-check", "npm run validate:",
				"npm run test", "npm run build",
			},
			EnvVars:          []string{"GIT_COMMIT_NO_VERIFY", "SKIP_GIT_HOOKS", "BYPASS_PRE_COMMIT", "HUSKY=0"},
			PermissionMarker: "PERMISSION_GRANTED_BY_USER",
			SelfNames:        []string{"no-skip", "no-bypass", "no-verify", "no-eslint-disable", "rulegate"},
		},
		Hygiene: HygieneConfig{
			MaxFileLines:       100,
			LoggerFiles:        []string{"utils/logger"},
			SuppressionMarkers: []string{"eslint-disable", "@ts-ignore", "@ts-nocheck"},
		},
		Toolchain: ToolchainConfig{
			Lint:      "npm run lint",
			TypeCheck: "npm run type-check",
		},
	}
}

var validLogLevels = []string{"", "trace", "debug", "info", "warn", "error"}

// Validate checks the config for invalid values and returns a descriptive error.
func (c ProjectConfig) Validate() error {
	// 1. alias prefix must end in a separator so "@/x" cannot match "@scope/x"
	if c.AliasPrefix != "" && !strings.HasSuffix(c.AliasPrefix, "/") {
		return fmt.Errorf("alias_prefix %q must end with \"/\"", c.AliasPrefix)
	}

	// 2. source extensions are dotted
	for _, ext := range c.SourceExtensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("source_extensions entry %q must start with \".\"", ext)
		}
	}

	// 3. an explicit but empty rule table leaves nothing to enforce
	if c.Conventions != nil && len(c.Conventions) == 0 {
		return fmt.Errorf("conventions must not be empty (omit the key to use the built-in table)")
	}
	for i, r := range c.Conventions {
		if err := r.validate(); err != nil {
			return fmt.Errorf("conventions[%d]: %w", i, err)
		}
	}

	// 4. coverage percentages are 0-100 and exemptions carry a reason
	if c.Coverage.Threshold < 0 || c.Coverage.Threshold > 100 {
		return fmt.Errorf("coverage.threshold = %.2f (must be between 0 and 100)", c.Coverage.Threshold)
	}
	for i, ex := range c.Coverage.Exemptions {
		if ex.Path == "" {
			return fmt.Errorf("coverage.exemptions[%d].path must not be empty", i)
		}
		if strings.TrimSpace(ex.Reason) == "" {
			return fmt.Errorf("coverage.exemptions[%d] (%s) must state a reason", i, ex.Path)
		}
		if ex.Minimum < 0 || ex.Minimum > 100 {
			return fmt.Errorf("coverage.exemptions[%d].minimum = %.2f (must be between 0 and 100)", i, ex.Minimum)
		}
	}

	// 5. counters must not be negative
	if c.Bypass.CommitDepth < 0 {
		return fmt.Errorf("bypass.commit_depth must be >= 0 (got %d)", c.Bypass.CommitDepth)
	}
	if c.Hygiene.MaxFileLines < 0 {
		return fmt.Errorf("hygiene.max_file_lines must be >= 0 (got %d)", c.Hygiene.MaxFileLines)
	}

	// 6. log level must be known
	level := strings.ToLower(c.LogLevel)
	valid := false
	for _, l := range validLogLevels {
		if level == l {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unknown log_level %q (valid: trace, debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// ThresholdFor returns the minimum percentage required of a canonical path.
func (c CoverageConfig) ThresholdFor(canonical string) float64 {
	for _, ex := range c.Exemptions {
		if ex.Path == canonical {
			return ex.Minimum
		}
	}
	return c.Threshold
}

// IsSourceExt reports whether ext is one of the configured source extensions.
func (c ProjectConfig) IsSourceExt(ext string) bool {
	for _, e := range c.SourceExtensions {
		if e == ext {
			return true
		}
	}
	return false
}
