package domain_test

import (
	"testing"

	"github.com/openkraft/rulegate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := domain.DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "src", cfg.SourceRoot)
	assert.Equal(t, "@/", cfg.AliasPrefix)
	assert.Equal(t, domain.DefaultThreshold, cfg.Coverage.Threshold)
	assert.NotEmpty(t, cfg.Conventions)
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.ProjectConfig)
		want   string
	}{
		{"alias suffix", func(c *domain.ProjectConfig) { c.AliasPrefix = "@" }, "alias_prefix"},
		{"undotted extension", func(c *domain.ProjectConfig) { c.SourceExtensions = []string{"ts"} }, "source_extensions"},
		{"empty conventions", func(c *domain.ProjectConfig) { c.Conventions = []domain.ConventionRule{} }, "conventions must not be empty"},
		{"nameless rule", func(c *domain.ProjectConfig) { c.Conventions = []domain.ConventionRule{{Pattern: "x/*"}} }, "name must not be empty"},
		{"bad index", func(c *domain.ProjectConfig) {
			c.Conventions = []domain.ConventionRule{{Name: "x", Pattern: "x/*", Index: "sometimes"}}
		}, "unknown index policy"},
		{"bad case", func(c *domain.ProjectConfig) {
			c.Conventions = []domain.ConventionRule{{Name: "x", Pattern: "x/*", DirCase: "kebab"}}
		}, "unknown case"},
		{"threshold", func(c *domain.ProjectConfig) { c.Coverage.Threshold = 101 }, "coverage.threshold"},
		{"exemption reason", func(c *domain.ProjectConfig) {
			c.Coverage.Exemptions = []domain.CoverageExemption{{Path: "a.ts", Minimum: 10}}
		}, "must state a reason"},
		{"exemption path", func(c *domain.ProjectConfig) {
			c.Coverage.Exemptions = []domain.CoverageExemption{{Minimum: 10, Reason: "x"}}
		}, "path must not be empty"},
		{"commit depth", func(c *domain.ProjectConfig) { c.Bypass.CommitDepth = -1 }, "commit_depth"},
		{"max lines", func(c *domain.ProjectConfig) { c.Hygiene.MaxFileLines = -5 }, "max_file_lines"},
		{"log level", func(c *domain.ProjectConfig) { c.LogLevel = "verbose" }, "unknown log_level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := domain.DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestThresholdFor(t *testing.T) {
	c := domain.CoverageConfig{
		Threshold:  80,
		Exemptions: []domain.CoverageExemption{{Path: "legacy/a.ts", Minimum: 30, Reason: "legacy"}},
	}
	assert.Equal(t, 30.0, c.ThresholdFor("legacy/a.ts"))
	assert.Equal(t, 80.0, c.ThresholdFor("b.ts"))
}

func TestIsSourceExt(t *testing.T) {
	cfg := domain.DefaultConfig()
	assert.True(t, cfg.IsSourceExt(".tsx"))
	assert.False(t, cfg.IsSourceExt(".css"))
}
