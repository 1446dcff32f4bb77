// Package coverage cross-references inventoried source files against a
// per-file coverage report.
package coverage

import (
	"path"
	"strconv"
	"strings"

	"github.com/openkraft/rulegate/internal/domain"
)

const (
	RuleUntested        = "coverage/untested-file"
	RuleBelowThreshold  = "coverage/below-threshold"
	RuleGenerationFails = "coverage/generation-failed"
)

// IsCoverageSource reports whether a project-relative path must be covered.
// Tests, test setup, the entry point, __tests__ folders and mock or helper
// files are excluded; only .ts and .tsx files count.
func IsCoverageSource(relPath string) bool {
	name := path.Base(relPath)
	ext := path.Ext(name)
	if ext != ".ts" && ext != ".tsx" {
		return false
	}
	lower := strings.ToLower(name)
	switch {
	case domain.IsTestFileName(name):
		return false
	case strings.Contains(name, "setupTests"), name == "main.tsx":
		return false
	case domain.HasSegment(path.Dir(relPath), "__tests__"):
		return false
	case strings.Contains(lower, "mock"), strings.Contains(lower, "helper"):
		return false
	}
	return true
}

// Canonicalizer maps report keys and inventory paths onto one key space:
// slash separated and relative to the source root.
type Canonicalizer struct {
	projectRoot string
	sourceRoot  string
}

func NewCanonicalizer(projectRoot, sourceRoot string) Canonicalizer {
	return Canonicalizer{
		projectRoot: strings.TrimSuffix(toSlash(projectRoot), "/"),
		sourceRoot:  strings.Trim(toSlash(sourceRoot), "/"),
	}
}

// Canonical returns the canonical key of p, or false when p lies outside
// the source root.
func (c Canonicalizer) Canonical(p string) (string, bool) {
	s := toSlash(p)
	if c.projectRoot != "" && strings.HasPrefix(s, c.projectRoot+"/") {
		s = strings.TrimPrefix(s, c.projectRoot+"/")
	}
	for strings.HasPrefix(s, "./") {
		s = strings.TrimPrefix(s, "./")
	}
	s = strings.TrimLeft(s, "/")

	if c.sourceRoot == "" || c.sourceRoot == "." {
		return s, s != ""
	}
	if strings.HasPrefix(s, c.sourceRoot+"/") {
		return strings.TrimPrefix(s, c.sourceRoot+"/"), true
	}
	marker := "/" + c.sourceRoot + "/"
	if i := strings.Index(s, marker); i >= 0 {
		return s[i+len(marker):], true
	}
	return "", false
}

func toSlash(p string) string { return strings.ReplaceAll(p, `\`, "/") }

// Gate applies per-metric thresholds to every coverage source file.
type Gate struct {
	canon Canonicalizer
	cfg   domain.CoverageConfig
}

func NewGate(canon Canonicalizer, cfg domain.CoverageConfig) *Gate {
	return &Gate{canon: canon, cfg: cfg}
}

// Evaluate returns exactly one violation for every source file missing from
// the report and one violation per metric below threshold otherwise.
func (g *Gate) Evaluate(files []domain.FileRecord, entries []domain.CoverageEntry) []domain.Violation {
	lookup := make(map[string]domain.CoverageEntry, len(entries))
	for _, e := range entries {
		if key, ok := g.canon.Canonical(e.Path); ok {
			lookup[key] = e
		}
	}

	var out []domain.Violation
	for _, f := range files {
		if !IsCoverageSource(f.RelPath) {
			continue
		}
		key, ok := g.canon.Canonical(f.RelPath)
		if !ok {
			continue
		}
		entry, found := lookup[key]
		if !found {
			out = append(out, domain.Errorf(RuleUntested, f.RelPath, 0, "no coverage data found, file may be untested").
				WithHint("add a co-located test that exercises this file"))
			continue
		}
		required := g.cfg.ThresholdFor(key)
		for _, m := range domain.CoverageMetrics {
			actual := entry.Metric(m)
			if actual < required {
				out = append(out, domain.Errorf(RuleBelowThreshold, f.RelPath, 0, "%s: %.2f%% (required: %s%%)",
					m, actual, strconv.FormatFloat(required, 'f', -1, 64)))
			}
		}
	}
	return out
}
