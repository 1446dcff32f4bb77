// Package hygiene flags source-level shortcuts that hide problems from the
// toolchain: lint suppressions, stray console diagnostics, components in
// non-component files and oversized files.
package hygiene

import (
	"path"
	"regexp"
	"strings"

	"github.com/openkraft/rulegate/internal/domain"
	"github.com/openkraft/rulegate/internal/domain/classify"
)

const (
	RuleLintSuppression = "hygiene/lint-suppression"
	RuleConsoleCall     = "hygiene/console-call"
	RuleComponentInTS   = "hygiene/component-in-ts"
	RuleFileTooLong     = "hygiene/file-too-long"
)

var (
	consoleCall = regexp.MustCompile(`\bconsole\.(error|warn)\(`)
	jsxReturn   = regexp.MustCompile(`return\s*\(\s*<`)
)

// Checker applies the hygiene rules to one file at a time.
type Checker struct {
	cfg domain.HygieneConfig
}

func New(cfg domain.HygieneConfig) *Checker {
	return &Checker{cfg: cfg}
}

// Applies reports whether f is subject to hygiene checks.
func Applies(f domain.FileRecord) bool {
	return f.Ext == ".ts" || f.Ext == ".tsx"
}

// CheckFile returns every hygiene violation in content.
func (c *Checker) CheckFile(f domain.FileRecord, content string) []domain.Violation {
	var out []domain.Violation
	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	test := f.Category == domain.CategoryTest
	logger := c.isLogger(f.RelPath)
	typesDir := domain.HasSegment(path.Dir(f.RelPath), "types")

	for i, line := range lines {
		if !typesDir {
			if m := c.suppression(line); m != "" {
				out = append(out, domain.Errorf(RuleLintSuppression, f.RelPath, i+1, "%s comment is not allowed", m).
					WithHint("fix the reported issue instead of silencing it"))
			}
		}
		if test || logger || classify.IsComment(line) {
			continue
		}
		if m := consoleCall.FindStringSubmatch(line); m != nil {
			out = append(out, domain.Errorf(RuleConsoleCall, f.RelPath, i+1, "console.%s call outside the logger utility", m[1]).
				WithHint("route diagnostics through the logger utility"))
		}
	}

	if f.Ext == ".ts" && !test && looksLikeComponent(content) {
		out = append(out, domain.Errorf(RuleComponentInTS, f.RelPath, 0, "file appears to be a component but uses the .ts extension").
			WithHint("rename to "+f.Stem()+".tsx or move the component out"))
	}

	if c.cfg.MaxFileLines > 0 && !test && len(lines) > c.cfg.MaxFileLines {
		out = append(out, domain.Errorf(RuleFileTooLong, f.RelPath, 0, "file has %d lines (max: %d)", len(lines), c.cfg.MaxFileLines).
			WithHint("split the file into smaller modules"))
	}
	return out
}

// suppression returns the marker found in a comment on line, if any.
func (c *Checker) suppression(line string) string {
	for _, m := range c.cfg.SuppressionMarkers {
		i := strings.Index(line, m)
		if i < 0 {
			continue
		}
		before := line[:i]
		if strings.Contains(before, "//") || strings.Contains(before, "/*") {
			return m
		}
	}
	return ""
}

func (c *Checker) isLogger(relPath string) bool {
	noExt := strings.TrimSuffix(relPath, path.Ext(relPath))
	for _, l := range c.cfg.LoggerFiles {
		if noExt == l || strings.HasSuffix(noExt, "/"+l) {
			return true
		}
	}
	return false
}

func looksLikeComponent(content string) bool {
	return strings.Contains(content, "React.FC") || jsxReturn.MatchString(content)
}
