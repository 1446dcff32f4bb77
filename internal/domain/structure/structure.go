// Package structure checks directory layout and file naming against a
// declarative convention table. It works on an inventory snapshot only and
// never touches the filesystem.
package structure

import (
	"path"
	"strings"

	"github.com/openkraft/rulegate/internal/domain"
)

const indexFile = "index.ts"

const (
	RuleMissingIndex     = "structure/missing-index"
	RuleDirCase          = "structure/dir-case"
	RuleMissingPrimary   = "structure/missing-primary-file"
	RuleFlatComponent    = "structure/flat-component"
	RuleMissingTest      = "structure/missing-test"
	RuleMissingPage      = "structure/missing-page-component"
	RuleFileCase         = "structure/file-case"
	RuleFilePrefix       = "structure/file-prefix"
	RuleFileExtension    = "structure/file-extension"
	RuleLegacyTestsDir   = "structure/legacy-tests-dir"
	RuleTestNotColocated = "structure/test-location"
)

// namingExempt files are entry points that keep their framework names.
var namingExempt = map[string]bool{
	"main.tsx":      true,
	"App.tsx":       true,
	"setupTests.ts": true,
}

// Validate runs every convention rule plus the tree-wide naming and test
// location passes. All violations are accumulated; nothing stops early.
func Validate(inv *domain.Inventory, cfg domain.ProjectConfig) ([]domain.Violation, error) {
	if len(cfg.Conventions) == 0 {
		return nil, domain.NewConfigError("convention table is empty")
	}

	t := newTree(inv, cfg.SourceRoot)
	if t.root != "" && t.root != "." && !containsDir(inv, t.root) {
		return nil, domain.NewConfigError("source root %q not found under %s", t.root, inv.Root)
	}

	var out []domain.Violation
	for _, rule := range cfg.Conventions {
		for _, dir := range t.order {
			if matchPattern(rule, dir) {
				out = append(out, checkDir(t, rule, dir)...)
			}
		}
	}
	out = append(out, checkFileNaming(t)...)
	out = append(out, checkTestLocation(t)...)
	return out, nil
}

func containsDir(inv *domain.Inventory, dir string) bool {
	for _, d := range inv.Dirs {
		if d == dir {
			return true
		}
	}
	return false
}

// matchPattern reports whether dir fills rule.Pattern segment for segment.
func matchPattern(rule domain.ConventionRule, dir string) bool {
	pat := strings.Split(strings.Trim(rule.Pattern, "/"), "/")
	segs := strings.Split(dir, "/")
	if len(pat) != len(segs) {
		return false
	}
	lastWild := -1
	for i, p := range pat {
		switch {
		case p == "*":
			lastWild = i
		case p != segs[i]:
			return false
		}
	}
	if lastWild >= 0 {
		for _, ex := range rule.Except {
			if segs[lastWild] == ex {
				return false
			}
		}
	}
	return true
}

func checkDir(t *tree, rule domain.ConventionRule, dir string) []domain.Violation {
	var out []domain.Violation
	name := path.Base(dir)
	shown := t.display(dir)

	needIndex := rule.Index == domain.IndexAlways || (rule.Index == domain.IndexNonEmpty && !t.empty(dir))
	if needIndex && !t.hasFile(join(dir, indexFile)) {
		out = append(out, domain.Errorf(RuleMissingIndex, shown, 0, "missing %s in %s directory", indexFile, rule.Name).
			WithHint("add "+join(shown, indexFile)+" re-exporting the directory's public members"))
	}

	if rule.DirCase != "" && !matchesCase(name, rule.DirCase) {
		out = append(out, domain.Errorf(RuleDirCase, shown, 0, "%s directory must be %s", rule.Name, caseLabel(rule.DirCase)).
			WithHint("rename to "+suggest(name, rule.DirCase)))
	}

	if rule.PrimaryFile && !t.hasFile(join(dir, name+".tsx")) {
		out = append(out, domain.Errorf(RuleMissingPrimary, shown, 0, "missing %s file %s.tsx", rule.Name, name))
	}

	if rule.NoFlatComponents {
		for _, f := range t.directFiles(dir) {
			base := path.Base(f)
			if path.Ext(base) != ".tsx" || domain.IsTestFileName(base) {
				continue
			}
			stem := strings.TrimSuffix(base, ".tsx")
			out = append(out, domain.Errorf(RuleFlatComponent, t.display(f), 0, "component file must be in its own component directory").
				WithHint("move to "+t.display(join(join(dir, stem), base))))
		}
	}

	if rule.WantTests && !hasTest(t, dir) {
		out = append(out, domain.Warnf(RuleMissingTest, shown, 0, "no test file found for %s", rule.Name))
	}

	if rule.PageComponent {
		c := capitalize(name)
		if !t.hasDir(join(dir, c)) && !t.hasFile(join(dir, c+".tsx")) && !t.hasFile(join(dir, c+"Page.tsx")) {
			out = append(out, domain.Errorf(RuleMissingPage, shown, 0, "page must have a component file or directory").
				WithHint("expected "+c+".tsx, "+c+"Page.tsx or directory "+c+"/"))
		}
	}

	if rule.Files != nil {
		for _, f := range t.filesUnder(dir) {
			out = append(out, checkFile(t, rule.Files, dir, f)...)
		}
	}
	return out
}

func hasTest(t *tree, dir string) bool {
	for _, f := range t.filesUnder(dir) {
		if domain.IsTestFileName(path.Base(f)) {
			return true
		}
	}
	return false
}

func checkFile(t *tree, fr *domain.FileRule, dir, rel string) []domain.Violation {
	base := path.Base(rel)
	if domain.IsTestFileName(base) {
		return nil
	}
	ext := path.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	for _, s := range fr.SkipNames {
		if stem == s {
			return nil
		}
	}
	below := strings.TrimPrefix(parentOf(rel), dir)
	for _, seg := range fr.SkipSegments {
		if domain.HasSegment(below, seg) {
			return nil
		}
	}
	for _, p := range fr.ExemptPrefixes {
		if strings.HasPrefix(stem, p) {
			return nil
		}
	}

	var out []domain.Violation
	shown := t.display(rel)
	if fr.Prefix != "" && !strings.HasPrefix(stem, fr.Prefix) {
		out = append(out, prefixViolation(shown, fr.Role, fr.Prefix, stem))
	}
	if fr.Case != "" && !matchesCase(stem, fr.Case) {
		out = append(out, caseViolation(shown, fr.Role, fr.Case, stem))
	}
	if fr.Ext != "" && ext != fr.Ext {
		out = append(out, domain.Errorf(RuleFileExtension, shown, 0, "%s file must use %s extension", fr.Role, fr.Ext).
			WithHint("rename to "+stem+fr.Ext))
	}
	if fr.SiblingTest && ext == ".ts" && !t.hasFile(join(parentOf(rel), stem+".test.ts")) {
		out = append(out, domain.Warnf(RuleMissingTest, shown, 0, "no test file found for %s", fr.Role))
	}
	return out
}

func prefixViolation(file, role, prefix, stem string) domain.Violation {
	return domain.Errorf(RuleFilePrefix, file, 0, "%s file must start with '%s'", role, prefix).
		WithHint("rename to " + prefix + capitalize(stem))
}

func caseViolation(file, role string, c domain.NameCase, stem string) domain.Violation {
	return domain.Errorf(RuleFileCase, file, 0, "%s file must be %s", role, caseLabel(c)).
		WithHint("rename to " + suggest(stem, c))
}

// checkFileNaming applies the tree-wide naming conventions by extension and
// location.
func checkFileNaming(t *tree) []domain.Violation {
	var out []domain.Violation
	for _, rel := range t.filesUnder("") {
		base := path.Base(rel)
		if namingExempt[base] || domain.IsTestFileName(base) {
			continue
		}
		ext := path.Ext(base)
		stem := strings.TrimSuffix(base, ext)
		if stem == "index" {
			continue
		}
		dir := parentOf(rel)
		shown := t.display(rel)

		switch ext {
		case ".tsx":
			if !IsPascalCase(stem) {
				out = append(out, caseViolation(shown, "component", domain.CasePascal, stem))
			}
		case ".ts":
			if domain.HasSegment(dir, "utils") || domain.HasSegment(dir, "helpers") || domain.HasSegment(dir, "base") {
				continue
			}
			switch {
			case dir != "" && IsPascalCase(path.Base(dir)):
				if !IsCamelCase(stem) {
					out = append(out, caseViolation(shown, "component-specific", domain.CaseCamel, stem))
				}
			case domain.HasSegment(dir, "hooks") && !domain.HasSegment(dir, "components"):
				if !strings.HasPrefix(stem, "use") {
					out = append(out, prefixViolation(shown, "hook", "use", stem))
				}
				if !IsCamelCase(stem) {
					out = append(out, caseViolation(shown, "hook", domain.CaseCamel, stem))
				}
			case domain.HasSegment(dir, "services"):
				if !IsCamelCase(stem) && !strings.HasPrefix(stem, "Base") {
					out = append(out, caseViolation(shown, "service", domain.CaseCamel, stem))
				}
			}
		}
	}
	return out
}

// checkTestLocation warns about tests kept in the legacy top-level
// __tests__ directory instead of next to their sources.
func checkTestLocation(t *tree) []domain.Violation {
	const legacy = "__tests__"
	if !t.hasDir(legacy) {
		return nil
	}
	out := []domain.Violation{
		domain.Warnf(RuleLegacyTestsDir, t.display(legacy), 0, "legacy __tests__ directory found").
			WithHint("co-locate tests with the files they test"),
	}
	for _, rel := range t.filesUnder(legacy) {
		if !domain.IsTestFileName(path.Base(rel)) {
			continue
		}
		out = append(out, domain.Warnf(RuleTestNotColocated, t.display(rel), 0, "test file not co-located with its source").
			WithHint("move next to the source file or into its __tests__ subfolder"))
	}
	return out
}
