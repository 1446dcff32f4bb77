// Package classify decides, line by line, what a source line is and how an
// import target relates to the project. Both decisions are ordered tables
// evaluated first match wins, so every row can be tested on its own.
package classify

import (
	"regexp"
	"strings"

	"github.com/openkraft/rulegate/internal/domain"
)

// LineKind is the coarse role of one physical source line.
type LineKind string

const (
	LineComment LineKind = "comment"
	LineImport  LineKind = "import"
	LineOther   LineKind = "other"
)

var fromClause = regexp.MustCompile(`from\s+(?:'([^']+)'|"([^"]+)")`)

// IsComment reports whether the trimmed line opens or continues a comment.
func IsComment(line string) bool {
	t := strings.TrimSpace(line)
	return strings.HasPrefix(t, "//") || strings.HasPrefix(t, "/*") || strings.HasPrefix(t, "*")
}

// ClassifyLine returns the kind of a physical line.
func ClassifyLine(line string) LineKind {
	if IsComment(line) {
		return LineComment
	}
	if _, ok := ExtractImportTarget(line); ok {
		return LineImport
	}
	return LineOther
}

// ExtractImportTarget returns the first from-clause target on the line.
// Later clauses on the same physical line are ignored.
func ExtractImportTarget(line string) (string, bool) {
	m := fromClause.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	if m[1] != "" {
		return m[1], true
	}
	return m[2], true
}

var scopedPackage = regexp.MustCompile(`^@[a-z0-9-]+/[a-z0-9-@/]+$`)

// importRule is one row of the import decision table.
type importRule struct {
	name  string
	class domain.ImportClass
	match func(c *Classifier, target string) bool
}

// Classifier classifies import targets for one project configuration.
type Classifier struct {
	aliasPrefix string
	sourceRoot  string
	externals   []string
	rules       []importRule
}

// New creates a Classifier. An empty aliasPrefix falls back to "@/".
func New(aliasPrefix, sourceRoot string, externals []string) *Classifier {
	if aliasPrefix == "" {
		aliasPrefix = "@/"
	}
	return &Classifier{
		aliasPrefix: aliasPrefix,
		sourceRoot:  strings.Trim(sourceRoot, "/"),
		externals:   externals,
		rules:       importRules,
	}
}

// FromConfig creates a Classifier from project configuration.
func FromConfig(cfg domain.ProjectConfig) *Classifier {
	return New(cfg.AliasPrefix, cfg.SourceRoot, cfg.ExternalPackages)
}

var importRules = []importRule{
	{"allow-listed", domain.ImportExternal, (*Classifier).isAllowListed},
	{"scoped-package", domain.ImportExternal, (*Classifier).isScopedPackage},
	{"aliased", domain.ImportInternalAliased, (*Classifier).isAliased},
	{"same-directory", domain.ImportInternalSameDirectory, isSameDirectory},
	{"relative-parent", domain.ImportInternalRelativeForbidden, isRelativeParent},
	{"source-root", domain.ImportInternalUnaliasedAbsolute, (*Classifier).isSourceRooted},
	{"sigil", domain.ImportInternalUnaliasedAbsolute, isSigil},
	{"bare-word", domain.ImportExternal, isBareWord},
}

// ClassifyImportTarget applies the decision table. Targets no row matches
// are treated as unaliased internal imports.
func (c *Classifier) ClassifyImportTarget(target string) domain.ImportClass {
	class, _ := c.Explain(target)
	return class
}

// Explain returns the class and the name of the table row that produced it.
func (c *Classifier) Explain(target string) (domain.ImportClass, string) {
	for _, r := range c.rules {
		if r.match(c, target) {
			return r.class, r.name
		}
	}
	return domain.ImportInternalUnaliasedAbsolute, "fallback"
}

func (c *Classifier) isAllowListed(target string) bool {
	for _, pkg := range c.externals {
		if target == pkg || strings.HasPrefix(target, strings.TrimSuffix(pkg, "/")+"/") {
			return true
		}
	}
	return false
}

func (c *Classifier) isScopedPackage(target string) bool {
	if strings.HasPrefix(target, c.aliasPrefix) || target == strings.TrimSuffix(c.aliasPrefix, "/") {
		return false
	}
	return scopedPackage.MatchString(target)
}

func (c *Classifier) isAliased(target string) bool {
	return strings.HasPrefix(target, c.aliasPrefix)
}

func isSameDirectory(_ *Classifier, target string) bool {
	return strings.HasPrefix(target, "./") && !strings.Contains(target, "../")
}

func isRelativeParent(_ *Classifier, target string) bool {
	return strings.HasPrefix(target, "../") || target == ".." ||
		(strings.HasPrefix(target, "./") && strings.Contains(target, "../"))
}

func (c *Classifier) isSourceRooted(target string) bool {
	if c.sourceRoot == "" {
		return false
	}
	return strings.HasPrefix(target, c.sourceRoot+"/") || strings.HasPrefix(target, "/"+c.sourceRoot+"/")
}

func isSigil(_ *Classifier, target string) bool {
	for _, p := range []string{"~/", "*/", "/", "#", "$", "@"} {
		if strings.HasPrefix(target, p) {
			return true
		}
	}
	return false
}

func isBareWord(_ *Classifier, target string) bool {
	return target != "" && !strings.ContainsAny(target, "/@.")
}
