package domain

import (
	"path"
	"strings"
)

// Category is the role a source file plays in the project layout.
type Category string

const (
	CategoryComponent Category = "component"
	CategoryHook      Category = "hook"
	CategoryService   Category = "service"
	CategoryType      Category = "type"
	CategoryTest      Category = "test"
	CategoryOther     Category = "other"
)

// FileRecord is one file found during an inventory scan.
type FileRecord struct {
	AbsPath  string   `json:"abs_path"`
	RelPath  string   `json:"rel_path"`
	Ext      string   `json:"ext"`
	Category Category `json:"category"`
}

// Name returns the base name of the file including its extension.
func (f FileRecord) Name() string { return path.Base(f.RelPath) }

// Stem returns the base name without the final extension.
func (f FileRecord) Stem() string { return strings.TrimSuffix(f.Name(), f.Ext) }

// Dir returns the slash-separated directory of the file relative to the root.
func (f FileRecord) Dir() string { return path.Dir(f.RelPath) }

// Inventory is the snapshot of a project tree produced by one scan.
// All relative paths use forward slashes.
type Inventory struct {
	Root  string       `json:"root"`
	Files []FileRecord `json:"files"`
	Dirs  []string     `json:"dirs"`
}

// FilesUnder returns the files whose relative path lies below dir.
func (inv *Inventory) FilesUnder(dir string) []FileRecord {
	prefix := strings.TrimSuffix(dir, "/") + "/"
	var out []FileRecord
	for _, f := range inv.Files {
		if strings.HasPrefix(f.RelPath, prefix) {
			out = append(out, f)
		}
	}
	return out
}

// Lookup finds a file by its relative path.
func (inv *Inventory) Lookup(relPath string) (FileRecord, bool) {
	for _, f := range inv.Files {
		if f.RelPath == relPath {
			return f, true
		}
	}
	return FileRecord{}, false
}

// IsTestFileName reports whether a base name marks a test file.
func IsTestFileName(name string) bool {
	return strings.Contains(name, ".test.") || strings.Contains(name, ".spec.")
}

// HasSegment reports whether a slash path contains seg as a full segment.
func HasSegment(p, seg string) bool {
	for _, s := range strings.Split(p, "/") {
		if s == seg {
			return true
		}
	}
	return false
}

// CategorizeFile assigns exactly one category to a relative path.
// The first matching rule wins: test, hook, service, type, component.
func CategorizeFile(relPath string) Category {
	name := path.Base(relPath)
	dir := path.Dir(relPath)
	switch {
	case IsTestFileName(name) || HasSegment(dir, "__tests__"):
		return CategoryTest
	case HasSegment(dir, "hooks") || strings.HasPrefix(name, "use"):
		return CategoryHook
	case HasSegment(dir, "services"):
		return CategoryService
	case HasSegment(dir, "types"):
		return CategoryType
	case path.Ext(name) == ".tsx":
		return CategoryComponent
	default:
		return CategoryOther
	}
}

// ImportClass is the outcome of classifying an import target.
type ImportClass string

const (
	ImportExternal                  ImportClass = "external"
	ImportInternalAliased           ImportClass = "internal-aliased"
	ImportInternalSameDirectory     ImportClass = "internal-same-directory"
	ImportInternalRelativeForbidden ImportClass = "internal-relative-forbidden"
	ImportInternalUnaliasedAbsolute ImportClass = "internal-unaliased-absolute"
)

// Forbidden reports whether the class must be reported as a violation.
func (c ImportClass) Forbidden() bool {
	return c == ImportInternalRelativeForbidden || c == ImportInternalUnaliasedAbsolute
}

// ImportStatement is one import target found in a source file.
type ImportStatement struct {
	File   string      `json:"file"`
	Line   int         `json:"line"`
	Target string      `json:"target"`
	Class  ImportClass `json:"class"`
}

// CoverageMetric names one of the four coverage percentages.
type CoverageMetric string

const (
	MetricStatements CoverageMetric = "statements"
	MetricBranches   CoverageMetric = "branches"
	MetricFunctions  CoverageMetric = "functions"
	MetricLines      CoverageMetric = "lines"
)

// CoverageMetrics lists the metrics in reporting order.
var CoverageMetrics = []CoverageMetric{MetricStatements, MetricBranches, MetricFunctions, MetricLines}

// CoverageEntry holds the coverage percentages of one file.
type CoverageEntry struct {
	Path       string  `json:"path"`
	Statements float64 `json:"statements"`
	Branches   float64 `json:"branches"`
	Functions  float64 `json:"functions"`
	Lines      float64 `json:"lines"`
}

// Metric returns the percentage for m.
func (e CoverageEntry) Metric(m CoverageMetric) float64 {
	switch m {
	case MetricStatements:
		return e.Statements
	case MetricBranches:
		return e.Branches
	case MetricFunctions:
		return e.Functions
	default:
		return e.Lines
	}
}
