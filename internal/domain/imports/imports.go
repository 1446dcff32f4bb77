// Package imports enforces that internal imports go through the project alias.
package imports

import (
	"bufio"
	"strings"

	"github.com/openkraft/rulegate/internal/domain"
	"github.com/openkraft/rulegate/internal/domain/classify"
)

const (
	RuleRelativePath = "imports/relative-path"
	RuleMissingAlias = "imports/missing-alias"
)

// Enforcer checks source text line by line.
type Enforcer struct {
	classifier *classify.Classifier
	alias      string
}

func New(c *classify.Classifier, aliasPrefix string) *Enforcer {
	if aliasPrefix == "" {
		aliasPrefix = "@/"
	}
	return &Enforcer{classifier: c, alias: aliasPrefix}
}

// Statements returns every import target in content with its class.
// Comment lines are skipped and only the first target per line is taken.
func (e *Enforcer) Statements(file, content string) []domain.ImportStatement {
	var out []domain.ImportStatement
	sc := bufio.NewScanner(strings.NewReader(content))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if classify.ClassifyLine(line) != classify.LineImport {
			continue
		}
		target, _ := classify.ExtractImportTarget(line)
		out = append(out, domain.ImportStatement{
			File:   file,
			Line:   lineNo,
			Target: target,
			Class:  e.classifier.ClassifyImportTarget(target),
		})
	}
	return out
}

// CheckFile returns one violation per forbidden import in content.
func (e *Enforcer) CheckFile(file, content string) []domain.Violation {
	var out []domain.Violation
	for _, st := range e.Statements(file, content) {
		switch st.Class {
		case domain.ImportInternalRelativeForbidden:
			out = append(out, domain.Errorf(RuleRelativePath, file, st.Line,
				"relative import %q must use the %s alias", st.Target, e.alias).
				WithHint("import from " + e.alias + "<path under the source root>"))
		case domain.ImportInternalUnaliasedAbsolute:
			out = append(out, domain.Errorf(RuleMissingAlias, file, st.Line,
				"internal import %q must use the %s alias", st.Target, e.alias).
				WithHint(aliasHint(st.Target, e.alias)))
		}
	}
	return out
}

// aliasHint proposes the aliased spelling of an unaliased absolute target.
func aliasHint(target, alias string) string {
	t := strings.TrimLeft(target, "~*/#$@")
	t = strings.TrimPrefix(t, "src/")
	return "import from " + alias + t
}
