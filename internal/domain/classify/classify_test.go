package classify_test

import (
	"testing"

	"github.com/openkraft/rulegate/internal/domain"
	"github.com/openkraft/rulegate/internal/domain/classify"
	"github.com/stretchr/testify/assert"
)

func defaultClassifier() *classify.Classifier {
	return classify.FromConfig(domain.DefaultConfig())
}

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		line string
		want classify.LineKind
	}{
		{"// import x from '../x'", classify.LineComment},
		{"   /* from '../x' */", classify.LineComment},
		{" * from '../x'", classify.LineComment},
		{"import { a } from '../a'", classify.LineImport},
		{`export { b } from "@/b"`, classify.LineImport},
		{"const x = 1", classify.LineOther},
		{"", classify.LineOther},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, classify.ClassifyLine(tt.line), "line %q", tt.line)
	}
}

func TestExtractImportTarget_FirstClauseOnly(t *testing.T) {
	target, ok := classify.ExtractImportTarget(`import a from './a'; import b from '../b'`)
	assert.True(t, ok)
	assert.Equal(t, "./a", target)
}

func TestExtractImportTarget_DoubleQuotes(t *testing.T) {
	target, ok := classify.ExtractImportTarget(`import { x } from "@/domains/x"`)
	assert.True(t, ok)
	assert.Equal(t, "@/domains/x", target)
}

func TestExtractImportTarget_None(t *testing.T) {
	_, ok := classify.ExtractImportTarget("import './styles.css'")
	assert.False(t, ok)
}

func TestClassifyImportTarget_DecisionTable(t *testing.T) {
	c := defaultClassifier()
	tests := []struct {
		target string
		want   domain.ImportClass
		row    string
	}{
		{"react", domain.ImportExternal, "allow-listed"},
		{"react-dom/client", domain.ImportExternal, "allow-listed"},
		{"@testing-library/react", domain.ImportExternal, "allow-listed"},
		{"@tanstack/react-query", domain.ImportExternal, "scoped-package"},
		{"@/domains/teams", domain.ImportInternalAliased, "aliased"},
		{"./Button", domain.ImportInternalSameDirectory, "same-directory"},
		{"../shared/Button", domain.ImportInternalRelativeForbidden, "relative-parent"},
		{"./nested/../up", domain.ImportInternalRelativeForbidden, "relative-parent"},
		{"src/domains/teams", domain.ImportInternalUnaliasedAbsolute, "source-root"},
		{"~/utils/format", domain.ImportInternalUnaliasedAbsolute, "sigil"},
		{"#internal", domain.ImportInternalUnaliasedAbsolute, "sigil"},
		{"lodash", domain.ImportExternal, "bare-word"},
		{"lodash.debounce", domain.ImportInternalUnaliasedAbsolute, "fallback"},
		{"domains/teams", domain.ImportInternalUnaliasedAbsolute, "fallback"},
	}
	for _, tt := range tests {
		class, row := c.Explain(tt.target)
		assert.Equal(t, tt.want, class, "target %q", tt.target)
		assert.Equal(t, tt.row, row, "target %q", tt.target)
	}
}

func TestClassifyImportTarget_AliasAlwaysAliased(t *testing.T) {
	c := defaultClassifier()
	for _, target := range []string{"@/a", "@/a/b/c", "@/../escape", "@/domains/x/index.ts"} {
		assert.Equal(t, domain.ImportInternalAliased, c.ClassifyImportTarget(target), "target %q", target)
	}
}

func TestClassifyImportTarget_CustomAlias(t *testing.T) {
	c := classify.New("@app/", "src", nil)
	assert.Equal(t, domain.ImportInternalAliased, c.ClassifyImportTarget("@app/teams"))
	assert.Equal(t, domain.ImportExternal, c.ClassifyImportTarget("@scope/pkg"))
}

func TestImportClass_Forbidden(t *testing.T) {
	assert.True(t, domain.ImportInternalRelativeForbidden.Forbidden())
	assert.True(t, domain.ImportInternalUnaliasedAbsolute.Forbidden())
	assert.False(t, domain.ImportInternalSameDirectory.Forbidden())
	assert.False(t, domain.ImportInternalAliased.Forbidden())
	assert.False(t, domain.ImportExternal.Forbidden())
}
