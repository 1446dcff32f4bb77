package domain_test

import (
	"testing"

	"github.com/openkraft/rulegate/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestCategorizeFile(t *testing.T) {
	tests := []struct {
		path string
		want domain.Category
	}{
		{"src/domains/teams/components/Card/Card.test.tsx", domain.CategoryTest},
		{"src/domains/teams/__tests__/fixtures.ts", domain.CategoryTest},
		{"src/domains/teams/hooks/useTeams.ts", domain.CategoryHook},
		{"src/domains/teams/hooks/index.ts", domain.CategoryHook},
		{"src/shared/useDebounce.ts", domain.CategoryHook},
		{"src/domains/teams/services/teamService.ts", domain.CategoryService},
		{"src/domains/teams/types/team.ts", domain.CategoryType},
		{"src/domains/teams/components/Card/Card.tsx", domain.CategoryComponent},
		{"src/utils/format.ts", domain.CategoryOther},
		{"src/myhooks/format.ts", domain.CategoryOther},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, domain.CategorizeFile(tt.path), "path %q", tt.path)
	}
}

func TestFileRecord_Names(t *testing.T) {
	f := domain.FileRecord{RelPath: "src/domains/teams/Card.tsx", Ext: ".tsx"}
	assert.Equal(t, "Card.tsx", f.Name())
	assert.Equal(t, "Card", f.Stem())
	assert.Equal(t, "src/domains/teams", f.Dir())
}

func TestInventory_FilesUnder(t *testing.T) {
	inv := &domain.Inventory{Files: []domain.FileRecord{
		{RelPath: "src/a.ts"},
		{RelPath: "srcx/b.ts"},
		{RelPath: "src/deep/c.ts"},
	}}
	got := inv.FilesUnder("src")
	assert.Len(t, got, 2)

	_, ok := inv.Lookup("src/deep/c.ts")
	assert.True(t, ok)
	_, ok = inv.Lookup("src/deep")
	assert.False(t, ok)
}

func TestHasSegment(t *testing.T) {
	assert.True(t, domain.HasSegment("src/domains/hooks", "hooks"))
	assert.False(t, domain.HasSegment("src/domains/myhooks", "hooks"))
}

func TestImportClass_Forbidden(t *testing.T) {
	assert.True(t, domain.ImportInternalRelativeForbidden.Forbidden())
	assert.True(t, domain.ImportInternalUnaliasedAbsolute.Forbidden())
	assert.False(t, domain.ImportInternalSameDirectory.Forbidden())
	assert.False(t, domain.ImportInternalAliased.Forbidden())
	assert.False(t, domain.ImportExternal.Forbidden())
}

func TestCoverageEntry_Metric(t *testing.T) {
	e := domain.CoverageEntry{Statements: 1, Branches: 2, Functions: 3, Lines: 4}
	var got []float64
	for _, m := range domain.CoverageMetrics {
		got = append(got, e.Metric(m))
	}
	assert.Equal(t, []float64{1, 2, 3, 4}, got)
}

func TestViolation_Location(t *testing.T) {
	assert.Equal(t, "src/a.ts:3", domain.Errorf("r", "src/a.ts", 3, "m").Location())
	assert.Equal(t, "src/a.ts", domain.Errorf("r", "src/a.ts", 0, "m").Location())
	assert.Equal(t, "", domain.Errorf("r", "", 0, "m").Location())
}
