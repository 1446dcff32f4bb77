package manifest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/openkraft/rulegate/internal/adapters/outbound/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "package.json")
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestShortcuts(t *testing.T) {
	p := write(t, `{"name":"app","scripts":{"lint":"eslint .","test":"vitest"}}`)
	got, err := manifest.New().Shortcuts(p)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"lint": "eslint .", "test": "vitest"}, got)
}

func TestShortcuts_NoScripts(t *testing.T) {
	got, err := manifest.New().Shortcuts(write(t, `{"name":"app"}`))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestShortcuts_Malformed(t *testing.T) {
	_, err := manifest.New().Shortcuts(write(t, `{"scripts":`))
	assert.Error(t, err)
}

func TestShortcuts_Missing(t *testing.T) {
	_, err := manifest.New().Shortcuts(filepath.Join(t.TempDir(), "package.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
