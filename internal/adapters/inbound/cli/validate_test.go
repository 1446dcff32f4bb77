package cli_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/openkraft/rulegate/internal/adapters/inbound/cli"
	"github.com/openkraft/rulegate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return root
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := cli.NewRootCmdForTest()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

var cleanImports = map[string]string{
	"src/App.tsx":     "import React from 'react'\nimport { Team } from '@/domains/teams'\n",
	"src/lib/util.ts":  "import { a } from './a'\n",
}

func TestImportsCmd_Passes(t *testing.T) {
	root := writeProject(t, cleanImports)

	out, err := run(t, "imports", "--path", root)
	require.NoError(t, err)
	assert.Contains(t, out, "imports passed")
}

func TestImportsCmd_FailsOnRelativeImport(t *testing.T) {
	root := writeProject(t, map[string]string{
		"src/domains/teams/Team.tsx": "import { format } from '../../utils/format'\n",
	})

	out, err := run(t, "imports", root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "imports failed: 1 errors")
	assert.Contains(t, out, "src/domains/teams/Team.tsx")
}

func TestImportsCmd_JSON(t *testing.T) {
	root := writeProject(t, map[string]string{
		"src/a.ts": "import { b } from '../b'\nimport { c } from 'src/c'\n",
	})

	out, err := run(t, "imports", "--path", root, "--json")
	require.Error(t, err)

	var report domain.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "imports", report.Validator)
	require.Len(t, report.Violations, 2)
	assert.Equal(t, 1, report.Violations[0].Line)
	assert.Equal(t, 2, report.Violations[1].Line)
}

func TestImportsCmd_SARIF(t *testing.T) {
	root := writeProject(t, map[string]string{
		"src/a.ts": "import { b } from '../b'\n",
	})
	sarifFile := filepath.Join(t.TempDir(), "out.sarif")

	_, err := run(t, "imports", "--path", root, "--sarif", sarifFile)
	require.Error(t, err)

	data, err := os.ReadFile(sarifFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name": "rulegate"`)
	assert.Contains(t, string(data), "imports/relative-path")
}

func TestStructureCmd_MissingSourceRoot(t *testing.T) {
	root := writeProject(t, map[string]string{"README.md": "# app\n"})

	_, err := run(t, "structure", "--path", root)
	require.Error(t, err)
	var cfgErr *domain.ConfigError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestToolchainCmd_ReportsFailingCommand(t *testing.T) {
	files := map[string]string{
		".rulegate.yaml": "toolchain:\n  lint: \"true\"\n  type_check: \"exit 2\"\n",
	}
	for k, v := range cleanImports {
		files[k] = v
	}
	root := writeProject(t, files)

	_, err := run(t, "toolchain", "--path", root)
	require.Error(t, err)
	var tcErr *domain.ToolchainError
	require.True(t, errors.As(err, &tcErr))
	assert.Equal(t, 2, tcErr.Failure.ExitCode)
}

func TestAllCmd_ContinuesAfterConfigError(t *testing.T) {
	root := writeProject(t, map[string]string{
		"src/a.ts":       "",
		".rulegate.yaml": "coverage: [not, a, map\n",
	})

	_, err := run(t, "all", "--path", root)
	require.Error(t, err)
	for _, name := range []string{"structure:", "imports:", "hygiene:", "bypass:", "toolchain:", "coverage:"} {
		assert.Contains(t, err.Error(), name)
	}
}

func TestClassifyCmd(t *testing.T) {
	root := writeProject(t, cleanImports)

	out, err := run(t, "classify", "react", "--path", root)
	require.NoError(t, err)
	assert.Contains(t, out, string(domain.ImportExternal))

	out, err = run(t, "classify", "../utils", "--path", root, "--json")
	require.NoError(t, err)
	var res map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, true, res["forbidden"])
}

func TestInventoryCmd(t *testing.T) {
	root := writeProject(t, map[string]string{
		"src/App.tsx":      "",
		"src/App.test.tsx": "",
		"dist/bundle.js":   "",
	})

	out, err := run(t, "inventory", root)
	require.NoError(t, err)
	assert.Contains(t, out, "2 files")
	assert.Contains(t, out, "test")
}

func TestUnknownCommand(t *testing.T) {
	_, err := run(t, "lint-everything")
	assert.Error(t, err)
}
