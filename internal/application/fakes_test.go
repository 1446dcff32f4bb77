package application_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/openkraft/rulegate/internal/adapters/outbound/config"
	"github.com/openkraft/rulegate/internal/adapters/outbound/manifest"
	"github.com/openkraft/rulegate/internal/adapters/outbound/scanner"
	"github.com/openkraft/rulegate/internal/application"
	"github.com/openkraft/rulegate/internal/domain"
	"github.com/stretchr/testify/require"
)

// writeProject creates a project tree from path → content pairs.
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

type fakeRunner struct {
	exitCodes map[string]int
	ran       []string
}

func (f *fakeRunner) Run(_ context.Context, _ string, command string) (domain.CommandResult, error) {
	f.ran = append(f.ran, command)
	return domain.CommandResult{Command: command, ExitCode: f.exitCodes[command], Output: "output of " + command}, nil
}

type fakeCoverage struct {
	entries []domain.CoverageEntry
	err     error
	calls   int
}

func (f *fakeCoverage) Read(string) ([]domain.CoverageEntry, error) {
	f.calls++
	return f.entries, f.err
}

type fakeCommits struct {
	hash     string
	subjects []string
}

func (f *fakeCommits) CommitHash(string) (string, error) {
	if f.hash == "" {
		return "", errors.New("not a repository")
	}
	return f.hash, nil
}

func (f *fakeCommits) RecentSubjects(_ string, n int) ([]string, error) {
	if len(f.subjects) > n {
		return f.subjects[:n], nil
	}
	return f.subjects, nil
}

func noEnv(string) (string, bool) { return "", false }

type harness struct {
	runner   *fakeRunner
	coverage *fakeCoverage
	commits  *fakeCommits
	services *application.Services
}

func newHarness() *harness {
	h := &harness{
		runner:   &fakeRunner{exitCodes: map[string]int{}},
		coverage: &fakeCoverage{},
		commits:  &fakeCommits{hash: "0123456789abcdef0123456789abcdef01234567"},
	}
	h.services = application.NewServices(application.Adapters{
		Scanner:   scanner.New(),
		Config:    config.New(),
		Commits:   h.commits,
		Runner:    h.runner,
		Coverage:  h.coverage,
		Shortcuts: manifest.New(),
		Env:       noEnv,
	}, hclog.NewNullLogger())
	return h
}

func rules(vs []domain.Violation) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.Rule)
	}
	return out
}

// compliantProject satisfies the default conventions with clean sources.
var compliantProject = map[string]string{
	"src/App.tsx":                          "import { TeamCard } from '@/domains/teams'\n\nexport function App() {\n  return <TeamCard />\n}\n",
	"src/main.tsx":                         "import { App } from './App'\n",
	"src/domains/teams/index.ts":           "export * from './components'\n",
	"src/domains/teams/components/index.ts": "export * from './TeamCard'\n",
	"src/domains/teams/components/TeamCard/TeamCard.tsx":      "import { useTeamCard } from './hooks'\nimport type { Team } from '@/domains/teams/types'\n\nexport function TeamCard() {\n  return <div />\n}\n",
	"src/domains/teams/components/TeamCard/TeamCard.test.tsx": "import { TeamCard } from './TeamCard'\n",
	"src/domains/teams/components/TeamCard/index.ts":          "export * from './TeamCard'\n",
	"src/domains/teams/components/TeamCard/hooks/index.ts":    "export * from './useTeamCard'\n",
	"src/domains/teams/components/TeamCard/hooks/useTeamCard.ts": "import { useState } from 'react'\n\nexport const useTeamCard = () => useState(0)\n",
	"src/domains/teams/types/index.ts": "export * from './team'\n",
	"src/domains/teams/types/team.ts":  "export type Team = { id: string }\n",
}
