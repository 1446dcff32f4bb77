package mcp_test

import (
	"testing"

	"github.com/hashicorp/go-hclog"
	mcpadapter "github.com/openkraft/rulegate/internal/adapters/inbound/mcp"
	"github.com/openkraft/rulegate/internal/adapters/outbound/config"
	"github.com/openkraft/rulegate/internal/adapters/outbound/coveragereport"
	"github.com/openkraft/rulegate/internal/adapters/outbound/gitinfo"
	"github.com/openkraft/rulegate/internal/adapters/outbound/manifest"
	"github.com/openkraft/rulegate/internal/adapters/outbound/scanner"
	"github.com/openkraft/rulegate/internal/adapters/outbound/toolchain"
	"github.com/openkraft/rulegate/internal/application"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func services() *application.Services {
	return application.NewServices(application.Adapters{
		Scanner:   scanner.New(),
		Config:    config.New(),
		Commits:   gitinfo.New(),
		Runner:    toolchain.New(nil),
		Coverage:  coveragereport.New(),
		Shortcuts: manifest.New(),
		Env:       func(string) (string, bool) { return "", false },
	}, hclog.NewNullLogger())
}

func TestNewRulegateMCPServer(t *testing.T) {
	s := mcpadapter.NewRulegateMCPServer(".", "test", services())
	require.NotNil(t, s)
}

func TestMCPServerHasTools(t *testing.T) {
	s := mcpadapter.NewRulegateMCPServer(".", "test", services())

	tools := s.ListTools()
	require.NotNil(t, tools)

	expectedTools := []string{
		"rulegate_validate",
		"rulegate_classify_import",
		"rulegate_inventory",
	}

	for _, name := range expectedTools {
		_, exists := tools[name]
		assert.True(t, exists, "tool %q should be registered", name)
	}

	assert.Len(t, tools, len(expectedTools), "should have exactly %d tools", len(expectedTools))
}
