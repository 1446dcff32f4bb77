package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/openkraft/rulegate/internal/application"
)

// NewRulegateMCPServer creates an MCP server exposing the validators of svc
// for the project rooted at projectPath.
func NewRulegateMCPServer(projectPath, version string, svc *application.Services) *server.MCPServer {
	s := server.NewMCPServer(
		"rulegate",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, projectPath, svc)
	registerResources(s, projectPath, svc)

	return s
}
