package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/openkraft/rulegate/internal/application"
)

const (
	conventionsURI = "rulegate://conventions"
	configURI      = "rulegate://config"
)

// registerResources registers the rulegate MCP resources on the given server.
func registerResources(s *server.MCPServer, projectPath string, svc *application.Services) {
	s.AddResource(
		mcplib.NewResource(
			conventionsURI,
			"Conventions",
			mcplib.WithResourceDescription("Convention rule table in effect for the project"),
			mcplib.WithMIMEType("application/json"),
		),
		handleConfigResource(conventionsURI, projectPath, svc, true),
	)

	s.AddResource(
		mcplib.NewResource(
			configURI,
			"Configuration",
			mcplib.WithResourceDescription("Effective configuration after merging .rulegate.yaml over the defaults"),
			mcplib.WithMIMEType("application/json"),
		),
		handleConfigResource(configURI, projectPath, svc, false),
	)
}

func handleConfigResource(uri, projectPath string, svc *application.Services, conventionsOnly bool) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		_, cfg, err := svc.Loader.LoadConfig(projectPath)
		if err != nil {
			return nil, err
		}

		var v any = cfg
		if conventionsOnly {
			v = cfg.Conventions
		}
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling %s: %w", uri, err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      uri,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
