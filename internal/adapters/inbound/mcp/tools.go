package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/openkraft/rulegate/internal/application"
	"github.com/openkraft/rulegate/internal/domain"
)

// registerTools registers the rulegate MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string, svc *application.Services) {
	// 1. rulegate_validate
	s.AddTool(
		mcplib.NewTool("rulegate_validate",
			mcplib.WithDescription("Run one validator, or all of them, and return the reports as JSON"),
			mcplib.WithString("validator",
				mcplib.Required(),
				mcplib.Description("Validator to run: "+strings.Join(svc.Suite.Names(), ", ")+" or all"),
			),
		),
		handleValidate(projectPath, svc),
	)

	// 2. rulegate_classify_import
	s.AddTool(
		mcplib.NewTool("rulegate_classify_import",
			mcplib.WithDescription("Classify an import target against the project's import policy"),
			mcplib.WithString("target",
				mcplib.Required(),
				mcplib.Description("Import specifier, e.g. @/domains/teams or ../utils"),
			),
		),
		handleClassify(projectPath, svc),
	)

	// 3. rulegate_inventory
	s.AddTool(
		mcplib.NewTool("rulegate_inventory",
			mcplib.WithDescription("Returns the project file inventory with the category of every file"),
		),
		handleInventory(projectPath, svc),
	)
}

type validateResult struct {
	Passed  bool             `json:"passed"`
	Reports []*domain.Report `json:"reports"`
	Errors  []string         `json:"errors,omitempty"`
}

func handleValidate(projectPath string, svc *application.Services) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		name, err := request.RequireString("validator")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		var names []string
		if name != "all" {
			if _, err := svc.Suite.Get(name); err != nil {
				return errorResult(err.Error()), nil
			}
			names = []string{name}
		}

		reports, runErr := svc.Suite.Run(ctx, projectPath, names...)
		result := validateResult{Passed: runErr == nil, Reports: reports}
		if runErr != nil {
			result.Errors = strings.Split(runErr.Error(), "\n")
		}
		for _, r := range reports {
			if !r.Passed() {
				result.Passed = false
			}
		}
		return jsonResult(result)
	}
}

type classifyResult struct {
	Target    string             `json:"target"`
	Class     domain.ImportClass `json:"class"`
	Row       string             `json:"row"`
	Forbidden bool               `json:"forbidden"`
}

func handleClassify(projectPath string, svc *application.Services) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		target, err := request.RequireString("target")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		class, row, err := svc.Imports.Classify(projectPath, target)
		if err != nil {
			return errorResult(fmt.Sprintf("classify failed: %v", err)), nil
		}
		return jsonResult(classifyResult{Target: target, Class: class, Row: row, Forbidden: class.Forbidden()})
	}
}

func handleInventory(projectPath string, svc *application.Services) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		p, err := svc.Loader.Load(projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("scan failed: %v", err)), nil
		}
		return jsonResult(p.Inventory)
	}
}

// jsonResult marshals v into an indented JSON text result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
