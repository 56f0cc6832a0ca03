// Package tools provides tool registry and common types for MCP tools.
package tools

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/d-kuro/mdtoc/internal/config"
	"github.com/d-kuro/mdtoc/internal/logging"
	"github.com/d-kuro/mdtoc/internal/security"
)

// Context contains common dependencies needed by tools.
type Context struct {
	Logger    *logging.Logger
	Validator security.Validator
	// Config holds the defaults used when a request omits a field.
	Config *config.Config
}

// ServerTool pairs a tool schema with the function that registers its typed
// handler on an MCP server.
type ServerTool struct {
	Tool         *mcp.Tool
	RegisterFunc func(server *mcp.Server)
}
