// Package markdown provides registration for table of contents tools.
package markdown

import (
	"github.com/d-kuro/mdtoc/internal/tools"
)

// CreateTOCTools creates all table of contents tools using MCP SDK patterns.
func CreateTOCTools(ctx *tools.Context) []*tools.ServerTool {
	return []*tools.ServerTool{
		CreateListMarkdownTool(ctx),
		CreateGenerateTOCTool(ctx),
	}
}
