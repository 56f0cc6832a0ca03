// Package markdown exposes the table of contents generator as MCP tools.
package markdown

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/d-kuro/mdtoc/internal/config"
	"github.com/d-kuro/mdtoc/internal/prompts"
	"github.com/d-kuro/mdtoc/internal/security"
	"github.com/d-kuro/mdtoc/internal/toc"
	"github.com/d-kuro/mdtoc/internal/tools"
)

// ListMarkdownArgs represents the arguments for the ListMarkdown tool.
type ListMarkdownArgs struct {
	Root *string `json:"root,omitempty"`
}

// GenerateTOCArgs represents the arguments for the GenerateTOC tool.
type GenerateTOCArgs struct {
	Root   *string `json:"root,omitempty"`
	Output *string `json:"output,omitempty"`
	DryRun bool    `json:"dry_run,omitempty"`
}

// CreateListMarkdownTool creates the ListMarkdown tool using MCP SDK patterns.
func CreateListMarkdownTool(ctx *tools.Context) *tools.ServerTool {
	tool := &mcp.Tool{
		Name:        "ListMarkdown",
		Description: prompts.ListMarkdownToolDoc,
	}

	handler := ListMarkdownHandler(ctx)

	return &tools.ServerTool{
		Tool: tool,
		RegisterFunc: func(server *mcp.Server) {
			mcp.AddTool(server, tool, handler)
		},
	}
}

// ListMarkdownHandler returns the typed handler behind the ListMarkdown tool.
func ListMarkdownHandler(ctx *tools.Context) func(context.Context, *mcp.ServerSession, *mcp.CallToolParamsFor[ListMarkdownArgs]) (*mcp.CallToolResultFor[any], error) {
	logger := ctx.Logger.WithTool("ListMarkdown")

	return func(ctxReq context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[ListMarkdownArgs]) (*mcp.CallToolResultFor[any], error) {
		cfg := requestConfig(ctx.Config, params.Arguments.Root, nil)

		if err := validateLocation(ctx.Validator, cfg.Root); err != nil {
			return tools.ErrorResponsef("Invalid root: %v", err), nil
		}

		groups, err := toc.NewGenerator(cfg, logger).Groups()
		if err != nil {
			return tools.ErrorResponse(err.Error()), nil
		}

		if groups.Len() == 0 {
			return tools.SuccessResponsef("No files matching '%s' found in directory '%s'", cfg.Pattern, cfg.Root), nil
		}

		total := 0
		var body strings.Builder
		groups.Range(func(key string, files []string) bool {
			body.WriteString("## " + key + "\n")
			for _, f := range files {
				body.WriteString(f + "\n")
			}
			total += len(files)
			return true
		})

		header := fmt.Sprintf("Found %d file(s) in %d group(s) in directory '%s':\n", total, groups.Len(), cfg.Root)
		return tools.SuccessResponse(strings.TrimSuffix(header+body.String(), "\n")), nil
	}
}

// CreateGenerateTOCTool creates the GenerateTOC tool using MCP SDK patterns.
func CreateGenerateTOCTool(ctx *tools.Context) *tools.ServerTool {
	tool := &mcp.Tool{
		Name:        "GenerateTOC",
		Description: prompts.GenerateTOCToolDoc,
	}

	handler := GenerateTOCHandler(ctx)

	return &tools.ServerTool{
		Tool: tool,
		RegisterFunc: func(server *mcp.Server) {
			mcp.AddTool(server, tool, handler)
		},
	}
}

// GenerateTOCHandler returns the typed handler behind the GenerateTOC tool.
func GenerateTOCHandler(ctx *tools.Context) func(context.Context, *mcp.ServerSession, *mcp.CallToolParamsFor[GenerateTOCArgs]) (*mcp.CallToolResultFor[any], error) {
	logger := ctx.Logger.WithTool("GenerateTOC")

	return func(ctxReq context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[GenerateTOCArgs]) (*mcp.CallToolResultFor[any], error) {
		args := params.Arguments
		cfg := requestConfig(ctx.Config, args.Root, args.Output)

		if err := validateLocation(ctx.Validator, cfg.Root); err != nil {
			return tools.ErrorResponsef("Invalid root: %v", err), nil
		}

		gen := toc.NewGenerator(cfg, logger)

		if args.DryRun {
			result, err := gen.Build(ctxReq)
			if err != nil {
				return tools.ErrorResponse(err.Error()), nil
			}
			return tools.SuccessResponse(result.Document), nil
		}

		if err := validateLocation(ctx.Validator, cfg.Output); err != nil {
			return tools.ErrorResponsef("Invalid output: %v", err), nil
		}

		result, err := gen.Run(ctxReq)
		if err != nil {
			logger.Error("Failed to generate table of contents", slog.Any("error", err))
			return tools.ErrorResponse(err.Error()), nil
		}

		return tools.SuccessResponsef("Table of contents written to %s (%d file(s), %d group(s), %d bytes)",
			result.Output, result.Files, result.Groups, result.BytesWritten), nil
	}
}

// requestConfig copies base and applies per-request overrides. Empty
// overrides are ignored.
func requestConfig(base *config.Config, root, output *string) *config.Config {
	cfg := *base
	if root != nil && *root != "" {
		cfg.Root = config.NormalizeRoot(*root)
	}
	if output != nil && *output != "" {
		cfg.Output = *output
	}
	return &cfg
}

// validateLocation checks the absolute form of path. The caller keeps using
// the original path so rendered links stay relative.
func validateLocation(v security.Validator, path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}
	abs, err := security.Absolute(path)
	if err != nil {
		return err
	}
	_, err = v.SanitizePath(abs)
	return err
}
