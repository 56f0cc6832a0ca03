package toc

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/d-kuro/mdtoc/internal/collections"
	"github.com/d-kuro/mdtoc/internal/config"
	"github.com/d-kuro/mdtoc/internal/logging"
)

// Generator runs the list, group, render and write pipeline for one config.
type Generator struct {
	cfg    *config.Config
	logger *logging.Logger
}

// Result describes one pipeline run.
type Result struct {
	Document     string
	Output       string
	Files        int
	Groups       int
	BytesWritten int
}

// NewGenerator creates a generator. A nil logger discards all records.
func NewGenerator(cfg *config.Config, logger *logging.Logger) *Generator {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Generator{
		cfg:    cfg,
		logger: logger.WithRoot(cfg.Root),
	}
}

// Groups lists the Markdown files under the root and buckets them by
// directory.
func (g *Generator) Groups() (*collections.OrderedMap[string, []string], error) {
	files, err := ListMarkdownFiles(g.cfg.Root, g.cfg.Pattern)
	if err != nil {
		return nil, err
	}

	groups := GroupByDirectory(g.cfg.Root, files)

	g.logger.Debug("Listed markdown files",
		slog.Int("files", len(files)),
		slog.Int("groups", groups.Len()))

	return groups, nil
}

// Build assembles the document without writing it.
func (g *Generator) Build(ctx context.Context) (*Result, error) {
	groups, err := g.Groups()
	if err != nil {
		return nil, err
	}

	header, err := os.ReadFile(g.cfg.Header)
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	footer, err := os.ReadFile(g.cfg.Footer)
	if err != nil {
		return nil, fmt.Errorf("failed to read footer: %w", err)
	}

	blocks := make([]string, 0, groups.Len())
	files := 0

	for _, key := range groups.Keys() {
		paths, _ := groups.Get(key)

		entries := make([]string, 0, len(paths))
		for _, path := range paths {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			entry, err := LoadEntry(path, g.cfg.StripFrontMatter)
			if err != nil {
				return nil, err
			}

			if entry.Title == "" {
				g.logger.Debug("No title heading found", slog.String("file", path))
			}

			entries = append(entries, entry.Render(g.cfg.DateLayout))
		}

		blocks = append(blocks, RenderGroup(key, entries))
		files += len(paths)
	}

	return &Result{
		Document: AssembleDocument(header, footer, blocks),
		Output:   g.cfg.Output,
		Files:    files,
		Groups:   groups.Len(),
	}, nil
}

// Run builds the document and overwrites the configured output file.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	result, err := g.Build(ctx)
	if err != nil {
		return nil, err
	}

	n, err := WriteDocument(g.cfg.Output, result.Document)
	if err != nil {
		return nil, err
	}
	result.BytesWritten = n

	g.logger.Info("Table of contents written",
		slog.String("output", result.Output),
		slog.Int("files", result.Files),
		slog.Int("groups", result.Groups),
		slog.Int("bytes", n))

	return result, nil
}
