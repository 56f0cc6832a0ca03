// Package toc builds a grouped table of contents for a tree of Markdown files.
package toc

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/d-kuro/mdtoc/internal/errors"
)

// ListMarkdownFiles walks root recursively and returns every non-directory
// entry whose base name matches pattern. Paths are joined onto root the way
// find(1) prints them, in walk order. A symlinked root is resolved before the
// walk; symlinked directories below it are not followed.
func ListMarkdownFiles(root, pattern string) ([]string, error) {
	stat, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.NotFoundWithCause(fmt.Sprintf("markdown root %s", root), err)
		}
		return nil, fmt.Errorf("failed to stat markdown root: %w", err)
	}

	if !stat.IsDir() {
		return nil, errors.Validation(fmt.Sprintf("markdown root %s is not a directory", root))
	}

	walkRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve markdown root: %w", err)
	}

	var files []string
	err = filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if d.IsDir() {
			return nil
		}

		matched, err := filepath.Match(pattern, d.Name())
		if err != nil {
			return err
		}
		if !matched {
			return nil
		}

		// report paths under the configured root, not the resolved target
		rel, err := filepath.Rel(walkRoot, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.Join(root, rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	return files, nil
}
