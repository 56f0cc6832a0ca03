package toc

import (
	"fmt"
	"os"
)

// WriteDocument truncates path and writes content to it. The parent
// directory must already exist.
func WriteDocument(path, content string) (int, error) {
	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create output file: %w", err)
	}

	bytesWritten, err := file.WriteString(content)
	if err != nil {
		_ = file.Close()
		return 0, fmt.Errorf("failed to write content: %w", err)
	}

	if err := file.Sync(); err != nil {
		_ = file.Close()
		return 0, fmt.Errorf("failed to sync file: %w", err)
	}

	if err := file.Close(); err != nil {
		return 0, fmt.Errorf("failed to close file: %w", err)
	}

	return bytesWritten, nil
}
