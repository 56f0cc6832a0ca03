package toc

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/adrg/frontmatter"
)

var titlePattern = regexp.MustCompile(`^# (.*)$`)

// Entry is a single Markdown file in the table of contents.
type Entry struct {
	Path     string
	Title    string
	Modified time.Time
}

// LoadEntry reads path and its metadata. A file without a level-one heading
// yields an empty title.
func LoadEntry(path string, stripFrontMatter bool) (Entry, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if stripFrontMatter {
		content, err = StripFrontMatter(content)
		if err != nil {
			return Entry{}, fmt.Errorf("failed to parse front matter in %s: %w", path, err)
		}
	}

	stat, err := os.Stat(path)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	return Entry{
		Path:     path,
		Title:    ExtractTitle(content),
		Modified: stat.ModTime(),
	}, nil
}

// Render formats the entry as a Markdown list item.
func (e Entry) Render(dateLayout string) string {
	return RenderEntry(e.Title, e.Path, FormatDate(e.Modified, dateLayout))
}

// ExtractTitle returns the text after "# " on the first line that starts
// with it, or "" when there is no such line.
func ExtractTitle(content []byte) string {
	for line := range bytes.Lines(content) {
		line = bytes.TrimSuffix(line, []byte("\n"))
		line = bytes.TrimSuffix(line, []byte("\r"))
		if m := titlePattern.FindSubmatch(line); m != nil {
			return string(m[1])
		}
	}

	return ""
}

// StripFrontMatter removes a leading YAML or TOML front matter block.
// Content without front matter is returned unchanged.
func StripFrontMatter(content []byte) ([]byte, error) {
	var meta map[string]any
	body, err := frontmatter.Parse(bytes.NewReader(content), &meta)
	if err != nil {
		return nil, err
	}
	return body, nil
}

// FormatDate renders t in local time using layout.
func FormatDate(t time.Time, layout string) string {
	return t.Local().Format(layout)
}

// RenderEntry formats one table of contents line.
func RenderEntry(title, path, date string) string {
	return fmt.Sprintf("* [%s](%s) - last modified %s", title, path, date)
}
