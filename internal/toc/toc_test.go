package toc

import (
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/d-kuro/mdtoc/internal/errors"
)

// writeTree creates files (relative to dir) with the given content.
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		fullPath := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			t.Fatalf("Failed to create dir for %s: %v", name, err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to create file %s: %v", name, err)
		}
	}
}

func TestListMarkdownFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"index.md":          "# Index",
		"docs/a.md":         "# A",
		"docs/notes.txt":    "not markdown",
		"docs/sub/b.md":     "# B",
		"docs/sub/c.MD":     "# wrong case",
		"other/deep/x/y.md": "# Y",
	})
	if err := os.MkdirAll(filepath.Join(root, "folder.md"), 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}

	files, err := ListMarkdownFiles(root, "*.md")
	if err != nil {
		t.Fatalf("ListMarkdownFiles() error = %v", err)
	}

	want := []string{
		filepath.Join(root, "docs/a.md"),
		filepath.Join(root, "docs/sub/b.md"),
		filepath.Join(root, "index.md"),
		filepath.Join(root, "other/deep/x/y.md"),
	}
	sort.Strings(files)
	if !reflect.DeepEqual(files, want) {
		t.Errorf("ListMarkdownFiles() = %v, want %v", files, want)
	}

	for _, f := range files {
		if strings.TrimSpace(f) == "" {
			t.Error("listing contains an empty path")
		}
	}
}

func TestListMarkdownFilesErrors(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"plain.md": "# P"})

	t.Run("missing root", func(t *testing.T) {
		_, err := ListMarkdownFiles(filepath.Join(root, "nope"), "*.md")
		if !errors.Is(err, errors.ErrNotFound) {
			t.Errorf("expected not found error, got %v", err)
		}
	})

	t.Run("root is a file", func(t *testing.T) {
		_, err := ListMarkdownFiles(filepath.Join(root, "plain.md"), "*.md")
		if !errors.Is(err, errors.ErrValidation) {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	t.Run("empty tree", func(t *testing.T) {
		files, err := ListMarkdownFiles(t.TempDir(), "*.md")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(files) != 0 {
			t.Errorf("expected no files, got %v", files)
		}
	})
}

func TestListMarkdownFilesSymlinkRoot(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	writeTree(t, target, map[string]string{
		"index.md":      "# Index",
		"docs/a.md":     "# A",
		"docs/sub/b.md": "# B",
	})
	link := filepath.Join(dir, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	files, err := ListMarkdownFiles(link, "*.md")
	if err != nil {
		t.Fatalf("ListMarkdownFiles() error = %v", err)
	}

	want := []string{
		filepath.Join(link, "docs/a.md"),
		filepath.Join(link, "docs/sub/b.md"),
		filepath.Join(link, "index.md"),
	}
	sort.Strings(files)
	if !reflect.DeepEqual(files, want) {
		t.Errorf("ListMarkdownFiles() = %v, want %v", files, want)
	}

	groups := GroupByDirectory(link, files)
	if got := groups.Keys(); !reflect.DeepEqual(got, []string{"docs", "docs/sub", ""}) {
		t.Errorf("GroupByDirectory() keys = %v", got)
	}
}

func TestListMarkdownFilesRelativeRoot(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"md/docs/a.md": "# A"})
	t.Chdir(dir)

	tests := []struct {
		root string
		want string
	}{
		{root: "md", want: "md/docs/a.md"},
		{root: "./md", want: "md/docs/a.md"},
		{root: "md/", want: "md/docs/a.md"},
	}

	for _, tt := range tests {
		t.Run(tt.root, func(t *testing.T) {
			files, err := ListMarkdownFiles(tt.root, "*.md")
			if err != nil {
				t.Fatalf("ListMarkdownFiles() error = %v", err)
			}
			want := []string{filepath.FromSlash(tt.want)}
			if !reflect.DeepEqual(files, want) {
				t.Errorf("ListMarkdownFiles(%q) = %v, want %v", tt.root, files, want)
			}
		})
	}
}

func TestGroupKey(t *testing.T) {
	tests := []struct {
		name string
		root string
		file string
		want string
	}{
		{name: "nested", root: "docs", file: "docs/sub/b.md", want: "sub"},
		{name: "deeper", root: "docs", file: "docs/a/b/c.md", want: "a/b"},
		{name: "directly in root", root: "docs", file: "docs/a.md", want: ""},
		{name: "trailing separator", root: "docs/", file: "docs/sub/b.md", want: "sub"},
		{name: "dot prefixed root", root: "./docs", file: "./docs/sub/b.md", want: "sub"},
		{name: "dot root", root: ".", file: "docs/a.md", want: "docs"},
		{name: "absolute", root: "/srv/md", file: "/srv/md/x/y.md", want: "x"},
		{name: "absolute in root", root: "/srv/md", file: "/srv/md/y.md", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GroupKey(tt.root, tt.file); got != tt.want {
				t.Errorf("GroupKey(%q, %q) = %q, want %q", tt.root, tt.file, got, tt.want)
			}
		})
	}
}

func TestGroupByDirectory(t *testing.T) {
	files := []string{
		"root/b/one.md",
		"root/top.md",
		"root/a/two.md",
		"root/b/three.md",
		"root/a/x/four.md",
	}

	groups := GroupByDirectory("root", files)

	if got, want := groups.Keys(), []string{"b", "", "a", "a/x"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("keys = %q, want %q", got, want)
	}

	if got, _ := groups.Get("b"); !reflect.DeepEqual(got, []string{"root/b/one.md", "root/b/three.md"}) {
		t.Errorf("group b = %v", got)
	}

	// every file lands in exactly one group
	seen := make(map[string]int)
	groups.Range(func(_ string, paths []string) bool {
		for _, p := range paths {
			seen[p]++
		}
		return true
	})
	if len(seen) != len(files) {
		t.Errorf("groups cover %d files, want %d", len(seen), len(files))
	}
	for f, n := range seen {
		if n != 1 {
			t.Errorf("%s appears in %d groups", f, n)
		}
	}
}

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "first line heading", content: "# Hello World\n\nbody", want: "Hello World"},
		{name: "heading after text", content: "intro\n# Later\n", want: "Later"},
		{name: "first heading wins", content: "# One\n# Two\n", want: "One"},
		{name: "level two ignored", content: "## Sub\ntext\n", want: ""},
		{name: "no space after hash", content: "#Tag\n", want: ""},
		{name: "indented heading ignored", content: " # Indented\n", want: ""},
		{name: "no heading", content: "just text\n", want: ""},
		{name: "empty file", content: "", want: ""},
		{name: "crlf", content: "# Windows\r\nbody\r\n", want: "Windows"},
		{name: "empty heading text", content: "# \nbody", want: ""},
		{name: "no trailing newline", content: "# Last", want: "Last"},
		{name: "keeps inner markup", content: "# `code` and *em*\n", want: "`code` and *em*"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractTitle([]byte(tt.content)); got != tt.want {
				t.Errorf("ExtractTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractTitleLongLine(t *testing.T) {
	long := strings.Repeat("x", 200*1024)
	if got := ExtractTitle([]byte("# " + long)); got != long {
		t.Errorf("long title truncated to %d bytes", len(got))
	}

	// headings after an oversized line are still found
	content := long + "\n" + long + "\n# After\n"
	if got := ExtractTitle([]byte(content)); got != "After" {
		t.Errorf("ExtractTitle() after long lines = %q, want %q", got, "After")
	}
}

func TestStripFrontMatter(t *testing.T) {
	content := "---\ntitle: Meta\n# yaml comment\n---\n# Real Title\n"

	if got := ExtractTitle([]byte(content)); got != "yaml comment" {
		t.Errorf("without stripping the yaml comment matches first, got %q", got)
	}

	body, err := StripFrontMatter([]byte(content))
	if err != nil {
		t.Fatalf("StripFrontMatter() error = %v", err)
	}
	if got := ExtractTitle(body); got != "Real Title" {
		t.Errorf("ExtractTitle(stripped) = %q, want Real Title", got)
	}

	plain := []byte("# Plain\n")
	body, err = StripFrontMatter(plain)
	if err != nil {
		t.Fatalf("StripFrontMatter() error = %v", err)
	}
	if got := ExtractTitle(body); got != "Plain" {
		t.Errorf("content without front matter changed, title = %q", got)
	}
}

func TestLoadEntry(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.md")
	writeTree(t, dir, map[string]string{"page.md": "# Page\n"})

	mtime := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("Failed to set mtime: %v", err)
	}

	entry, err := LoadEntry(path, false)
	if err != nil {
		t.Fatalf("LoadEntry() error = %v", err)
	}

	if entry.Title != "Page" {
		t.Errorf("Title = %q, want Page", entry.Title)
	}
	if !entry.Modified.Equal(mtime) {
		t.Errorf("Modified = %v, want %v", entry.Modified, mtime)
	}

	want := "* [Page](" + path + ") - last modified " + FormatDate(mtime, "2006-01-02")
	if got := entry.Render("2006-01-02"); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}

	if _, err := LoadEntry(filepath.Join(dir, "missing.md"), false); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFormatDate(t *testing.T) {
	ts := time.Date(2023, 11, 9, 12, 0, 0, 0, time.Local)

	if got := FormatDate(ts, "1/2/2006"); got != "11/9/2023" {
		t.Errorf("FormatDate() = %q, want 11/9/2023", got)
	}
	if got := FormatDate(ts, "2006-01-02"); got != "2023-11-09" {
		t.Errorf("FormatDate() = %q, want 2023-11-09", got)
	}
}

func TestRenderEntry(t *testing.T) {
	got := RenderEntry("Hello", "docs/a.md", "1/2/2024")
	want := "* [Hello](docs/a.md) - last modified 1/2/2024"
	if got != want {
		t.Errorf("RenderEntry() = %q, want %q", got, want)
	}

	if got := RenderEntry("", "a.md", "d"); got != "* [](a.md) - last modified d" {
		t.Errorf("RenderEntry() with empty title = %q", got)
	}
}

func TestRenderGroup(t *testing.T) {
	got := RenderGroup("docs/sub", []string{"* one", "* two"})
	if want := "## docs/sub\n* one\n* two"; got != want {
		t.Errorf("RenderGroup() = %q, want %q", got, want)
	}

	if got := RenderGroup("", nil); got != "## " {
		t.Errorf("RenderGroup() with no entries = %q", got)
	}
}

func TestAssembleDocument(t *testing.T) {
	got := AssembleDocument([]byte("HEAD"), []byte("FOOT\n"), []string{"## a\n* x", "## b\n* y"})
	want := "HEAD\n## a\n* x\n## b\n* y\nFOOT\n"
	if got != want {
		t.Errorf("AssembleDocument() = %q, want %q", got, want)
	}

	if got := AssembleDocument([]byte("H"), []byte("F"), nil); got != "H\n\nF" {
		t.Errorf("AssembleDocument() with no groups = %q", got)
	}
}

func TestWriteDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "readme.md")

	if err := os.WriteFile(path, []byte("old content that is longer than the new one"), 0644); err != nil {
		t.Fatalf("Failed to seed file: %v", err)
	}

	n, err := WriteDocument(path, "new")
	if err != nil {
		t.Fatalf("WriteDocument() error = %v", err)
	}
	if n != 3 {
		t.Errorf("bytes written = %d, want 3", n)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if string(data) != "new" {
		t.Errorf("output = %q, want fully overwritten content", data)
	}

	if _, err := WriteDocument(filepath.Join(dir, "missing", "readme.md"), "x"); err == nil {
		t.Error("expected error when parent directory does not exist")
	}
}

func TestWriteDocumentDeviceFull(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("/dev/full not available")
	}

	n, err := WriteDocument("/dev/full", "content")
	if err == nil {
		t.Fatal("expected error writing to a full device")
	}
	if n != 0 {
		t.Errorf("bytes written = %d, want 0 on failure", n)
	}
}
