package toc

import (
	"strings"
)

// RenderGroup formats a level-two heading followed by one line per entry.
func RenderGroup(key string, entries []string) string {
	lines := make([]string, 0, len(entries)+1)
	lines = append(lines, "## "+key)
	lines = append(lines, entries...)
	return strings.Join(lines, "\n")
}

// AssembleDocument joins header, group blocks and footer. Header and footer
// are copied verbatim.
func AssembleDocument(header, footer []byte, groups []string) string {
	var builder strings.Builder
	builder.Grow(len(header) + len(footer) + 2)

	builder.Write(header)
	builder.WriteByte('\n')
	builder.WriteString(strings.Join(groups, "\n"))
	builder.WriteByte('\n')
	builder.Write(footer)

	return builder.String()
}
