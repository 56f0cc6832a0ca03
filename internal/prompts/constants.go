// Package prompts contains all prompt strings and descriptions used by the tools.
package prompts

// ListMarkdownToolDoc is the description for the ListMarkdown tool
const ListMarkdownToolDoc = `Lists the Markdown files under a directory, grouped by their directory relative to that root.

Usage:
- root is optional; when omitted the server's configured Markdown root is used
- Relative roots are resolved against the server's working directory
- Files directly inside the root are listed under an empty group name
- Groups appear in traversal order, files keep their order inside a group`

// GenerateTOCToolDoc is the description for the GenerateTOC tool
const GenerateTOCToolDoc = `Generates the README table of contents for a Markdown tree.

Each group is rendered as a "## <directory>" heading followed by one line per file:
* [<title>](<path>) - last modified <date>

The title is the text of the first line starting with "# ". The document is the configured header, the groups, then the configured footer.

Usage:
- root and output are optional and default to the server configuration
- Set dry_run to true to return the generated document instead of writing it
- Without dry_run the output file is fully overwritten; its directory must already exist`
