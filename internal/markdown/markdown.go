// Package markdown renders classified journal blocks back to markdown text.
package markdown

import (
	"strings"

	"github.com/hyperifyio/leftoffsum/internal/document"
)

// Render converts an ordered block sequence into markdown. Level-1 and
// level-2 headings get "# " and "## " prefixes, body paragraphs pass
// through verbatim, and blocks are blank-line separated. Pure and
// deterministic for a given input.
func Render(blocks []document.Block) string {
	if len(blocks) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, b := range blocks {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		switch b.Kind {
		case document.Heading1:
			sb.WriteString("# ")
		case document.Heading2:
			sb.WriteString("## ")
		}
		sb.WriteString(b.Text)
	}
	sb.WriteString("\n")
	return sb.String()
}
