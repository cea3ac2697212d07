package render

import (
	"fmt"
	"strings"

	"github.com/dshills/logsweep/internal/assist"
	"github.com/dshills/logsweep/internal/prompt"
	"github.com/dshills/logsweep/internal/strip"
)

// SmartMarkdown renders a smart removal result for path.
func SmartMarkdown(path, language string, res assist.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Smart removal: %s\n\n", path)
	fmt.Fprintf(&b, "**Statements removed:** %d\n", res.RemovedCount)
	fmt.Fprintf(&b, "**Statements kept:** %d\n\n", res.KeptCount)
	if !res.Extracted {
		b.WriteString("> The model returned no code block; the code is unchanged.\n\n")
	}

	fence := prompt.Fence(res.Code)
	fmt.Fprintf(&b, "%s%s\n%s\n%s\n", fence, prompt.FenceTag(language), res.Code, fence)
	return b.String()
}

// ScanLine formats one detected statement as "path:line:col level kind text".
func ScanLine(path string, m strip.Match) string {
	return fmt.Sprintf("%s:%d:%d %s %s %s", path, m.Line, m.Column, m.Level, m.Kind, m.Text)
}
