package render

import (
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// DefaultWidth is the word-wrap width for terminal Markdown.
const DefaultWidth = 80

// Terminal renders Markdown for a terminal. An empty style picks one from the
// terminal background; "notty" produces plain text.
func Terminal(markdown, style string, width int) (string, error) {
	if width <= 0 {
		width = DefaultWidth
	}
	opt := glamour.WithAutoStyle()
	if style != "" {
		opt = glamour.WithStandardStyle(style)
	}
	r, err := glamour.NewTermRenderer(opt, glamour.WithWordWrap(width))
	if err != nil {
		return "", fmt.Errorf("render.Terminal: %w", err)
	}
	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("render.Terminal: %w", err)
	}
	return out, nil
}

// Highlight writes code to w with syntax colours for language. When color is false
// the code is written as is.
func Highlight(w io.Writer, code, language string, color bool) error {
	if !color {
		_, err := io.WriteString(w, code)
		return err
	}
	if err := quick.Highlight(w, code, language, "terminal256", "monokai"); err != nil {
		return fmt.Errorf("render.Highlight: %w", err)
	}
	return nil
}

var (
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

// Info formats an informational notice.
func Info(format string, args ...any) string {
	return infoStyle.Render(fmt.Sprintf(format, args...))
}

// Success formats a notice for a completed change.
func Success(format string, args ...any) string {
	return successStyle.Render(fmt.Sprintf(format, args...))
}

// Warn formats a notice that needs the user's attention.
func Warn(format string, args ...any) string {
	return warnStyle.Render(fmt.Sprintf(format, args...))
}
