package credential

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// TerminalPrompter reads a secret from a terminal without echoing it.
type TerminalPrompter struct {
	In  *os.File
	Out io.Writer
}

// PromptSecret prints label and reads one line. It returns ErrDeclined when In is not
// a terminal, so non-interactive runs fail instead of blocking.
func (p TerminalPrompter) PromptSecret(ctx context.Context, label string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fd := int(p.In.Fd())
	if !term.IsTerminal(fd) {
		return "", ErrDeclined
	}
	fmt.Fprintf(p.Out, "%s: ", label)
	secret, err := term.ReadPassword(fd)
	fmt.Fprintln(p.Out)
	if err != nil {
		return "", fmt.Errorf("credential.PromptSecret: %w", err)
	}
	return string(secret), nil
}
