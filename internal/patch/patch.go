// Package patch produces unified diffs of cleaned files and writes them to a patch file.
package patch

import (
	"fmt"
	"os"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Change is the before and after text of one file.
type Change struct {
	Path   string
	Before string
	After  string
}

// Unified returns the unified diff of c with three lines of context, or "" when
// the texts are equal.
func Unified(c Change) (string, error) {
	if c.Before == c.After {
		return "", nil
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(c.Before),
		B:        difflib.SplitLines(c.After),
		FromFile: "a/" + c.Path,
		ToFile:   "b/" + c.Path,
		Context:  3,
	})
	if err != nil {
		return "", fmt.Errorf("patch.Unified: %s: %w", c.Path, err)
	}
	return diff, nil
}

// WritePatchFile writes the diffs of all changes to outPath.
// If no change differs, no file is created.
func WritePatchFile(changes []Change, outPath string) error {
	var b strings.Builder
	for _, c := range changes {
		diff, err := Unified(c)
		if err != nil {
			return fmt.Errorf("patch.WritePatchFile: %w", err)
		}
		if diff == "" {
			continue
		}
		b.WriteString(diff)
		if !strings.HasSuffix(diff, "\n") {
			b.WriteString("\n")
		}
	}
	if b.Len() == 0 {
		return nil
	}

	if err := os.WriteFile(outPath, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("patch.WritePatchFile: %w", err)
	}
	return nil
}
