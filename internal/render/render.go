// Package render produces Markdown and terminal output from sweep reports and model results.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dshills/logsweep/internal/report"
)

// Markdown renders a batch report as a Markdown document.
func Markdown(r *report.Report) string {
	var b strings.Builder

	// Summary
	b.WriteString("# logsweep report\n\n")
	fmt.Fprintf(&b, "**Root:** %s\n", r.Root)
	if r.DryRun {
		fmt.Fprintf(&b, "**Run:** %s (dry run, no files written)\n", r.RunID)
	} else {
		fmt.Fprintf(&b, "**Run:** %s\n", r.RunID)
	}
	fmt.Fprintf(&b, "**Files:** %d scanned, %d changed, %d clean, %d failed\n",
		r.Summary.Files, r.Summary.Changed, r.Summary.Clean, r.Summary.Failed)
	fmt.Fprintf(&b, "**Statements removed:** %d\n\n", r.Summary.Removed)

	if len(r.Files) == 0 {
		b.WriteString("No files matched.\n")
		return b.String()
	}

	failed := filterFiles(r.Files, report.StatusFailed)
	changed := filterFiles(r.Files, report.StatusChanged)

	if len(failed) > 0 {
		b.WriteString("## Failed\n\n")
		for _, f := range failed {
			fmt.Fprintf(&b, "- `%s`: %s\n", f.Path, f.Error)
		}
		b.WriteString("\n")
	}

	if len(changed) > 0 {
		b.WriteString("## Changed\n\n")
		b.WriteString("| File | Language | Removed | Breakdown |\n")
		b.WriteString("|---|---|---:|---|\n")
		for _, f := range changed {
			fmt.Fprintf(&b, "| `%s` | %s | %d | %s |\n", f.Path, f.Language, f.Removed, breakdown(f.ByLevel))
		}
		b.WriteString("\n")
	} else if len(failed) == 0 {
		b.WriteString("No log statements found.\n\n")
	}

	// Diffs
	var diffs []report.FileResult
	for _, f := range changed {
		if f.Diff != "" {
			diffs = append(diffs, f)
		}
	}
	if len(diffs) > 0 {
		b.WriteString("## Diffs\n\n")
		for _, f := range diffs {
			fmt.Fprintf(&b, "### %s\n\n", f.Path)
			b.WriteString("```diff\n")
			b.WriteString(strings.TrimRight(f.Diff, "\n"))
			b.WriteString("\n```\n\n")
		}
	}

	return b.String()
}

func filterFiles(files []report.FileResult, st report.Status) []report.FileResult {
	var result []report.FileResult
	for _, f := range files {
		if f.Status == st {
			result = append(result, f)
		}
	}
	return result
}

// breakdown formats counts as "error 1, log 2", sorted by key.
func breakdown(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k, n := range counts {
		if n > 0 {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s %d", k, counts[k])
	}
	return strings.Join(parts, ", ")
}
