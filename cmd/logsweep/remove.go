package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/logsweep/internal/batch"
	"github.com/dshills/logsweep/internal/patch"
	"github.com/dshills/logsweep/internal/render"
	"github.com/dshills/logsweep/internal/report"
)

type removeFlags struct {
	dryRun   bool
	patchOut string
	format   string
}

func newRemoveCmd(a *app) *cobra.Command {
	f := &removeFlags{}

	cmd := &cobra.Command{
		Use:   "remove <file>...",
		Short: "Remove log statements from files in place",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(a, args, f)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&f.dryRun, "dry-run", false, "Print a diff instead of writing files")
	flags.StringVar(&f.patchOut, "patch-out", "", "Write the changes as a unified diff")
	flags.StringVar(&f.format, "format", "text", "Output format: text or json")
	return cmd
}

func runRemove(a *app, paths []string, f *removeFlags) error {
	if f.format != "text" && f.format != "json" {
		return exitError(3, "unknown format: %s", f.format)
	}

	// 1. Strip each file; one failure does not stop the rest
	withDiff := f.dryRun || f.patchOut != ""
	var (
		results []report.FileResult
		changes []patch.Change
		failed  int
	)
	for _, p := range paths {
		res, change := batch.File(p, f.dryRun, withDiff)
		results = append(results, res)
		if change != nil {
			changes = append(changes, *change)
		}
		if res.Status == report.StatusFailed {
			failed++
			a.log.Warn("file skipped", zap.String("path", p), zap.String("error", res.Error))
		}
	}

	// 2. Output
	switch f.format {
	case "json":
		out, err := marshal(results)
		if err != nil {
			return err
		}
		if err := a.emit("", out); err != nil {
			return err
		}
	default:
		for _, res := range results {
			switch res.Status {
			case report.StatusFailed:
				fmt.Fprintln(a.stderr, render.Warn("%s: %s", res.Path, res.Error))
			case report.StatusClean:
				fmt.Fprintln(a.stdout, render.Info("%s: no log statements found", res.Path))
			case report.StatusChanged:
				if f.dryRun {
					fmt.Fprint(a.stdout, res.Diff)
					fmt.Fprintln(a.stdout, render.Info("%s: would remove %d log statement(s)", res.Path, res.Removed))
				} else {
					fmt.Fprintln(a.stdout, render.Success("%s: removed %d log statement(s)", res.Path, res.Removed))
				}
			}
		}
	}

	// 3. Patch output
	if f.patchOut != "" {
		if err := patch.WritePatchFile(changes, f.patchOut); err != nil {
			return fmt.Errorf("failed to write patches: %w", err)
		}
	}

	if failed > 0 {
		return exitError(3, "%d of %d file(s) could not be processed", failed, len(paths))
	}
	return nil
}
