package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/logsweep/internal/batch"
	"github.com/dshills/logsweep/internal/patch"
	"github.com/dshills/logsweep/internal/render"
)

type workspaceFlags struct {
	dryRun      bool
	concurrency int
	format      string
	out         string
	patchOut    string
}

func newWorkspaceCmd(a *app) *cobra.Command {
	f := &workspaceFlags{}

	cmd := &cobra.Command{
		Use:   "workspace [dir]",
		Short: "Remove log statements from every matching file under a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			if !cmd.Flags().Changed("concurrency") {
				f.concurrency = a.cfg.Concurrency
			}
			return runWorkspace(cmd, a, dir, f)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&f.dryRun, "dry-run", false, "Report what would change without writing files")
	flags.IntVar(&f.concurrency, "concurrency", 0, "Files processed in parallel (default from config)")
	flags.StringVar(&f.format, "format", "md", "Output format: md or json")
	flags.StringVar(&f.out, "out", "", "Output file path (default: stdout)")
	flags.StringVar(&f.patchOut, "patch-out", "", "Write the changes as a unified diff")
	return cmd
}

func runWorkspace(cmd *cobra.Command, a *app, dir string, f *workspaceFlags) error {
	if f.format != "md" && f.format != "json" {
		return exitError(3, "unknown format: %s", f.format)
	}
	if f.concurrency < 1 {
		return exitError(3, "--concurrency must be >= 1, got %d", f.concurrency)
	}

	// 1. Sweep
	rep, changes, err := batch.Sweep(cmd.Context(), batch.Options{
		Root:        dir,
		Include:     a.cfg.Include,
		Exclude:     a.cfg.Exclude,
		Concurrency: f.concurrency,
		DryRun:      f.dryRun,
		Diff:        f.dryRun,
	}, a.log)
	if err != nil {
		return exitError(3, "workspace sweep failed: %v", err)
	}
	rep.Version = version

	// 2. Output
	var output string
	switch f.format {
	case "json":
		output, err = marshal(rep)
		if err != nil {
			return err
		}
	default:
		output = render.Markdown(rep)
	}
	if err := a.emit(f.out, output); err != nil {
		return err
	}

	// 3. Patch output
	if f.patchOut != "" {
		if err := patch.WritePatchFile(changes, f.patchOut); err != nil {
			return fmt.Errorf("failed to write patches: %w", err)
		}
	}

	if rep.Summary.Files == 0 {
		fmt.Fprintln(a.stderr, render.Info("no files under %s match %v", dir, a.cfg.Include))
	}
	return nil
}
