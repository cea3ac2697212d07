package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/logsweep/internal/render"
	"github.com/dshills/logsweep/internal/source"
	"github.com/dshills/logsweep/internal/strip"
)

type scanFlags struct {
	failOnFound bool
	lines       bool
}

func newScanCmd(a *app) *cobra.Command {
	f := &scanFlags{}

	cmd := &cobra.Command{
		Use:   "scan <file>...",
		Short: "List log statements without changing files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(a, args, f)
		},
	}
	cmd.Flags().BoolVar(&f.failOnFound, "fail-on-found", false, "Exit with code 2 when any statement is found")
	cmd.Flags().BoolVar(&f.lines, "lines", false, "List the source lines holding a statement instead of each statement")
	return cmd
}

func runScan(a *app, paths []string, f *scanFlags) error {
	total := 0
	for _, p := range paths {
		src, err := source.Load(p)
		if err != nil {
			return exitError(3, "failed to load %s: %v", p, err)
		}
		if f.lines {
			for i, line := range strings.Split(src.Raw, "\n") {
				if strip.HasLogStatement(line) {
					fmt.Fprintf(a.stdout, "%s:%d: %s\n", p, i+1, strings.TrimSpace(line))
					total++
				}
			}
			continue
		}
		for _, m := range strip.Find(src.Raw) {
			fmt.Fprintln(a.stdout, render.ScanLine(p, m))
			total++
		}
	}

	if total == 0 {
		fmt.Fprintln(a.stderr, render.Info("no log statements found"))
		return nil
	}
	if f.failOnFound {
		return exitError(2, "found %d log statement(s)", total)
	}
	return nil
}
