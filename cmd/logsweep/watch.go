package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/logsweep/internal/batch"
	"github.com/dshills/logsweep/internal/render"
	"github.com/dshills/logsweep/internal/report"
	"github.com/dshills/logsweep/internal/source"
	"github.com/dshills/logsweep/internal/strip"
	"github.com/dshills/logsweep/internal/watch"
)

func newWatchCmd(a *app) *cobra.Command {
	var fix bool

	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Report log statements in files as they are saved",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, a, dir, fix)
		},
	}
	cmd.Flags().BoolVar(&fix, "fix", false, "Remove statements from changed files")
	return cmd
}

func runWatch(ctx context.Context, a *app, dir string, fix bool) error {
	w, err := watch.New(dir, a.cfg.Include, a.cfg.Exclude, a.log)
	if err != nil {
		return exitError(3, "failed to watch %s: %v", dir, err)
	}
	fmt.Fprintln(a.stderr, render.Info("watching %d directories under %s", len(w.Dirs()), dir))

	go w.Run(ctx)
	for ev := range w.Events {
		handleWatchEvent(a, ev, fix)
	}
	return nil
}

func handleWatchEvent(a *app, ev watch.Event, fix bool) {
	if fix {
		res, _ := batch.File(ev.Path, false, false)
		switch res.Status {
		case report.StatusChanged:
			fmt.Fprintln(a.stdout, render.Success("%s: removed %d log statement(s)", ev.Rel, res.Removed))
		case report.StatusFailed:
			a.log.Warn("file skipped", zap.String("path", ev.Rel), zap.String("error", res.Error))
		}
		return
	}

	f, err := source.Load(ev.Path)
	if err != nil {
		a.log.Debug("file vanished before it could be read", zap.String("path", ev.Rel), zap.Error(err))
		return
	}
	for _, m := range strip.Find(f.Raw) {
		fmt.Fprintln(a.stdout, render.ScanLine(ev.Rel, m))
	}
}
