// Package batch sweeps log statements out of every matching file under a directory.
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/logsweep/internal/patch"
	"github.com/dshills/logsweep/internal/report"
	"github.com/dshills/logsweep/internal/source"
	"github.com/dshills/logsweep/internal/strip"
)

// Options configures a sweep.
type Options struct {
	Root        string
	Include     []string
	Exclude     []string
	Concurrency int
	// DryRun computes results and diffs without writing any file.
	DryRun bool
	// Diff records a unified diff for each changed file.
	Diff bool
}

// Expand returns the files under root that match any include pattern and no exclude
// pattern. Paths are slash-separated, relative to root and sorted.
func Expand(root string, include, exclude []string) ([]string, error) {
	fsys := os.DirFS(root)
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range include {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("batch.Expand: pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if seen[m] || Excluded(m, exclude) {
				continue
			}
			seen[m] = true
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files, nil
}

// Excluded reports whether the slash-separated path matches an exclude pattern.
func Excluded(path string, exclude []string) bool {
	for _, pattern := range exclude {
		if ok, _ := doublestar.Match(pattern, path); ok {
			return true
		}
	}
	return false
}

// Included reports whether path matches an include pattern and no exclude pattern.
func Included(path string, include, exclude []string) bool {
	if Excluded(path, exclude) {
		return false
	}
	for _, pattern := range include {
		if ok, _ := doublestar.Match(pattern, path); ok {
			return true
		}
	}
	return false
}

// Sweep runs the Remover over every matching file with at most opts.Concurrency files
// in flight. A file that cannot be read or written is recorded as FAILED and does not
// stop the others. The returned changes hold the before and after text of changed files.
func Sweep(ctx context.Context, opts Options, logger *zap.Logger) (*report.Report, []patch.Change, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	started := time.Now()

	files, err := Expand(opts.Root, opts.Include, opts.Exclude)
	if err != nil {
		return nil, nil, err
	}

	limit := opts.Concurrency
	if limit <= 0 {
		limit = 1
	}

	rep := report.New(opts.Root, opts.DryRun, started)
	rep.Meta.Include = opts.Include
	rep.Meta.Exclude = opts.Exclude
	rep.Meta.Concurrency = limit

	results := make([]report.FileResult, len(files))
	changes := make([]*patch.Change, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, rel := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			path := filepath.Join(opts.Root, filepath.FromSlash(rel))
			res, change := File(path, opts.DryRun, opts.Diff)
			res.Path = rel
			if change != nil {
				change.Path = rel
			}
			if res.Status == report.StatusFailed {
				logger.Warn("file skipped", zap.String("path", rel), zap.String("error", res.Error))
			} else {
				logger.Debug("file swept",
					zap.String("path", rel),
					zap.String("status", string(res.Status)),
					zap.Int("removed", res.Removed))
			}
			results[i] = res
			changes[i] = change
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("batch.Sweep: %w", err)
	}

	rep.Files = results
	rep.Finish(time.Now(), started)

	var out []patch.Change
	for _, c := range changes {
		if c != nil {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })

	logger.Info("sweep finished",
		zap.String("run_id", rep.RunID),
		zap.Int("files", rep.Summary.Files),
		zap.Int("changed", rep.Summary.Changed),
		zap.Int("failed", rep.Summary.Failed),
		zap.Int("removed", rep.Summary.Removed))
	return rep, out, nil
}

// File removes the log statements from one file. Unless dryRun is set the file is
// rewritten when anything was removed. The change is nil when nothing changed.
func File(path string, dryRun, withDiff bool) (report.FileResult, *patch.Change) {
	res := report.FileResult{Path: path}

	f, err := source.Load(path)
	if err != nil {
		return failed(res, err), nil
	}
	res.Hash = f.Hash
	res.Language = f.Language

	out := strip.RemoveLogs(f.Raw)
	if out.Count == 0 {
		res.Status = report.StatusClean
		return res, nil
	}

	change := &patch.Change{Path: path, Before: f.Raw, After: out.Text}
	if withDiff {
		diff, err := patch.Unified(*change)
		if err != nil {
			return failed(res, err), nil
		}
		res.Diff = diff
	}
	if !dryRun {
		if err := source.Replace(f, out.Text); err != nil {
			return failed(res, err), nil
		}
	}

	res.Status = report.StatusChanged
	res.Removed = out.Count
	res.ByKind = make(map[string]int, len(out.ByKind))
	for k, n := range out.ByKind {
		res.ByKind[string(k)] = n
	}
	res.ByLevel = make(map[string]int, len(out.ByLevel))
	for l, n := range out.ByLevel {
		res.ByLevel[string(l)] = n
	}
	return res, change
}

func failed(res report.FileResult, err error) report.FileResult {
	res.Status = report.StatusFailed
	res.Error = err.Error()
	return res
}
