// Package report defines the output of a batch log sweep.
package report

import (
	"time"

	"github.com/google/uuid"
)

// Tool is the name recorded in every report.
const Tool = "logsweep"

// Version is the report format version.
const Version = "1.0"

// Report is the top-level output object.
type Report struct {
	Tool    string       `json:"tool"`
	Version string       `json:"version"`
	RunID   string       `json:"run_id"`
	Root    string       `json:"root"`
	DryRun  bool         `json:"dry_run"`
	Summary Summary      `json:"summary"`
	Files   []FileResult `json:"files"`
	Meta    Meta         `json:"meta"`
}

// FileResult records what happened to one file.
type FileResult struct {
	Path     string         `json:"path"`
	Hash     string         `json:"hash,omitempty"`
	Language string         `json:"language,omitempty"`
	Status   Status         `json:"status"`
	Removed  int            `json:"removed"`
	ByKind   map[string]int `json:"by_kind,omitempty"`
	ByLevel  map[string]int `json:"by_level,omitempty"`
	Diff     string         `json:"diff,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// Summary holds the tallies over all files.
// Failed files never contribute to Changed or Removed.
type Summary struct {
	Files   int `json:"files"`
	Changed int `json:"changed"`
	Clean   int `json:"clean"`
	Failed  int `json:"failed"`
	Removed int `json:"removed"`
}

// Meta records the settings of the run.
type Meta struct {
	Include     []string `json:"include"`
	Exclude     []string `json:"exclude,omitempty"`
	Concurrency int      `json:"concurrency"`
	StartedAt   string   `json:"started_at"`
	ElapsedMS   int64    `json:"elapsed_ms"`
}

// New starts a report for a run over root.
func New(root string, dryRun bool, started time.Time) *Report {
	return &Report{
		Tool:    Tool,
		Version: Version,
		RunID:   uuid.NewString(),
		Root:    root,
		DryRun:  dryRun,
		Meta:    Meta{StartedAt: started.UTC().Format(time.RFC3339)},
	}
}

// Finish sorts the files, recomputes the summary and records the elapsed time.
func (r *Report) Finish(now time.Time, started time.Time) {
	SortFiles(r.Files)
	r.Summary = ComputeSummary(r.Files)
	r.Meta.ElapsedMS = now.Sub(started).Milliseconds()
}
