package report

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusChanged, StatusClean, StatusFailed} {
		if !s.Valid() {
			t.Errorf("expected %q to be valid", s)
		}
	}
	if Status("SKIPPED").Valid() {
		t.Error("expected SKIPPED to be invalid")
	}
}

func TestComputeSummary(t *testing.T) {
	tests := []struct {
		name  string
		files []FileResult
		want  Summary
	}{
		{"empty", nil, Summary{}},
		{
			"mixed",
			[]FileResult{
				{Path: "a.js", Status: StatusChanged, Removed: 3},
				{Path: "b.js", Status: StatusClean},
				{Path: "c.js", Status: StatusChanged, Removed: 1},
			},
			Summary{Files: 3, Changed: 2, Clean: 1, Removed: 4},
		},
		{
			"failed files are not tallied as removed",
			[]FileResult{
				{Path: "a.js", Status: StatusFailed, Removed: 5, Error: "permission denied"},
				{Path: "b.js", Status: StatusChanged, Removed: 2},
			},
			Summary{Files: 2, Changed: 1, Failed: 1, Removed: 2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeSummary(tt.files))
		})
	}
}

func TestSortFiles(t *testing.T) {
	files := []FileResult{
		{Path: "z.js", Status: StatusClean},
		{Path: "b.js", Status: StatusChanged},
		{Path: "y.js", Status: StatusFailed},
		{Path: "a.js", Status: StatusChanged},
		{Path: "a.js", Status: StatusClean},
	}
	SortFiles(files)

	var got []string
	for _, f := range files {
		got = append(got, string(f.Status)+" "+f.Path)
	}
	assert.Equal(t, []string{
		"FAILED y.js",
		"CHANGED a.js",
		"CHANGED b.js",
		"CLEAN a.js",
		"CLEAN z.js",
	}, got)
}

func TestNewAndFinish(t *testing.T) {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	r := New("/src", true, start)

	assert.Equal(t, Tool, r.Tool)
	assert.True(t, r.DryRun)
	_, err := uuid.Parse(r.RunID)
	require.NoError(t, err)
	assert.Equal(t, "2026-01-02T03:04:05Z", r.Meta.StartedAt)

	r.Files = []FileResult{
		{Path: "b.js", Status: StatusClean},
		{Path: "a.js", Status: StatusChanged, Removed: 2},
	}
	r.Finish(start.Add(1500*time.Millisecond), start)

	assert.Equal(t, "a.js", r.Files[0].Path)
	assert.Equal(t, Summary{Files: 2, Changed: 1, Clean: 1, Removed: 2}, r.Summary)
	assert.Equal(t, int64(1500), r.Meta.ElapsedMS)
}

func TestRunIDsDiffer(t *testing.T) {
	now := time.Now()
	assert.NotEqual(t, New(".", false, now).RunID, New(".", false, now).RunID)
}

func TestJSONShape(t *testing.T) {
	r := New("src", false, time.Unix(0, 0))
	r.Files = []FileResult{{Path: "a.js", Status: StatusClean}}
	r.Finish(time.Unix(0, 0), time.Unix(0, 0))

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	for _, key := range []string{"tool", "version", "run_id", "root", "dry_run", "summary", "files", "meta"} {
		assert.Contains(t, m, key)
	}
	file := m["files"].([]any)[0].(map[string]any)
	assert.NotContains(t, file, "error")
	assert.NotContains(t, file, "diff")
}
