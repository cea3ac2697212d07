package internal

import (
	"flag"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/logsweep/internal/assist"
	"github.com/dshills/logsweep/internal/source"
	"github.com/dshills/logsweep/internal/strip"
)

var update = flag.Bool("update", false, "rewrite golden files")

func projectRoot() string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Dir(filepath.Dir(filename))
}

func readTestdata(t *testing.T, parts ...string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(append([]string{projectRoot(), "testdata"}, parts...)...))
	if err != nil {
		t.Fatalf("failed to read testdata: %v", err)
	}
	return string(data)
}

func TestGoldenRemoveLogs(t *testing.T) {
	tests := []struct {
		file      string
		language  string
		wantCount int
	}{
		{"app.js", "JavaScript", 4},
		{"clean.py", "Python", 0},
		{"limitations.ts", "", 2},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			src, err := source.Load(filepath.Join(projectRoot(), "testdata", "sources", tt.file))
			if err != nil {
				t.Fatalf("failed to load source: %v", err)
			}
			if tt.language != "" && src.Language != tt.language {
				t.Errorf("language = %q, want %q", src.Language, tt.language)
			}

			res := strip.RemoveLogs(src.Raw)
			if res.Count != tt.wantCount {
				t.Errorf("count = %d, want %d", res.Count, tt.wantCount)
			}

			goldenPath := filepath.Join(projectRoot(), "testdata", "golden", tt.file+".golden")
			if *update {
				if err := os.WriteFile(goldenPath, []byte(res.Text), 0644); err != nil {
					t.Fatal(err)
				}
			}
			want := readTestdata(t, "golden", tt.file+".golden")
			if diff := cmp.Diff(want, res.Text); diff != "" {
				t.Errorf("cleaned text mismatch (-want +got):\n%s", diff)
			}

			// Cleaning the cleaned text changes nothing
			again := strip.RemoveLogs(res.Text)
			if again.Count != 0 || again.Text != res.Text {
				t.Errorf("second pass removed %d statement(s)", again.Count)
			}

			// Every detected statement is accounted for by the removal
			if got := len(strip.Find(src.Raw)); got != res.Count {
				t.Errorf("Find reported %d statements, RemoveLogs removed %d", got, res.Count)
			}
		})
	}
}

func TestGoldenSmartRemove(t *testing.T) {
	code := readTestdata(t, "sources", "app.js")

	res := assist.Apply(code, readTestdata(t, "responses", "smart-app.txt"))
	if !res.Extracted {
		t.Fatal("expected the fenced block to be extracted")
	}
	want := strings.TrimSpace(readTestdata(t, "golden", "smart-app.golden"))
	if diff := cmp.Diff(want, res.Code); diff != "" {
		t.Errorf("extracted code mismatch (-want +got):\n%s", diff)
	}
	if res.RemovedCount != 3 || res.KeptCount != 1 {
		t.Errorf("counts = %d removed / %d kept, want 3 / 1", res.RemovedCount, res.KeptCount)
	}

	// Without a block the original code stands, with the same counts
	fallback := assist.Apply(code, readTestdata(t, "responses", "no-block.txt"))
	if fallback.Extracted || fallback.Code != code {
		t.Error("expected the original code when the response has no block")
	}
	if fallback.RemovedCount != res.RemovedCount || fallback.KeptCount != res.KeptCount {
		t.Error("counts must not depend on the model's answer")
	}
}
