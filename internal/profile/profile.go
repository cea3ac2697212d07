// Package profile loads the built-in instruction profiles, one per model operation.
package profile

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Names of the built-in profiles.
const (
	SmartRemove  = "smart-remove"
	AnalyzeLogs  = "analyze-logs"
	GenerateLogs = "generate-logs"
	CodeQuality  = "code-quality"
)

// Profile is the instruction text and sampling settings for one operation.
type Profile struct {
	Name         string   `yaml:"name"`
	Version      int      `yaml:"version"`
	Description  string   `yaml:"description"`
	Temperature  float64  `yaml:"temperature"`
	Preamble     string   `yaml:"preamble"`
	Focus        []string `yaml:"focus"`
	Deliverables []string `yaml:"deliverables"`
	Closing      string   `yaml:"closing"`
	FailureText  string   `yaml:"failure_text"`
}

// LoadBuiltin loads a built-in profile by name.
func LoadBuiltin(name string) (*Profile, error) {
	filename := name + ".yaml"
	data, err := builtinFS.ReadFile("builtin/" + filename)
	if err != nil {
		return nil, fmt.Errorf("profile.LoadBuiltin: unknown profile %q: %w", name, err)
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("profile.LoadBuiltin: parse %q: %w", name, err)
	}
	if p.Temperature < 0 || p.Temperature > 2 {
		return nil, fmt.Errorf("profile.LoadBuiltin: %q: temperature %v out of range", name, p.Temperature)
	}
	return &p, nil
}

// List returns the names of all available built-in profiles.
func List() ([]string, error) {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		n := e.Name()
		if strings.HasSuffix(n, ".yaml") {
			names = append(names, strings.TrimSuffix(n, ".yaml"))
		}
	}
	return names, nil
}

// FormatFocus renders the profile's focus points as a numbered list.
func FormatFocus(p *Profile) string {
	return numbered(p.Focus)
}

// FormatDeliverables renders what the model is asked to return as a numbered list.
func FormatDeliverables(p *Profile) string {
	return numbered(p.Deliverables)
}

func numbered(items []string) string {
	var b strings.Builder
	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, strings.TrimSpace(item))
	}
	return b.String()
}
