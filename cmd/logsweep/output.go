package main

import (
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/term"
)

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// emit writes output to path, or to stdout when path is empty.
func (a *app) emit(path, output string) error {
	if path == "" {
		_, err := fmt.Fprint(a.stdout, output)
		return err
	}
	if err := os.WriteFile(path, []byte(output), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func marshal(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal output: %w", err)
	}
	return string(data) + "\n", nil
}
