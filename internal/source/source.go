// Package source reads, labels and rewrites the files logsweep operates on.
package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/chroma/v2/lexers"
)

// File holds a loaded source file with its content and metadata.
type File struct {
	Path     string
	Raw      string
	Hash     string
	Language string
	Mode     os.FileMode
}

// Load reads a source file, hashes it and determines its language label.
func Load(path string) (*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("source.Load: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("source.Load: %s is a directory", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("source.Load: %w", err)
	}
	raw := string(data)
	return &File{
		Path:     path,
		Raw:      raw,
		Hash:     Hash(raw),
		Language: Language(path, raw),
		Mode:     info.Mode().Perm(),
	}, nil
}

// Hash returns the sha256 digest of text in "sha256:<hex>" form.
func Hash(text string) string {
	return fmt.Sprintf("sha256:%x", sha256.Sum256([]byte(text)))
}

// Language returns a display label for the file's language, matched by file name
// first and by content analysis second.
func Language(path, content string) string {
	lexer := lexers.Match(filepath.Base(path))
	if lexer == nil && content != "" {
		lexer = lexers.Analyse(content)
	}
	if lexer == nil {
		return "plaintext"
	}
	return lexer.Config().Name
}

// Replace writes text over the file's content. The new content is written to a
// temporary file in the same directory and renamed into place.
func Replace(f *File, text string) error {
	dir := filepath.Dir(f.Path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.Path)+".logsweep-*")
	if err != nil {
		return fmt.Errorf("source.Replace: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		return fmt.Errorf("source.Replace: write %s: %w", f.Path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("source.Replace: close %s: %w", f.Path, err)
	}
	mode := f.Mode
	if mode == 0 {
		mode = 0644
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return fmt.Errorf("source.Replace: chmod %s: %w", f.Path, err)
	}
	if err := os.Rename(tmpName, f.Path); err != nil {
		return fmt.Errorf("source.Replace: rename %s: %w", f.Path, err)
	}

	f.Raw = text
	f.Hash = Hash(text)
	return nil
}
