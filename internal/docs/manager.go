// Package docs manages the markdown documentation files kept in the
// repository's docs directory.
package docs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	calciferrors "github.com/mrz1836/calcifer/internal/errors"
)

// Doc describes one markdown file in the docs directory.
type Doc struct {
	// Name is the file name, e.g. "endpoint-api.md".
	Name string `json:"name"`

	// Title is the display title derived from the file name.
	Title string `json:"title"`

	// Path is the file path relative to the repository root.
	Path string `json:"path"`
}

// Manager reads and writes markdown files under a repository docs directory.
type Manager struct {
	repoPath string
	docsDir  string // Relative to repoPath
}

var titleCaser = cases.Title(language.English)

// NewManager creates a Manager for docsDir inside repoPath.
func NewManager(repoPath, docsDir string) *Manager {
	return &Manager{repoPath: repoPath, docsDir: docsDir}
}

// Dir returns the absolute docs directory path.
func (m *Manager) Dir() string {
	return filepath.Join(m.repoPath, m.docsDir)
}

// RelPath returns the repository-relative path for a doc name, appending the
// .md extension when missing.
func (m *Manager) RelPath(name string) string {
	return filepath.Join(m.docsDir, normalizeName(name))
}

// Create writes a markdown file into the docs directory and returns its
// repository-relative path. An existing file with the same name is replaced.
func (m *Manager) Create(name, content string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("doc name is required: %w", calciferrors.ErrEmptyValue)
	}

	if err := os.MkdirAll(m.Dir(), 0o750); err != nil {
		return "", fmt.Errorf("failed to create docs directory: %w", err)
	}

	name = normalizeName(name)
	absPath := filepath.Join(m.Dir(), name)
	if err := os.WriteFile(absPath, []byte(content), 0o644); err != nil { //#nosec G306 -- docs are repository content
		return "", fmt.Errorf("failed to write doc %q: %w", name, err)
	}

	return filepath.Join(m.docsDir, name), nil
}

// Read returns the raw markdown content of a doc. Names without the .md
// extension are resolved; anything else is ErrDocNotFound.
func (m *Manager) Read(name string) (string, error) {
	name = normalizeName(name)
	if filepath.Base(name) != name {
		return "", fmt.Errorf("doc %q: %w", name, calciferrors.ErrDocNotFound)
	}

	data, err := os.ReadFile(filepath.Join(m.Dir(), name)) //#nosec G304 -- name is restricted to the docs directory
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("doc %q: %w", name, calciferrors.ErrDocNotFound)
		}
		return "", fmt.Errorf("failed to read doc %q: %w", name, err)
	}
	return string(data), nil
}

// List returns all markdown docs sorted by file name.
func (m *Manager) List() ([]Doc, error) {
	entries, err := os.ReadDir(m.Dir())
	if err != nil {
		if os.IsNotExist(err) {
			return []Doc{}, nil
		}
		return nil, fmt.Errorf("failed to list docs: %w", err)
	}

	docs := []Doc{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		docs = append(docs, Doc{
			Name:  entry.Name(),
			Title: titleFromName(entry.Name()),
			Path:  filepath.Join(m.docsDir, entry.Name()),
		})
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Name < docs[j].Name })
	return docs, nil
}

// normalizeName appends the .md extension when missing.
func normalizeName(name string) string {
	if !strings.HasSuffix(name, ".md") {
		return name + ".md"
	}
	return name
}

// titleFromName derives a display title from a file name, e.g.
// "endpoint-api.md" becomes "Endpoint Api".
func titleFromName(name string) string {
	stem := strings.TrimSuffix(name, ".md")
	stem = strings.ReplaceAll(stem, "_", " ")
	stem = strings.ReplaceAll(stem, "-", " ")
	return titleCaser.String(stem)
}
