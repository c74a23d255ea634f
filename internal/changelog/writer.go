// Package changelog maintains the repository change log markdown file.
// Entries are grouped into dated sections and inserted newest-first, so the
// file reads top-down from most recent change to oldest.
package changelog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mrz1836/calcifer/internal/clock"
	"github.com/mrz1836/calcifer/internal/constants"
)

// Writer appends entries to a change log file.
type Writer struct {
	path string      // Absolute path to the change log file
	clk  clock.Clock // Time source for section dates
}

// NewWriter creates a Writer for the change log at path.
func NewWriter(path string, clk clock.Clock) *Writer {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &Writer{path: path, clk: clk}
}

// Path returns the change log file path.
func (w *Writer) Path() string {
	return w.path
}

// Ensure creates the change log with its standard header if it does not
// already exist. An existing file is left untouched.
func (w *Writer) Ensure() error {
	if _, err := os.Stat(w.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat change log: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(w.path), 0o750); err != nil {
		return fmt.Errorf("failed to create change log directory: %w", err)
	}

	header := constants.ChangelogHeaderTitle + "\n\n" + constants.ChangelogHeaderSubtitle + "\n\n"
	if err := os.WriteFile(w.path, []byte(header), 0o644); err != nil { //#nosec G306 -- change log is repository content
		return fmt.Errorf("failed to create change log: %w", err)
	}
	return nil
}

// Append writes a new dated section with a single bullet to the change log.
// The section lands before the first existing section so the newest change
// is always on top; the file header on line 0 is never displaced.
func (w *Writer) Append(entry, author, workType string) error {
	if err := w.Ensure(); err != nil {
		return err
	}

	data, err := os.ReadFile(w.path)
	if err != nil {
		return fmt.Errorf("failed to read change log: %w", err)
	}

	lines := splitKeepEnds(string(data))

	section := fmt.Sprintf("## %s - %s - %s\n- %s\n",
		w.clk.Now().Format(constants.ChangelogDateFormat), author, workType, entry)

	// Insert before the first existing section, skipping line 0 so a file
	// that opens with "## ..." instead of the header keeps its first line.
	insertIndex := len(lines)
	for i, line := range lines {
		if i > 0 && strings.HasPrefix(line, "## ") {
			insertIndex = i
			break
		}
	}

	updated := make([]string, 0, len(lines)+2)
	updated = append(updated, lines[:insertIndex]...)
	updated = append(updated, "\n", section)
	updated = append(updated, lines[insertIndex:]...)

	if err := os.WriteFile(w.path, []byte(strings.Join(updated, "")), 0o644); err != nil { //#nosec G306 -- change log is repository content
		return fmt.Errorf("failed to write change log: %w", err)
	}
	return nil
}

// splitKeepEnds splits content into lines, preserving line terminators, so
// rejoining the slice reproduces the original bytes.
func splitKeepEnds(content string) []string {
	if content == "" {
		return nil
	}

	var lines []string
	for {
		idx := strings.IndexByte(content, '\n')
		if idx < 0 {
			lines = append(lines, content)
			break
		}
		lines = append(lines, content[:idx+1])
		content = content[idx+1:]
		if content == "" {
			break
		}
	}
	return lines
}
