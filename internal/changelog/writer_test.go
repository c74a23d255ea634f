package changelog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/calcifer/internal/clock"
)

func fixedClock() clock.Clock {
	return clock.Fixed{T: time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)}
}

func TestWriterEnsure(t *testing.T) {
	t.Run("creates file with header", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "docs", "CHANGES.md")
		w := NewWriter(path, fixedClock())

		require.NoError(t, w.Ensure())

		data, err := os.ReadFile(path) //nolint:gosec // test-owned path
		require.NoError(t, err)
		assert.Equal(t, "# Change Log\n\nAll infrastructure changes are logged here.\n\n", string(data))
	})

	t.Run("leaves existing file untouched", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "CHANGES.md")
		require.NoError(t, os.WriteFile(path, []byte("custom content\n"), 0o600))

		w := NewWriter(path, fixedClock())
		require.NoError(t, w.Ensure())

		data, err := os.ReadFile(path) //nolint:gosec // test-owned path
		require.NoError(t, err)
		assert.Equal(t, "custom content\n", string(data))
	})
}

func TestWriterAppend(t *testing.T) {
	t.Run("first entry goes after header", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "CHANGES.md")
		w := NewWriter(path, fixedClock())

		require.NoError(t, w.Append("Deploy proxy service", "Alice", "New Service"))

		data, err := os.ReadFile(path) //nolint:gosec // test-owned path
		require.NoError(t, err)
		assert.Equal(t,
			"# Change Log\n\nAll infrastructure changes are logged here.\n\n"+
				"\n## 2026-08-31 - Alice - New Service\n- Deploy proxy service\n",
			string(data))
	})

	t.Run("new entry inserted before existing sections", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "CHANGES.md")
		existing := "# Change Log\n\nAll infrastructure changes are logged here.\n\n" +
			"## 2026-08-01 - Bob - Service Fix\n- Restart postgres\n"
		require.NoError(t, os.WriteFile(path, []byte(existing), 0o600))

		w := NewWriter(path, fixedClock())
		require.NoError(t, w.Append("Upgrade proxy", "Alice", "Service Change"))

		data, err := os.ReadFile(path) //nolint:gosec // test-owned path
		require.NoError(t, err)
		content := string(data)

		newIdx := strings.Index(content, "## 2026-08-31 - Alice - Service Change")
		oldIdx := strings.Index(content, "## 2026-08-01 - Bob - Service Fix")
		require.GreaterOrEqual(t, newIdx, 0)
		require.GreaterOrEqual(t, oldIdx, 0)
		assert.Less(t, newIdx, oldIdx, "newest entry should come first")
		assert.Contains(t, content, "- Upgrade proxy\n")
		assert.Contains(t, content, "- Restart postgres\n")
	})

	t.Run("multiple appends keep newest first", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "CHANGES.md")
		w := NewWriter(path, fixedClock())

		require.NoError(t, w.Append("first change", "Alice", "New Service"))
		require.NoError(t, w.Append("second change", "Alice", "New Service"))

		data, err := os.ReadFile(path) //nolint:gosec // test-owned path
		require.NoError(t, err)
		content := string(data)

		firstIdx := strings.Index(content, "- first change")
		secondIdx := strings.Index(content, "- second change")
		assert.Less(t, secondIdx, firstIdx)
		assert.True(t, strings.HasPrefix(content, "# Change Log\n"))
	})

	t.Run("section line on line zero is not displaced", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "CHANGES.md")
		existing := "## 2026-08-01 - Bob - Service Fix\n- Restart postgres\n"
		require.NoError(t, os.WriteFile(path, []byte(existing), 0o600))

		w := NewWriter(path, fixedClock())
		require.NoError(t, w.Append("Upgrade proxy", "Alice", "Service Change"))

		data, err := os.ReadFile(path) //nolint:gosec // test-owned path
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "## 2026-08-01 - Bob - Service Fix\n"))
	})
}
