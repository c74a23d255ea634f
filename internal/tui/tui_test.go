package tui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mrz1836/calcifer/internal/clock"
	"github.com/mrz1836/calcifer/internal/domain"
)

func TestStatusColor(t *testing.T) {
	assert.Equal(t, ColorWarning, StatusColor(domain.StatusPlanning))
	assert.Equal(t, ColorPrimary, StatusColor(domain.StatusInProgress))
	assert.Equal(t, ColorSuccess, StatusColor(domain.StatusComplete))
	assert.Equal(t, ColorMuted, StatusColor("bogus"))
}

func TestEndpointStatusIcon(t *testing.T) {
	assert.Equal(t, "✓", EndpointStatusIcon(domain.EndpointStatusUp))
	assert.Equal(t, "✗", EndpointStatusIcon(domain.EndpointStatusDown))
	assert.Equal(t, "?", EndpointStatusIcon(domain.EndpointStatusUnknown))
}

func TestTableWriteRow(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(&buf, []TableColumn{
		{Name: "ID", Width: 4, Align: AlignRight},
		{Name: "NAME", Width: 10},
		{Name: "STATUS", Width: 8},
	})

	table.WriteHeader()
	table.WriteRow("1", "api", "up")
	table.WriteRow("2", "a-very-long-endpoint-name", "down")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[1], "api")
	assert.Contains(t, lines[2], "…", "long values are truncated")
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	c := clock.Fixed{T: now}

	tests := []struct {
		name     string
		t        time.Time
		expected string
	}{
		{"just now", now.Add(-30 * time.Second), "just now"},
		{"one minute", now.Add(-time.Minute), "1 minute ago"},
		{"minutes", now.Add(-5 * time.Minute), "5 minutes ago"},
		{"one hour", now.Add(-time.Hour), "1 hour ago"},
		{"hours", now.Add(-7 * time.Hour), "7 hours ago"},
		{"days", now.Add(-3 * 24 * time.Hour), "3 days ago"},
		{"weeks", now.Add(-15 * 24 * time.Hour), "2 weeks ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RelativeTimeWith(tt.t, c))
		})
	}
}

func TestRenderMarkdownFallsBackToRaw(t *testing.T) {
	out := RenderMarkdown("# Title\n\nbody\n")
	assert.NotEmpty(t, out)
	assert.Contains(t, out, "Title")
}
