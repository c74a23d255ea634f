package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRealClockNow(t *testing.T) {
	before := time.Now()
	now := RealClock{}.Now()
	after := time.Now()

	assert.False(t, now.Before(before))
	assert.False(t, now.After(after))
}

func TestFixedNow(t *testing.T) {
	instant := time.Date(2026, 8, 31, 15, 4, 5, 0, time.UTC)
	c := Fixed{T: instant}

	assert.Equal(t, instant, c.Now())
	assert.Equal(t, instant, c.Now(), "fixed clock never advances")
}
