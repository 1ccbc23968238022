package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCountdown(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00"},
		{-time.Second, "00:00"},
		{59 * time.Second, "00:59"},
		{25 * time.Minute, "25:00"},
		{25*time.Minute + 5*time.Second, "25:05"},
		{time.Hour, "1:00:00"},
		{90*time.Minute + 30*time.Second, "1:30:30"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Countdown(tt.d), "Countdown(%v)", tt.d)
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0m"},
		{45 * time.Minute, "45m"},
		{time.Hour, "1h"},
		{2*time.Hour + 15*time.Minute, "2h 15m"},
		{25*time.Minute + 29*time.Second, "25m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMinutes(tt.d), "FormatMinutes(%v)", tt.d)
	}
}

func TestTruncID(t *testing.T) {
	assert.Equal(t, "abcd1234", TruncID("abcd1234-5678-90ab"))
	assert.Equal(t, "short", TruncID("short"))
}

func TestHumanDate(t *testing.T) {
	now := time.Now()
	assert.Equal(t, "Today", HumanDate(now))
	assert.Equal(t, "Yesterday", HumanDate(now.AddDate(0, 0, -1)))

	old := time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local)
	assert.Equal(t, "Mar 15, 2024", HumanDate(old))
}

func TestRenderProgress(t *testing.T) {
	out := RenderProgress(0.5, 10, "")
	assert.Contains(t, out, " 50%")
	assert.Equal(t, 5, strings.Count(out, filledBlock))
	assert.Equal(t, 5, strings.Count(out, emptyBlock))

	// Clamped
	out = RenderProgress(1.5, 10, "")
	assert.Contains(t, out, "100%")
	assert.Equal(t, 10, strings.Count(out, filledBlock))

	out = RenderProgress(-0.5, 10, "")
	assert.Contains(t, out, "  0%")
	assert.Equal(t, 10, strings.Count(out, emptyBlock))
}

func TestRenderProgress_CategoryColor(t *testing.T) {
	// A custom fill color changes styling, never the bar geometry
	out := RenderProgress(0.25, 8, "#d3869b")
	assert.Contains(t, out, " 25%")
	assert.Equal(t, 2, strings.Count(out, filledBlock))
	assert.Equal(t, 6, strings.Count(out, emptyBlock))
}
