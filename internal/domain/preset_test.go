package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePreset_Builtin(t *testing.T) {
	p, err := ResolvePreset("Classic", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 25, p.FocusMinutes)
	assert.Equal(t, 5, p.BreakMinutes)

	// Minute arguments are ignored for named presets
	p, err = ResolvePreset("Deep Work", 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 90, p.FocusMinutes)
	assert.Equal(t, 20, p.BreakMinutes)
}

func TestResolvePreset_CaseInsensitive(t *testing.T) {
	p, err := ResolvePreset("extended", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "Extended", p.Name)
}

func TestResolvePreset_Unknown(t *testing.T) {
	_, err := ResolvePreset("Marathon", 0, 0)
	require.ErrorIs(t, err, ErrInvalidPreset)
	assert.Contains(t, err.Error(), "Marathon")
}

func TestResolvePreset_Custom(t *testing.T) {
	p, err := ResolvePreset("custom", 45, 10)
	require.NoError(t, err)
	assert.Equal(t, PresetCustom, p.Name)
	assert.Equal(t, 45, p.FocusMinutes)
	assert.Equal(t, 10, p.BreakMinutes)
}

func TestPreset_Validate(t *testing.T) {
	tests := []struct {
		name    string
		preset  Preset
		wantErr bool
	}{
		{"valid", Preset{Name: "Custom", FocusMinutes: 25, BreakMinutes: 5}, false},
		{"zero break allowed", Preset{Name: "Custom", FocusMinutes: 10, BreakMinutes: 0}, false},
		{"zero focus", Preset{Name: "Custom", FocusMinutes: 0, BreakMinutes: 5}, true},
		{"negative break", Preset{Name: "Custom", FocusMinutes: 25, BreakMinutes: -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.preset.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidPreset)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestPreset_Durations(t *testing.T) {
	p := Preset{Name: "Custom", FocusMinutes: 45, BreakMinutes: 10}
	assert.Equal(t, 45*time.Minute, p.FocusDuration())
	assert.Equal(t, 10*time.Minute, p.BreakDuration())
}

func TestPreset_String(t *testing.T) {
	p := Preset{Name: "Classic", FocusMinutes: 25, BreakMinutes: 5}
	assert.Equal(t, "Classic (25/5)", p.String())
}
