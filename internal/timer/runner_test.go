package timer

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunner_ReturnsWhenEngineIdle(t *testing.T) {
	e := New(nil)
	r := NewRunner(e, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := r.Run(ctx)
	require.NoError(t, err)
}

func TestRunner_StopsOnContextCancel(t *testing.T) {
	e := New(nil)
	require.NoError(t, e.StartFocus("cat-1", classic))
	r := NewRunner(e, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(30 * time.Millisecond)
		cancel()
	}()

	err := r.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, domain.PhaseFocus, e.Phase())
}

func TestRunner_ReturnsAfterSkipToIdle(t *testing.T) {
	e := New(nil, WithAutoStartBreak(false))
	require.NoError(t, e.StartFocus("cat-1", classic))
	r := NewRunner(e, 5*time.Millisecond)

	go func() {
		time.Sleep(20 * time.Millisecond)
		_ = e.Skip()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	err := r.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseIdle, e.Phase())
}

func TestNewRunner_DefaultsInterval(t *testing.T) {
	r := NewRunner(New(nil), 0)
	assert.Equal(t, time.Second, r.interval)
}
