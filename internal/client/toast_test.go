package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToasterReplacesSlot(t *testing.T) {
	display := &recordingDisplay{}
	toaster := NewToaster(display, time.Hour)

	first := toaster.Show("one", LevelSuccess)
	second := toaster.Show("two", LevelError)

	require.Len(t, display.removed, 1)
	assert.Equal(t, first, display.removed[0])

	cur, ok := toaster.Current()
	require.True(t, ok)
	assert.Equal(t, second, cur)
}

func TestToasterExpires(t *testing.T) {
	display := &recordingDisplay{}
	toaster := NewToaster(display, 20*time.Millisecond)

	toast := toaster.Show("bye", LevelSuccess)

	assert.Eventually(t, func() bool {
		_, ok := toaster.Current()
		return !ok
	}, time.Second, 5*time.Millisecond)

	display.mu.Lock()
	defer display.mu.Unlock()
	assert.Equal(t, []Toast{toast}, display.removed)
}

func TestToasterNewToastCancelsOldTimer(t *testing.T) {
	display := &recordingDisplay{}
	toaster := NewToaster(display, 30*time.Millisecond)

	toaster.Show("old", LevelSuccess)
	time.Sleep(20 * time.Millisecond)
	fresh := toaster.Show("new", LevelSuccess)

	// Past the old deadline but before the new one
	time.Sleep(15 * time.Millisecond)
	cur, ok := toaster.Current()
	require.True(t, ok, "old timer must not dismiss the new toast")
	assert.Equal(t, fresh, cur)
}

func TestToasterDismiss(t *testing.T) {
	display := &recordingDisplay{}
	toaster := NewToaster(display, time.Hour)

	toaster.Dismiss()
	assert.Empty(t, display.removed)

	toaster.Show("x", LevelSuccess)
	toaster.Dismiss()
	_, ok := toaster.Current()
	assert.False(t, ok)
	assert.Len(t, display.removed, 1)
}

func TestNewToasterDefaultTTL(t *testing.T) {
	assert.Equal(t, ToastTTL, NewToaster(&recordingDisplay{}, 0).ttl)
}
