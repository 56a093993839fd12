package client

import (
	"sync"
	"time"
)

// ToastTTL is how long a notification stays up.
const ToastTTL = 3800 * time.Millisecond

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Toast is one notification.
type Toast struct {
	ID      uint64
	Message string
	Level   Level
}

// Display renders toasts. Remove is only ever called with the toast most
// recently passed to Show.
type Display interface {
	Show(t Toast)
	Remove(t Toast)
}

// Toaster owns a single notification slot. A new toast replaces the current
// one and cancels its pending dismissal.
type Toaster struct {
	display Display
	ttl     time.Duration

	mu      sync.Mutex
	seq     uint64
	current *Toast
	timer   *time.Timer
}

func NewToaster(display Display, ttl time.Duration) *Toaster {
	if ttl <= 0 {
		ttl = ToastTTL
	}
	return &Toaster{display: display, ttl: ttl}
}

func (t *Toaster) Show(message string, level Level) Toast {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.clear()

	t.seq++
	toast := Toast{ID: t.seq, Message: message, Level: level}
	t.current = &toast
	t.display.Show(toast)
	t.timer = time.AfterFunc(t.ttl, func() { t.expire(toast.ID) })
	return toast
}

// Current returns the visible toast, if any.
func (t *Toaster) Current() (Toast, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.current == nil {
		return Toast{}, false
	}
	return *t.current, true
}

// Dismiss removes the visible toast now.
func (t *Toaster) Dismiss() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.clear()
}

func (t *Toaster) expire(id uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	// A newer toast took the slot; its own timer handles it
	if t.current == nil || t.current.ID != id {
		return
	}
	t.clear()
}

// clear must be called with mu held.
func (t *Toaster) clear() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	if t.current != nil {
		t.display.Remove(*t.current)
		t.current = nil
	}
}
