package job

import "sync/atomic"

// ModeState holds the foreground-only flag. The SIGTSTP handler is its only
// writer; the engine reads it once per dispatched request.
type ModeState struct {
	foregroundOnly atomic.Bool
}

// ForegroundOnly reports whether background requests are currently ignored.
func (m *ModeState) ForegroundOnly() bool {
	return m.foregroundOnly.Load()
}

// Toggle flips the flag exactly once and returns the new value.
func (m *ModeState) Toggle() bool {
	for {
		old := m.foregroundOnly.Load()
		if m.foregroundOnly.CompareAndSwap(old, !old) {
			return !old
		}
	}
}
