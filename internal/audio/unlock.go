package audio

import "sync"

// Unlocker holds at most one action waiting for the next user gesture.
// Attaching again replaces the pending action rather than stacking it.
type Unlocker struct {
	mu      sync.Mutex
	pending func()
}

// Attach arms fn to run on the next gesture, replacing any pending action.
func (u *Unlocker) Attach(fn func()) {
	u.mu.Lock()
	u.pending = fn
	u.mu.Unlock()
}

// Detach drops the pending action, if any.
func (u *Unlocker) Detach() {
	u.mu.Lock()
	u.pending = nil
	u.mu.Unlock()
}

// Armed reports whether an action is waiting.
func (u *Unlocker) Armed() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.pending != nil
}

// Gesture runs and disarms the pending action. It reports whether one ran.
func (u *Unlocker) Gesture() bool {
	u.mu.Lock()
	fn := u.pending
	u.pending = nil
	u.mu.Unlock()
	if fn == nil {
		return false
	}
	fn()
	return true
}
