// Package audio manages the game's sound cues: one resource per cue, a
// shared mute flag, and a single pending action that retries playback on
// the next user gesture when the output refused to start on its own.
package audio

import (
	"context"
	"errors"
	"log"
	"sync"
)

type track struct {
	spec CueSpec
	res  Resource
	err  error

	// want is true between a Play and the next Stop or mute. A start that
	// resolves after want went false is stale.
	want bool
}

// Controller plays cues. It is safe for concurrent use.
type Controller struct {
	mu      sync.Mutex
	enabled bool
	tracks  map[Cue]*track
	unlock  Unlocker
}

// NewController opens a resource for every spec. A cue whose resource
// fails to open stays silent; the error is logged and kept for Err.
func NewController(backend Backend, specs map[Cue]CueSpec, enabled bool) *Controller {
	c := &Controller{
		enabled: enabled,
		tracks:  make(map[Cue]*track, len(specs)),
	}
	for cue, spec := range specs {
		t := &track{spec: spec}
		t.res, t.err = backend.Open(cue, spec)
		if t.err != nil {
			log.Printf("audio: open %s (%s): %v", cue, spec.Source, t.err)
			t.res = nil
		} else {
			t.res.SetVolume(clampVolume(spec.Volume))
		}
		c.tracks[cue] = t
	}
	return c
}

// Enabled reports the mute flag.
func (c *Controller) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// Err returns the error that kept a cue from opening.
func (c *Controller) Err(cue Cue) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok := c.tracks[cue]; ok {
		return t.err
	}
	return nil
}

// Playing reports whether the cue's resource is currently playing.
func (c *Controller) Playing(cue Cue) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.tracks[cue]
	return ok && t.res != nil && t.res.Playing()
}

// Play starts a cue and reports whether it is playing. It returns false
// when audio is disabled, the cue has no resource, or the output refused
// to start. A loop cue that is already playing is left alone; a one-shot
// cue restarts from the beginning.
//
// The lock is released while the start is pending. If the cue was stopped,
// audio was disabled or the controller was closed in the meantime, the
// late start is undone.
func (c *Controller) Play(ctx context.Context, cue Cue) bool {
	c.mu.Lock()
	t, ok := c.tracks[cue]
	if !c.enabled || !ok || t.res == nil {
		c.mu.Unlock()
		return false
	}
	res := t.res
	if res.Playing() {
		if t.spec.Loop {
			c.mu.Unlock()
			return true
		}
		res.Pause()
	}
	if err := res.Rewind(); err != nil {
		log.Printf("audio: rewind %s: %v", cue, err)
	}
	t.want = true
	c.mu.Unlock()

	err := res.Start(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		if errors.Is(err, ErrPlaybackBlocked) {
			log.Printf("audio: %s blocked until next gesture", cue)
		} else {
			log.Printf("audio: play %s: %v", cue, err)
		}
		return false
	}
	if !c.enabled || !t.want || t.res != res {
		halt(res)
		return false
	}
	return true
}

// Stop pauses a cue and rewinds it. Stopping a silent cue is a no-op.
func (c *Controller) Stop(cue Cue) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok := c.tracks[cue]; ok {
		t.want = false
		if t.res != nil {
			halt(t.res)
		}
	}
}

// StopAll stops every cue.
func (c *Controller) StopAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopAllLocked()
}

func (c *Controller) stopAllLocked() {
	for _, t := range c.tracks {
		t.want = false
		if t.res != nil && t.res.Playing() {
			halt(t.res)
		}
	}
}

// SetEnabled flips the mute flag. Disabling stops everything; enabling
// resumes nothing, playback has to be requested again.
func (c *Controller) SetEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = enabled
	if !enabled {
		c.stopAllLocked()
	}
}

// SetVolume changes a cue's volume, clamped to [0, 1].
func (c *Controller) SetVolume(cue Cue, v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok := c.tracks[cue]; ok {
		t.spec.Volume = clampVolume(v)
		if t.res != nil {
			t.res.SetVolume(t.spec.Volume)
		}
	}
}

// AttachUnlock arms fn to run on the next user gesture, replacing any
// action already waiting.
func (c *Controller) AttachUnlock(fn func()) {
	c.unlock.Attach(fn)
}

// DetachUnlock drops the waiting action.
func (c *Controller) DetachUnlock() {
	c.unlock.Detach()
}

// UnlockArmed reports whether an action is waiting for a gesture.
func (c *Controller) UnlockArmed() bool {
	return c.unlock.Armed()
}

// Gesture tells the controller the user pressed a key or clicked. The
// waiting action, if any, runs once.
func (c *Controller) Gesture() bool {
	return c.unlock.Gesture()
}

// Close stops and releases every resource.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.unlock.Detach()
	var errs []error
	for _, t := range c.tracks {
		t.want = false
		if t.res == nil {
			continue
		}
		halt(t.res)
		if err := t.res.Close(); err != nil {
			errs = append(errs, err)
		}
		t.res = nil
	}
	return errors.Join(errs...)
}

func halt(res Resource) {
	res.Pause()
	if err := res.Rewind(); err != nil {
		log.Printf("audio: rewind: %v", err)
	}
}

func clampVolume(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
