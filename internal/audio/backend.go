package audio

import (
	"context"
	"errors"
)

var (
	// ErrPlaybackBlocked means the output refused to start without a user
	// gesture. Retrying after one may succeed.
	ErrPlaybackBlocked = errors.New("audio: playback blocked")
	// ErrUnavailable means there is no audio output at all.
	ErrUnavailable = errors.New("audio: no output available")
)

// Resource is one playable sound.
type Resource interface {
	// Start begins playback. It may block until the output accepts the
	// request or ctx is done.
	Start(ctx context.Context) error
	Pause()
	Rewind() error
	Playing() bool
	SetVolume(v float64)
	Close() error
}

// Backend turns cue specs into resources.
type Backend interface {
	Open(cue Cue, spec CueSpec) (Resource, error)
}

// NullBackend produces resources that never play. It backs --mute runs
// and machines without an audio device.
type NullBackend struct{}

func (NullBackend) Open(Cue, CueSpec) (Resource, error) {
	return silent{}, nil
}

type silent struct{}

func (silent) Start(context.Context) error { return ErrUnavailable }
func (silent) Pause()                      {}
func (silent) Rewind() error               { return nil }
func (silent) Playing() bool               { return false }
func (silent) SetVolume(float64)           {}
func (silent) Close() error                { return nil }
