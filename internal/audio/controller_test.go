package audio

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeResource struct {
	mu       sync.Mutex
	playing  bool
	pos      int
	volume   float64
	starts   int
	rewinds  int
	startErr error
	gate     chan struct{} // when set, Start waits on it
	entered  chan struct{}
	closed   bool
}

func (r *fakeResource) Start(ctx context.Context) error {
	r.mu.Lock()
	gate, entered := r.gate, r.entered
	r.mu.Unlock()
	if entered != nil {
		close(entered)
	}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.starts++
	if r.startErr != nil {
		return r.startErr
	}
	r.playing = true
	r.pos = 1
	return nil
}

func (r *fakeResource) Pause() {
	r.mu.Lock()
	r.playing = false
	r.mu.Unlock()
}

func (r *fakeResource) Rewind() error {
	r.mu.Lock()
	r.pos = 0
	r.rewinds++
	r.mu.Unlock()
	return nil
}

func (r *fakeResource) Playing() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.playing
}

func (r *fakeResource) SetVolume(v float64) {
	r.mu.Lock()
	r.volume = v
	r.mu.Unlock()
}

func (r *fakeResource) Close() error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	return nil
}

type fakeBackend struct {
	res  map[Cue]*fakeResource
	fail map[Cue]error
}

func (b *fakeBackend) Open(cue Cue, _ CueSpec) (Resource, error) {
	if err := b.fail[cue]; err != nil {
		return nil, err
	}
	r := &fakeResource{}
	b.res[cue] = r
	return r, nil
}

func newTestController(t *testing.T, enabled bool) (*Controller, *fakeBackend) {
	t.Helper()
	b := &fakeBackend{res: map[Cue]*fakeResource{}, fail: map[Cue]error{}}
	return NewController(b, DefaultCues(), enabled), b
}

func TestPlayStartsCue(t *testing.T) {
	c, b := newTestController(t, true)
	if !c.Play(context.Background(), CueCheer) {
		t.Fatal("Play() = false, want true")
	}
	if !c.Playing(CueCheer) {
		t.Error("cheer should be playing")
	}
	if b.res[CueCheer].volume != 0.6 {
		t.Errorf("volume = %v, want 0.6", b.res[CueCheer].volume)
	}
}

func TestPlayDisabledIsNoop(t *testing.T) {
	c, b := newTestController(t, false)
	if c.Play(context.Background(), CueEntry) {
		t.Error("Play() while disabled = true, want false")
	}
	if b.res[CueEntry].starts != 0 {
		t.Errorf("resource started %d times while disabled", b.res[CueEntry].starts)
	}
}

func TestPlayLoopAlreadyPlaying(t *testing.T) {
	c, b := newTestController(t, true)
	c.Play(context.Background(), CueLoop)
	if !c.Play(context.Background(), CueLoop) {
		t.Error("second Play() of a playing loop = false, want true")
	}
	if b.res[CueLoop].starts != 1 {
		t.Errorf("loop started %d times, want 1", b.res[CueLoop].starts)
	}
}

func TestPlayOneShotRestarts(t *testing.T) {
	c, b := newTestController(t, true)
	c.Play(context.Background(), CueDrumroll)
	c.Play(context.Background(), CueDrumroll)
	r := b.res[CueDrumroll]
	if r.starts != 2 {
		t.Errorf("one-shot started %d times, want 2", r.starts)
	}
	if r.rewinds < 2 {
		t.Errorf("one-shot rewound %d times, want at least 2", r.rewinds)
	}
}

func TestPlayBlockedReportsFalse(t *testing.T) {
	c, b := newTestController(t, true)
	b.res[CueEntry].startErr = ErrPlaybackBlocked
	if c.Play(context.Background(), CueEntry) {
		t.Error("blocked Play() = true, want false")
	}
	if c.Playing(CueEntry) {
		t.Error("blocked cue should not be playing")
	}
}

func TestOpenFailureLeavesCueSilent(t *testing.T) {
	b := &fakeBackend{res: map[Cue]*fakeResource{}, fail: map[Cue]error{CueCheer: errors.New("no such file")}}
	c := NewController(b, DefaultCues(), true)
	if c.Err(CueCheer) == nil {
		t.Error("Err(cheer) = nil, want open error")
	}
	if c.Play(context.Background(), CueCheer) {
		t.Error("Play() of unopened cue = true")
	}
	c.Stop(CueCheer)
	if !c.Play(context.Background(), CueEntry) {
		t.Error("other cues should still play")
	}
}

func TestStopIdempotent(t *testing.T) {
	c, b := newTestController(t, true)
	c.Play(context.Background(), CueLoop)
	c.Stop(CueLoop)
	c.Stop(CueLoop)
	r := b.res[CueLoop]
	if r.playing {
		t.Error("loop still playing after Stop()")
	}
	if r.pos != 0 {
		t.Errorf("position = %d after Stop(), want 0", r.pos)
	}
}

func TestDisableStopsOneShotMidPlayback(t *testing.T) {
	c, b := newTestController(t, true)
	c.Play(context.Background(), CueCheer)
	if !b.res[CueCheer].playing {
		t.Fatal("cheer should be playing")
	}

	c.SetEnabled(false)
	if b.res[CueCheer].playing {
		t.Error("SetEnabled(false) did not stop cheer")
	}
	if c.Play(context.Background(), CueCheer) {
		t.Error("Play() while disabled = true")
	}
	if b.res[CueCheer].playing {
		t.Error("Play() while disabled produced audible playback")
	}
}

func TestEnableDoesNotResume(t *testing.T) {
	c, b := newTestController(t, true)
	c.Play(context.Background(), CueLoop)
	c.SetEnabled(false)
	c.SetEnabled(true)
	if b.res[CueLoop].playing {
		t.Error("SetEnabled(true) resumed playback on its own")
	}
	if !c.Enabled() {
		t.Error("Enabled() = false after SetEnabled(true)")
	}
}

func TestStaleStartAfterDisable(t *testing.T) {
	c, b := newTestController(t, true)
	r := b.res[CueEntry]
	r.gate = make(chan struct{})
	r.entered = make(chan struct{})

	done := make(chan bool)
	go func() { done <- c.Play(context.Background(), CueEntry) }()

	<-r.entered
	c.SetEnabled(false)
	close(r.gate)

	select {
	case played := <-done:
		if played {
			t.Error("stale start reported as played")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Play() did not return")
	}
	if r.Playing() {
		t.Error("stale start left the resource playing")
	}
	if c.Enabled() {
		t.Error("pending start re-enabled audio")
	}
}

func TestStaleStartAfterStop(t *testing.T) {
	c, b := newTestController(t, true)
	r := b.res[CueDrumroll]
	r.gate = make(chan struct{})
	r.entered = make(chan struct{})

	done := make(chan bool)
	go func() { done <- c.Play(context.Background(), CueDrumroll) }()

	<-r.entered
	c.Stop(CueDrumroll)
	close(r.gate)

	if <-done {
		t.Error("start after Stop() reported as played")
	}
	if r.Playing() {
		t.Error("start after Stop() left the resource playing")
	}
}

func TestStaleStartAfterClose(t *testing.T) {
	c, b := newTestController(t, true)
	r := b.res[CueLoop]
	r.gate = make(chan struct{})
	r.entered = make(chan struct{})

	done := make(chan bool)
	go func() { done <- c.Play(context.Background(), CueLoop) }()

	<-r.entered
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
	close(r.gate)

	if <-done {
		t.Error("start after Close() reported as played")
	}
	if r.Playing() {
		t.Error("start after Close() left the resource playing")
	}
	if c.Playing(CueLoop) {
		t.Error("closed controller reports the cue playing")
	}
}

func TestPlayCancelledContext(t *testing.T) {
	c, b := newTestController(t, true)
	b.res[CueLoop].gate = make(chan struct{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if c.Play(ctx, CueLoop) {
		t.Error("Play() with cancelled context = true")
	}
}

func TestSetVolumeClamps(t *testing.T) {
	c, b := newTestController(t, true)
	c.SetVolume(CueEntry, 3)
	if got := b.res[CueEntry].volume; got != 1 {
		t.Errorf("volume = %v, want 1", got)
	}
	c.SetVolume(CueEntry, -1)
	if got := b.res[CueEntry].volume; got != 0 {
		t.Errorf("volume = %v, want 0", got)
	}
}

func TestCloseReleasesResources(t *testing.T) {
	c, b := newTestController(t, true)
	c.Play(context.Background(), CueLoop)
	c.AttachUnlock(func() {})
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
	for cue, r := range b.res {
		if !r.closed {
			t.Errorf("%s not closed", cue)
		}
	}
	if c.UnlockArmed() {
		t.Error("Close() left an unlock action armed")
	}
	if c.Play(context.Background(), CueLoop) {
		t.Error("Play() after Close() = true")
	}
}

func TestNullBackendNeverPlays(t *testing.T) {
	c := NewController(NullBackend{}, DefaultCues(), true)
	for _, cue := range Cues() {
		if c.Play(context.Background(), cue) {
			t.Errorf("null backend played %s", cue)
		}
	}
}
