// Package ebitenaudio plays cues through Ebitengine's audio package.
//
// Sources are file paths; wav, mp3 and ogg are decoded to the context's
// sample rate. A cue's Rate is applied by resampling, so 0.8 plays slower
// and lower, and loop cues wrap with an infinite loop stream.
package ebitenaudio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/GabrielMeirinho/mash4gelt/internal/audio"
	ebaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

const (
	readyTimeout = 500 * time.Millisecond
	readyPoll    = 10 * time.Millisecond

	// 16-bit stereo
	bytesPerFrame = 4
)

// Backend opens cue files relative to a root directory.
type Backend struct {
	ctx        *ebaudio.Context
	root       string
	sampleRate int
}

// New returns a backend on the process-wide audio context, creating it
// with sampleRate the first time.
func New(sampleRate int, root string) *Backend {
	ctx := ebaudio.CurrentContext()
	if ctx == nil {
		ctx = ebaudio.NewContext(sampleRate)
	}
	return &Backend{ctx: ctx, root: root, sampleRate: ctx.SampleRate()}
}

// Open decodes the cue's source into a player.
func (b *Backend) Open(cue audio.Cue, spec audio.CueSpec) (audio.Resource, error) {
	if spec.Source == "" {
		return nil, fmt.Errorf("cue %s: no source", cue)
	}
	path := spec.Source
	if !filepath.IsAbs(path) {
		path = filepath.Join(b.root, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", cue, err)
	}

	src, length, err := b.decode(path, data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", cue, err)
	}
	if spec.Rate > 0 && spec.Rate != 1 {
		to := int(float64(b.sampleRate) / spec.Rate)
		src = ebaudio.Resample(src, length, b.sampleRate, to)
		length = length * int64(to) / int64(b.sampleRate)
		length -= length % bytesPerFrame
	}

	var stream io.Reader = src
	if spec.Loop {
		stream = ebaudio.NewInfiniteLoop(src, length)
	}
	p, err := b.ctx.NewPlayer(stream)
	if err != nil {
		return nil, fmt.Errorf("player %s: %w", cue, err)
	}
	return &resource{ctx: b.ctx, player: p}, nil
}

type lengthReader interface {
	io.ReadSeeker
	Length() int64
}

func (b *Backend) decode(path string, data []byte) (io.ReadSeeker, int64, error) {
	r := bytes.NewReader(data)
	var (
		s   lengthReader
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		s, err = wav.DecodeWithSampleRate(b.sampleRate, r)
	case ".mp3":
		s, err = mp3.DecodeWithSampleRate(b.sampleRate, r)
	case ".ogg":
		s, err = vorbis.DecodeWithSampleRate(b.sampleRate, r)
	default:
		return nil, 0, fmt.Errorf("unsupported format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, 0, err
	}
	return s, s.Length(), nil
}

type resource struct {
	ctx    *ebaudio.Context
	player *ebaudio.Player
}

// Start waits briefly for the output device. An output that never becomes
// ready is reported as blocked so the caller can retry on a gesture.
func (r *resource) Start(ctx context.Context) error {
	if !r.ctx.IsReady() {
		ctx, cancel := context.WithTimeout(ctx, readyTimeout)
		defer cancel()
		ticker := time.NewTicker(readyPoll)
		defer ticker.Stop()
		for !r.ctx.IsReady() {
			select {
			case <-ctx.Done():
				return audio.ErrPlaybackBlocked
			case <-ticker.C:
			}
		}
	}
	r.player.Play()
	return nil
}

func (r *resource) Pause()              { r.player.Pause() }
func (r *resource) Rewind() error       { return r.player.Rewind() }
func (r *resource) Playing() bool       { return r.player.IsPlaying() }
func (r *resource) SetVolume(v float64) { r.player.SetVolume(v) }
func (r *resource) Close() error        { return r.player.Close() }
