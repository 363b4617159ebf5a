package status

import (
	"strings"
	"testing"

	"github.com/GabrielMeirinho/mash4gelt/internal/game"
)

func TestMusicLabel(t *testing.T) {
	m := New()
	if got := m.MusicLabel(); got != LabelMusicOn {
		t.Errorf("MusicLabel() = %q, want %q", got, LabelMusicOn)
	}
	m.Music = false
	if got := m.MusicLabel(); got != LabelMusicOff {
		t.Errorf("MusicLabel() = %q, want %q", got, LabelMusicOff)
	}
}

func TestViewProgressOnlyWhileSpinning(t *testing.T) {
	tests := []struct {
		phase game.Phase
		want  bool
	}{
		{game.Intro, false},
		{game.Configuring, false},
		{game.Spinning, true},
		{game.Results, true},
	}
	for _, tt := range tests {
		t.Run(tt.phase.String(), func(t *testing.T) {
			m := New()
			m.Width = 80
			m.Phase = tt.phase
			m.SetProgress(3, 18)
			if got := strings.Contains(m.View(), "step 3/18"); got != tt.want {
				t.Errorf("progress shown = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestViewWaitingHint(t *testing.T) {
	m := New()
	m.Phase = game.Intro
	m.Waiting = true
	if !strings.Contains(m.View(), "press any key") {
		t.Error("waiting cue hint missing")
	}
	m.Music = false
	if strings.Contains(m.View(), "press any key") {
		t.Error("muted bar should not ask for a key press")
	}
}

func TestViewSeed(t *testing.T) {
	m := New()
	m.Seed = 42
	if !strings.Contains(m.View(), "seed 42") {
		t.Error("seed missing from bar")
	}
}
