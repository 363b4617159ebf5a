package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/GabrielMeirinho/mash4gelt/internal/audio"
	"github.com/GabrielMeirinho/mash4gelt/internal/game"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "mash.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Policy() != game.FallbackToDefaults {
		t.Errorf("Policy() = %v, want fallback", cfg.Policy())
	}
	if cfg.Game.StepInterval != 350*time.Millisecond {
		t.Errorf("StepInterval = %v, want 350ms", cfg.Game.StepInterval)
	}

	cats, err := cfg.Categories()
	if err != nil {
		t.Fatal(err)
	}
	keys := cats.Keys()
	if len(keys) != 7 || keys[0] != game.HousingKey {
		t.Errorf("keys = %v, want housing plus 6 defaults", keys)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
game:
  empty_options: strict
  include_housing: false
  seed: 77
  step_interval: 100ms
  categories:
    - key: pet
      label: Pet
      options: [Cat, Dog, Axolotl]
    - key: hobby
      options: [Chess]
audio:
  enabled: false
  cues:
    cheer:
      source: sfx/cheer.mp3
      volume: 0.9
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Policy() != game.Strict {
		t.Errorf("Policy() = %v, want strict", cfg.Policy())
	}
	if cfg.Game.Seed != 77 {
		t.Errorf("Seed = %d, want 77", cfg.Game.Seed)
	}
	if cfg.Game.StepInterval != 100*time.Millisecond {
		t.Errorf("StepInterval = %v, want 100ms", cfg.Game.StepInterval)
	}
	// Untouched values keep their defaults.
	if cfg.Game.LetterInterval != 500*time.Millisecond {
		t.Errorf("LetterInterval = %v, want default 500ms", cfg.Game.LetterInterval)
	}
	if cfg.Audio.Enabled {
		t.Error("Audio.Enabled = true, want false")
	}

	cats, err := cfg.Categories()
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(cats.Keys(), ","); got != "pet,hobby" {
		t.Errorf("keys = %q, want %q", got, "pet,hobby")
	}
	hobby, _ := cats.Lookup("hobby")
	if hobby.Label != "hobby" {
		t.Errorf("missing label should fall back to key, got %q", hobby.Label)
	}

	specs := cfg.CueSpecs()
	cheer := specs[audio.CueCheer]
	if want := filepath.Join(filepath.Dir(path), "sfx", "cheer.mp3"); cheer.Source != want {
		t.Errorf("cheer source = %q, want %q", cheer.Source, want)
	}
	if cheer.Volume != 0.9 {
		t.Errorf("cheer volume = %v, want 0.9", cheer.Volume)
	}
	if cheer.Rate != 1 {
		t.Errorf("unset rate = %v, want 1", cheer.Rate)
	}
	if _, ok := specs[audio.CueLoop]; !ok {
		t.Error("default loop cue dropped by partial cue override")
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"bad policy", "game:\n  empty_options: maybe\n", "empty_options"},
		{"zero step", "game:\n  step_interval: 0s\n", "step_interval"},
		{"duplicate keys", "game:\n  categories:\n    - {key: a, options: [x]}\n    - {key: a, options: [y]}\n", "duplicate"},
		{"empty category", "game:\n  categories:\n    - {key: a}\n", "no options"},
		{"unknown cue", "audio:\n  cues:\n    kazoo: {source: k.wav}\n", "kazoo"},
		{"loud cue", "audio:\n  cues:\n    cheer: {source: c.mp3, volume: 2}\n", "volume"},
		{"housing clash", "game:\n  categories:\n    - {key: mash, options: [x]}\n", "duplicate"},
		{"blank key", "game:\n  categories:\n    - {key: ' ', options: [x]}\n", "key: must not be blank"},
		{"blank options", "game:\n  categories:\n    - {key: a, options: ['', '  ']}\n", "no options"},
		{"bad cue field", "audio:\n  cues:\n    entry: {volume: loud}\n", "cues.entry"},
		{"bad yaml", "game: [\n", "parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.yaml))
			if err == nil {
				t.Fatal("Load() succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadPartialCueOverride(t *testing.T) {
	path := writeConfig(t, `
audio:
  sample_rate: 48000
  cues:
    entry:
      source: intro.wav
    loop:
      volume: 0.1
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !cfg.Audio.Enabled {
		t.Error("Audio.Enabled reset by an audio section that does not set it")
	}
	if cfg.Audio.SampleRate != 48000 {
		t.Errorf("SampleRate = %d, want 48000", cfg.Audio.SampleRate)
	}

	defaults := audio.DefaultCues()
	specs := cfg.CueSpecs()

	entry := specs[audio.CueEntry]
	if want := filepath.Join(filepath.Dir(path), "intro.wav"); entry.Source != want {
		t.Errorf("entry source = %q, want %q", entry.Source, want)
	}
	def := defaults[audio.CueEntry]
	if entry.Loop != def.Loop || entry.Volume != def.Volume || entry.Rate != def.Rate {
		t.Errorf("entry = %+v, want default loop/volume/rate of %+v", entry, def)
	}

	loop := specs[audio.CueLoop]
	if loop.Volume != 0.1 {
		t.Errorf("loop volume = %v, want 0.1", loop.Volume)
	}
	def = defaults[audio.CueLoop]
	if want := filepath.Join(filepath.Dir(path), def.Source); loop.Source != want {
		t.Errorf("loop source = %q, want default %q", loop.Source, want)
	}
	if !loop.Loop || loop.Rate != def.Rate {
		t.Errorf("loop = %+v, want default loop and rate", loop)
	}
}

func TestBlankOptionsWrapNoOptions(t *testing.T) {
	cfg := Default()
	cfg.Game.Categories = []CategoryConfig{{Key: "pet", Options: []string{"", " "}}}
	if err := cfg.Validate(); !errors.Is(err, game.ErrNoOptions) {
		t.Errorf("Validate() error = %v, want ErrNoOptions", err)
	}
}

func TestLoadMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yaml")
	if _, err := Load(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error = %v, want ErrNotExist", err)
	}

	cfg, err := LoadOrDefault(path)
	if err != nil {
		t.Fatalf("LoadOrDefault() error: %v", err)
	}
	if !cfg.Audio.Enabled {
		t.Error("LoadOrDefault() should return defaults")
	}
}
