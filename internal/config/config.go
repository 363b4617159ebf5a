package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/GabrielMeirinho/mash4gelt/internal/audio"
	"github.com/GabrielMeirinho/mash4gelt/internal/game"
	"gopkg.in/yaml.v3"
)

const (
	PolicyFallback = "fallback"
	PolicyStrict   = "strict"
)

type Config struct {
	Game  GameConfig  `yaml:"game"`
	Audio AudioConfig `yaml:"audio"`

	// dir is where relative cue sources resolve from.
	dir string
}

type GameConfig struct {
	EmptyOptions   string           `yaml:"empty_options"`
	IncludeHousing bool             `yaml:"include_housing"`
	Seed           uint64           `yaml:"seed"`
	StepInterval   time.Duration    `yaml:"step_interval"`
	LetterInterval time.Duration    `yaml:"letter_interval"`
	Categories     []CategoryConfig `yaml:"categories"`
}

type CategoryConfig struct {
	Key     string   `yaml:"key"`
	Label   string   `yaml:"label"`
	Options []string `yaml:"options"`
}

type AudioConfig struct {
	Enabled    bool                 `yaml:"enabled"`
	SampleRate int                  `yaml:"sample_rate"`
	Cues       map[string]CueConfig `yaml:"cues"`
}

// UnmarshalYAML decodes each cue over its current value, so a file that
// sets only a cue's source keeps the default loop, volume and rate.
func (a *AudioConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Enabled    *bool                `yaml:"enabled"`
		SampleRate *int                 `yaml:"sample_rate"`
		Cues       map[string]yaml.Node `yaml:"cues"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if raw.Enabled != nil {
		a.Enabled = *raw.Enabled
	}
	if raw.SampleRate != nil {
		a.SampleRate = *raw.SampleRate
	}
	if len(raw.Cues) > 0 && a.Cues == nil {
		a.Cues = make(map[string]CueConfig, len(raw.Cues))
	}
	for name, node := range raw.Cues {
		cue := a.Cues[name]
		if err := node.Decode(&cue); err != nil {
			return fmt.Errorf("cues.%s: %w", name, err)
		}
		a.Cues[name] = cue
	}
	return nil
}

type CueConfig struct {
	Source string  `yaml:"source"`
	Loop   bool    `yaml:"loop"`
	Volume float64 `yaml:"volume"`
	Rate   float64 `yaml:"rate"`
}

func defaultConfig() *Config {
	cues := make(map[string]CueConfig)
	for cue, spec := range audio.DefaultCues() {
		cues[string(cue)] = CueConfig{
			Source: spec.Source,
			Loop:   spec.Loop,
			Volume: spec.Volume,
			Rate:   spec.Rate,
		}
	}
	return &Config{
		Game: GameConfig{
			EmptyOptions:   PolicyFallback,
			IncludeHousing: true,
			StepInterval:   350 * time.Millisecond,
			LetterInterval: 500 * time.Millisecond,
		},
		Audio: AudioConfig{
			Enabled:    true,
			SampleRate: 44100,
			Cues:       cues,
		},
		dir: ".",
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	return defaultConfig()
}

// Load reads a YAML file on top of the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := defaultConfig()
	cfg.dir = filepath.Dir(path)
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except a missing file yields the defaults.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return defaultConfig(), nil
	}
	return cfg, err
}

// Validate checks values the game cannot run with.
func (c *Config) Validate() error {
	switch c.Game.EmptyOptions {
	case PolicyFallback, PolicyStrict:
	default:
		return fmt.Errorf("game.empty_options: must be %q or %q, got %q", PolicyFallback, PolicyStrict, c.Game.EmptyOptions)
	}
	if c.Game.StepInterval <= 0 {
		return fmt.Errorf("game.step_interval: must be positive")
	}
	if c.Game.LetterInterval <= 0 {
		return fmt.Errorf("game.letter_interval: must be positive")
	}
	for i, cc := range c.Game.Categories {
		if strings.TrimSpace(cc.Key) == "" {
			return fmt.Errorf("game.categories[%d].key: must not be blank", i)
		}
		if !hasOption(cc.Options) {
			return fmt.Errorf("game.categories.%s: %w", cc.Key, game.ErrNoOptions)
		}
	}
	if _, err := c.Categories(); err != nil {
		return fmt.Errorf("game.categories: %w", err)
	}
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("audio.sample_rate: must be positive")
	}
	known := make(map[string]bool)
	for _, cue := range audio.Cues() {
		known[string(cue)] = true
	}
	for name, cue := range c.Audio.Cues {
		if !known[name] {
			return fmt.Errorf("audio.cues: unknown cue %q", name)
		}
		if cue.Volume < 0 || cue.Volume > 1 {
			return fmt.Errorf("audio.cues.%s.volume: must be within [0, 1]", name)
		}
		if cue.Rate < 0 {
			return fmt.Errorf("audio.cues.%s.rate: must not be negative", name)
		}
	}
	return nil
}

func hasOption(options []string) bool {
	for _, o := range options {
		if strings.TrimSpace(o) != "" {
			return true
		}
	}
	return false
}

// Policy maps empty_options to the session policy.
func (c *Config) Policy() game.EmptyOptionPolicy {
	if c.Game.EmptyOptions == PolicyStrict {
		return game.Strict
	}
	return game.FallbackToDefaults
}

// Categories builds the session's default categories: the configured list,
// or the stock one when none is configured, behind the housing category.
func (c *Config) Categories() (game.Config, error) {
	var cats []game.Category
	if c.Game.IncludeHousing {
		cats = append(cats, game.HousingCategory())
	}
	if len(c.Game.Categories) == 0 {
		cats = append(cats, game.DefaultCategories()...)
	}
	for _, cc := range c.Game.Categories {
		label := cc.Label
		if label == "" {
			label = cc.Key
		}
		cats = append(cats, game.NewCategory(cc.Key, label, cc.Options...))
	}
	return game.NewConfig(cats...)
}

// CueSpecs returns the audio cues with sources resolved against the
// config file's directory.
func (c *Config) CueSpecs() map[audio.Cue]audio.CueSpec {
	specs := make(map[audio.Cue]audio.CueSpec, len(c.Audio.Cues))
	for name, cc := range c.Audio.Cues {
		src := cc.Source
		if src != "" && !filepath.IsAbs(src) {
			src = filepath.Join(c.dir, src)
		}
		rate := cc.Rate
		if rate == 0 {
			rate = 1
		}
		specs[audio.Cue(name)] = audio.CueSpec{
			Source: src,
			Loop:   cc.Loop,
			Volume: cc.Volume,
			Rate:   rate,
		}
	}
	return specs
}
