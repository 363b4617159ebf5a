// Package game implements the MASH session: the Intro, Configuring,
// Spinning and Results phases, the option editing rules and the random
// elimination that decides one fate per category.
//
// A Session is pure logic with no I/O. Its methods run to completion
// synchronously and it is not safe for concurrent use; the UI owns it.
// Calls made in the wrong phase are ignored and report false.
package game

import (
	"math/rand/v2"
	"strings"
)

// EmptyOptionPolicy decides what Spin does with options left blank.
type EmptyOptionPolicy int

const (
	// FallbackToDefaults replaces a blank option with the category default
	// for the same slot, so the game is always playable.
	FallbackToDefaults EmptyOptionPolicy = iota
	// Strict rejects Spin with a ValidationError while any option is blank.
	Strict
)

// Option configures a Session.
type Option func(*Session)

// WithDefaults sets the config seeded on Start.
func WithDefaults(cfg Config) Option {
	return func(s *Session) { s.defaults = cfg.Clone() }
}

// WithRand sets the random source used by the elimination.
func WithRand(r Rand) Option {
	return func(s *Session) { s.rnd = r }
}

// WithPolicy sets the empty option policy.
func WithPolicy(p EmptyOptionPolicy) Option {
	return func(s *Session) { s.policy = p }
}

// Session is one player's game.
type Session struct {
	phase    Phase
	defaults Config
	cfg      Config
	rnd      Rand
	policy   EmptyOptionPolicy

	pools  []*Elimination
	active int
	steps  int
	result Result

	listeners []listener
	nextID    int
}

// NewSession returns a session in the Intro phase.
func NewSession(opts ...Option) *Session {
	s := &Session{
		phase:    Intro,
		defaults: DefaultConfig(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rnd == nil {
		s.rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return s
}

// Subscribe registers fn for every event. The returned func removes it.
func (s *Session) Subscribe(fn func(Event)) (cancel func()) {
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, listener{id: id, fn: fn})
	return func() {
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

func (s *Session) emit(ev Event) {
	ev.Steps = s.steps
	if ev.Phase == Results {
		ev.Result = s.result.clone()
	}
	for _, l := range append([]listener(nil), s.listeners...) {
		l.fn(ev)
	}
}

func (s *Session) transition(to Phase) {
	s.phase = to
	ev := Event{Kind: PhaseChanged, Phase: to}
	if to == Spinning && s.active < len(s.pools) {
		ev.Active = s.pools[s.active].Key
	}
	s.emit(ev)
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Config returns a copy of the categories being played.
func (s *Session) Config() Config {
	return s.cfg.Clone()
}

// Policy returns the empty option policy.
func (s *Session) Policy() EmptyOptionPolicy {
	return s.policy
}

// Steps returns the elimination steps taken in the current run.
func (s *Session) Steps() int {
	return s.steps
}

// Active returns the key of the category being eliminated.
func (s *Session) Active() (string, bool) {
	if s.phase != Spinning || s.active >= len(s.pools) {
		return "", false
	}
	return s.pools[s.active].Key, true
}

// Elimination returns a copy of a category's pool while Spinning or Results.
func (s *Session) Elimination(key string) (*Elimination, bool) {
	for _, p := range s.pools {
		if p.Key == key {
			return p.clone(), true
		}
	}
	return nil, false
}

// Result returns the fate once the session reaches Results.
func (s *Session) Result() (Result, bool) {
	if s.phase != Results {
		return Result{}, false
	}
	return s.result.clone(), true
}

// Start leaves the intro and seeds the default categories.
func (s *Session) Start() bool {
	if s.phase != Intro {
		return false
	}
	s.cfg = s.defaults.Clone()
	s.transition(Configuring)
	return true
}

// UpdateOption replaces the text of one option. Blank values are allowed
// as placeholders. Outside Configuring it does nothing.
func (s *Session) UpdateOption(key string, index int, value string) error {
	if s.phase != Configuring {
		return nil
	}
	i := s.cfg.index(key)
	if i < 0 {
		return invalid("update", key, index, ErrUnknownCategory)
	}
	cat := &s.cfg.Categories[i]
	if cat.Locked {
		return invalid("update", key, index, ErrLockedCategory)
	}
	if index < 0 || index >= len(cat.Options) {
		return invalid("update", key, index, ErrIndexOutOfRange)
	}
	cat.Options[index] = value
	return nil
}

// Clear blanks every option of every editable category.
func (s *Session) Clear() bool {
	if s.phase != Configuring {
		return false
	}
	for i := range s.cfg.Categories {
		cat := &s.cfg.Categories[i]
		if cat.Locked {
			continue
		}
		for j := range cat.Options {
			cat.Options[j] = ""
		}
	}
	return true
}

// Spin freezes the options and starts the elimination. It reports false
// when called outside Configuring, and returns a ValidationError when the
// Strict policy finds a blank option.
func (s *Session) Spin() (bool, error) {
	if s.phase != Configuring {
		return false, nil
	}
	pools := make([]*Elimination, 0, len(s.cfg.Categories))
	for _, cat := range s.cfg.Categories {
		options, err := s.prepare(cat)
		if err != nil {
			return false, err
		}
		pools = append(pools, newElimination(cat.Key, options))
	}
	s.pools = pools
	s.active = 0
	s.steps = 0
	s.result = Result{}
	s.skipResolved()
	s.transition(Spinning)
	if s.active >= len(s.pools) {
		s.finish()
	}
	return true, nil
}

// prepare returns the options a category spins with under the policy.
func (s *Session) prepare(cat Category) ([]string, error) {
	options := make([]string, 0, len(cat.Options))
	for i, v := range cat.Options {
		if strings.TrimSpace(v) != "" {
			options = append(options, v)
			continue
		}
		if s.policy == Strict {
			return nil, invalid("spin", cat.Key, i, ErrEmptyOption)
		}
		if d := cat.defaultAt(i); strings.TrimSpace(d) != "" {
			options = append(options, d)
		}
	}
	if len(options) > 0 {
		return options, nil
	}
	for _, d := range cat.Defaults {
		if strings.TrimSpace(d) != "" {
			options = append(options, d)
		}
	}
	if len(options) == 0 {
		return nil, invalid("spin", cat.Key, -1, ErrNoOptions)
	}
	return options, nil
}

// AdvanceElimination performs one elimination step on the active category.
// After the last category resolves the session moves to Results.
func (s *Session) AdvanceElimination() (Step, bool) {
	if s.phase != Spinning || s.active >= len(s.pools) {
		return Step{}, false
	}
	step, ok := s.pools[s.active].step(s.rnd)
	if !ok {
		return Step{}, false
	}
	s.steps++
	s.emit(Event{Kind: Eliminated, Phase: Spinning, Active: step.Category, Step: step})

	if step.Resolved {
		s.active++
		s.skipResolved()
		if s.active >= len(s.pools) {
			s.finish()
		}
	}
	return step, true
}

func (s *Session) skipResolved() {
	for s.active < len(s.pools) && s.pools[s.active].Resolved() {
		s.active++
	}
}

func (s *Session) finish() {
	fates := make([]Fate, 0, len(s.pools))
	for i, p := range s.pools {
		survivor, _ := p.Survivor()
		fates = append(fates, Fate{
			Key:   p.Key,
			Label: s.cfg.Categories[i].Label,
			Value: survivor.Value,
		})
	}
	s.result = Result{Fates: fates}
	s.transition(Results)
}

// Restart returns to Configuring from Results, or aborts a spin. Option
// text is kept so the player can tweak it and spin again.
func (s *Session) Restart() bool {
	if s.phase != Results && s.phase != Spinning {
		return false
	}
	s.pools = nil
	s.active = 0
	s.steps = 0
	s.result = Result{}
	s.transition(Configuring)
	return true
}

// Reset goes back to the intro and forgets any edits.
func (s *Session) Reset() bool {
	if s.phase == Intro {
		return false
	}
	s.pools = nil
	s.active = 0
	s.steps = 0
	s.result = Result{}
	s.cfg = Config{}
	s.transition(Intro)
	return true
}
