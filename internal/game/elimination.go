package game

// Rand is the random source the elimination draws from. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// maxRedraws bounds the no-repeat redraw loop before falling back to the
// next position.
const maxRedraws = 8

// Slot is one option in an elimination pool, tagged with its index in the
// category's option list at spin time.
type Slot struct {
	Index int
	Value string
}

// Step describes one elimination.
type Step struct {
	Category  string
	Position  int  // position of the eliminated slot in the pool before removal
	Slot      Slot // the highlighted, now eliminated, option
	Remaining int
	Resolved  bool
}

// Elimination is the per-category pool during the Spinning phase.
type Elimination struct {
	Key string
	// Options is the pool as it was when the spin started.
	Options   []string
	Remaining []Slot

	// LastEliminated is the original index of the most recently eliminated
	// option, or -1 before the first step.
	LastEliminated int
	Steps          int

	lastPos     int
	highlighted bool
}

func newElimination(key string, options []string) *Elimination {
	e := &Elimination{
		Key:            key,
		Options:        append([]string(nil), options...),
		Remaining:      make([]Slot, len(options)),
		LastEliminated: -1,
		lastPos:        -1,
	}
	for i, v := range options {
		e.Remaining[i] = Slot{Index: i, Value: v}
	}
	return e
}

// Resolved reports whether a single option is left.
func (e *Elimination) Resolved() bool {
	return len(e.Remaining) <= 1
}

// Survivor returns the remaining option once the pool is resolved.
func (e *Elimination) Survivor() (Slot, bool) {
	if len(e.Remaining) != 1 {
		return Slot{}, false
	}
	return e.Remaining[0], true
}

func (e *Elimination) clone() *Elimination {
	c := *e
	c.Options = append([]string(nil), e.Options...)
	c.Remaining = append([]Slot(nil), e.Remaining...)
	return &c
}

// draw picks the position to eliminate from a pool of n > 1 slots. For
// n > 2 it never returns the position highlighted by the previous step.
func (e *Elimination) draw(r Rand) int {
	n := len(e.Remaining)
	c := r.IntN(n)
	if !e.highlighted || n <= 2 {
		return c
	}
	for i := 0; i < maxRedraws && c == e.lastPos; i++ {
		c = r.IntN(n)
	}
	if c == e.lastPos {
		c = (c + 1) % n
	}
	return c
}

// step eliminates one option. It returns false when the pool is already
// resolved.
func (e *Elimination) step(r Rand) (Step, bool) {
	if e.Resolved() {
		return Step{}, false
	}
	pos := e.draw(r)
	slot := e.Remaining[pos]
	e.Remaining = append(e.Remaining[:pos], e.Remaining[pos+1:]...)
	e.lastPos = pos
	e.highlighted = true
	e.LastEliminated = slot.Index
	e.Steps++
	return Step{
		Category:  e.Key,
		Position:  pos,
		Slot:      slot,
		Remaining: len(e.Remaining),
		Resolved:  e.Resolved(),
	}, true
}

// Alive reports whether the option at the given original index is still
// in the pool.
func (e *Elimination) Alive(index int) bool {
	for _, s := range e.Remaining {
		if s.Index == index {
			return true
		}
	}
	return false
}
