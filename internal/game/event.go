package game

// EventKind classifies session events.
type EventKind int

const (
	PhaseChanged EventKind = iota // session moved to a new phase
	Eliminated                    // one option was eliminated while spinning
)

func (k EventKind) String() string {
	switch k {
	case PhaseChanged:
		return "phase"
	case Eliminated:
		return "eliminated"
	default:
		return "unknown"
	}
}

// Event is delivered to subscribers after every transition and every
// elimination step.
type Event struct {
	Kind  EventKind
	Phase Phase

	// Active is the category being eliminated while Spinning, "" otherwise.
	Active string
	// Step is the highlighted elimination; set only for Eliminated events.
	Step Step
	// Steps counts elimination steps taken in the current run.
	Steps int
	// Result is set once Phase is Results.
	Result Result
}

type listener struct {
	id int
	fn func(Event)
}
