package game

// Phase is the top-level state of a Session.
type Phase int

const (
	Intro Phase = iota
	Configuring
	Spinning
	Results
)

var phaseNames = map[Phase]string{
	Intro:       "intro",
	Configuring: "configuring",
	Spinning:    "spinning",
	Results:     "results",
}

func (p Phase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return "unknown"
}
