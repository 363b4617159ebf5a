package audio

// Cue names an audio resource bound to a game phase or event.
type Cue string

const (
	CueEntry    Cue = "entry"    // intro music
	CueDrumroll Cue = "drumroll" // spin suspense
	CueCheer    Cue = "cheer"    // fate reveal
	CueLoop     Cue = "loop"     // elimination round music
)

// Cues lists every cue in a stable order.
func Cues() []Cue {
	return []Cue{CueEntry, CueDrumroll, CueCheer, CueLoop}
}

// CueSpec describes how a cue is played. Source is an opaque reference
// handed to the Backend.
type CueSpec struct {
	Source string
	Loop   bool
	Volume float64
	Rate   float64
}

// DefaultCues returns the stock cue settings. Looping music plays quietly
// and slightly slowed down.
func DefaultCues() map[Cue]CueSpec {
	return map[Cue]CueSpec{
		CueEntry:    {Source: "sounds/beep_box_entry.wav", Loop: true, Volume: 0.35, Rate: 0.8},
		CueDrumroll: {Source: "sounds/drum_roll_trimmed.mp3", Volume: 0.6, Rate: 1},
		CueCheer:    {Source: "sounds/short_crowd_cheer.mp3", Volume: 0.6, Rate: 1},
		CueLoop:     {Source: "sounds/8bit_music.mp3", Loop: true, Volume: 0.35, Rate: 0.8},
	}
}
