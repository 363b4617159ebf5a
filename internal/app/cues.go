package app

import (
	"log"

	"github.com/GabrielMeirinho/mash4gelt/internal/audio"
	"github.com/GabrielMeirinho/mash4gelt/internal/game"
	tea "github.com/charmbracelet/bubbletea"
)

// cuePlan lists the cues a phase starts and the ones it silences.
type cuePlan struct {
	play []audio.Cue
	stop []audio.Cue
}

var phaseCues = map[game.Phase]cuePlan{
	game.Intro: {
		play: []audio.Cue{audio.CueEntry},
		stop: []audio.Cue{audio.CueDrumroll, audio.CueCheer, audio.CueLoop},
	},
	game.Configuring: {
		stop: []audio.Cue{audio.CueEntry, audio.CueDrumroll, audio.CueCheer, audio.CueLoop},
	},
	game.Spinning: {
		play: []audio.Cue{audio.CueDrumroll, audio.CueLoop},
		stop: []audio.Cue{audio.CueEntry, audio.CueCheer},
	},
	game.Results: {
		play: []audio.Cue{audio.CueCheer},
		stop: []audio.Cue{audio.CueLoop},
	},
}

// cueWanted reports whether cue belongs to the phase's soundtrack.
func cueWanted(p game.Phase, cue audio.Cue) bool {
	for _, c := range phaseCues[p].play {
		if c == cue {
			return true
		}
	}
	return false
}

// cuePlayedMsg reports the outcome of a Play issued from a command.
type cuePlayedMsg struct {
	cue    audio.Cue
	phase  game.Phase
	played bool
}

// enterPhase stops the previous phase's cues right away and starts the
// new ones off the UI goroutine.
func (m Model) enterPhase(p game.Phase) tea.Cmd {
	plan := phaseCues[p]
	for _, c := range plan.stop {
		m.audio.Stop(c)
	}
	return m.playCues(p, plan.play...)
}

func (m Model) playCues(p game.Phase, cues ...audio.Cue) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(cues))
	for _, cue := range cues {
		cmds = append(cmds, m.playCue(p, cue))
	}
	return tea.Batch(cmds...)
}

func (m Model) playCue(p game.Phase, cue audio.Cue) tea.Cmd {
	ctrl, ctx := m.audio, m.ctx
	return func() tea.Msg {
		return cuePlayedMsg{cue: cue, phase: p, played: ctrl.Play(ctx, cue)}
	}
}

// onCuePlayed arms a retry for a cue the output refused to start. The
// retry runs on the next key press or click. Phase changes detach it, and
// a cue stopped while the retry is starting is halted by the controller.
func (m *Model) onCuePlayed(msg cuePlayedMsg) {
	if msg.played {
		m.logf("audio", "%s playing", msg.cue)
		return
	}
	if !m.audio.Enabled() || !cueWanted(m.session.Phase(), msg.cue) {
		return
	}
	m.logf("audio", "%s waiting for a key press", msg.cue)

	ctrl, ctx, cue := m.audio, m.ctx, msg.cue
	ctrl.AttachUnlock(func() {
		if !ctrl.Play(ctx, cue) {
			log.Printf("audio: %s still blocked after gesture", cue)
		}
	})
}

// toggleMusic flips the mute flag. Turning music on replays the current
// phase's looping cue in response to this key press.
func (m *Model) toggleMusic() tea.Cmd {
	enabled := !m.audio.Enabled()
	m.audio.SetEnabled(enabled)
	m.logf("audio", "music %v", enabled)
	if !enabled {
		m.audio.DetachUnlock()
		return nil
	}
	p := m.session.Phase()
	var loops []audio.Cue
	for _, c := range phaseCues[p].play {
		if c == audio.CueEntry || c == audio.CueLoop {
			loops = append(loops, c)
		}
	}
	return m.playCues(p, loops...)
}
