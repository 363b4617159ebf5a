package app

import (
	"github.com/GabrielMeirinho/mash4gelt/internal/game"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keyboard bindings for the TUI.
type KeyMap struct {
	Start     key.Binding
	Next      key.Binding
	Prev      key.Binding
	Clear     key.Binding
	Spin      key.Binding
	Advance   key.Binding
	Abort     key.Binding
	Again     key.Binding
	Reset     key.Binding
	Music     key.Binding
	Log       key.Binding
	Escape    key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Start: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "start"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "down", "enter"),
			key.WithHelp("tab/↓", "next option"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab/↑", "prev option"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "clear"),
		),
		Spin: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "spin"),
		),
		Advance: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "next pick"),
		),
		Abort: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "abort"),
		),
		Again: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start again"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "intro"),
		),
		Music: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "music"),
		),
		Log: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "event log"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close overlay"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// HelpFor returns the bindings worth showing in a phase.
func (k KeyMap) HelpFor(p game.Phase) []key.Binding {
	switch p {
	case game.Intro:
		return []key.Binding{k.Start, k.Music, k.Log, k.Quit}
	case game.Configuring:
		return []key.Binding{k.Next, k.Prev, k.Clear, k.Spin, k.Music, k.ForceQuit}
	case game.Spinning:
		return []key.Binding{k.Advance, k.Abort, k.Music, k.Log, k.Quit}
	case game.Results:
		return []key.Binding{k.Again, k.Reset, k.Music, k.Log, k.Quit}
	default:
		return nil
	}
}
