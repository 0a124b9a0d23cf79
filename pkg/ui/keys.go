package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kraitsura/backlog_viewer/pkg/nav"
)

// KeyMap defines all key bindings for the issue viewer.
type KeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Clear key.Binding // Drop the selection.

	// Detail pane scrolling, independent of the cursor.
	PageUp   key.Binding
	PageDown key.Binding

	Open key.Binding // Open the selected issue in a browser.
	Copy key.Binding // Copy the selected issue's URL.

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// (j/k) alongside the arrow keys.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Clear: key.NewBinding(
		key.WithKeys("h", "left", "esc"),
		key.WithHelp("h/←", "unselect"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("C-u", "scroll up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown"),
		key.WithHelp("C-d", "scroll down"),
	),
	Open: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy url"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Action maps a key press to a controller action. Scroll keys and
// unbound keys map to nav.ActionNone.
func (k KeyMap) Action(msg tea.KeyMsg) nav.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return nav.ActionQuit
	case key.Matches(msg, k.Clear):
		return nav.ActionClearSelection
	case key.Matches(msg, k.Down):
		return nav.ActionMoveDown
	case key.Matches(msg, k.Up):
		return nav.ActionMoveUp
	case key.Matches(msg, k.Open):
		return nav.ActionOpenBrowser
	case key.Matches(msg, k.Copy):
		return nav.ActionCopyURL
	}
	return nav.ActionNone
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.Clear, k.Open, k.Copy, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Down, k.Up, k.Clear},
		{k.PageUp, k.PageDown},
		{k.Open, k.Copy, k.Quit},
	}
}
