package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/minigames/internal/core"
)

type actionBinding struct {
	binding key.Binding
	action  core.Action
}

// KeyMapper translates Bubble Tea key messages to game actions.
// Bindings are checked in order; quit comes first so it always wins.
type KeyMapper struct {
	game []actionBinding
	menu []menuBinding
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	bind := func(a core.Action, keys ...string) actionBinding {
		return actionBinding{binding: key.NewBinding(key.WithKeys(keys...)), action: a}
	}
	menu := func(a MenuAction, keys ...string) menuBinding {
		return menuBinding{binding: key.NewBinding(key.WithKeys(keys...)), action: a}
	}

	return &KeyMapper{
		game: []actionBinding{
			bind(core.ActionQuit, "ctrl+c", "q"),
			bind(core.ActionUp, "w", "up"),
			bind(core.ActionDown, "s", "down"),
			bind(core.ActionLeft, "a", "left"),
			bind(core.ActionRight, "d", "right"),
			bind(core.ActionPrimary, " ", "f"),
			bind(core.ActionConfirm, "enter"),
			bind(core.ActionBack, "b", "esc"),
			bind(core.ActionPause, "p"),
			bind(core.ActionRestart, "r"),
		},
		menu: []menuBinding{
			menu(MenuActionQuit, "ctrl+c", "q"),
			menu(MenuActionUp, "w", "up", "k"),
			menu(MenuActionDown, "s", "down", "j"),
			menu(MenuActionSelect, "enter", " "),
			menu(MenuActionBack, "b", "esc"),
			menu(MenuActionScoreboard, "tab"),
		},
	}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	for _, b := range km.game {
		if key.Matches(msg, b.binding) {
			return b.action, b.action == core.ActionQuit
		}
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

type menuBinding struct {
	binding key.Binding
	action  MenuAction
}

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	for _, b := range km.menu {
		if key.Matches(msg, b.binding) {
			return b.action
		}
	}
	return MenuActionNone
}
