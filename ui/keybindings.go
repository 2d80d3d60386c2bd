package ui

import (
	"github.com/gdamore/tcell/v2"
)

// KeyAction represents an action that can be triggered by keybindings
type KeyAction struct {
	name    string
	handler func()
}

// KeyCombo is a special key together with the modifiers that must be held.
// Only Ctrl and Alt are significant.
type KeyCombo struct {
	Key tcell.Key
	Mod tcell.ModMask
}

// Plain is a key pressed without modifiers
func Plain(key tcell.Key) KeyCombo {
	return KeyCombo{Key: key}
}

// Ctrl is a key pressed with Ctrl held
func Ctrl(key tcell.Key) KeyCombo {
	return KeyCombo{Key: key, Mod: tcell.ModCtrl}
}

const significantMods = tcell.ModCtrl | tcell.ModAlt

// KeyBindingManager manages all keybindings and dispatches events
type KeyBindingManager struct {
	bindings map[KeyCombo]KeyAction // special key -> action mapping
	runeMap  map[rune]KeyAction     // rune -> action mapping
}

// NewKeyBindingManager creates a new key binding manager
func NewKeyBindingManager() *KeyBindingManager {
	return &KeyBindingManager{
		bindings: make(map[KeyCombo]KeyAction),
		runeMap:  make(map[rune]KeyAction),
	}
}

// RegisterKeyBinding registers one action under several keys
func (km *KeyBindingManager) RegisterKeyBinding(action KeyAction, combos []KeyCombo, runes []rune) {
	for _, combo := range combos {
		combo.Mod &= significantMods
		km.bindings[combo] = action
	}
	for _, r := range runes {
		km.runeMap[r] = action
	}
}

// Lookup returns the action bound to event, if any
func (km *KeyBindingManager) Lookup(event *tcell.EventKey) (KeyAction, bool) {
	mod := event.Modifiers() & significantMods

	if event.Key() == tcell.KeyRune {
		if mod != tcell.ModNone {
			return KeyAction{}, false
		}
		action, ok := km.runeMap[event.Rune()]
		return action, ok
	}

	if action, ok := km.bindings[KeyCombo{Key: event.Key(), Mod: mod}]; ok {
		return action, true
	}
	// Ctrl+letter arrives as KeyCtrlX, with or without ModCtrl depending on
	// the terminal.
	if event.Key() >= tcell.KeyCtrlA && event.Key() <= tcell.KeyCtrlZ {
		action, ok := km.bindings[Plain(event.Key())]
		return action, ok
	}
	return KeyAction{}, false
}

// HandleKey handles a keyboard event and returns true if it was consumed
func (km *KeyBindingManager) HandleKey(event *tcell.EventKey) bool {
	action, ok := km.Lookup(event)
	if !ok {
		return false
	}
	action.handler()
	return true
}
