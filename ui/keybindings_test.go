package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestKeyBindingManager(t *testing.T) {
	km := NewKeyBindingManager()

	handledSpace := false
	km.RegisterKeyBinding(
		KeyAction{
			name:    "toggle",
			handler: func() { handledSpace = true },
		},
		nil,
		[]rune{' '},
	)

	event := tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone)
	if !km.HandleKey(event) {
		t.Errorf("Expected space key to be handled")
	}
	if !handledSpace {
		t.Errorf("Expected handler to be called")
	}

	if km.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone)) {
		t.Errorf("Unbound rune should not be consumed")
	}
}

func TestKeyBindingManagerModifiers(t *testing.T) {
	km := NewKeyBindingManager()

	var fired []string
	bind := func(name string, combos ...KeyCombo) {
		km.RegisterKeyBinding(KeyAction{name: name, handler: func() { fired = append(fired, name) }}, combos, nil)
	}
	bind("left", Plain(tcell.KeyLeft))
	bind("prev", Ctrl(tcell.KeyLeft))
	bind("like", Plain(tcell.KeyCtrlL))
	km.RegisterKeyBinding(KeyAction{name: "x", handler: func() { fired = append(fired, "x") }}, nil, []rune{'x'})

	cases := []struct {
		event *tcell.EventKey
		want  string
	}{
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), "left"},
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModCtrl), "prev"},
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModCtrl|tcell.ModShift), "prev"},
		// both spellings of Ctrl+L
		{tcell.NewEventKey(tcell.KeyCtrlL, 0, tcell.ModNone), "like"},
		{tcell.NewEventKey(tcell.KeyCtrlL, 0, tcell.ModCtrl), "like"},
		{tcell.NewEventKey(tcell.KeyRune, 'l'-'a'+1, tcell.ModNone), "like"},
	}

	for _, tc := range cases {
		fired = nil
		if !km.HandleKey(tc.event) {
			t.Errorf("%s: event %v not handled", tc.want, tc.event.Name())
			continue
		}
		if len(fired) != 1 || fired[0] != tc.want {
			t.Errorf("event %v fired %v, want %s", tc.event.Name(), fired, tc.want)
		}
	}

	if km.HandleKey(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModCtrl)) {
		t.Errorf("Ctrl+Right is unbound and must not be consumed")
	}
	if km.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt)) {
		t.Errorf("Alt+x must not fall through to a plain rune binding")
	}
}
