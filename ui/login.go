package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const (
	fieldUsername = iota
	fieldPassword
	fieldCount
)

// loginForm is the state of the two login inputs. It lives in the UI: the
// engine only sees the credentials once they are submitted.
type loginForm struct {
	values  [fieldCount]string
	focused int
	message string
}

func newLoginForm() *loginForm {
	return &loginForm{}
}

func (f *loginForm) next() {
	f.focused = (f.focused + 1) % fieldCount
}

// edit applies a typing key to the focused field and reports whether
// anything changed
func (f *loginForm) edit(event *tcell.EventKey) bool {
	value := []rune(f.values[f.focused])

	switch event.Key() {
	case tcell.KeyRune:
		if event.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) != 0 {
			return false
		}
		value = append(value, event.Rune())
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(value) == 0 {
			return false
		}
		value = value[:len(value)-1]
	case tcell.KeyCtrlU:
		if len(value) == 0 {
			return false
		}
		value = nil
	default:
		return false
	}

	f.values[f.focused] = string(value)
	return true
}

func (f *loginForm) credentials() (string, string) {
	return strings.TrimSpace(f.values[fieldUsername]), f.values[fieldPassword]
}

// reset forgets the password after a successful login
func (f *loginForm) reset() {
	f.values[fieldPassword] = ""
	f.focused = fieldUsername
	f.message = ""
}

func (f *loginForm) render(tick uint64, status string) string {
	var b strings.Builder
	b.WriteString("\n[lightgreen::b]EaseCLI[-:-:-] [darkgray]login\n\n")
	b.WriteString(FormatInputField("phone", f.values[fieldUsername], "cellphone number", false, f.focused == fieldUsername, tick))
	b.WriteString("\n\n")
	b.WriteString(FormatInputField("password", f.values[fieldPassword], "password", true, f.focused == fieldPassword, tick))
	b.WriteString("\n\n[darkgray]Ctrl+Enter login | Tab next field | Esc quit\n")

	msg := f.message
	if msg == "" {
		msg = status
	}
	if msg != "" {
		b.WriteString("\n[red]" + tview.Escape(msg))
	}
	return b.String()
}
