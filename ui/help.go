package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const helpText = `[yellow::b]Keyboard Shortcuts[-:-:-]

[lightgreen]Playback Controls:[-]
  [white]Enter[-]        Open playlist / play selected track
  [white]Space[-]        Play/Pause
  [white]Ctrl+→[-]       Next track
  [white]Ctrl+←[-]       Previous track
  [white]= / -[-]        Volume up/down (1%)
  [white]Ctrl+↑ / ↓[-]   Volume up/down (alternative)
  [white]Ctrl+l[-]       Like / unlike current track
  [white]Ctrl+d[-]       Show/hide lyric line

[lightgreen]Navigation:[-]
  [white]↑ / ↓[-]        Move cursor
  [white]← / →[-]        Switch between playlists and tracks
  [white]i[-]            Show now playing (with cover art)
  [white]Q[-]            Show playback queue
  [white]?[-]            Show this help panel

[lightgreen]Login:[-]
  [white]Tab / Ctrl+i[-] Next input
  [white]Ctrl+Enter[-]   Log in

[lightgreen]General:[-]
  [white]ESC[-]          Close view
  [white]q / Ctrl+C[-]   Exit program

[yellow]Press ESC or ? to close this help panel[-]
`

// HelpView represents the keyboard shortcuts help interface
type HelpView struct {
	app       *App
	container *tview.Flex
	textView  *tview.TextView
	isActive  bool
}

// NewHelpView creates a new help view
func NewHelpView(app *App) *HelpView {
	hv := &HelpView{
		app: app,
	}

	hv.textView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(true).
		SetText(helpText)

	hv.container = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(hv.textView, 0, 1, true)

	hv.container.SetBorder(true).
		SetTitle(" Help (ESC to close) ").
		SetBorderColor(tcell.ColorYellow)

	return hv
}

// Show displays the help view
func (hv *HelpView) Show() {
	hv.isActive = true
	hv.app.pages.ShowPage(pageHelp)
}

// Close hides the help view
func (hv *HelpView) Close() {
	hv.isActive = false
	hv.app.pages.HidePage(pageHelp)
}

// IsActive returns whether the help view is active
func (hv *HelpView) IsActive() bool {
	return hv.isActive
}

// GetContainer returns the help view container
func (hv *HelpView) GetContainer() *tview.Flex {
	return hv.container
}
