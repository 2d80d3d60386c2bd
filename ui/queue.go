package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/yhkl-dev/EaseCLI/engine"
)

// QueueView lists the tracks the engine will advance through
type QueueView struct {
	app       *App
	container *tview.Flex
	table     *tview.Table
	isActive  bool
}

// NewQueueView creates a new queue view
func NewQueueView(app *App) *QueueView {
	qv := &QueueView{
		app: app,
	}

	qv.table = tview.NewTable().
		SetBorders(false).
		SetSelectable(true, false).
		SetFixed(1, 0)

	qv.container = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(qv.table, 0, 1, true)

	qv.container.SetBorder(true).
		SetTitle(" Playback Queue (ESC/Q to close) ").
		SetBorderColor(tcell.NewHexColor(0x00bcd4))

	return qv
}

// Show displays the queue view
func (qv *QueueView) Show(snap engine.Snapshot) {
	qv.isActive = true
	qv.refresh(snap)
	qv.app.pages.ShowPage(pageQueue)
}

// Close hides the queue view
func (qv *QueueView) Close() {
	qv.isActive = false
	qv.app.pages.HidePage(pageQueue)
}

// IsActive returns whether the queue view is active
func (qv *QueueView) IsActive() bool {
	return qv.isActive
}

// GetContainer returns the queue view container
func (qv *QueueView) GetContainer() *tview.Flex {
	return qv.container
}

// refresh redraws the queue with the playing entry selected
func (qv *QueueView) refresh(snap engine.Snapshot) {
	qv.table.Clear()

	headerStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow).Attributes(tcell.AttrBold)
	for col, title := range []string{"#", "Title", "Artist", "Duration"} {
		qv.table.SetCell(0, col, tview.NewTableCell(title).SetStyle(headerStyle).SetSelectable(false))
	}

	if len(snap.Queue) == 0 {
		qv.table.SetCell(1, 0, tview.NewTableCell("Queue is empty").
			SetAlign(tview.AlignCenter).
			SetExpansion(4).
			SetTextColor(tcell.ColorGray))
		return
	}

	rowStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	width := qv.app.cfg.MaxColumnWidth

	for i, t := range snap.Queue {
		row := i + 1
		style := rowStyle
		if i == snap.CurrentIndex {
			style = style.Foreground(tcell.ColorLightGreen)
		}

		qv.table.SetCell(row, 0,
			tview.NewTableCell(fmt.Sprintf("%d", i+1)).
				SetStyle(rowStyle.Foreground(tcell.ColorLightGreen)).
				SetAlign(tview.AlignRight))

		qv.table.SetCell(row, 1,
			tview.NewTableCell(tview.Escape(Truncate(t.Name, width))).
				SetStyle(style).
				SetExpansion(2))

		qv.table.SetCell(row, 2,
			tview.NewTableCell(tview.Escape(t.ArtistNames())).
				SetStyle(rowStyle.Foreground(tcell.ColorGray)).
				SetMaxWidth(20))

		qv.table.SetCell(row, 3,
			tview.NewTableCell(FormatDuration(t.DurationMS)).
				SetStyle(rowStyle.Foreground(tcell.ColorGray)).
				SetAlign(tview.AlignRight))
	}

	qv.table.SetSelectedStyle(tcell.StyleDefault.
		Background(tcell.ColorDarkCyan).
		Foreground(tcell.ColorWhite))
	qv.table.Select(snap.CurrentIndex+1, 0)
}
