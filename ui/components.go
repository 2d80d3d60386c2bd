package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/yhkl-dev/EaseCLI/coverart"
	"github.com/yhkl-dev/EaseCLI/domain"
	"github.com/yhkl-dev/EaseCLI/engine"
)

const (
	pageLogin   = "login"
	pageLoading = "loading"
	pageHome    = "home"
	pageDetail  = "detail"
	pageHelp    = "help"
	pageQueue   = "queue"
)

var spinner = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// createLayout sets up every page. Only one route page is visible at a time;
// help and queue are overlays on top of it.
func (a *App) createLayout() {
	a.loginView = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	a.loginView.SetBorder(true).SetTitle(" Login ")

	a.loadingView = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)

	a.playlistTable = tview.NewTable().
		SetBorders(false).
		SetSelectable(true, false)
	a.playlistTable.SetBorder(true).SetTitle(" Playlists ")

	a.trackTable = tview.NewTable().
		SetBorders(false).
		SetSelectable(true, false).
		SetFixed(1, 0)
	a.trackTable.SetBorder(true)

	a.statusBar = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(false).
		SetWrap(true)

	a.progressBar = tview.NewTextView().
		SetDynamicColors(true)

	a.detailCover = tview.NewTextView().
		SetDynamicColors(true)
	a.detailCover.SetBorder(true).SetTitle(" Cover ")

	a.detailInfo = tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true)
	a.detailInfo.SetBorder(true).SetTitle(" Now Playing (ESC to close) ")

	a.helpView = NewHelpView(a)
	a.queueView = NewQueueView(a)

	leftPanel := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.playlistTable, 0, 1, false).
		AddItem(a.statusBar, 10, 0, false)

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(leftPanel, 0, 1, false).
		AddItem(a.trackTable, 0, 2, false)

	home := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(mainLayout, 0, 1, false).
		AddItem(a.progressBar, 3, 0, false)

	detail := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(a.detailCover, 29, 0, false).
		AddItem(a.detailInfo, 0, 1, false)

	a.pages = tview.NewPages().
		AddPage(pageLogin, centered(a.loginView, 60, 14), true, false).
		AddPage(pageLoading, centered(a.loadingView, 40, 3), true, false).
		AddPage(pageHome, home, true, false).
		AddPage(pageDetail, detail, true, false).
		AddPage(pageHelp, centered(a.helpView.GetContainer(), 60, 26), true, false).
		AddPage(pageQueue, centered(a.queueView.GetContainer(), 80, 20), true, false)

	a.tviewApp.SetInputCapture(a.handleInput)
	a.tviewApp.SetRoot(a.pages, true)
}

func centered(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().
			SetDirection(tview.FlexColumn).
			AddItem(nil, 0, 1, false).
			AddItem(p, width, 0, true).
			AddItem(nil, 0, 1, false), height, 0, true).
		AddItem(nil, 0, 1, false)
}

func routePage(r domain.Route) string {
	switch r {
	case domain.RouteLogin:
		return pageLogin
	case domain.RouteLoading:
		return pageLoading
	case domain.RouteDetail:
		return pageDetail
	}
	return pageHome
}

// render draws snap. Runs on the tview goroutine.
func (a *App) render(snap engine.Snapshot) {
	prev := a.snap
	a.snap = snap

	if name := routePage(snap.Route); name != a.page {
		if prev.Route == domain.RouteLoading && snap.Route == domain.RouteHome {
			a.login.reset()
		}
		a.helpView.isActive = false
		a.queueView.isActive = false
		a.pages.SwitchToPage(name)
		a.page = name
	}

	switch snap.Route {
	case domain.RouteLogin:
		a.drawLogin(snap)
	case domain.RouteLoading:
		a.drawLoading(snap)
	case domain.RouteDetail:
		a.drawDetail(snap)
	default:
		a.drawHome(snap)
	}

	if a.queueView.IsActive() {
		a.queueView.refresh(snap)
	}
}

func (a *App) drawLogin(snap engine.Snapshot) {
	a.loginView.SetText(a.login.render(snap.SystemTick, snap.Status))
}

func (a *App) drawLoading(snap engine.Snapshot) {
	frame := spinner[snap.SystemTick%uint64(len(spinner))]
	a.loadingView.SetText(fmt.Sprintf("\n[yellow]%s [white]Signing in...", frame))
}

func (a *App) drawHome(snap engine.Snapshot) {
	a.renderPlaylistTable(snap)
	a.renderTrackTable(snap)
	a.renderStatus(snap)
	a.progressBar.SetText(a.progressText(snap))

	if snap.Focus == domain.FocusPlaylist {
		a.playlistTable.SetBorderColor(tcell.ColorLightGreen)
		a.trackTable.SetBorderColor(tcell.ColorGray)
		a.tviewApp.SetFocus(a.playlistTable)
	} else {
		a.playlistTable.SetBorderColor(tcell.ColorGray)
		a.trackTable.SetBorderColor(tcell.ColorLightGreen)
		a.tviewApp.SetFocus(a.trackTable)
	}
}

func (a *App) renderPlaylistTable(snap engine.Snapshot) {
	a.playlistTable.Clear()
	rowStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDefault)

	for i, p := range snap.Playlists {
		name := Truncate(p.Name, a.cfg.MaxColumnWidth)
		style := rowStyle
		if i == snap.PlayingPlaylistIndex {
			name = "♪ " + name
			style = style.Foreground(tcell.ColorLightGreen)
		}
		a.playlistTable.SetCell(i, 0, tview.NewTableCell(tview.Escape(name)).
			SetStyle(style).
			SetExpansion(1))
		a.playlistTable.SetCell(i, 1, tview.NewTableCell(fmt.Sprintf("%d", p.TrackCount)).
			SetStyle(rowStyle.Foreground(tcell.ColorGray)).
			SetAlign(tview.AlignRight))
	}

	a.playlistTable.SetSelectedStyle(tcell.StyleDefault.
		Background(tcell.ColorDarkGreen).
		Foreground(tcell.ColorWhite))
	if len(snap.Playlists) > 0 {
		a.playlistTable.Select(snap.PlaylistCursor, 0)
	}
}

func (a *App) renderTrackTable(snap engine.Snapshot) {
	a.trackTable.Clear()

	headerStyle := tcell.StyleDefault.Foreground(tcell.ColorGray).Attributes(tcell.AttrBold)
	for col, title := range []string{"#", "", "Title", "Artist", "Album", "Time"} {
		a.trackTable.SetCell(0, col, tview.NewTableCell(title).
			SetStyle(headerStyle).
			SetSelectable(false))
	}

	a.trackTable.SetTitle(fmt.Sprintf(" Tracks (%d) ", len(snap.TracksView)))

	current, playing := snap.CurrentTrack()
	rowStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDefault)
	width := a.cfg.MaxColumnWidth

	for i, t := range snap.TracksView {
		row := i + 1
		style := rowStyle
		marker := " "
		if playing && t.ID == current.ID {
			marker = "▶"
			if snap.Paused {
				marker = "⏸"
			}
			style = style.Foreground(tcell.ColorLightGreen)
		}
		heart := " "
		if snap.Liked(t.ID) {
			heart = "♥"
		}

		a.trackTable.SetCell(row, 0, tview.NewTableCell(fmt.Sprintf("%d:", i+1)).
			SetStyle(rowStyle.Foreground(tcell.ColorLightGreen)).
			SetAlign(tview.AlignRight))
		a.trackTable.SetCell(row, 1, tview.NewTableCell(marker+heart).
			SetStyle(style.Foreground(tcell.ColorRed)))
		a.trackTable.SetCell(row, 2, tview.NewTableCell(tview.Escape(Truncate(t.Name, width))).
			SetStyle(style).
			SetExpansion(1))
		a.trackTable.SetCell(row, 3, tview.NewTableCell(tview.Escape(Truncate(t.ArtistNames(), width/2))).
			SetStyle(rowStyle.Foreground(tcell.ColorGray)))
		a.trackTable.SetCell(row, 4, tview.NewTableCell(tview.Escape(Truncate(t.Album.Name, width/2))).
			SetStyle(rowStyle.Foreground(tcell.ColorGray)))
		a.trackTable.SetCell(row, 5, tview.NewTableCell(FormatDuration(t.DurationMS)).
			SetStyle(rowStyle.Foreground(tcell.ColorGray)).
			SetAlign(tview.AlignRight))
	}

	a.trackTable.SetSelectedStyle(tcell.StyleDefault.
		Background(tcell.ColorDarkGreen).
		Foreground(tcell.ColorWhite))
	if len(snap.TracksView) > 0 {
		a.trackTable.Select(snap.TrackCursor+1, 0)
	}
}

func (a *App) renderStatus(snap engine.Snapshot) {
	track, ok := snap.CurrentTrack()
	if !ok {
		a.statusBar.SetText(CreateWelcomeMessage(snap.Account, len(snap.Playlists)))
		return
	}

	status := fmt.Sprintf("[lightgreen]%s", tview.Escape(track.Name))
	if snap.Paused {
		status = fmt.Sprintf("[yellow]%s [darkgray](PAUSED)", tview.Escape(track.Name))
	}
	bar := CreateProgressBar(Progress(snap.SeekMS, track.DurationMS), a.cfg.ProgressBarWidth, a.cfg.EnhancedGraphics)
	a.statusBar.SetText(FormatTrackInfo(track, snap.Liked(track.ID), status, bar))
}

// progressText is the three-line footer: lyric, time and volume, status
func (a *App) progressText(snap engine.Snapshot) string {
	lines := make([]string, 0, 3)

	if snap.ShowLyric {
		lines = append(lines, "[yellow]♪ [white]"+tview.Escape(snap.LyricLine))
	} else {
		lines = append(lines, "")
	}

	if track, ok := snap.CurrentTrack(); ok {
		lines = append(lines, CreateProgressText(
			FormatDuration(snap.SeekMS), FormatDuration(track.DurationMS),
			FormatVolume(snap.Volume), snap.Paused))
	} else {
		lines = append(lines, fmt.Sprintf("[darkgray]idle  vol [white]%s", FormatVolume(snap.Volume)))
	}

	if snap.Status != "" {
		lines = append(lines, "[red]"+tview.Escape(snap.Status))
	}
	return strings.Join(lines, "\n")
}

func (a *App) drawDetail(snap engine.Snapshot) {
	track, ok := snap.CurrentTrack()
	if !ok && snap.TrackCursor < len(snap.TracksView) {
		track, ok = snap.TracksView[snap.TrackCursor], true
	}
	if !ok {
		a.detailCover.SetText(coverart.Placeholder())
		a.detailInfo.SetText("\n[darkgray]Nothing selected")
		return
	}

	a.loadCover(track.Album.CoverURL)
	a.detailCover.SetText(a.coverArt)

	var b strings.Builder
	fmt.Fprintf(&b, "\n[lightgreen::b]%s[-:-:-]\n\n", tview.Escape(track.Name))
	fmt.Fprintf(&b, "[gray]Artist:   [white]%s\n", tview.Escape(track.ArtistNames()))
	fmt.Fprintf(&b, "[gray]Album:    [white]%s\n", tview.Escape(track.Album.Name))
	fmt.Fprintf(&b, "[gray]Length:   [white]%s\n", FormatDuration(track.DurationMS))
	if p, ok := snap.PlayingPlaylist(); ok {
		fmt.Fprintf(&b, "[gray]Playlist: [white]%s\n", tview.Escape(p.Name))
	}
	if snap.Liked(track.ID) {
		b.WriteString("[red]♥ liked\n")
	}

	b.WriteString("\n")
	b.WriteString(CreateProgressBar(Progress(snap.SeekMS, track.DurationMS), a.cfg.ProgressBarWidth, a.cfg.EnhancedGraphics))
	b.WriteString("\n")
	b.WriteString(a.progressText(snap))
	b.WriteString("\n\n")
	b.WriteString(lyricContext(snap, 3))

	a.detailInfo.SetText(b.String())
}

// lyricContext shows the current lyric line with radius lines on each side
func lyricContext(snap engine.Snapshot, radius int) string {
	if len(snap.Lyric) == 0 {
		return "[darkgray]" + tview.Escape(snap.LyricLine)
	}

	pos := snap.Lyric.Position(snap.SeekMS)
	if pos < 0 {
		pos = 0
	}
	from := max(0, pos-radius)
	to := min(len(snap.Lyric), pos+radius+1)

	lines := make([]string, 0, to-from)
	for i := from; i < to; i++ {
		text := tview.Escape(snap.Lyric[i].Content)
		if i == pos {
			lines = append(lines, "[yellow::b]"+text+"[-:-:-]")
		} else {
			lines = append(lines, "[darkgray]"+text)
		}
	}
	return strings.Join(lines, "\n")
}

// loadCover converts url in the background and redraws the cover when done
func (a *App) loadCover(url string) {
	if url == a.coverURL && a.coverArt != "" {
		return
	}
	a.coverURL = url
	a.coverArt = coverart.Placeholder()
	if a.covers == nil || url == "" {
		return
	}

	ctx := a.ctx
	a.wg.Go(func() {
		art, err := a.covers.ConvertFromURL(ctx, url)
		if err != nil {
			a.log.WithError(err).Debug("failed to load cover art")
		}
		a.queueDraw(ctx, func() {
			if a.coverURL == url {
				a.coverArt = art
				a.detailCover.SetText(art)
			}
		})
	})
}
