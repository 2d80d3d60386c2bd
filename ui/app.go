package ui

import (
	"context"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"github.com/rivo/tview"
	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc"
	"github.com/yhkl-dev/EaseCLI/config"
	"github.com/yhkl-dev/EaseCLI/coverart"
	"github.com/yhkl-dev/EaseCLI/domain"
	"github.com/yhkl-dev/EaseCLI/engine"
	"github.com/yhkl-dev/EaseCLI/logging"
	"go.uber.org/multierr"
)

// Engine is the part of the player engine the UI drives
type Engine interface {
	Run(ctx context.Context, intents <-chan engine.Intent) error
	Snapshot() engine.Snapshot
}

// App is the terminal host: it turns keys and ticks into intents and draws
// the snapshots the engine publishes
type App struct {
	tviewApp *tview.Application
	cfg      config.UIConfig
	tickRate time.Duration
	covers   *coverart.Converter
	log      *logrus.Entry

	intents chan engine.Intent
	ticks   chan struct{}
	redraw  chan struct{}
	workers []func(context.Context)
	wg      conc.WaitGroup
	ctx     context.Context

	mu      sync.Mutex
	pending engine.Snapshot
	fresh   bool

	// owned by the tview goroutine
	snap      engine.Snapshot
	homeKeys  *KeyBindingManager
	loginKeys *KeyBindingManager
	busyKeys  *KeyBindingManager
	login     *loginForm

	pages         *tview.Pages
	page          string
	playlistTable *tview.Table
	trackTable    *tview.Table
	statusBar     *tview.TextView
	progressBar   *tview.TextView
	loginView     *tview.TextView
	loadingView   *tview.TextView
	detailCover   *tview.TextView
	detailInfo    *tview.TextView
	helpView      *HelpView
	queueView     *QueueView
	coverURL      string
	coverArt      string
}

// NewApp creates the host. Covers may be nil, in which case the detail view
// shows a placeholder.
func NewApp(cfg config.UIConfig, tickRate time.Duration, covers *coverart.Converter) *App {
	a := &App{
		tviewApp: tview.NewApplication(),
		cfg:      cfg,
		tickRate: tickRate,
		covers:   covers,
		log:      logging.For("ui"),
		intents:  make(chan engine.Intent, engine.QueueSize),
		ticks:    make(chan struct{}, 1),
		redraw:   make(chan struct{}, 1),
		login:    newLoginForm(),
	}
	a.setupKeyBindings()
	return a
}

// Publish hands a snapshot to the renderer. It never blocks, so it is safe
// to use as the engine's OnChange hook.
func (a *App) Publish(snap engine.Snapshot) {
	a.mu.Lock()
	a.pending = snap
	a.fresh = true
	a.mu.Unlock()

	select {
	case a.redraw <- struct{}{}:
	default:
	}
}

// Send queues an intent without blocking. It reports false when the queue
// is full and the intent was dropped.
func (a *App) Send(in engine.Intent) bool {
	select {
	case a.intents <- in:
		return true
	default:
		a.log.WithField("intent", in.Kind).Warn("intent queue full, dropping")
		return false
	}
}

// AddWorker registers a background job that runs for the lifetime of Run
func (a *App) AddWorker(w func(ctx context.Context)) {
	a.workers = append(a.workers, w)
}

// Run starts the engine loop, the tick source and the terminal, and blocks
// until the engine quits or the terminal fails
func (a *App) Run(ctx context.Context, eng Engine) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	a.ctx = ctx

	a.createLayout()
	a.snap = eng.Snapshot()
	a.render(a.snap)

	in := make(chan engine.Intent)
	var engineErr error
	a.wg.Go(func() {
		engineErr = eng.Run(ctx, in)
		a.log.Info("engine stopped")
		a.tviewApp.Stop()
	})
	a.wg.Go(func() { a.pump(ctx, in) })
	a.wg.Go(func() { a.tickLoop(ctx) })
	a.wg.Go(func() { a.renderLoop(ctx) })
	for _, w := range a.workers {
		a.wg.Go(func() { w(ctx) })
	}

	a.log.Info("start easecli...")
	uiErr := a.tviewApp.Run()
	cancel()
	a.wg.Wait()

	if errors.Is(engineErr, context.Canceled) {
		engineErr = nil
	}
	return multierr.Append(errors.Wrap(uiErr, "terminal"), engineErr)
}

// tickLoop emits a Tick every tick rate. At most one tick waits for the
// engine: ticks that arrive while it is busy collapse into that one, so a
// long playback start neither fills the key queue nor pushes the play
// position ahead.
func (a *App) tickLoop(ctx context.Context) {
	ticker := time.NewTicker(a.tickRate)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.tick()
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) tick() {
	select {
	case a.ticks <- struct{}{}:
	default:
	}
}

// pump feeds keys and ticks to the engine one at a time
func (a *App) pump(ctx context.Context, out chan<- engine.Intent) {
	for {
		var next engine.Intent
		select {
		case next = <-a.intents:
		case <-a.ticks:
			next = engine.Of(engine.Tick)
		case <-ctx.Done():
			return
		}

		select {
		case out <- next:
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) renderLoop(ctx context.Context) {
	for {
		select {
		case <-a.redraw:
			snap, ok := a.takePending()
			if !ok {
				continue
			}
			a.queueDraw(ctx, func() { a.render(snap) })
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) takePending() (engine.Snapshot, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.fresh {
		return engine.Snapshot{}, false
	}
	a.fresh = false
	return a.pending, true
}

// queueDraw runs f on the tview goroutine. It gives up when ctx ends, since
// a stopped application no longer drains its update queue.
func (a *App) queueDraw(ctx context.Context, f func()) {
	done := make(chan struct{})
	go func() {
		a.tviewApp.QueueUpdateDraw(f)
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}
}

func (a *App) setupKeyBindings() {
	send := func(kind engine.IntentKind) func() {
		return func() { a.Send(engine.Of(kind)) }
	}

	a.homeKeys = NewKeyBindingManager()
	home := []struct {
		name   string
		handle func()
		combos []KeyCombo
		runes  []rune
	}{
		{"quit", send(engine.Quit), []KeyCombo{Plain(tcell.KeyCtrlC)}, []rune{'q'}},
		{"togglePause", send(engine.TogglePause), nil, []rune{' '}},
		{"volumeDown", send(engine.VolumeDown), []KeyCombo{Ctrl(tcell.KeyDown)}, []rune{'-'}},
		{"volumeUp", send(engine.VolumeUp), []KeyCombo{Ctrl(tcell.KeyUp)}, []rune{'=', '+'}},
		{"up", send(engine.NavigateUp), []KeyCombo{Plain(tcell.KeyUp)}, nil},
		{"down", send(engine.NavigateDown), []KeyCombo{Plain(tcell.KeyDown)}, nil},
		{"left", send(engine.NavigateLeft), []KeyCombo{Plain(tcell.KeyLeft)}, nil},
		{"right", send(engine.NavigateRight), []KeyCombo{Plain(tcell.KeyRight)}, nil},
		{"activate", send(engine.Activate), []KeyCombo{Plain(tcell.KeyEnter)}, nil},
		{"prev", send(engine.PrevTrack), []KeyCombo{Ctrl(tcell.KeyLeft)}, nil},
		{"next", send(engine.NextTrack), []KeyCombo{Ctrl(tcell.KeyRight)}, nil},
		{"like", send(engine.ToggleLike), []KeyCombo{Plain(tcell.KeyCtrlL)}, nil},
		{"lyric", send(engine.ToggleLyric), []KeyCombo{Plain(tcell.KeyCtrlD)}, nil},
		{"detail", send(engine.OpenDetail), nil, []rune{'i'}},
		{"back", send(engine.Back), []KeyCombo{Plain(tcell.KeyEsc)}, nil},
		{"help", a.showHelp, nil, []rune{'?'}},
		{"queue", a.showQueue, nil, []rune{'Q'}},
	}
	for _, b := range home {
		a.homeKeys.RegisterKeyBinding(KeyAction{name: b.name, handler: b.handle}, b.combos, b.runes)
	}

	a.loginKeys = NewKeyBindingManager()
	a.loginKeys.RegisterKeyBinding(KeyAction{name: "login", handler: a.submitLogin},
		[]KeyCombo{Ctrl(tcell.KeyEnter), Plain(tcell.KeyCtrlJ)}, nil)
	nextInput := func() {
		a.login.next()
		a.drawLogin(a.snap)
	}
	a.loginKeys.RegisterKeyBinding(KeyAction{name: "nextInput", handler: nextInput},
		[]KeyCombo{Plain(tcell.KeyTab), Plain(tcell.KeyBacktab), Plain(tcell.KeyDown), Plain(tcell.KeyUp)}, nil)
	a.loginKeys.RegisterKeyBinding(KeyAction{name: "enter", handler: a.loginEnter},
		[]KeyCombo{Plain(tcell.KeyEnter)}, nil)
	a.loginKeys.RegisterKeyBinding(KeyAction{name: "quit", handler: send(engine.Quit)},
		[]KeyCombo{Plain(tcell.KeyEsc), Plain(tcell.KeyCtrlC)}, nil)

	a.busyKeys = NewKeyBindingManager()
	a.busyKeys.RegisterKeyBinding(KeyAction{name: "quit", handler: send(engine.Quit)},
		[]KeyCombo{Plain(tcell.KeyCtrlC)}, []rune{'q'})
}

// handleInput routes every key. Nothing reaches the widgets: cursors and
// focus belong to the engine.
func (a *App) handleInput(event *tcell.EventKey) *tcell.EventKey {
	if a.helpView.IsActive() {
		if event.Key() == tcell.KeyEscape || event.Rune() == '?' {
			a.helpView.Close()
		}
		return nil
	}
	if a.queueView.IsActive() {
		if event.Key() == tcell.KeyEscape || event.Rune() == 'Q' {
			a.queueView.Close()
		}
		return nil
	}

	switch a.snap.Route {
	case domain.RouteLogin:
		if !a.loginKeys.HandleKey(event) && a.login.edit(event) {
			a.drawLogin(a.snap)
		}
	case domain.RouteLoading:
		a.busyKeys.HandleKey(event)
	default:
		a.homeKeys.HandleKey(event)
	}
	return nil
}

func (a *App) submitLogin() {
	username, password := a.login.credentials()
	if username == "" || password == "" {
		a.login.message = "phone and password are required"
		a.drawLogin(a.snap)
		return
	}
	a.login.message = ""
	a.Send(engine.LoginWith(username, password))
}

func (a *App) loginEnter() {
	if a.login.focused == fieldUsername {
		a.login.next()
		a.drawLogin(a.snap)
		return
	}
	a.submitLogin()
}

// PrefillLogin puts the phone number into the login form
func (a *App) PrefillLogin(phone string) {
	a.login.values[fieldUsername] = phone
}

func (a *App) showHelp() {
	a.helpView.Show()
}

func (a *App) showQueue() {
	a.queueView.Show(a.snap)
}
