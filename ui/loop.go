package ui

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
)

// QuitKey ends the loop cleanly.
const QuitKey = 'q'

var (
	// ErrInterrupted is returned when the loop ends on Ctrl-C or an OS signal
	// rather than QuitKey.
	ErrInterrupted = errors.New("ui: interrupted")
	// ErrScreenClosed is returned when the screen stops delivering events.
	ErrScreenClosed = errors.New("ui: screen closed")
)

// State is the render loop's single state variable.
type State int

const (
	StateDrawing State = iota
	StateAwaitingInput
	StateExiting
)

func (s State) String() string {
	switch s {
	case StateDrawing:
		return "drawing"
	case StateAwaitingInput:
		return "awaiting-input"
	case StateExiting:
		return "exiting"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Loop draws a Surface, blocks for the next event, and repeats until QuitKey.
// It never restores the terminal itself; that belongs to Terminal.Close.
type Loop struct {
	screen  tcell.Screen
	surface Surface
	metrics *Metrics

	state  State
	resync bool
	err    error
}

func NewLoop(screen tcell.Screen, surface Surface, metrics *Metrics) *Loop {
	return &Loop{
		screen:  screen,
		surface: surface,
		metrics: metrics,
		state:   StateDrawing,
	}
}

func (l *Loop) State() State {
	return l.state
}

// Run drives the state machine to StateExiting. It returns nil after QuitKey,
// ErrInterrupted after Ctrl-C or a forwarded signal, and ErrScreenClosed if the
// event source goes away.
func (l *Loop) Run() error {
	for {
		switch l.state {
		case StateDrawing:
			l.draw()
			l.state = StateAwaitingInput
		case StateAwaitingInput:
			l.state = l.handle(l.screen.PollEvent())
		case StateExiting:
			return l.err
		default:
			return fmt.Errorf("ui: invalid loop state %s", l.state)
		}
	}
}

func (l *Loop) draw() {
	start := time.Now()
	l.screen.Clear()
	l.surface.Draw(l.screen)
	if l.resync {
		l.screen.Sync()
		l.resync = false
	} else {
		l.screen.Show()
	}
	l.metrics.ObserveFrame(time.Since(start))
}

func (l *Loop) handle(ev tcell.Event) State {
	switch ev := ev.(type) {
	case nil:
		l.err = ErrScreenClosed
		return StateExiting
	case *tcell.EventKey:
		l.metrics.KeyEvent()
		if isQuitKey(ev) {
			return StateExiting
		}
		if ev.Key() == tcell.KeyCtrlC {
			l.err = ErrInterrupted
			return StateExiting
		}
	case *tcell.EventInterrupt:
		if sig, ok := ev.Data().(os.Signal); ok {
			l.err = fmt.Errorf("%w: %s", ErrInterrupted, sig)
			return StateExiting
		}
	case *tcell.EventResize:
		l.metrics.Resize()
		l.resync = true
	}
	return StateDrawing
}

func isQuitKey(ev *tcell.EventKey) bool {
	if ev.Key() != tcell.KeyRune || ev.Rune() != QuitKey {
		return false
	}
	return ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt|tcell.ModMeta) == 0
}
