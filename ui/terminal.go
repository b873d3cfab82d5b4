package ui

import (
	"fmt"
	"os"
	"os/signal"
	"sync"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"
)

// Terminal owns the screen's raw-mode and alternate-screen state. Close must be
// deferred right after a successful open so that error returns and panics
// restore the terminal too.
type Terminal struct {
	Screen tcell.Screen

	fd    int
	saved *term.State

	closeOnce sync.Once
	closeErr  error
}

// IsInteractive reports whether stdout is a TTY.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// OpenTerminal switches the controlling terminal to raw mode on the alternate
// screen with the cursor hidden.
func OpenTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("ui: create screen: %w", err)
	}
	return AttachTerminal(screen, int(os.Stdin.Fd()))
}

// AttachTerminal initializes screen. When fd is a TTY its mode is captured
// first so Close can put it back even if the screen's own teardown misses it.
// Pass -1 to skip the capture.
func AttachTerminal(screen tcell.Screen, fd int) (*Terminal, error) {
	t := &Terminal{Screen: screen, fd: fd}
	if fd >= 0 && term.IsTerminal(fd) {
		if state, err := term.GetState(fd); err == nil {
			t.saved = state
		}
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("ui: init screen: %w", err)
	}
	screen.DisableMouse()
	screen.HideCursor()
	screen.Clear()
	return t, nil
}

// Close leaves the alternate screen, shows the cursor and restores the saved
// input mode. It is safe to call more than once; later calls return the first
// result.
func (t *Terminal) Close() error {
	if t == nil {
		return nil
	}
	t.closeOnce.Do(func() {
		t.Screen.Fini()
		if t.saved != nil {
			if err := term.Restore(t.fd, t.saved); err != nil {
				t.closeErr = fmt.Errorf("ui: restore terminal: %w", err)
			}
		}
	})
	return t.closeErr
}

// ForwardSignals turns the given OS signals into interrupt events on the
// screen so the render loop exits through its normal teardown. The returned
// function stops forwarding.
func (t *Terminal) ForwardSignals(sigs ...os.Signal) (stop func()) {
	ch := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(ch, sigs...)
	go forwardSignals(t.Screen, ch, done)

	var once sync.Once
	return func() {
		once.Do(func() {
			signal.Stop(ch)
			close(done)
		})
	}
}

func forwardSignals(screen tcell.Screen, ch <-chan os.Signal, done <-chan struct{}) {
	for {
		select {
		case sig := <-ch:
			_ = screen.PostEvent(tcell.NewEventInterrupt(sig))
		case <-done:
			return
		}
	}
}
