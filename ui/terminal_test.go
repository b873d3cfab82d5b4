package ui

import (
	"errors"
	"os"
	"syscall"
	"testing"

	"github.com/gdamore/tcell/v2"
)

type failingScreen struct {
	tcell.SimulationScreen
}

var errNoTTY = errors.New("no tty")

func (failingScreen) Init() error {
	return errNoTTY
}

func TestAttachTerminalAndCloseTwice(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	term, err := AttachTerminal(screen, -1)
	if err != nil {
		t.Fatalf("attach: %v", err)
	}
	if term.Screen != screen {
		t.Fatalf("expected terminal to keep its screen")
	}
	if err := term.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}
	if err := term.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestAttachTerminalInitFailure(t *testing.T) {
	_, err := AttachTerminal(failingScreen{tcell.NewSimulationScreen("UTF-8")}, -1)
	if !errors.Is(err, errNoTTY) {
		t.Fatalf("expected wrapped init error, got %v", err)
	}
}

func TestCloseNilTerminal(t *testing.T) {
	var term *Terminal
	if err := term.Close(); err != nil {
		t.Fatalf("nil close: %v", err)
	}
}

func TestForwardSignalsPostsInterrupt(t *testing.T) {
	screen := newTestScreen(t, 80, 25)
	ch := make(chan os.Signal, 1)
	done := make(chan struct{})
	go forwardSignals(screen, ch, done)
	defer close(done)

	ch <- syscall.SIGHUP
	for i := 0; i < 10; i++ {
		ev := screen.PollEvent()
		if ev == nil {
			t.Fatalf("screen closed before interrupt arrived")
		}
		if intr, ok := ev.(*tcell.EventInterrupt); ok {
			if intr.Data() != syscall.SIGHUP {
				t.Fatalf("expected SIGHUP payload, got %v", intr.Data())
			}
			return
		}
	}
	t.Fatalf("no interrupt event delivered")
}
