package termline

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-tty"
	"golang.org/x/term"
)

// Surface is the terminal capability the engine depends on: raw output
// and the current dimensions. Everything the terminal pushes back (input
// data, resizes) reaches the engine through HandleData/HandleResize,
// wired up by whoever owns the event source. This keeps the engine free
// of any branching on host terminal API shape; adapters own that.
type Surface interface {
	// Write sends raw text, including control sequences, to the terminal.
	Write(text string)
	// Size reports the terminal dimensions in character cells.
	Size() (cols, rows int)
}

// TTYSurface adapts a real terminal to the Surface interface using go-tty
// for input and size detection, go-colorable for ANSI output on Windows,
// and golang.org/x/term for raw mode state management.
type TTYSurface struct {
	tty           *tty.TTY
	output        io.Writer
	inputFd       int
	originalState *term.State
	closed        bool // prevent double-close panic on Windows
}

// NewTTYSurface opens the controlling terminal.
func NewTTYSurface() (*TTYSurface, error) {
	t, err := tty.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open tty: %w", err)
	}

	var output io.Writer = t.Output()
	if runtime.GOOS == "windows" {
		output = colorable.NewColorable(t.Output())
	}

	return &TTYSurface{
		tty:     t,
		output:  output,
		inputFd: int(t.Input().Fd()),
	}, nil
}

// Write implements Surface. Write errors have no recovery path in the
// middle of a redraw and are dropped; a broken terminal surfaces as a
// read error from Run instead.
func (s *TTYSurface) Write(text string) {
	fmt.Fprint(s.output, text)
}

// Size implements Surface with a safe 80x24 fallback so wrap math never
// divides by zero.
func (s *TTYSurface) Size() (cols, rows int) {
	w, h, err := s.tty.Size()
	if err != nil || w <= 0 || h <= 0 {
		return 80, 24
	}
	return w, h
}

// SetRaw puts the terminal into raw mode, capturing the current state so
// Restore can put it back.
func (s *TTYSurface) SetRaw() error {
	if !term.IsTerminal(s.inputFd) {
		return nil
	}
	state, err := term.GetState(s.inputFd)
	if err != nil {
		return err
	}
	s.originalState = state
	if _, err := term.MakeRaw(s.inputFd); err != nil {
		return err
	}
	return nil
}

// Restore reverts the terminal to the state captured by SetRaw.
func (s *TTYSurface) Restore() error {
	if s.originalState == nil || !term.IsTerminal(s.inputFd) {
		return nil
	}
	err := term.Restore(s.inputFd, s.originalState)
	s.originalState = nil
	return err
}

// Run pumps terminal events into the engine until ctx is cancelled or the
// terminal read fails. Buffered runes are batched into a single chunk so
// escape sequences and pasted text arrive whole, which the engine's
// dispatch depends on. The engine's mutex makes it safe to call Read and
// the print helpers from other goroutines while Run is delivering events.
func (s *TTYSurface) Run(ctx context.Context, e *Engine) error {
	chunks := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		for {
			r, err := s.tty.ReadRune()
			if err != nil {
				readErr <- err
				return
			}
			buf := []rune{r}
			for s.tty.Buffered() {
				r, err := s.tty.ReadRune()
				if err != nil {
					readErr <- err
					return
				}
				buf = append(buf, r)
			}
			select {
			case chunks <- string(buf):
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-readErr:
			return err
		case ws := <-s.tty.SIGWINCH():
			e.HandleResize(ws.W, ws.H)
		case chunk := <-chunks:
			e.HandleData(chunk)
		}
	}
}

// Close releases the terminal. Safe to call more than once.
func (s *TTYSurface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.tty != nil {
		return s.tty.Close()
	}
	return nil
}
