package input

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/coreman2200/rgbshades/internal/render"
)

// ErrQuit is returned by Run when the user pressed q or Ctrl-C.
var ErrQuit = errors.New("quit requested")

// Map translates a key press into a command. auto is the current
// auto-cycle state so 'a' can toggle it.
func Map(b byte, auto bool) (render.Command, bool) {
	switch {
	case b == 'n' || b == ' ':
		return render.Command{Kind: render.CmdNext}, true
	case b == 'p':
		return render.Command{Kind: render.CmdPrev}, true
	case b == 'b':
		return render.Command{Kind: render.CmdCycleBrightness}, true
	case b == 'a':
		return render.Command{Kind: render.CmdAuto, On: !auto}, true
	case b >= '0' && b <= '9':
		return render.Command{Kind: render.CmdSelect, Index: int(b - '0')}, true
	}
	return render.Command{}, false
}

// Keys feeds key presses from In to the engine.
type Keys struct {
	In     io.Reader
	Submit func(render.Command) error
	Auto   func() bool
	Log    zerolog.Logger
}

// Run reads until EOF, a quit key or ctx is done.
func (k *Keys) Run(ctx context.Context) error {
	buf := make([]byte, 16)
	for {
		n, err := k.In.Read(buf)
		for _, b := range buf[:n] {
			if b == 'q' || b == 3 {
				return ErrQuit
			}
			auto := false
			if k.Auto != nil {
				auto = k.Auto()
			}
			cmd, ok := Map(b, auto)
			if !ok {
				continue
			}
			if serr := k.Submit(cmd); serr != nil {
				k.Log.Warn().Err(serr).Stringer("cmd", cmd.Kind).Msg("key ignored")
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// Raw puts f into raw mode when it is a terminal. The returned restore func
// is always safe to call.
func Raw(f *os.File) (restore func(), err error) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return func() {}, nil
	}
	old, err := term.MakeRaw(fd)
	if err != nil {
		return func() {}, err
	}
	return func() { _ = term.Restore(fd, old) }, nil
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool { return term.IsTerminal(int(f.Fd())) }
