package render

import (
	"fmt"

	"github.com/coreman2200/rgbshades/internal/sequence"
)

type CommandKind int

const (
	CmdNext CommandKind = iota
	CmdPrev
	CmdSelect
	CmdBrightness
	CmdCycleBrightness
	CmdAuto
)

var commandNames = map[CommandKind]string{
	CmdNext:            "next",
	CmdPrev:            "prev",
	CmdSelect:          "select",
	CmdBrightness:      "brightness",
	CmdCycleBrightness: "cycle-brightness",
	CmdAuto:            "auto",
}

func (k CommandKind) String() string {
	if s, ok := commandNames[k]; ok {
		return s
	}
	return fmt.Sprintf("command(%d)", int(k))
}

// ParseCommandKind maps the control protocol name to a kind.
func ParseCommandKind(s string) (CommandKind, error) {
	for k, name := range commandNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown command %q", s)
}

// Command is one input event, applied between ticks. Select uses Name when
// set, otherwise Index.
type Command struct {
	Kind  CommandKind
	Index int
	Name  string
	Value uint8
	On    bool
}

// Submit queues c for the next Tick. It is safe to call from any goroutine.
func (e *Engine) Submit(c Command) error {
	if c.Kind == CmdBrightness && c.Value == 0 {
		return ErrZeroBrightness
	}
	if c.Kind == CmdSelect {
		if c.Name != "" {
			i, ok := e.reg.IndexOf(c.Name)
			if !ok {
				return fmt.Errorf("select %q: %w", c.Name, ErrUnknownEffect)
			}
			c.Index = i
		} else if c.Index < 0 || c.Index >= e.reg.Len() {
			return fmt.Errorf("select %d: %w", c.Index, ErrUnknownEffect)
		}
	}
	select {
	case e.cmds <- c:
		return nil
	default:
		return ErrQueueFull
	}
}

func (e *Engine) drain() {
	for {
		select {
		case c := <-e.cmds:
			e.apply(c)
		default:
			return
		}
	}
}

func (e *Engine) apply(c Command) {
	switch c.Kind {
	case CmdNext:
		e.seq.Next()
	case CmdPrev:
		e.seq.Prev()
	case CmdSelect:
		e.activate(c.Index)
		e.seq.Align(e.reg.At(c.Index).Effect.Name())
	case CmdBrightness:
		e.post.Brightness = c.Value
		e.brightIdx = -1
		for i, b := range e.opts.BrightnessLevels {
			if b == c.Value {
				e.brightIdx = i
			}
		}
	case CmdCycleBrightness:
		if len(e.opts.BrightnessLevels) == 0 {
			return
		}
		e.brightIdx = (e.brightIdx + 1) % len(e.opts.BrightnessLevels)
		e.post.Brightness = e.opts.BrightnessLevels[e.brightIdx]
	case CmdAuto:
		if c.On {
			switch e.seq.State {
			case sequence.Paused:
				e.seq.Resume()
			case sequence.Idle:
				e.seq.Start()
			}
		} else {
			e.seq.Pause()
		}
	default:
		e.log.Warn().Stringer("cmd", c.Kind).Msg("ignoring command")
		return
	}
	e.log.Debug().Stringer("cmd", c.Kind).Msg("command applied")
	if e.opts.OnChange != nil {
		e.opts.OnChange(e.Settings())
	}
}

// Settings returns the persisted values. Engine goroutine only.
func (e *Engine) Settings() Settings {
	return Settings{
		Effect:     e.reg.At(e.active).Effect.Name(),
		Brightness: e.post.Brightness,
		AutoCycle:  e.seq.State == sequence.Running,
	}
}
