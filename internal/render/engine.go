package render

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/coreman2200/rgbshades/internal/layout"
	"github.com/coreman2200/rgbshades/internal/sequence"
)

var (
	ErrQueueFull      = errors.New("command queue full")
	ErrZeroBrightness = errors.New("brightness must be at least 1")
)

// Options tune the scheduler. Zero durations disable the matching timer,
// except Tick and MinDelay which default to one millisecond and one tick.
type Options struct {
	Tick             time.Duration
	Dwell            time.Duration // per-effect dwell of the default rotation, 0 holds
	AutoCycle        bool
	HueInterval      time.Duration
	HueFollowsRender bool // advance hue once per render instead of on HueInterval
	BlendInterval    time.Duration
	BlendStep        uint8
	MinDelay         time.Duration
	StartEffect      string
	Seed             int64
	Post             Post
	BrightnessLevels []uint8
	Playlist         []sequence.Clip // overrides the registry-order rotation
	QueueSize        int

	// OnChange is called from the engine goroutine after a command changed
	// the persisted settings.
	OnChange func(Settings)
	Log      *zerolog.Logger
}

// DefaultOptions are the stock glasses timings: 1ms tick, hue every 15ms,
// palette blend every 40ms, auto-rotation every 10s.
func DefaultOptions() Options {
	return Options{
		Tick:             time.Millisecond,
		Dwell:            10 * time.Second,
		AutoCycle:        true,
		HueInterval:      15 * time.Millisecond,
		BlendInterval:    40 * time.Millisecond,
		BlendStep:        8,
		Post:             DefaultPost(),
		BrightnessLevels: []uint8{255, 192, 128, 64, 32},
		QueueSize:        16,
	}
}

// Settings are the user-facing values worth persisting across restarts.
type Settings struct {
	Effect     string
	Brightness uint8
	AutoCycle  bool
}

// Status is a point-in-time snapshot safe to read from any goroutine.
type Status struct {
	Effect     string        `json:"effect"`
	Index      int           `json:"index"`
	Effects    int           `json:"effects"`
	Ticks      uint64        `json:"ticks"`
	Renders    uint64        `json:"renders"`
	Hue        uint8         `json:"hue"`
	Brightness uint8         `json:"brightness"`
	AutoCycle  bool          `json:"auto_cycle"`
	Uptime     time.Duration `json:"uptime_ns"`
}

// Engine owns the frame, the shared context and the registry entries. All
// methods except Submit and Status must be called from one goroutine.
type Engine struct {
	layout layout.Layout
	reg    *Registry
	drv    Driver
	opts   Options
	log    zerolog.Logger

	ctx    Context
	seq    *sequence.Player
	post   Post
	active int

	elapsed      time.Duration
	hueElapsed   time.Duration
	blendElapsed time.Duration
	ticks        uint64
	renders      uint64
	brightIdx    int
	out          []byte

	cmds chan Command

	mu     sync.Mutex
	status Status
}

// NewEngine validates the layout, builds the context and activates the start
// effect. The first render happens on the first Tick.
func NewEngine(l layout.Layout, reg *Registry, drv Driver, opts Options) (*Engine, error) {
	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("layout %q: %w", l.Name, err)
	}
	if reg == nil || reg.Len() == 0 {
		return nil, ErrEmptyRegistry
	}
	if opts.Tick <= 0 {
		opts.Tick = time.Millisecond
	}
	if opts.MinDelay < opts.Tick {
		opts.MinDelay = opts.Tick
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = 16
	}
	if opts.Post == (Post{}) {
		opts.Post = DefaultPost()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	e := &Engine{
		layout:    l,
		reg:       reg,
		drv:       drv,
		opts:      opts,
		log:       zerolog.Nop(),
		post:      opts.Post,
		brightIdx: -1,
		cmds:      make(chan Command, opts.QueueSize),
	}
	if opts.Log != nil {
		e.log = *opts.Log
	}
	e.ctx = Context{
		Frame:   NewFrame(l),
		Palette: RainbowColors,
		Target:  RainbowColors,
		Rand:    rand.New(rand.NewSource(seed)),
	}
	for i, b := range opts.BrightnessLevels {
		if b == e.post.Brightness {
			e.brightIdx = i
		}
	}

	prog := sequence.Uniform(reg.List(), opts.Dwell)
	if len(opts.Playlist) > 0 {
		prog = sequence.Program{Loop: true, Clips: opts.Playlist}
	}
	for _, c := range prog.Clips {
		if _, ok := reg.IndexOf(c.Effect); !ok {
			return nil, fmt.Errorf("playlist effect %q: %w", c.Effect, ErrUnknownEffect)
		}
	}
	e.seq = sequence.NewPlayer(sequence.Hooks{
		Select: func(_ int, c sequence.Clip) {
			i, _ := reg.IndexOf(c.Effect)
			e.activate(i)
		},
	})
	if err := e.seq.Load(prog); err != nil {
		return nil, err
	}

	start := prog.Clips[0].Effect
	if opts.StartEffect != "" {
		if _, ok := reg.IndexOf(opts.StartEffect); ok {
			start = opts.StartEffect
		} else {
			e.log.Warn().Str("effect", opts.StartEffect).Msg("start effect not registered, using first")
		}
	}
	e.seq.Align(start)
	e.seq.Start()
	if !opts.AutoCycle {
		e.seq.Pause()
	}
	if i, _ := reg.IndexOf(start); i != e.active {
		e.activate(i)
	}
	e.publish()
	return e, nil
}

func (e *Engine) Layout() layout.Layout { return e.layout }
func (e *Engine) Registry() *Registry   { return e.reg }
func (e *Engine) Frame() *Frame         { return e.ctx.Frame }

// Context exposes the shared context for tests and tools running on the
// engine goroutine.
func (e *Engine) Context() *Context { return &e.ctx }

// Active returns the registry entry of the active effect.
func (e *Engine) Active() *Entry { return e.reg.At(e.active) }

func (e *Engine) Post() Post { return e.post }

// activate makes effect i current and clears its lifecycle so Init runs
// before the next Render.
func (e *Engine) activate(i int) {
	entry := e.reg.At(i)
	entry.State = Uninitialized
	e.active = i
	e.elapsed = 0
	e.ctx.Delay = 0
	e.ctx.Blend = 0
	e.log.Debug().Str("effect", entry.Effect.Name()).Int("index", i).Msg("effect activated")
}

// Tick advances the engine by one fixed tick and flushes the frame to the
// driver when the active effect rendered.
func (e *Engine) Tick() error {
	e.drain()

	dt := e.opts.Tick
	e.ticks++
	e.ctx.Now += dt

	if e.opts.HueInterval > 0 && !e.opts.HueFollowsRender {
		e.hueElapsed += dt
		if e.hueElapsed >= e.opts.HueInterval {
			e.hueElapsed = 0
			e.ctx.Hue++
		}
	}
	if e.opts.BlendInterval > 0 {
		e.blendElapsed += dt
		if e.blendElapsed >= e.opts.BlendInterval {
			e.blendElapsed = 0
			step := e.opts.BlendStep
			if e.ctx.Blend > 0 {
				step = e.ctx.Blend
			}
			e.ctx.Palette.BlendToward(e.ctx.Target, step)
		}
	}

	e.seq.Tick(dt)

	rendered := e.step(dt)
	e.publish()
	if !rendered || e.drv == nil {
		return nil
	}
	e.out = e.post.Apply(e.out, e.ctx.Frame.Pix, e.layout.Physical)
	if err := e.drv.Write(e.out); err != nil {
		return fmt.Errorf("driver write: %w", err)
	}
	return nil
}

// step runs the cadence check for the active effect.
func (e *Engine) step(dt time.Duration) bool {
	e.elapsed += dt
	due := e.ctx.Delay
	if due < e.opts.MinDelay {
		due = e.opts.MinDelay
	}
	if e.elapsed < due {
		return false
	}

	entry := e.reg.At(e.active)
	if entry.State == Uninitialized {
		if entry.clearsCanvas() {
			e.ctx.Frame.Clear()
		}
		entry.Effect.Init(&e.ctx)
		entry.State = Active
		entry.Inits++
	}
	entry.Effect.Render(&e.ctx)
	entry.Renders++
	e.renders++
	e.elapsed = 0
	if e.opts.HueFollowsRender {
		e.ctx.Hue++
	}
	return true
}

// Run drives Tick from a ticker until ctx is cancelled. Driver errors are
// logged and the loop keeps going.
func (e *Engine) Run(ctx context.Context) error {
	t := time.NewTicker(e.opts.Tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if err := e.Tick(); err != nil {
				e.log.Warn().Err(err).Msg("tick")
			}
		}
	}
}

func (e *Engine) publish() {
	entry := e.reg.At(e.active)
	e.mu.Lock()
	e.status = Status{
		Effect:     entry.Effect.Name(),
		Index:      e.active,
		Effects:    e.reg.Len(),
		Ticks:      e.ticks,
		Renders:    e.renders,
		Hue:        e.ctx.Hue,
		Brightness: e.post.Brightness,
		AutoCycle:  e.seq.State == sequence.Running,
		Uptime:     e.ctx.Now,
	}
	e.mu.Unlock()
}

// Status returns the snapshot taken at the end of the last tick.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}
