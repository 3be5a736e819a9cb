package render

import (
	"errors"
	"math/rand"
	"time"
)

var (
	ErrDuplicateEffect = errors.New("effect already registered")
	ErrNilEffect       = errors.New("effect is nil")
	ErrEmptyRegistry   = errors.New("no effects registered")
	ErrUnknownEffect   = errors.New("effect not found")
)

// Driver is the display flush collaborator: it receives packed RGB bytes,
// three per physical LED.
type Driver interface {
	Write(rgb []byte) error
}

// Effect is one animation. Init runs once per activation before the first
// Render; both may only touch the frame, the effect's own state and the
// palette/hue/delay fields of the context.
type Effect interface {
	Name() string
	Init(c *Context)
	Render(c *Context)
}

// CanvasClearer is implemented by effects that want a blank frame before
// Init. Effects without it inherit whatever the previous effect left.
type CanvasClearer interface {
	ClearsCanvas() bool
}

// Context is the state shared by the engine and the active effect.
type Context struct {
	Frame   *Frame
	Palette Palette // current, what effects read
	Target  Palette // current fades toward this on the blend timer
	Hue     uint8   // global hue, advanced by the engine
	Delay   time.Duration
	Blend   uint8         // per-activation palette blend step, 0 = engine default
	Now     time.Duration // engine clock
	Rand    *rand.Rand
}

// SetDelay declares the interval until the next Render.
func (c *Context) SetDelay(d time.Duration) { c.Delay = d }

// SetBlendStep overrides the palette blend step until the next activation.
func (c *Context) SetBlendStep(step uint8) { c.Blend = step }

// SetPalette switches both palette slots at once, no fade.
func (c *Context) SetPalette(p Palette) {
	c.Palette = p
	c.Target = p
}

// SetTarget starts a fade from the current palette to p.
func (c *Context) SetTarget(p Palette) { c.Target = p }

// Random8 returns a value in [0, n).
func (c *Context) Random8(n int) uint8 {
	if n <= 0 {
		return 0
	}
	return uint8(c.Rand.Intn(n))
}

// RandomRange returns a value in [lo, hi).
func (c *Context) RandomRange(lo, hi int) uint8 {
	if hi <= lo {
		return uint8(lo)
	}
	return uint8(lo + c.Rand.Intn(hi-lo))
}

type Lifecycle int

const (
	Uninitialized Lifecycle = iota
	Active
)

func (l Lifecycle) String() string {
	if l == Active {
		return "active"
	}
	return "uninitialized"
}

// Entry is one registry slot. State is owned by the engine.
type Entry struct {
	Effect  Effect
	State   Lifecycle
	Inits   uint64
	Renders uint64
}

func (e *Entry) clearsCanvas() bool {
	cc, ok := e.Effect.(CanvasClearer)
	return ok && cc.ClearsCanvas()
}

// Registry is the ordered effect table, fixed once the engine starts.
type Registry struct {
	entries []*Entry
	byName  map[string]int
}

func NewRegistry() *Registry { return &Registry{byName: map[string]int{}} }

func (r *Registry) Register(e Effect) error {
	if e == nil {
		return ErrNilEffect
	}
	if _, ok := r.byName[e.Name()]; ok {
		return ErrDuplicateEffect
	}
	r.byName[e.Name()] = len(r.entries)
	r.entries = append(r.entries, &Entry{Effect: e})
	return nil
}

func (r *Registry) Get(name string) (Effect, bool) {
	i, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	return r.entries[i].Effect, true
}

func (r *Registry) IndexOf(name string) (int, bool) {
	i, ok := r.byName[name]
	return i, ok
}

func (r *Registry) At(i int) *Entry { return r.entries[i] }

func (r *Registry) Len() int { return len(r.entries) }

// List returns effect names in registration order.
func (r *Registry) List() []string {
	out := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.Effect.Name())
	}
	return out
}
