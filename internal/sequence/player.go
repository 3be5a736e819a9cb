package sequence

import (
	"errors"
	"time"
)

var ErrEmptyProgram = errors.New("program has no clips")

// NewPlayer constructs a Player with provided hooks.
func NewPlayer(h Hooks) *Player {
	return &Player{
		State: Idle,
		hooks: h,
	}
}

// Uniform builds a looping program that shows every effect for dwell.
func Uniform(effects []string, dwell time.Duration) Program {
	p := Program{Loop: true}
	for _, name := range effects {
		p.Clips = append(p.Clips, Clip{Effect: name, Dwell: dwell})
	}
	return p
}

// Load replaces the current program. Resets time and state to Idle.
func (p *Player) Load(prog Program) error {
	if len(prog.Clips) == 0 {
		return ErrEmptyProgram
	}
	p.prog = prog
	p.idx = 0
	p.local = 0
	p.State = Idle
	return nil
}

func (p *Player) Program() Program { return p.prog }

// Index is the current clip index.
func (p *Player) Index() int { return p.idx }

// Clip is the current clip.
func (p *Player) Clip() Clip { return p.prog.Clips[p.idx] }

// Start moves to Running and primes the current clip.
func (p *Player) Start() {
	if p.State == Running || len(p.prog.Clips) == 0 {
		return
	}
	p.State = Running
	p.fire()
}

// Pause holds the current clip; Tick stops advancing.
func (p *Player) Pause() {
	if p.State == Running {
		p.State = Paused
	}
}

// Resume resumes playback from where it paused.
func (p *Player) Resume() {
	if p.State == Paused {
		p.State = Running
	}
}

// Stop stops and resets to start.
func (p *Player) Stop() {
	p.State = Idle
	p.idx = 0
	p.local = 0
}

// Seek jumps to clip i (wrapped into range), restarts its dwell and fires
// the Select hook.
func (p *Player) Seek(i int) {
	n := len(p.prog.Clips)
	if n == 0 {
		return
	}
	i %= n
	if i < 0 {
		i += n
	}
	p.idx = i
	p.local = 0
	p.fire()
}

// Next and Prev step through the program, wrapping at both ends.
func (p *Player) Next() { p.Seek(p.idx + 1) }
func (p *Player) Prev() { p.Seek(p.idx - 1) }

// Align points the timeline at the first clip showing effect and restarts
// its dwell without firing hooks. It reports whether such a clip exists;
// when none does only the dwell timer restarts.
func (p *Player) Align(effect string) bool {
	p.local = 0
	for i, c := range p.prog.Clips {
		if c.Effect == effect {
			p.idx = i
			return true
		}
	}
	return false
}

// Tick advances the sequencer by dt and switches clips when the current
// dwell has elapsed.
func (p *Player) Tick(dt time.Duration) {
	if p.State != Running || len(p.prog.Clips) == 0 || dt <= 0 {
		return
	}
	p.local += dt
	clip := p.prog.Clips[p.idx]
	if clip.Dwell > 0 && p.local >= clip.Dwell {
		p.advanceClip()
	}
}

func (p *Player) advanceClip() {
	next := p.idx + 1
	if next >= len(p.prog.Clips) {
		if !p.prog.Loop {
			// End of program, hold the last clip
			p.State = Idle
			return
		}
		next = 0
	}
	p.idx = next
	p.local = 0
	p.fire()
}

func (p *Player) fire() {
	if p.hooks.Select != nil {
		p.hooks.Select(p.idx, p.prog.Clips[p.idx])
	}
}
