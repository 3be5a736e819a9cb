package sequence

import "time"

// Clip is one slot of the rotation: which effect to show and for how long
// before advancing. A zero Dwell holds the clip until told otherwise.
type Clip struct {
	Effect string        `yaml:"effect" json:"effect"`
	Dwell  time.Duration `yaml:"dwell" json:"dwell"`
}

// Program is the ordered rotation.
type Program struct {
	Loop  bool   `yaml:"loop" json:"loop"`
	Clips []Clip `yaml:"clips" json:"clips"`
}

// PlayerState enumerates sequencer states.
type PlayerState string

const (
	Idle    PlayerState = "idle"
	Running PlayerState = "running"
	Paused  PlayerState = "paused"
)

// Hooks are dependency-injected callbacks into the engine.
type Hooks struct {
	// Select makes the clip's effect active immediately.
	Select func(index int, clip Clip)
}

// Player owns the rotation timeline and uses Hooks to drive the engine.
type Player struct {
	State PlayerState

	prog  Program
	idx   int           // current clip index
	local time.Duration // time spent in the current clip

	hooks Hooks
}
