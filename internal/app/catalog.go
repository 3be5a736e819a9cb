package app

import (
	"github.com/coreman2200/rgbshades/internal/render"
	"github.com/coreman2200/rgbshades/internal/render/scenes/calib"
	"github.com/coreman2200/rgbshades/internal/render/scenes/fill"
	"github.com/coreman2200/rgbshades/internal/render/scenes/outline"
	"github.com/coreman2200/rgbshades/internal/render/scenes/shapes"
	"github.com/coreman2200/rgbshades/internal/render/scenes/sparkle"
	"github.com/coreman2200/rgbshades/internal/render/scenes/text"
	"github.com/coreman2200/rgbshades/internal/render/scenes/waves"
)

// Effects returns the stock catalogue in rotation order, followed by the
// calibration patterns when withCalib is set.
func Effects(messages [3]string, withCalib bool) []render.Effect {
	scroll := text.Defaults(messages)
	fx := []render.Effect{
		waves.NewThreeSine(),
		waves.NewPlasma(),
		waves.NewRider(),
		sparkle.NewGlitter(),
		fill.NewColorFill(),
		fill.NewThreeDee(),
		sparkle.NewSideRain(),
		sparkle.NewConfetti(),
		waves.NewSlantBars(),
		outline.New(),
		outline.NewChase(),
		shapes.NewHearts(),
		scroll[0],
		waves.NewPride(),
		waves.NewColorWaves(),
		scroll[1],
		shapes.NewPeace(),
		fill.NewThreeDeeBlink(),
		shapes.NewPacman(),
		scroll[2],
		fill.NewBlinkLeft(),
		fill.NewBlinkRight(),
	}
	if withCalib {
		fx = append(fx, calib.NewIndexSweep(), calib.NewChannels(), calib.NewRowSweep())
	}
	return fx
}

// NewRegistry registers every effect of the catalogue.
func NewRegistry(messages [3]string, withCalib bool) (*render.Registry, error) {
	reg := render.NewRegistry()
	for _, fx := range Effects(messages, withCalib) {
		if err := reg.Register(fx); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
