package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/rgbshades/internal/app"
	"github.com/coreman2200/rgbshades/internal/layout"
	"github.com/coreman2200/rgbshades/internal/led"
	"github.com/coreman2200/rgbshades/internal/render"
	"github.com/coreman2200/rgbshades/internal/render/scenes/text"
)

func main() {
	var (
		ticks   = flag.Int("ticks", 60000, "number of 1ms ticks to simulate")
		effect  = flag.String("effect", "", "start effect name")
		dwell   = flag.Duration("dwell", 10*time.Second, "dwell per effect, 0 holds the start effect")
		seed    = flag.Int64("seed", 1, "random seed")
		calib   = flag.Bool("calib", false, "include the calibration patterns")
		verbose = flag.Bool("v", false, "log every effect change")
	)
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	reg, err := app.NewRegistry(text.DefaultMessages, *calib)
	if err != nil {
		log.Fatal().Err(err).Msg("registry")
	}
	l := layout.Shades()
	sim := led.NewSim(log.Logger, 1000)

	opts := render.DefaultOptions()
	opts.Dwell = *dwell
	opts.AutoCycle = *dwell > 0
	opts.StartEffect = *effect
	opts.Seed = *seed
	opts.Log = &log.Logger

	eng, err := render.NewEngine(l, reg, sim, opts)
	if err != nil {
		log.Fatal().Err(err).Msg("engine")
	}

	start := time.Now()
	for i := 0; i < *ticks; i++ {
		if err := eng.Tick(); err != nil {
			log.Fatal().Err(err).Int("tick", i).Msg("tick failed")
		}
	}
	log.Info().
		Int("ticks", *ticks).
		Dur("wall", time.Since(start)).
		Uint64("frames", sim.Frames).
		Msg("simulation done")

	fmt.Printf("%-22s %6s %8s\n", "effect", "inits", "renders")
	for i := 0; i < reg.Len(); i++ {
		e := reg.At(i)
		fmt.Printf("%-22s %6d %8d\n", e.Effect.Name(), e.Inits, e.Renders)
	}

	st := eng.Status()
	fmt.Printf("\nfinal: %s (hue %d, %v simulated)\n", st.Effect, st.Hue, st.Uptime)
	if err := led.NewTerm(os.Stdout, l).Render(sim.Last()); err != nil {
		log.Fatal().Err(err).Msg("preview")
	}
}
