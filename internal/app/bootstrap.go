package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"periph.io/x/conn/v3/physic"

	"github.com/coreman2200/rgbshades/internal/config"
	diag "github.com/coreman2200/rgbshades/internal/diagnostics"
	"github.com/coreman2200/rgbshades/internal/layout"
	"github.com/coreman2200/rgbshades/internal/led"
	"github.com/coreman2200/rgbshades/internal/render"
	"github.com/coreman2200/rgbshades/internal/render/scenes/text"
	"github.com/coreman2200/rgbshades/internal/ws"
)

// Core bundles everything the device program runs.
type Core struct {
	Cfg    *config.Config
	Layout layout.Layout
	Eng    *render.Engine
	Reg    *render.Registry
	Web    *ws.State
	Sinks  led.Fanout
	Names  []string
}

// Options tune Build beyond the config file.
type Options struct {
	ConfigPath string    // where control changes are saved, "" = never
	Term       io.Writer // target of the term sink
	Calib      bool      // register the calibration patterns
	Log        zerolog.Logger
}

// Build resolves the layout, the registry, the sinks and the engine from cfg.
func Build(cfg *config.Config, o Options) (*Core, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	l, err := cfg.BuildLayout()
	if err != nil {
		return nil, err
	}
	reg, err := NewRegistry(cfg.MessageSet(text.DefaultMessages), o.Calib)
	if err != nil {
		return nil, err
	}

	web := ws.NewState(l, nil, o.Log)
	web.Effects = reg.List()
	sinks, names := OpenSinks(cfg, l, o.Term, o.Log)
	web.Driver = strings.Join(names, ",")
	sinks = append(sinks, web)

	opts := cfg.EngineOptions()
	opts.Log = &o.Log
	if o.ConfigPath != "" {
		opts.OnChange = func(s render.Settings) {
			cfg.Remember(s)
			if err := config.Save(o.ConfigPath, cfg); err != nil {
				o.Log.Warn().Err(err).Str("path", o.ConfigPath).Msg("config save failed")
			}
		}
	}

	drv := &reporting{Driver: sinks, report: func(err error) { web.Report(diag.DriverWrite(err)) }}
	eng, err := render.NewEngine(l, reg, drv, opts)
	if err != nil {
		_ = sinks.Close()
		return nil, err
	}
	web.Attach(eng)

	return &Core{Cfg: cfg, Layout: l, Eng: eng, Reg: reg, Web: web, Sinks: sinks, Names: names}, nil
}

// OpenSinks opens every driver named in cfg. A sink that fails to open is
// replaced by the simulator so the engine still runs.
func OpenSinks(cfg *config.Config, l layout.Layout, termOut io.Writer, log zerolog.Logger) (led.Fanout, []string) {
	var (
		out   led.Fanout
		names []string
	)
	useSim := func() {
		out = append(out, led.NewSim(log, 1000))
		names = append(names, "sim")
	}
	for _, name := range cfg.Drivers() {
		switch name {
		case "sim":
			useSim()
		case "spi":
			drv, err := led.OpenSPI(led.SPIConfig{
				Port:       cfg.SPI.Port,
				Count:      l.Physical,
				ColorOrder: cfg.SPI.ColorOrder,
				Freq:       physic.Frequency(cfg.SPI.SpeedHz) * physic.Hertz,
			})
			if err != nil {
				log.Warn().Err(err).
					Str("driver", "spi").
					Str("port", cfg.SPI.Port).
					Int("speed_hz", cfg.SPI.SpeedHz).
					Msg("SPI init failed; falling back to SIM")
				useSim()
				continue
			}
			out = append(out, drv)
			names = append(names, "spi")
		case "opc":
			out = append(out, led.NewOPC(cfg.OPC.Addr, byte(cfg.OPC.Channel)))
			names = append(names, "opc")
		case "term":
			if termOut == nil {
				log.Warn().Msg("term sink requested without an output; skipping")
				continue
			}
			out = append(out, led.NewTerm(termOut, l))
			names = append(names, "term")
		default:
			log.Warn().Str("driver", name).Msg("unknown driver; using SIM")
			useSim()
		}
	}
	return out, names
}

// reporting forwards write failures to the diagnostics stream.
type reporting struct {
	led.Driver
	report func(error)
}

func (r *reporting) Write(rgb []byte) error {
	err := r.Driver.Write(rgb)
	if err != nil {
		r.report(err)
	}
	return err
}

// Run drives the engine until ctx is done.
func (c *Core) Run(ctx context.Context) error { return c.Eng.Run(ctx) }

// Close releases the sinks.
func (c *Core) Close() error { return c.Sinks.Close() }
