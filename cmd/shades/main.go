package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/rgbshades/internal/app"
	"github.com/coreman2200/rgbshades/internal/config"
	"github.com/coreman2200/rgbshades/internal/input"
)

func main() {
	// ---- Flags (config.yaml overrides the non-zero ones) ----
	var (
		driver     = flag.String("driver", "", "sinks: sim | spi | opc | term, comma separated")
		addr       = flag.String("addr", "", "HTTP listen address (default :8080)")
		brightness = flag.Int("brightness", 0, "global brightness 1..255")
		effect     = flag.String("effect", "", "start effect name")
		dwell      = flag.Float64("dwell", 0, "seconds per effect in auto-cycle")
		noAuto     = flag.Bool("no-auto", false, "start with auto-cycle off")
		calib      = flag.Bool("calib", false, "register the calibration patterns")
		configPath = flag.String("config", "config.yaml", "path to config.yaml")
		verbose    = flag.Bool("v", false, "debug logging")
		keys       = flag.Bool("keys", true, "read single-key commands from a terminal stdin")
	)
	flag.Parse()

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	// ---- Config: defaults, then file, then explicit flags ----
	cfg := config.Default()
	if c, err := config.Load(*configPath); err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with flags")
	} else {
		cfg.Merge(c)
	}
	flags := &config.Config{
		Driver:      *driver,
		Addr:        *addr,
		Brightness:  *brightness,
		StartEffect: *effect,
		DwellS:      *dwell,
	}
	if *noAuto {
		off := false
		flags.AutoCycle = &off
	}
	if *verbose {
		flags.LogLevel = "debug"
	}
	cfg.Merge(flags)

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("log_level", cfg.LogLevel).Msg("unknown log level; using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	core, err := app.Build(cfg, app.Options{
		ConfigPath: *configPath,
		Term:       os.Stdout,
		Calib:      *calib,
		Log:        log.Logger,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- HTTP routes ----
	mux := http.NewServeMux()
	core.Web.Routes(mux)
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      withCORS(mux),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		log.Info().Str("addr", cfg.Addr).Strs("driver", core.Names).Int("effects", core.Reg.Len()).Msg("HTTP server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server crashed")
		}
	}()

	// ---- Engine loop ----
	go func() {
		if err := core.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("engine stopped")
		}
	}()

	// ---- Keyboard ----
	if *keys && input.IsTerminal(os.Stdin) {
		restore, err := input.Raw(os.Stdin)
		if err != nil {
			log.Warn().Err(err).Msg("raw terminal unavailable; keys disabled")
		} else {
			defer restore()
			k := &input.Keys{
				In:     os.Stdin,
				Submit: core.Eng.Submit,
				Auto:   func() bool { return core.Eng.Status().AutoCycle },
				Log:    log.Logger,
			}
			go func() {
				if err := k.Run(ctx); err != nil {
					log.Info().Err(err).Msg("keyboard closed")
				}
				cancel()
			}()
		}
	}

	// ---- Graceful shutdown ----
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	select {
	case s := <-ch:
		log.Info().Str("signal", s.String()).Msg("shutting down")
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	}
	cancel()

	_ = srv.Close()
	if err := core.Close(); err != nil {
		log.Warn().Err(err).Msg("closing sinks")
	}
}

func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		h.ServeHTTP(w, r)
	})
}
