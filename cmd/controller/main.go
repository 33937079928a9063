package main

import (
	"context"
	"errors"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/danielpatrickdp/subsumption/go-controller/internal/action"
	"github.com/danielpatrickdp/subsumption/go-controller/internal/arbiter"
	"github.com/danielpatrickdp/subsumption/go-controller/internal/behavior"
	"github.com/danielpatrickdp/subsumption/go-controller/internal/config"
	"github.com/danielpatrickdp/subsumption/go-controller/internal/console"
	"github.com/danielpatrickdp/subsumption/go-controller/internal/editor"
	"github.com/danielpatrickdp/subsumption/go-controller/internal/metrics"
	"github.com/danielpatrickdp/subsumption/go-controller/internal/motion"
	"github.com/danielpatrickdp/subsumption/go-controller/internal/sensor"
	"github.com/danielpatrickdp/subsumption/go-controller/internal/sim"
	"github.com/danielpatrickdp/subsumption/go-controller/internal/supervisor"
	"github.com/danielpatrickdp/subsumption/go-controller/internal/trace"
)

// #region main
func main() {
	cfg, err := config.Resolve(os.Getenv)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// The terminal belongs to the console; logs go to a file.
	logFile, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		log.Fatalf("open log %s: %v", cfg.LogPath, err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)

	defs, err := cfg.Behaviors()
	if err != nil {
		log.Fatalf("hierarchy: %v", err)
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	registry := behavior.NewRegistry(defs, rand.New(rand.NewPCG(seed, seed)))

	// The desktop build runs on a simulated board driven from the keyboard.
	board := sim.NewBoard(cfg.Polarity == sensor.ActiveLow)
	clock := motion.SystemClock{}
	mc, err := motion.NewController(board, clock, cfg.Drive)
	if err != nil {
		log.Fatalf("motion controller: %v", err)
	}
	engine := arbiter.NewEngine(
		registry,
		action.NewSet(cfg.Tuning),
		sensor.NewBoardSource(board, cfg.Pins, cfg.Polarity),
		mc,
		clock,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cfg.TraceDB != "" {
		store, err := trace.NewStore(cfg.TraceDB)
		if err != nil {
			log.Fatalf("failed to open trace store: %v", err)
		}
		defer store.Close()
		sess, err := store.StartSession(string(cfg.Preset), cfg)
		if err != nil {
			log.Fatalf("failed to start trace session: %v", err)
		}
		engine.AddObserver(trace.NewRecorder(store, sess.ID, registry))
		log.Printf("tracing to %s, session %s", cfg.TraceDB, sess.ID)
	}

	if cfg.MetricsAddr != "" {
		m := metrics.New(registry)
		engine.AddObserver(m)
		go func() {
			if err := m.Serve(ctx, cfg.MetricsAddr); err != nil {
				log.Printf("metrics: %v", err)
			}
		}()
		log.Printf("metrics on http://%s/metrics", cfg.MetricsAddr)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("failed to create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("failed to init screen: %v", err)
	}
	defer screen.Fini()

	con := console.New(screen, registry.Len())
	stim := newStimulus(board, cfg)
	con.OnRune(func(r rune) {
		if !stim.Poke(r) {
			log.Printf("unbound key %q", r)
		}
	})
	con.OnQuit(cancel)
	engine.AddObserver(con)

	var ed *editor.Editor
	if cfg.Editor {
		ed = editor.New(registry, con, con)
	}
	sup := supervisor.New(engine, ed, con)
	sup.AddPump(con)

	con.DrawText(0, 0, helpText(cfg.Editor))
	con.Flush()
	con.Listen()

	log.Printf("controller started: preset=%s seed=%d tick_hz=%.0f behaviors=%d", cfg.Preset, seed, cfg.TickHz, registry.Len())
	engine.Start()
	if err := sup.Run(ctx, supervisor.NewLimiter(cfg.TickHz)); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("control loop: %v", err)
	}

	mc.Halt()
	mc.Disable()
	log.Println("controller stopped")
}
// #endregion main

// #region helpers
func helpText(editable bool) string {
	help := "1-6 bumpers  q/w obstacle  e/r light  c clear  Esc quit"
	if editable {
		help = "Tab edit  " + help
	}
	return help
}
// #endregion helpers
