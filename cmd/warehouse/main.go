package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/warehouse/audio"
	"github.com/lixenwraith/warehouse/config"
	"github.com/lixenwraith/warehouse/core"
	"github.com/lixenwraith/warehouse/engine"
	"github.com/lixenwraith/warehouse/game"
	"github.com/lixenwraith/warehouse/input"
	"github.com/lixenwraith/warehouse/render"
	"github.com/lixenwraith/warehouse/status"
)

var (
	configPath  = flag.String("config", "", "YAML config file (default $"+config.EnvConfigPath+")")
	seedFlag    = flag.Uint64("seed", 0, "random seed, 0 picks one from the clock")
	debugFlag   = flag.Bool("debug", false, "write logs to "+logDir+"/"+logFileName)
	metricsAddr = flag.String("metrics", "", "serve Prometheus /metrics on this address, e.g. :2112")
	muteFlag    = flag.Bool("mute", false, "start with sound off")
	dumpConfig  = flag.String("dump-config", "", "write the effective config to this path and exit")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "warehouse: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if f := setupLogging(*debugFlag); f != nil {
		defer f.Close()
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *seedFlag != 0 {
		cfg.Seed = *seedFlag
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	if *dumpConfig != "" {
		return cfg.Save(*dumpConfig)
	}
	log.Printf("[main] seed %d, stage %dx%d", cfg.Seed, cfg.Stage.Width, cfg.Stage.Height)

	reg := status.NewRegistry()
	g, err := game.New(cfg, reg)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	// Panic recovery: restore the terminal before the crash report
	core.SetCrashReset(screen.Fini)
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	sound := audio.NewSoundManager()
	if err := sound.Initialize(); err != nil {
		// Non-fatal, game can run without sound
		log.Printf("[main] audio initialization failed: %v", err)
	} else {
		defer sound.Cleanup()
	}
	sound.SetMuted(*muteFlag)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if *metricsAddr != "" {
		core.Go(func() {
			if err := status.Serve(ctx, *metricsAddr, reg); err != nil {
				log.Printf("[main] metrics server: %v", err)
			}
		})
	}

	renderer := render.NewRenderer(reg)
	renderer.SetMuted(sound.Muted())
	tracker := input.NewTracker()

	// Everything below the scheduler runs on the simulation goroutine
	scheduler := engine.NewClockScheduler(cfg.Timing.Tick, func() {
		now := time.Now()
		dir := tracker.Take()
		if renderer.View() == render.ViewPlaying {
			g.RequestPlayerMove(dir)
			events := g.Tick()
			renderer.HandleEvents(events, now)
			sound.HandleEvents(events)
		}
		renderer.Draw(screen, g.Snapshot(), now)
	})
	scheduler.Start()
	defer scheduler.Stop()

	for {
		ev := screen.PollEvent()
		if ev == nil {
			return nil
		}

		act := input.Translate(ev)
		if act.Dir != core.DirNone {
			tracker.Press(act.Dir)
			continue
		}

		switch act.Cmd {
		case input.CommandQuit:
			return nil
		case input.CommandStart:
			scheduler.Submit(func() { renderer.SetView(render.ViewPlaying) })
		case input.CommandReset:
			scheduler.Submit(func() {
				events := g.Reset()
				renderer.HandleEvents(events, time.Now())
				renderer.SetView(render.ViewPlaying)
			})
		case input.CommandMenu:
			scheduler.Submit(func() { renderer.SetView(render.ViewMenu) })
		case input.CommandToggleMute:
			scheduler.Submit(func() { renderer.SetMuted(sound.ToggleMute()) })
		case input.CommandResize:
			screen.Sync()
		}
	}
}
