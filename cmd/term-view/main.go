package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Ink-Arena/internal/config"
	"github.com/Garsondee/Ink-Arena/internal/game"
	"github.com/Garsondee/Ink-Arena/internal/termview"
)

func main() {
	var tps int
	cfg, err := config.Load("")
	if err != nil {
		log.Fatal("config", "err", err)
	}
	cfg.RegisterFlags(flag.CommandLine)
	flag.IntVar(&tps, "tps", 60, "simulation ticks per second")
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		log.Fatal("config", "err", err)
	}
	if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}

	seed := cfg.ResolveSeed(time.Now())
	opts := []game.MatchOption{
		game.WithSeed(seed),
		game.WithDuration(cfg.MatchDuration.Seconds()),
		game.WithAllAI(),
	}
	if cfg.LineOfSight {
		opts = append(opts, game.WithLineOfSight())
	}
	m := game.NewMatch(opts...)

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal("terminal", "err", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal("terminal init", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	runErr := termview.Run(ctx, screen, m, tps)
	stop()
	screen.Fini()

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("term view stopped", "err", runErr)
	}
	o := m.Outcome()
	log.Info("match over", "id", m.ID, "seed", seed, "finished", m.Finished(), "outcome", o.Outcome, "cyan", o.CyanPct, "pink", o.PinkPct)
}
