package main

import (
	"flag"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Ink-Arena/internal/audio"
	"github.com/Garsondee/Ink-Arena/internal/config"
	"github.com/Garsondee/Ink-Arena/internal/game"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatal("config", "err", err)
	}
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		log.Fatal("config", "err", err)
	}
	if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}

	player := audio.NewPlayer(cfg.Mute)
	if !cfg.Mute {
		if err := player.Init(); err != nil {
			log.Warn("audio unavailable, continuing muted", "err", err)
		}
	}
	defer player.Close()

	seed := cfg.ResolveSeed(time.Now())
	opts := []game.MatchOption{
		game.WithSeed(seed),
		game.WithDuration(cfg.MatchDuration.Seconds()),
	}
	if cfg.LineOfSight {
		opts = append(opts, game.WithLineOfSight())
	}
	if cfg.AllAI {
		opts = append(opts, game.WithAllAI())
	}

	g := game.New(game.GameConfig{
		Match:            opts,
		MouseSensitivity: cfg.MouseSensitivity,
		Sound:            player,
	})
	log.Info("starting match", "id", g.Match().ID, "seed", seed, "duration", cfg.MatchDuration, "all_ai", cfg.AllAI)

	w, h := g.Size()
	ebiten.SetWindowTitle("Ink Arena")
	ebiten.SetWindowSize(int(float64(w)*cfg.WindowScale), int(float64(h)*cfg.WindowScale))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal("game exited", "err", err)
	}

	if m := g.Match(); m.Finished() {
		o := m.Outcome()
		log.Info("match finished", "id", m.ID, "outcome", o.Outcome, "cyan", o.CyanPct, "pink", o.PinkPct)
	}
}
