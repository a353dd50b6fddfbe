package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/Garsondee/Ink-Arena/internal/config"
	"github.com/Garsondee/Ink-Arena/internal/game"
)

const stalemateMargin = 3.0 // turf points

type runStats struct {
	runIndex int
	seed     int64
	matchID  string
	outcome  game.MatchOutcomeReason

	firstShotTick    int
	firstHitTick     int
	firstKillTick    int
	firstBombTick    int
	firstSpecialTick int

	shots      int
	melees     int
	bombs      int
	specials   int
	landings   int
	explosions int
	hits       int
	kills      int
	respawns   int
	aiChanges  int
	damage     float64
	killsBy    map[string]int

	windowSummary *game.WindowReport
}

func main() {
	var runs int
	var seedBase, seedStep int64
	var verbose bool

	cfg, err := config.Load("")
	if err != nil {
		log.Fatal("config", "err", err)
	}
	cfg.RegisterFlags(flag.CommandLine)
	flag.IntVar(&runs, "runs", 5, "number of headless all-AI matches")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.BoolVar(&verbose, "v", false, "print per-combatant snapshot after each run")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatal("config", "err", err)
	}
	if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}
	if runs <= 0 {
		log.Error("-runs must be > 0", "runs", runs)
		os.Exit(2)
	}

	batch := uuid.NewString()
	secs := cfg.MatchDuration.Seconds()
	log.Info("starting batch", "batch", batch, "runs", runs, "duration", cfg.MatchDuration, "los", cfg.LineOfSight)

	fmt.Printf("=== Headless Match Report ===\n")
	fmt.Printf("batch=%s runs=%d duration=%.0fs seed_base=%d seed_step=%d los=%v\n\n",
		batch, runs, secs, seedBase, seedStep, cfg.LineOfSight)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		rs := runMatch(i+1, seed, secs, cfg.LineOfSight, verbose)
		log.Debug("run finished", "run", rs.runIndex, "match", rs.matchID, "outcome", rs.outcome.Outcome)
		all = append(all, rs)
		printRun(rs)
	}
	printAggregate(all)
	log.Info("batch complete", "batch", batch)
}

func runMatch(runIndex int, seed int64, seconds float64, los, verbose bool) runStats {
	opts := []game.SimOption{
		game.WithSimSeed(seed),
		game.WithSimDuration(seconds),
		game.WithVerbose(verbose),
	}
	if los {
		opts = append(opts, game.WithSimLineOfSight())
	}
	ts := game.NewTestSim(opts...)
	maxTicks := int(seconds*60) + 120
	if !ts.RunToEnd(maxTicks) {
		log.Warn("match did not finish", "run", runIndex, "ticks", maxTicks)
	}
	rs := collectStats(ts.SimLog.Entries())
	rs.runIndex = runIndex
	rs.seed = seed
	rs.matchID = ts.Match.ID
	rs.outcome = ts.Match.Outcome()
	rs.windowSummary = ts.Reporter.WindowSummary()
	if verbose {
		fmt.Print(ts.Reporter.FormatLatest())
	}
	return rs
}

// collectStats tallies the structured match log.
func collectStats(entries []game.SimLogEntry) runStats {
	rs := runStats{
		firstShotTick:    firstTick(entries, "fire", "shot", ""),
		firstHitTick:     firstTick(entries, "combat", "hit", ""),
		firstKillTick:    firstTick(entries, "combat", "kill", ""),
		firstBombTick:    firstTick(entries, "fire", "bomb", ""),
		firstSpecialTick: firstTick(entries, "fire", "special", ""),
		killsBy:          map[string]int{},
	}
	for _, e := range entries {
		switch e.Category {
		case "fire":
			switch e.Key {
			case "shot":
				rs.shots++
			case "melee":
				rs.melees++
			case "bomb":
				rs.bombs++
			case "special":
				rs.specials++
			}
		case "paint":
			switch e.Key {
			case "landing":
				rs.landings++
			case "explosion":
				rs.explosions++
			}
		case "combat":
			switch e.Key {
			case "hit":
				rs.hits++
				rs.damage += e.NumVal
			case "kill":
				rs.kills++
				rs.killsBy[e.Label]++
			}
		case "life":
			if e.Key == "respawn" {
				rs.respawns++
			}
		case "ai":
			if e.Key == "state_change" {
				rs.aiChanges++
			}
		}
	}
	return rs
}

func firstTick(entries []game.SimLogEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

// detectStalemate flags matches where neither side got anywhere: turf is
// level and almost nobody was splatted.
func detectStalemate(rs runStats) (bool, string) {
	margin := rs.outcome.CyanPct - rs.outcome.PinkPct
	if margin < 0 {
		margin = -margin
	}
	switch {
	case margin >= stalemateMargin:
		return false, fmt.Sprintf("turf_margin=%.1f", margin)
	case rs.kills > 2:
		return false, fmt.Sprintf("even_turf_but_contested kills=%d", rs.kills)
	default:
		return true, fmt.Sprintf("even_turf_low_contact margin=%.1f kills=%d", margin, rs.kills)
	}
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d match=%s) ---\n", rs.runIndex, rs.seed, rs.matchID)
	fmt.Printf("outcome: %s (%s) cyan=%.1f%% pink=%.1f%% margin=%.1f\n",
		rs.outcome.Outcome, rs.outcome.Description, rs.outcome.CyanPct, rs.outcome.PinkPct, rs.outcome.Margin)
	fmt.Printf("phase_markers: first_shot=%d first_hit=%d first_kill=%d first_bomb=%d first_special=%d\n",
		rs.firstShotTick, rs.firstHitTick, rs.firstKillTick, rs.firstBombTick, rs.firstSpecialTick)
	fmt.Printf("event_totals: shot=%d melee=%d bomb=%d special=%d landing=%d explosion=%d\n",
		rs.shots, rs.melees, rs.bombs, rs.specials, rs.landings, rs.explosions)
	fmt.Printf("combat_totals: hits=%d damage=%.0f kills=%d respawns=%d ai_state_changes=%d\n",
		rs.hits, rs.damage, rs.kills, rs.respawns, rs.aiChanges)
	fmt.Printf("top_splatter: %s\n", topCount(rs.killsBy))
	if stale, reason := detectStalemate(rs); stale {
		fmt.Printf("stalemate: %s\n", reason)
	}
	fmt.Print(rs.windowSummary.Format())
	fmt.Println()
}

func printAggregate(all []runStats) {
	wins := map[game.MatchOutcome]int{}
	var cyanSum, pinkSum, marginSum float64
	var shots, kills, specials, stalemates int
	killTicks := make([]int, 0, len(all))
	killsBy := map[string]int{}

	for _, rs := range all {
		wins[rs.outcome.Outcome]++
		cyanSum += rs.outcome.CyanPct
		pinkSum += rs.outcome.PinkPct
		marginSum += rs.outcome.Margin
		shots += rs.shots
		kills += rs.kills
		specials += rs.specials
		if rs.firstKillTick >= 0 {
			killTicks = append(killTicks, rs.firstKillTick)
		}
		if stale, _ := detectStalemate(rs); stale {
			stalemates++
		}
		for label, n := range rs.killsBy {
			killsBy[label] += n
		}
	}

	n := len(all)
	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d cyan_wins=%d pink_wins=%d draws=%d stalemates=%d\n",
		n, wins[game.OutcomeCyanVictory], wins[game.OutcomePinkVictory], wins[game.OutcomeDraw], stalemates)
	fmt.Printf("avg_turf: cyan=%.1f%% pink=%.1f%% margin=%.1f\n",
		avgf(cyanSum, n), avgf(pinkSum, n), avgf(marginSum, n))
	fmt.Printf("avg_per_run: shots=%.1f kills=%.1f specials=%.1f first_kill_tick=%s\n",
		avg(shots, n), avg(kills, n), avg(specials, n), avgTickString(killTicks))

	fmt.Println("\n--- Splats by combatant (all runs) ---")
	labels := make([]string, 0, len(killsBy))
	for l := range killsBy {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	for _, l := range labels {
		fmt.Printf("  %-4s %d\n", l, killsBy[l])
	}
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgf(sum float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	return sum / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

// topCount returns the key with the highest count, ties broken by name.
func topCount(counts map[string]int) string {
	if len(counts) == 0 {
		return "none"
	}
	best, bestN := "", 0
	for k, v := range counts {
		if v > bestN || (v == bestN && k < best) {
			best, bestN = k, v
		}
	}
	return fmt.Sprintf("%s(%d)", best, bestN)
}
