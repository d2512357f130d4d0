package main

import (
	"flag"
	"fmt"
	"log"
	"sort"

	"lightgrid/internal/game"
)

type runStats struct {
	runIndex int
	seed     int64

	ticks      int
	finished   bool
	winner     string
	deaths     []string
	aiTurns    int
	aiJumps    int
	wallKills  int
	trailKills int
	agentKills int
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var tuningPath string
	var verbose bool

	flag.IntVar(&runs, "runs", 5, "number of headless autonomous rounds")
	flag.IntVar(&ticks, "ticks", 18000, "max ticks per round (18000 = 5 minutes of sim time)")
	flag.Int64Var(&seedBase, "seed-base", 42, "RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&tuningPath, "tuning", "", "path to a tuning YAML overlay (optional)")
	flag.BoolVar(&verbose, "verbose", false, "dump the full event log per run")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}

	tun := game.DefaultTuning()
	if tuningPath != "" {
		t, err := game.LoadTuning(tuningPath)
		if err != nil {
			log.Fatalf("load tuning: %v", err)
		}
		tun = t
	}

	fmt.Printf("=== Lightgrid Headless Report ===\n")
	fmt.Printf("runs=%d max_ticks=%d seed_base=%d seed_step=%d agents=%d\n\n",
		runs, ticks, seedBase, seedStep, tun.AgentCount)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runRound(i+1, seed, ticks, tun, verbose)
		all = append(all, stats)
		printRun(stats)
	}

	printAggregate(all)
}

func runRound(runIndex int, seed int64, maxTicks int, tun *game.Tuning, verbose bool) runStats {
	sim := game.NewArenaSim(
		game.WithTuning(tun),
		game.WithSeed(seed),
		game.WithPlayingPhase(),
	)
	used := sim.RunUntilGameOver(maxTicks)

	stats := runStats{
		runIndex: runIndex,
		seed:     seed,
		ticks:    used,
		finished: sim.State().Phase == game.PhaseGameOver,
		winner:   "none",
	}
	if stats.finished {
		stats.winner = "draw"
		if w := sim.State().Agent(sim.State().Winner); w != nil {
			stats.winner = w.Label()
		}
	}

	for _, e := range sim.SimLog.Entries() {
		switch {
		case e.Category == "ai" && e.Key == "turn":
			stats.aiTurns++
		case e.Category == "ai" && e.Key == "jump":
			stats.aiJumps++
		case e.Category == "death":
			stats.deaths = append(stats.deaths, fmt.Sprintf("%s(%s)", e.Agent, e.Key))
			switch e.Key {
			case "wall":
				stats.wallKills++
			case "trail":
				stats.trailKills++
			case "agent":
				stats.agentKills++
			}
		}
		if verbose {
			fmt.Println(e.String())
		}
	}
	return stats
}

func printRun(s runStats) {
	status := "finished"
	if !s.finished {
		status = "timeout"
	}
	fmt.Printf("run %d: seed=%d %s winner=%s ticks=%d deaths=%v\n",
		s.runIndex, s.seed, status, s.winner, s.ticks, s.deaths)
	fmt.Printf("        ai_turns=%d ai_jumps=%d kills: wall=%d trail=%d agent=%d\n\n",
		s.aiTurns, s.aiJumps, s.wallKills, s.trailKills, s.agentKills)
}

// aggregate folds per-run stats into win counts, finished-run count, and the
// mean round length in ticks.
func aggregate(all []runStats) (wins map[string]int, finished int, meanTicks float64) {
	wins = map[string]int{}
	totalTicks := 0
	for _, s := range all {
		wins[s.winner]++
		totalTicks += s.ticks
		if s.finished {
			finished++
		}
	}
	if len(all) > 0 {
		meanTicks = float64(totalTicks) / float64(len(all))
	}
	return wins, finished, meanTicks
}

func printAggregate(all []runStats) {
	wins, finished, meanTicks := aggregate(all)

	fmt.Printf("=== Aggregate (%d runs) ===\n", len(all))
	fmt.Printf("finished=%d/%d mean_ticks=%.0f\n", finished, len(all), meanTicks)

	labels := make([]string, 0, len(wins))
	for label := range wins {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		fmt.Printf("  wins[%s] = %d\n", label, wins[label])
	}
}
