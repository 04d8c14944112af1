package main

import (
	"flag"
	"log/slog"
	"os"
	"strings"

	"github.com/CrazyForks/wukong-survivors/internal/commons/logger_config"
	"github.com/CrazyForks/wukong-survivors/internal/jobs"
	"github.com/CrazyForks/wukong-survivors/internal/level"
	"github.com/CrazyForks/wukong-survivors/internal/sim"
)

func main() {
	levelID := flag.String("level", "black_wind_forest", "level to sweep")
	sessions := flag.Int("sessions", 20, "number of sessions to run")
	seconds := flag.Float64("seconds", 120, "session duration override, 0 uses the level's own")
	seed := flag.Int64("seed", 1, "base seed, session i runs with seed+i")
	workers := flag.Int("workers", 4, "parallel session workers")
	loadout := flag.String("loadout", "iron_staff", "comma separated starting weapons")
	flag.Parse()

	lib, err := level.Load()
	if err != nil {
		logger_config.Errorf("[balance] load level definitions: %v", err)
		os.Exit(1)
	}
	if _, ok := lib.Levels[*levelID]; !ok {
		logger_config.Errorf("[balance] unknown level %q", *levelID)
		os.Exit(1)
	}

	var kinds []sim.WeaponKind
	for _, name := range strings.Split(*loadout, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		kind := sim.WeaponKind(name)
		if _, ok := sim.CatalogSpec(kind); !ok {
			logger_config.Errorf("[balance] unknown weapon %q", name)
			os.Exit(1)
		}
		kinds = append(kinds, kind)
	}

	pool := jobs.NewPool(sim.DefaultConfig(), lib, *workers, *sessions)
	defer pool.Close()

	go func() {
		for i := range *sessions {
			pool.Req <- jobs.RunRequest{
				ID:       i,
				Seed:     *seed + int64(i),
				LevelID:  *levelID,
				Duration: *seconds,
				Loadout:  kinds,
			}
		}
	}()

	var (
		victories int
		failed    int
		agg       sim.Stats
	)
	for range *sessions {
		res := <-pool.Res
		if res.Err != nil {
			logger_config.Warnf("[balance] run %d (seed %d) failed: %v", res.ID, res.Seed, res.Err)
			failed++
			continue
		}
		if res.Victory {
			victories++
		}
		agg.EnemiesSpawned += res.Stats.EnemiesSpawned
		agg.EnemiesKilled += res.Stats.EnemiesKilled
		agg.EliteKills += res.Stats.EliteKills
		agg.DamageDealt += res.Stats.DamageDealt
		agg.DamageTaken += res.Stats.DamageTaken
		agg.XPCollected += res.Stats.XPCollected
		agg.Currency += res.Stats.Currency
		agg.TimeSurvived += res.Stats.TimeSurvived
		agg.PlayerLevel += res.Stats.PlayerLevel
		agg.RewardsIssued += res.Stats.RewardsIssued
	}

	done := *sessions - failed
	if done == 0 {
		logger_config.Errorf("[balance] every run failed")
		os.Exit(1)
	}
	n := float64(done)

	logger_config.Logger.Info("[balance] sweep complete",
		slog.String("level", *levelID),
		slog.String("loadout", *loadout),
		slog.Int("sessions", done),
		slog.Int("failed", failed),
		slog.Float64("win_rate", float64(victories)/n),
		slog.Float64("avg_time_survived", agg.TimeSurvived/n),
		slog.Float64("avg_kills", float64(agg.EnemiesKilled)/n),
		slog.Float64("avg_elite_kills", float64(agg.EliteKills)/n),
		slog.Float64("avg_player_level", float64(agg.PlayerLevel)/n),
		slog.Float64("avg_damage_dealt", agg.DamageDealt/n),
		slog.Float64("avg_damage_taken", agg.DamageTaken/n),
		slog.Float64("avg_xp", agg.XPCollected/n),
		slog.Float64("avg_coins", agg.Currency/n),
	)
}
