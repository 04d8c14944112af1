package game

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/CrazyForks/wukong-survivors/internal/commons/logger_config"
	"github.com/CrazyForks/wukong-survivors/internal/sim"
)

// buildReport renders a plain-text run summary suitable for pasting into
// a bug report or a balance spreadsheet. For an ended session the loadout
// and synergies come from the end payload snapshot; the session tears its
// arsenal down on finish.
func buildReport(levelID string, s *sim.Session, end *sim.EndPayload) string {
	stats := s.Stats()

	var b strings.Builder
	fmt.Fprintf(&b, "=== Run Report: %s ===\n", levelID)
	switch {
	case end != nil:
		outcome := "defeat"
		if end.Victory {
			outcome = "victory"
		}
		fmt.Fprintf(&b, "Outcome: %s\n", outcome)
	case s.Over():
		fmt.Fprintf(&b, "Outcome: defeat\n")
	default:
		fmt.Fprintf(&b, "Outcome: in progress\n")
	}
	fmt.Fprintf(&b, "Time Survived: %.1fs\n", stats.TimeSurvived)
	fmt.Fprintf(&b, "Player Level: %d\n", stats.PlayerLevel)
	fmt.Fprintf(&b, "Enemies: %d spawned, %d killed (%d elite)\n",
		stats.EnemiesSpawned, stats.EnemiesKilled, stats.EliteKills)
	fmt.Fprintf(&b, "Damage: %.0f dealt, %.0f taken\n", stats.DamageDealt, stats.DamageTaken)
	fmt.Fprintf(&b, "XP Collected: %.0f\n", stats.XPCollected)
	fmt.Fprintf(&b, "Coins: %.0f\n", stats.Currency)
	fmt.Fprintf(&b, "Rewards Issued: %d\n", stats.RewardsIssued)

	loadout := make([]sim.WeaponSummary, 0, 8)
	var synergies []string
	if end != nil {
		loadout = append(loadout, end.Loadout...)
		synergies = end.Synergies
	} else {
		for _, w := range s.Arsenal().Weapons() {
			loadout = append(loadout, sim.WeaponSummary{Kind: w.Kind(), Name: w.Name(), Level: w.Level()})
		}
		for _, rule := range s.Synergy().Active() {
			synergies = append(synergies, rule.Name)
		}
	}

	b.WriteString("Loadout:\n")
	for _, w := range loadout {
		fmt.Fprintf(&b, "  %s Lv%d\n", w.Name, w.Level)
	}
	if len(synergies) > 0 {
		b.WriteString("Synergies:\n")
		for _, name := range synergies {
			fmt.Fprintf(&b, "  %s\n", name)
		}
	}
	return b.String()
}

func (g *Game) copyReport() {
	report := buildReport(g.levelID, g.session, g.end)
	if err := clipboard.WriteAll(report); err != nil {
		logger_config.Warnf("[game] copy report to clipboard failed: %v", err)
		return
	}
	logger_config.Infof("[game] run report copied to clipboard")
}
