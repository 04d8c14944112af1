package game

import (
	"strings"
	"testing"

	"github.com/CrazyForks/wukong-survivors/internal/geom"
	"github.com/CrazyForks/wukong-survivors/internal/level"
	"github.com/CrazyForks/wukong-survivors/internal/sim"
)

func newReportSession(t *testing.T, levelID string) *sim.Session {
	t.Helper()
	lib, err := level.Load()
	if err != nil {
		t.Fatalf("level.Load: %v", err)
	}
	lvl, ok := lib.Levels[levelID]
	if !ok {
		t.Fatalf("unknown level %q", levelID)
	}

	player := sim.NewBasicPlayer(geom.Vec2{}, 100)
	s, err := sim.NewSession(sim.DefaultConfig(), lib, lvl, player, sim.NullStage{}, 1)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if err := s.Equip(sim.KindIronStaff); err != nil {
		t.Fatalf("Equip: %v", err)
	}
	return s
}

func TestBuildReportListsLoadout(t *testing.T) {
	s := newReportSession(t, "black_wind_forest")
	s.Tick(0.1)

	report := buildReport("black_wind_forest", s, nil)

	for _, want := range []string{
		"Run Report: black_wind_forest",
		"Outcome: in progress",
		"Iron Staff Lv1",
		"Time Survived: 0.1s",
	} {
		if !strings.Contains(report, want) {
			t.Fatalf("report missing %q:\n%s", want, report)
		}
	}
}

func TestBuildReportAfterSessionEnd(t *testing.T) {
	s := newReportSession(t, "black_wind_forest")

	var end *sim.EndPayload
	s.Events().Subscribe(sim.EventSessionEnded, sim.ListenerFunc(func(ev sim.Event) {
		payload := ev.Data.(sim.EndPayload)
		end = &payload
	}))

	// Run the session out. The teardown empties the live arsenal, so the
	// report has to read the loadout from the end payload.
	for !s.Over() {
		s.Tick(1)
	}
	if end == nil {
		t.Fatal("no end payload dispatched")
	}
	if len(s.Arsenal().Weapons()) != 0 {
		t.Fatalf("arsenal not torn down: %d weapons", len(s.Arsenal().Weapons()))
	}

	report := buildReport("black_wind_forest", s, end)

	for _, want := range []string{
		"Outcome:",
		"Iron Staff Lv1",
	} {
		if !strings.Contains(report, want) {
			t.Fatalf("report missing %q:\n%s", want, report)
		}
	}
}
