package level

import "testing"

func TestLoadEmbeddedDefs(t *testing.T) {
	lib, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(lib.Enemies) == 0 {
		t.Fatal("expected at least one enemy definition")
	}
	if len(lib.Levels) == 0 {
		t.Fatal("expected at least one level definition")
	}

	for id, lvl := range lib.Levels {
		if lvl.SessionDuration <= 0 {
			t.Fatalf("level %q has non-positive session duration", id)
		}
		for _, kind := range lvl.EnemyKinds {
			if _, ok := lib.Enemies[kind]; !ok {
				t.Fatalf("level %q references unknown enemy %q", id, kind)
			}
		}
	}
}

func TestKindsByRankAreDisjoint(t *testing.T) {
	lib, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	for id, lvl := range lib.Levels {
		minions := lib.KindsByRank(lvl, "minion")
		elites := lib.KindsByRank(lvl, "elite")

		seen := make(map[string]bool, len(minions))
		for _, k := range minions {
			seen[k] = true
		}
		for _, k := range elites {
			if seen[k] {
				t.Fatalf("level %q: kind %q appears in both rank subsets", id, k)
			}
		}
		if len(minions)+len(elites) != len(lvl.EnemyKinds) {
			t.Fatalf("level %q: rank subsets do not cover the kind list", id)
		}
	}
}

func TestAllKindsIsStable(t *testing.T) {
	lib, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	a := lib.AllKinds()
	b := lib.AllKinds()
	if len(a) != len(b) || len(a) == 0 {
		t.Fatalf("AllKinds length mismatch: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("AllKinds order unstable at %d: %q vs %q", i, a[i], b[i])
		}
	}
}
