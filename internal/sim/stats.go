package sim

// Stats accumulates the per-session counters reported when a run ends.
type Stats struct {
	EnemiesSpawned int
	EnemiesKilled  int
	EliteKills     int
	DamageDealt    float64
	DamageTaken    float64
	XPCollected    float64
	Currency       float64
	TimeSurvived   float64
	PlayerLevel    int
	RewardsIssued  int
}
