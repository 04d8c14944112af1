package game

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/CrazyForks/wukong-survivors/internal/assets"
	"github.com/CrazyForks/wukong-survivors/internal/commons/logger_config"
	"github.com/CrazyForks/wukong-survivors/internal/level"
	"github.com/CrazyForks/wukong-survivors/internal/sim"
	"github.com/CrazyForks/wukong-survivors/internal/telemetry"
)

const (
	arenaW = 2000
	arenaH = 2000

	playerMaxHP = 100

	highscorePath = "highscores.json"
)

// pendingOffers is one not-yet-answered offer set, shown as a modal.
type pendingOffers struct {
	title  string
	offers []sim.Offer
}

// Game adapts the combat session to ebiten: fixed-step simulation, input,
// rendering and telemetry. All simulation access happens on the update
// goroutine.
type Game struct {
	cfg     sim.Config
	lib     *level.Library
	levelID string

	session *sim.Session
	player  *Player
	stage   *Stage

	// fixed tick
	accum     time.Duration
	last      time.Time
	fixedStep time.Duration

	// asset loader
	loader *assets.Loader
	assets *AssetManager

	// telemetry sink
	telemetry *telemetry.Sink

	// modal offer queue; the session is held while one is visible
	offerQueue []pendingOffers
	paused     bool

	end *sim.EndPayload

	// cumulative stat baselines (for delta events)
	lastKills  int
	lastDamage float64
	lastXP     float64
}

func New(levelID string, seed int64) (*Game, error) {
	lib, err := level.Load()
	if err != nil {
		return nil, fmt.Errorf("load level definitions: %w", err)
	}
	if _, ok := lib.Levels[levelID]; !ok {
		return nil, fmt.Errorf("unknown level %q", levelID)
	}

	g := &Game{
		cfg:       sim.DefaultConfig(),
		lib:       lib,
		levelID:   levelID,
		last:      time.Now(),
		fixedStep: time.Second / 60,
	}
	g.loader = assets.NewLoader()
	g.assets = NewAssetManager(g.loader)
	g.telemetry = telemetry.NewSink()

	// schedule loads early
	g.assets.Request("player", "player.webp")

	if err := g.startSession(seed); err != nil {
		return nil, err
	}
	return g, nil
}

// startSession builds a fresh run: stage, player, session and event wiring.
func (g *Game) startSession(seed int64) error {
	g.stage = NewStage()
	g.player = NewPlayer(arenaW, arenaH, playerMaxHP)

	s, err := sim.NewSession(g.cfg, g.lib, g.lib.Levels[g.levelID], g.player, g.stage, seed)
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	g.session = s

	g.offerQueue = nil
	g.end = nil
	g.paused = false
	g.lastKills, g.lastDamage, g.lastXP = 0, 0, 0

	s.Events().Subscribe(sim.EventLevelUp, sim.ListenerFunc(func(ev sim.Event) {
		p := ev.Data.(sim.OfferPayload)
		g.queueOffers(fmt.Sprintf("LEVEL %d!", p.Level), p.Offers)
	}))
	s.Events().Subscribe(sim.EventRewardDue, sim.ListenerFunc(func(ev sim.Event) {
		p := ev.Data.(sim.OfferPayload)
		g.queueOffers("KILL REWARD!", p.Offers)
	}))
	s.Events().Subscribe(sim.EventEnemyKilled, sim.ListenerFunc(func(ev sim.Event) {
		if p, ok := ev.Data.(sim.KillPayload); ok && p.Rank == sim.RankElite {
			g.sendTelemetry(telemetry.Event{Kind: "elite", I: 1, At: time.Now()})
		}
	}))
	s.Events().Subscribe(sim.EventSessionEnded, sim.ListenerFunc(func(ev sim.Event) {
		end := ev.Data.(sim.EndPayload)
		g.end = &end
		g.offerQueue = nil
		g.recordHighscore(end)
	}))

	if err := s.Equip(sim.KindIronStaff); err != nil {
		return fmt.Errorf("starting loadout: %w", err)
	}
	return nil
}

func (g *Game) queueOffers(title string, offers []sim.Offer) {
	if len(offers) == 0 {
		return
	}
	g.offerQueue = append(g.offerQueue, pendingOffers{title: title, offers: offers})
}

func (g *Game) Update() error {
	now := time.Now()
	g.assets.Poll()

	frameDt := now.Sub(g.last)
	g.last = now

	// avoid spiral of death on long pauses
	if frameDt > 250*time.Millisecond {
		frameDt = 250 * time.Millisecond
	}
	g.sendTelemetry(telemetry.Event{
		Kind: "frame",
		F:    frameDt.Seconds(),
		At:   now,
	})

	if ReadRestart() {
		if err := g.startSession(0); err != nil {
			return err
		}
		g.accum = 0
		return nil
	}

	if ReadReport() {
		g.copyReport()
	}

	if g.end != nil {
		return nil
	}

	if ReadPause() {
		g.paused = !g.paused
	}
	if g.paused {
		g.accum = 0
		return nil
	}

	// A visible offer modal holds the simulation until answered.
	if len(g.offerQueue) > 0 {
		g.accum = 0
		if pick := ReadOfferChoice(); pick >= 0 {
			g.resolveOffer(pick)
		}
		return nil
	}

	g.accum += frameDt
	in := ReadInput()

	// fixed-step simulation
	step := g.fixedStep.Seconds()
	for g.accum >= g.fixedStep {
		g.player.Move(step, in)
		g.session.Tick(step)
		g.stage.Tick(step)
		g.accum -= g.fixedStep

		// a Tick may have queued a modal or finished the run
		if g.end != nil || len(g.offerQueue) > 0 {
			g.accum = 0
			break
		}
	}

	g.emitSessionDeltas(now)
	return nil
}

func (g *Game) resolveOffer(pick int) {
	cur := g.offerQueue[0]
	if pick >= len(cur.offers) {
		return
	}
	if err := g.session.ChooseOffer(cur.offers[pick]); err != nil {
		logger_config.Warnf("[game] offer rejected: %v", err)
	}
	g.offerQueue = g.offerQueue[1:]
}

func (g *Game) Layout(outsideW, outsideH int) (int, int) {
	return outsideW, outsideH
}

func (g *Game) Close() {
	if g.loader != nil {
		g.loader.Close()
		g.loader = nil
	}
	if g.telemetry != nil {
		g.telemetry.Close()
		g.telemetry = nil
	}
	if g.session != nil && !g.session.Over() {
		g.session.Clear()
	}
}

func (g *Game) recordHighscore(end sim.EndPayload) {
	entry := NewHighscoreEntry(g.levelID, end)
	if err := AppendHighscore(highscorePath, entry); err != nil {
		logger_config.Warnf("[game] highscore save failed: %v", err)
	}
}

func (g *Game) emitSessionDeltas(at time.Time) {
	stats := g.session.Stats()

	if delta := stats.EnemiesKilled - g.lastKills; delta > 0 {
		g.sendTelemetry(telemetry.Event{Kind: "kill", I: delta, At: at})
		g.lastKills = stats.EnemiesKilled
	}
	if delta := stats.DamageDealt - g.lastDamage; delta > 0 {
		g.sendTelemetry(telemetry.Event{Kind: "damage", F: delta, At: at})
		g.lastDamage = stats.DamageDealt
	}
	if delta := stats.XPCollected - g.lastXP; delta > 0 {
		g.sendTelemetry(telemetry.Event{Kind: "xp", F: delta, At: at})
		g.lastXP = stats.XPCollected
	}
}

func (g *Game) sendTelemetry(ev telemetry.Event) {
	if g.telemetry == nil {
		return
	}

	select {
	case g.telemetry.In <- ev:
	default:
		// Drop on backpressure to avoid stalling the fixed-step loop.
	}
}

var _ ebiten.Game = (*Game)(nil)
