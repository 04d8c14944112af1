// Package jobs runs whole combat sessions headless, in parallel, for
// balance sweeps. Each worker owns its session end to end; the simulation
// itself stays single-threaded.
package jobs

import (
	"fmt"
	"sync"

	"github.com/CrazyForks/wukong-survivors/internal/geom"
	"github.com/CrazyForks/wukong-survivors/internal/level"
	"github.com/CrazyForks/wukong-survivors/internal/sim"
)

// RunRequest describes one headless run.
type RunRequest struct {
	ID       int
	Seed     int64
	LevelID  string
	Duration float64 // seconds; 0 keeps the level's own duration
	Step     float64 // tick step in seconds; 0 means 1/60
	PlayerHP float64 // 0 means 100
	Loadout  []sim.WeaponKind
}

// RunResult is the outcome of one completed run.
type RunResult struct {
	ID      int
	Seed    int64
	Stats   sim.Stats
	Victory bool
	Err     error
}

// Pool fans RunRequests out to a fixed set of workers.
type Pool struct {
	Req chan RunRequest
	Res chan RunResult

	cfg  sim.Config
	lib  *level.Library
	quit chan struct{}

	closeOnce sync.Once
	wg        sync.WaitGroup
}

func NewPool(cfg sim.Config, lib *level.Library, workerCount, queueSize int) *Pool {
	if workerCount < 1 {
		workerCount = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}

	p := &Pool{
		Req:  make(chan RunRequest, queueSize),
		Res:  make(chan RunResult, queueSize),
		cfg:  cfg,
		lib:  lib,
		quit: make(chan struct{}),
	}

	p.wg.Add(workerCount)
	for range workerCount {
		go p.worker()
	}

	return p
}

func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		close(p.quit)
		p.wg.Wait()
	})
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.quit:
			return

		case req := <-p.Req:
			res := RunSession(p.cfg, p.lib, req)

			// Never block worker shutdown on a full result queue.
			select {
			case <-p.quit:
				return
			case p.Res <- res:
			}
		}
	}
}

// RunSession plays one session to its end, greedily accepting the first
// offer of every level-up and kill reward.
func RunSession(cfg sim.Config, lib *level.Library, req RunRequest) RunResult {
	out := RunResult{ID: req.ID, Seed: req.Seed}

	lvl, ok := lib.Levels[req.LevelID]
	if !ok {
		out.Err = fmt.Errorf("unknown level %q", req.LevelID)
		return out
	}
	if req.Duration > 0 {
		lvl.SessionDuration = req.Duration
	}

	hp := req.PlayerHP
	if hp <= 0 {
		hp = 100
	}
	player := sim.NewBasicPlayer(geom.Vec2{}, hp)

	s, err := sim.NewSession(cfg, lib, lvl, player, sim.NullStage{}, req.Seed)
	if err != nil {
		out.Err = err
		return out
	}

	loadout := req.Loadout
	if len(loadout) == 0 {
		loadout = []sim.WeaponKind{sim.KindIronStaff}
	}
	for _, kind := range loadout {
		if err := s.Equip(kind); err != nil {
			out.Err = fmt.Errorf("loadout %s: %w", kind, err)
			return out
		}
	}

	autoChoose := sim.ListenerFunc(func(ev sim.Event) {
		p, ok := ev.Data.(sim.OfferPayload)
		if !ok || len(p.Offers) == 0 {
			return
		}
		// Ignore the error: a lost offer only means a slightly weaker run.
		_ = s.ChooseOffer(p.Offers[0])
	})
	s.Events().Subscribe(sim.EventLevelUp, autoChoose)
	s.Events().Subscribe(sim.EventRewardDue, autoChoose)

	var end sim.EndPayload
	s.Events().Subscribe(sim.EventSessionEnded, sim.ListenerFunc(func(ev sim.Event) {
		end = ev.Data.(sim.EndPayload)
	}))

	step := req.Step
	if step <= 0 {
		step = 1.0 / 60
	}
	maxTicks := int(lvl.SessionDuration/step) + 2
	for i := 0; i < maxTicks && !s.Over(); i++ {
		s.Tick(step)
	}

	if !s.Over() {
		out.Err = fmt.Errorf("session did not finish within %d ticks", maxTicks)
		out.Stats = s.Stats()
		return out
	}
	out.Stats = end.Stats
	out.Victory = end.Victory
	return out
}
