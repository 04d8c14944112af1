package telemetry

import (
	"sync"
	"time"

	"github.com/CrazyForks/wukong-survivors/internal/commons/logger_config"
)

// Event is one fire-and-forget sample from the game loop. Senders must never
// block on telemetry; drop on a full channel instead.
type Event struct {
	Kind string // kill | elite | damage | xp | frame
	I    int
	F    float64
	At   time.Time
}

// Batch is the aggregate of one flush interval.
type Batch struct {
	Kills  int
	Elites int
	Damage float64
	XP     float64
	Frames int
	AvgDt  float64
}

type Sink struct {
	In chan Event

	quit      chan struct{}
	closeOnce sync.Once
}

// NewSink starts a sink that logs a batch line every two seconds.
func NewSink() *Sink {
	return newSink(2*time.Second, logBatch)
}

func newSink(interval time.Duration, emit func(Batch)) *Sink {
	s := &Sink{
		In:   make(chan Event, 256),
		quit: make(chan struct{}),
	}
	go s.loop(interval, emit)
	return s
}

func (s *Sink) Close() {
	s.closeOnce.Do(func() { close(s.quit) })
}

func (s *Sink) loop(interval time.Duration, emit func(Batch)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var b Batch
	var dtSum float64

	for {
		select {
		case <-s.quit:
			return

		case ev := <-s.In:
			switch ev.Kind {
			case "kill":
				b.Kills += ev.I
			case "elite":
				b.Elites += ev.I
			case "damage":
				b.Damage += ev.F
			case "xp":
				b.XP += ev.F
			case "frame":
				b.Frames++
				dtSum += ev.F
			}

		case <-ticker.C:
			if b.Frames > 0 {
				b.AvgDt = dtSum / float64(b.Frames)
			}
			if emit != nil {
				emit(b)
			}
			b = Batch{}
			dtSum = 0
		}
	}
}

func logBatch(b Batch) {
	if b == (Batch{}) {
		return
	}
	logger_config.Logger.Info("telemetry",
		"kills", b.Kills,
		"elites", b.Elites,
		"damage", b.Damage,
		"xp", b.XP,
		"frames", b.Frames,
		"avg_dt", b.AvgDt,
	)
}
