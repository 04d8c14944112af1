package sim

// EventType names a domain event emitted by the session loop.
type EventType string

const (
	EventEnemyKilled  EventType = "EnemyKilled"
	EventRewardDue    EventType = "RewardDue"
	EventLevelUp      EventType = "LevelUp"
	EventSessionEnded EventType = "SessionEnded"
)

// Event carries one emitted domain event.
type Event struct {
	Type EventType
	Data any
}

// Listener receives dispatched events.
type Listener interface {
	OnEvent(ev Event)
}

// ListenerFunc adapts a plain function to the Listener interface.
type ListenerFunc func(ev Event)

func (f ListenerFunc) OnEvent(ev Event) { f(ev) }

// Dispatcher fans events out to subscribers, synchronously and in
// subscription order.
type Dispatcher struct {
	listeners map[EventType][]Listener
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{listeners: make(map[EventType][]Listener)}
}

func (d *Dispatcher) Subscribe(t EventType, l Listener) {
	d.listeners[t] = append(d.listeners[t], l)
}

func (d *Dispatcher) Unsubscribe(t EventType, l Listener) {
	ls := d.listeners[t]
	for i, cur := range ls {
		if cur == l {
			d.listeners[t] = append(ls[:i], ls[i+1:]...)
			return
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	for _, l := range d.listeners[ev.Type] {
		l.OnEvent(ev)
	}
}

// KillPayload accompanies EventEnemyKilled.
type KillPayload struct {
	Kind       string
	Rank       Rank
	TotalKills int
}

// OfferPayload accompanies EventRewardDue and EventLevelUp.
type OfferPayload struct {
	Level  int // player level at emission (0 for kill rewards)
	Offers []Offer
}

// WeaponSummary is a snapshot of one equipped weapon at session end.
type WeaponSummary struct {
	Kind  WeaponKind
	Name  string
	Level int
}

// EndPayload accompanies EventSessionEnded. Loadout and Synergies are
// captured before teardown; the live arsenal and synergy book are empty by
// the time listeners can ask them.
type EndPayload struct {
	Stats     Stats
	Victory   bool // true when the session timer ran out with the player alive
	Loadout   []WeaponSummary
	Synergies []string // active rule names
}
