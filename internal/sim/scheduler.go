package sim

import "container/heap"

// Liveness reports whether the owner of a scheduled callback still exists.
// The scheduler checks it immediately before invoking, since the owner may
// have died or been cleared between scheduling and firing.
type Liveness func() bool

type task struct {
	at    float64
	seq   uint64 // tie-break so equal deadlines fire in schedule order
	owner Liveness
	fn    func()
}

type taskHeap []task

func (h taskHeap) Len() int { return len(h) }
func (h taskHeap) Less(i, j int) bool {
	if h[i].at != h[j].at {
		return h[i].at < h[j].at
	}
	return h[i].seq < h[j].seq
}
func (h taskHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *taskHeap) Push(x any)   { *h = append(*h, x.(task)) }
func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	*h = old[:n-1]
	return t
}

// Scheduler runs timed callbacks on the session's monotonic clock. It is
// driven exclusively by the tick loop; nothing fires from another goroutine.
type Scheduler struct {
	tasks taskHeap
	seq   uint64
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// After schedules fn to run once now+delay is reached. A nil owner means the
// callback is unconditional.
func (s *Scheduler) After(now, delay float64, owner Liveness, fn func()) {
	if fn == nil {
		return
	}
	if delay < 0 {
		delay = 0
	}
	s.seq++
	heap.Push(&s.tasks, task{at: now + delay, seq: s.seq, owner: owner, fn: fn})
}

// Run fires every task due at or before now, skipping tasks whose owner is
// gone. Callbacks may schedule further tasks.
func (s *Scheduler) Run(now float64) {
	for len(s.tasks) > 0 && s.tasks[0].at <= now {
		t := heap.Pop(&s.tasks).(task)
		if t.owner != nil && !t.owner() {
			continue
		}
		t.fn()
	}
}

// Pending returns the number of queued tasks.
func (s *Scheduler) Pending() int { return len(s.tasks) }

// Clear drops every queued task.
func (s *Scheduler) Clear() {
	s.tasks = s.tasks[:0]
}
