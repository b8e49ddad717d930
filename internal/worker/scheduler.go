package worker

import (
	"sort"
	"time"
)

// Timer is a handle to a scheduled callback.
type Timer interface {
	Stop()
}

// Scheduler delivers delayed and periodic callbacks on the event thread.
type Scheduler interface {
	AfterFunc(d time.Duration, name string, fn func()) Timer
	Every(d time.Duration, name string, fn func()) Timer
}

// Manual is a Scheduler driven by an explicit virtual clock. Callbacks run
// synchronously inside Advance, in due-time order.
type Manual struct {
	now    time.Duration
	seq    int
	timers []*manualTimer
}

type manualTimer struct {
	name    string
	at      time.Duration
	every   time.Duration
	seq     int
	fn      func()
	stopped bool
}

func (t *manualTimer) Stop() { t.stopped = true }

func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) add(at, every time.Duration, name string, fn func()) Timer {
	m.seq++
	t := &manualTimer{name: name, at: at, every: every, seq: m.seq, fn: fn}
	m.timers = append(m.timers, t)
	return t
}

func (m *Manual) AfterFunc(d time.Duration, name string, fn func()) Timer {
	return m.add(m.now+max(d, 0), 0, name, fn)
}

func (m *Manual) Every(d time.Duration, name string, fn func()) Timer {
	if d <= 0 {
		d = time.Millisecond
	}
	return m.add(m.now+d, d, name, fn)
}

// Now is the virtual time elapsed since creation.
func (m *Manual) Now() time.Duration {
	return m.now
}

// Pending counts live timers.
func (m *Manual) Pending() int {
	m.prune()
	return len(m.timers)
}

// Advance moves the clock forward by d, firing everything that falls due.
func (m *Manual) Advance(d time.Duration) {
	target := m.now + d
	for {
		m.prune()
		if len(m.timers) == 0 {
			break
		}
		sort.Slice(m.timers, func(i, j int) bool {
			if m.timers[i].at != m.timers[j].at {
				return m.timers[i].at < m.timers[j].at
			}
			return m.timers[i].seq < m.timers[j].seq
		})
		next := m.timers[0]
		if next.at > target {
			break
		}
		m.now = next.at
		if next.every > 0 {
			next.at += next.every
		} else {
			next.stopped = true
		}
		next.fn()
	}
	m.now = target
}

func (m *Manual) prune() {
	live := m.timers[:0]
	for _, t := range m.timers {
		if !t.stopped {
			live = append(live, t)
		}
	}
	m.timers = live
}
