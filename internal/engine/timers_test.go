package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vytor/hippomemory/internal/worker"
)

// queuedScheduler hands back every callback instead of running it, the way
// a real loop may already hold a job when its timer is stopped.
type queuedScheduler struct {
	fns []func()
}

type noopTimer struct{}

func (noopTimer) Stop() {}

func (q *queuedScheduler) AfterFunc(_ time.Duration, _ string, fn func()) worker.Timer {
	q.fns = append(q.fns, fn)
	return noopTimer{}
}

func (q *queuedScheduler) Every(_ time.Duration, _ string, fn func()) worker.Timer {
	q.fns = append(q.fns, fn)
	return noopTimer{}
}

func TestTimerGroup_CancelledCallbacksDoNothing(t *testing.T) {
	q := &queuedScheduler{}
	g := timerGroup{sched: q}
	fired := 0

	g.after(time.Second, "a", func() { fired++ })
	g.every(time.Second, "b", func() { fired++ })
	g.cancel()
	g.after(time.Second, "c", func() { fired += 10 })

	for _, fn := range q.fns {
		fn()
	}
	assert.Equal(t, 10, fired)
}

func TestTimerGroup_CancelStopsScheduledTimers(t *testing.T) {
	m := worker.NewManual()
	g := timerGroup{sched: m}
	fired := 0

	g.every(time.Second, "tick", func() { fired++ })
	m.Advance(2 * time.Second)
	g.cancel()
	m.Advance(5 * time.Second)

	assert.Equal(t, 2, fired)
	assert.Equal(t, 0, m.Pending())
}
