package worker_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/hippomemory/internal/worker"
)

func TestManual_FiresInDueOrder(t *testing.T) {
	m := worker.NewManual()
	var fired []string

	m.AfterFunc(3*time.Second, "c", func() { fired = append(fired, "c") })
	m.AfterFunc(1*time.Second, "a", func() { fired = append(fired, "a") })
	m.AfterFunc(1*time.Second, "b", func() { fired = append(fired, "b") })

	m.Advance(2 * time.Second)
	assert.Equal(t, []string{"a", "b"}, fired)

	m.Advance(time.Second)
	assert.Equal(t, []string{"a", "b", "c"}, fired)
	assert.Equal(t, 0, m.Pending())
	assert.Equal(t, 3*time.Second, m.Now())
}

func TestManual_EveryAndStop(t *testing.T) {
	m := worker.NewManual()
	ticks := 0
	timer := m.Every(time.Second, "tick", func() { ticks++ })

	m.Advance(3500 * time.Millisecond)
	assert.Equal(t, 3, ticks)

	timer.Stop()
	m.Advance(5 * time.Second)
	assert.Equal(t, 3, ticks)
}

func TestManual_CallbackCanCancelLaterTimers(t *testing.T) {
	m := worker.NewManual()
	lateFired := false

	late := m.AfterFunc(2*time.Second, "late", func() { lateFired = true })
	m.AfterFunc(time.Second, "cancel", func() { late.Stop() })

	m.Advance(5 * time.Second)
	assert.False(t, lateFired)
}

func TestManual_CallbackCanScheduleMore(t *testing.T) {
	m := worker.NewManual()
	var at []time.Duration

	m.AfterFunc(time.Second, "first", func() {
		at = append(at, m.Now())
		m.AfterFunc(time.Second, "second", func() { at = append(at, m.Now()) })
	})

	m.Advance(10 * time.Second)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, at)
}
