package engine

import (
	"time"

	"github.com/vytor/hippomemory/internal/worker"
)

// timerGroup owns the callbacks scheduled for one phase. cancel stops them
// and bumps the generation, so a callback already queued on the loop sees a
// stale generation and does nothing.
type timerGroup struct {
	sched  worker.Scheduler
	gen    uint64
	timers []worker.Timer
}

func (g *timerGroup) guard(fn func()) func() {
	gen := g.gen
	return func() {
		if g.gen != gen {
			return
		}
		fn()
	}
}

func (g *timerGroup) after(d time.Duration, name string, fn func()) {
	g.timers = append(g.timers, g.sched.AfterFunc(d, name, g.guard(fn)))
}

func (g *timerGroup) every(d time.Duration, name string, fn func()) {
	g.timers = append(g.timers, g.sched.Every(d, name, g.guard(fn)))
}

func (g *timerGroup) cancel() {
	for _, t := range g.timers {
		t.Stop()
	}
	g.timers = nil
	g.gen++
}

func (e *Engine) stopTimers() {
	e.reveals.cancel()
	e.countdown.cancel()
	e.clock.cancel()
}

func (e *Engine) enterViewing() {
	e.phase = PhaseViewing
	e.revealed = make(map[int]bool, len(e.view.Items))
	e.revealRemaining = e.view.RevealTime
	e.readyToStart = false

	e.reveals.cancel()
	for i := range e.view.Items {
		tile := i
		last := tile == len(e.view.Items)-1
		e.reveals.after(firstRevealDelay+time.Duration(i)*e.revealInterval, "reveal-tile", func() {
			e.revealed[tile] = true
			if last {
				e.readyToStart = true
			}
			e.render()
		})
	}

	e.countdown.cancel()
	e.countdown.every(time.Second, "reveal-countdown", func() {
		e.revealRemaining--
		e.presenter.Tick(RevealCountdown, max(e.revealRemaining, 0))
		if e.revealRemaining <= 0 {
			_ = e.beginMemorizing(e.sessionCtx)
		}
	})

	e.startClock()
	e.presenter.Message("Memorize the tiles!")
	e.render()
}

// startClock runs the overall timer. It only accrues while the player can
// see the game.
func (e *Engine) startClock() {
	e.clock.cancel()
	e.clock.every(time.Second, "elapsed", func() {
		if !e.visible || !e.phase.playing() {
			return
		}
		e.elapsed++
		e.presenter.Tick(ElapsedTime, e.elapsed)
	})
}

// SetVisible pauses or resumes the overall timer.
func (e *Engine) SetVisible(visible bool) {
	e.visible = visible
}
