package worker

import (
	"context"
	"sync"
	"time"

	"github.com/vytor/hippomemory/internal/logger"
)

type Job interface {
	Run(context.Context) error
	Name() string
}

type funcJob struct {
	name string
	fn   func(context.Context) error
}

func (j funcJob) Name() string                  { return j.name }
func (j funcJob) Run(ctx context.Context) error { return j.fn(ctx) }

// NewJob adapts a function to Job.
func NewJob(name string, fn func(context.Context) error) Job {
	return funcJob{name: name, fn: fn}
}

// Loop runs jobs one at a time on a single goroutine. Everything that
// touches game state is funneled through it, so state needs no locks.
type Loop struct {
	jobs     chan Job
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	cancel   context.CancelFunc
	log      *logger.Logger
}

func NewLoop(queueSize int) *Loop {
	if queueSize <= 0 {
		queueSize = 64
	}
	return &Loop{
		jobs: make(chan Job, queueSize),
		done: make(chan struct{}),
		log:  logger.Default().WithPrefix("event-loop"),
	}
}

func (l *Loop) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.log.Debug("starting event loop")

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		for {
			select {
			case <-ctx.Done():
				l.log.Debug("event loop shutting down (context cancelled)")
				return
			case <-l.done:
				l.log.Debug("event loop shutting down")
				return
			case job := <-l.jobs:
				jobCtx := logger.NewContext(ctx, l.log.WithField("job", job.Name()))
				if err := job.Run(jobCtx); err != nil {
					l.log.Warn("job %s failed: %v", job.Name(), err)
				}
			}
		}
	}()
}

// Stop ends the loop after the job in flight. Pending jobs are dropped.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.done)
		if l.cancel != nil {
			l.cancel()
		}
	})
	l.wg.Wait()
}

// Submit queues a job. It reports false once the loop is stopped.
func (l *Loop) Submit(job Job) bool {
	select {
	case <-l.done:
		return false
	case l.jobs <- job:
		return true
	}
}

// Do runs fn on the loop and waits for its result.
func (l *Loop) Do(ctx context.Context, name string, fn func(context.Context) error) error {
	result := make(chan error, 1)
	queued := l.Submit(NewJob(name, func(jobCtx context.Context) error {
		result <- fn(jobCtx)
		return nil
	}))
	if !queued {
		return context.Canceled
	}
	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return context.Canceled
	}
}

type loopTimer struct {
	stop func()
}

func (t loopTimer) Stop() { t.stop() }

// AfterFunc runs fn on the loop once d has elapsed.
func (l *Loop) AfterFunc(d time.Duration, name string, fn func()) Timer {
	t := time.AfterFunc(d, func() {
		l.Submit(NewJob(name, func(context.Context) error {
			fn()
			return nil
		}))
	})
	return loopTimer{stop: func() { t.Stop() }}
}

// Every runs fn on the loop each time d elapses, until stopped.
func (l *Loop) Every(d time.Duration, name string, fn func()) Timer {
	stop := make(chan struct{})
	var once sync.Once
	go func() {
		ticker := time.NewTicker(d)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-l.done:
				return
			case <-ticker.C:
				l.Submit(NewJob(name, func(context.Context) error {
					fn()
					return nil
				}))
			}
		}
	}()
	return loopTimer{stop: func() { once.Do(func() { close(stop) }) }}
}

// QueueSize returns the current number of pending jobs.
func (l *Loop) QueueSize() int {
	return len(l.jobs)
}
