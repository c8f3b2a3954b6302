// Package timer implements the deferred-task scheduler used for simulated
// delays. Every task can be cancelled before it fires, and stopping the
// scheduler cancels everything still pending.
package timer

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hammamikhairi/ottomenu/internal/logger"
)

// ErrNotRunning is returned by After when the scheduler is stopped.
var ErrNotRunning = errors.New("scheduler is not running")

// Task states.
const (
	taskPending int32 = iota
	taskFired
	taskCancelled
)

// Task is a function scheduled to run once after a delay.
type Task struct {
	id     uint64
	label  string
	state  atomic.Int32
	cancel context.CancelFunc
	done   chan struct{}
}

// Cancel stops the task if it has not fired yet. It reports whether this
// call prevented the task from running.
func (t *Task) Cancel() bool {
	if !t.state.CompareAndSwap(taskPending, taskCancelled) {
		return false
	}
	t.cancel()
	return true
}

// Done is closed once the task has either run or been cancelled.
func (t *Task) Done() <-chan struct{} { return t.done }

// Fired reports whether the task's function was run.
func (t *Task) Fired() bool { return t.state.Load() == taskFired }

// Label returns the name the task was scheduled with.
func (t *Task) Label() string { return t.label }

// Scheduler runs deferred tasks in the background.
type Scheduler struct {
	log *logger.Logger

	mu      sync.Mutex
	running bool
	ctx     context.Context
	cancel  context.CancelFunc
	tasks   map[uint64]*Task
	nextID  uint64
}

// New creates a stopped scheduler. Call Start before scheduling.
func New(log *logger.Logger) *Scheduler {
	return &Scheduler{
		log:   log,
		tasks: make(map[uint64]*Task),
	}
}

// Start enables scheduling. Tasks inherit ctx, so cancelling it has the same
// effect as Stop. Non-blocking.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		s.log.Warn("scheduler already running")
		return
	}

	s.ctx, s.cancel = context.WithCancel(ctx)
	s.running = true
	s.log.Info("scheduler started")
}

// Stop cancels every pending task and disables scheduling.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	for _, t := range s.tasks {
		t.Cancel()
	}
	s.cancel()
	s.running = false
	s.log.Info("scheduler stopped (%d pending task(s) cancelled)", len(s.tasks))
}

// Pending returns the number of tasks that have neither fired nor been
// cancelled.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, t := range s.tasks {
		if t.state.Load() == taskPending {
			n++
		}
	}
	return n
}

// After schedules fn to run once delay has elapsed. fn runs on its own
// goroutine and receives a context that is cancelled when the scheduler
// stops. It fails with ErrNotRunning before Start, after Stop, and once the
// context given to Start is cancelled.
func (s *Scheduler) After(delay time.Duration, label string, fn func(ctx context.Context)) (*Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// A cancelled parent context stops the scheduler as surely as Stop.
	if !s.running || s.ctx.Err() != nil {
		return nil, ErrNotRunning
	}

	s.nextID++
	taskCtx, cancel := context.WithCancel(s.ctx)
	t := &Task{
		id:     s.nextID,
		label:  label,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	s.tasks[t.id] = t

	go s.run(taskCtx, t, delay, fn)

	s.log.Debug("scheduled task %d (%s) in %s", t.id, label, delay)
	return t, nil
}

// run waits out the delay, then fires fn unless the task was cancelled.
func (s *Scheduler) run(ctx context.Context, t *Task, delay time.Duration, fn func(ctx context.Context)) {
	defer s.forget(t)
	defer close(t.done)

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		t.state.CompareAndSwap(taskPending, taskCancelled)
		s.log.Debug("task %d (%s) cancelled", t.id, t.label)
	case <-timer.C:
		if !t.state.CompareAndSwap(taskPending, taskFired) {
			return
		}
		s.log.Debug("task %d (%s) fired", t.id, t.label)
		fn(ctx)
		t.cancel()
	}
}

func (s *Scheduler) forget(t *Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tasks, t.id)
}
