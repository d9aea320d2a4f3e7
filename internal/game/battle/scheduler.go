package battle

import (
	"sync"
	"time"
)

// Scheduler runs a function once after a delay.
// The returned cancel func stops a task that has not run yet; calling it
// after the task ran, or twice, is harmless.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) (cancel func())
}

// TimerScheduler defers work with time.AfterFunc and hands the callback back
// to the session's owner goroutine through post. The session is never
// touched from the timer goroutine.
type TimerScheduler struct {
	post func(fn func())
}

// NewTimerScheduler creates a TimerScheduler delivering callbacks via post.
// post must run fn on the goroutine that owns the session (for example by
// queueing it into a UI event loop).
func NewTimerScheduler(post func(fn func())) *TimerScheduler {
	return &TimerScheduler{post: post}
}

// Schedule implements Scheduler.
func (s *TimerScheduler) Schedule(delay time.Duration, fn func()) func() {
	t := time.AfterFunc(delay, func() { s.post(fn) })
	return func() { t.Stop() }
}

// QueueScheduler holds tasks until RunPending is called.
// It ignores delays, which makes battles deterministic in tests and
// simulations.
type QueueScheduler struct {
	mu    sync.Mutex
	tasks []*queuedTask
}

type queuedTask struct {
	delay    time.Duration
	fn       func()
	canceled bool
}

// NewQueueScheduler creates an empty QueueScheduler.
func NewQueueScheduler() *QueueScheduler {
	return &QueueScheduler{}
}

// Schedule implements Scheduler.
func (s *QueueScheduler) Schedule(delay time.Duration, fn func()) func() {
	task := &queuedTask{delay: delay, fn: fn}

	s.mu.Lock()
	s.tasks = append(s.tasks, task)
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		task.canceled = true
		s.mu.Unlock()
	}
}

// Pending returns the number of tasks that are queued and not canceled.
func (s *QueueScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, task := range s.tasks {
		if !task.canceled {
			n++
		}
	}
	return n
}

// LastDelay returns the delay requested by the most recent task.
func (s *QueueScheduler) LastDelay() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.tasks) == 0 {
		return 0
	}
	return s.tasks[len(s.tasks)-1].delay
}

// RunPending runs queued tasks in order, including tasks they schedule,
// and returns how many ran. Canceled tasks are dropped.
func (s *QueueScheduler) RunPending() int {
	ran := 0
	for {
		s.mu.Lock()
		if len(s.tasks) == 0 {
			s.mu.Unlock()
			return ran
		}
		task := s.tasks[0]
		s.tasks = s.tasks[1:]
		canceled := task.canceled
		s.mu.Unlock()

		if canceled {
			continue
		}
		task.fn()
		ran++
	}
}
