package hxbs

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Scheduler provides the two suspension points of a collapse transition.
//
// Callbacks always run on the scheduler's single logical thread, so the
// state they touch needs no locking.
type Scheduler interface {
	// Next runs fn on the next turn of the loop, after the current
	// callback has returned and its style writes are committed.
	Next(fn func())

	// TransitionEnd runs fn once, after d has elapsed or when el reports
	// the end of its transition (see TransitionNotifier), whichever comes
	// first.
	TransitionEnd(el Element, d time.Duration, fn func())
}

// EventLoop is a Scheduler backed by a single goroutine.
//
// Work is posted onto a queue and executed in order by Run. Timers fire on
// their own goroutines but only post back onto the queue, so every
// callback observes a consistent state.
//
//	loop := hxbs.NewEventLoop()
//	go loop.Run(ctx)
//	loop.Post(func() { panel.Show() })
type EventLoop struct {
	mu      sync.Mutex
	queue   []func()
	wake    chan struct{}
	stopped bool
}

// NewEventLoop creates an idle loop. Call Run to start processing.
func NewEventLoop() *EventLoop {
	return &EventLoop{wake: make(chan struct{}, 1)}
}

// Post enqueues fn. It reports false once the loop has stopped.
func (l *EventLoop) Post(fn func()) bool {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return false
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// Run processes posted work until ctx is done.
func (l *EventLoop) Run(ctx context.Context) error {
	defer func() {
		l.mu.Lock()
		l.stopped = true
		l.queue = nil
		l.mu.Unlock()
	}()

	for {
		l.mu.Lock()
		batch := l.queue
		l.queue = nil
		l.mu.Unlock()

		for _, fn := range batch {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			fn()
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// Next implements Scheduler.
func (l *EventLoop) Next(fn func()) {
	l.Post(fn)
}

// TransitionEnd implements Scheduler.
func (l *EventLoop) TransitionEnd(el Element, d time.Duration, fn func()) {
	var once sync.Once
	fire := func() {
		once.Do(func() { l.Post(fn) })
	}
	t := time.AfterFunc(d, fire)
	if n, ok := el.(TransitionNotifier); ok {
		n.OnTransitionEnd(func() {
			t.Stop()
			fire()
		})
	}
}

// ManualScheduler is a deterministic Scheduler driven by explicit calls.
//
// It keeps a fake clock: transitions armed with TransitionEnd fire when
// Advance moves the clock past their deadline. Tests use it to step a
// Panel through each suspension point; the HTTP widgets use it to split a
// transition across two requests.
type ManualScheduler struct {
	now    time.Duration
	ticks  []func()
	timers []*manualTimer
	seq    int
}

type manualTimer struct {
	at    time.Duration
	seq   int
	fn    func()
	fired bool
}

func (t *manualTimer) fire() bool {
	if t.fired {
		return false
	}
	t.fired = true
	t.fn()
	return true
}

// NewManualScheduler creates a scheduler with its clock at zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Next implements Scheduler.
func (s *ManualScheduler) Next(fn func()) {
	s.ticks = append(s.ticks, fn)
}

// TransitionEnd implements Scheduler.
func (s *ManualScheduler) TransitionEnd(el Element, d time.Duration, fn func()) {
	s.seq++
	t := &manualTimer{at: s.now + d, seq: s.seq, fn: fn}
	s.timers = append(s.timers, t)
	if n, ok := el.(TransitionNotifier); ok {
		n.OnTransitionEnd(func() {
			if t.fire() {
				s.prune()
			}
		})
	}
}

// Now returns the fake clock's elapsed time.
func (s *ManualScheduler) Now() time.Duration {
	return s.now
}

// Tick runs the callbacks queued before the call. Callbacks they queue
// wait for the following Tick. It returns how many callbacks ran.
func (s *ManualScheduler) Tick() int {
	batch := s.ticks
	s.ticks = nil
	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

// Advance moves the clock forward by d and fires every transition due by
// then, in deadline order. It returns how many fired.
func (s *ManualScheduler) Advance(d time.Duration) int {
	s.now += d
	fired := 0
	for {
		t := s.nextDue(s.now)
		if t == nil {
			return fired
		}
		if t.fire() {
			fired++
		}
		s.prune()
	}
}

// EndTransitions fires every pending transition regardless of deadline,
// moving the clock to the latest one.
func (s *ManualScheduler) EndTransitions() int {
	fired := 0
	for {
		t := s.nextDue(-1)
		if t == nil {
			return fired
		}
		if t.at > s.now {
			s.now = t.at
		}
		if t.fire() {
			fired++
		}
		s.prune()
	}
}

// Settle alternates Tick and EndTransitions until nothing is pending.
func (s *ManualScheduler) Settle() {
	for {
		ticks, timers := s.Pending()
		if ticks == 0 && timers == 0 {
			return
		}
		s.Tick()
		if ticks, _ := s.Pending(); ticks == 0 {
			s.EndTransitions()
		}
	}
}

// Pending reports queued tick callbacks and unfired transitions.
func (s *ManualScheduler) Pending() (ticks, transitions int) {
	for _, t := range s.timers {
		if !t.fired {
			transitions++
		}
	}
	return len(s.ticks), transitions
}

// nextDue returns the earliest unfired timer due at or before at. A
// negative at matches every timer.
func (s *ManualScheduler) nextDue(at time.Duration) *manualTimer {
	pending := make([]*manualTimer, 0, len(s.timers))
	for _, t := range s.timers {
		if !t.fired && (at < 0 || t.at <= at) {
			pending = append(pending, t)
		}
	}
	if len(pending) == 0 {
		return nil
	}
	sort.Slice(pending, func(i, j int) bool {
		if pending[i].at != pending[j].at {
			return pending[i].at < pending[j].at
		}
		return pending[i].seq < pending[j].seq
	})
	return pending[0]
}

func (s *ManualScheduler) prune() {
	kept := s.timers[:0]
	for _, t := range s.timers {
		if !t.fired {
			kept = append(kept, t)
		}
	}
	s.timers = kept
}
