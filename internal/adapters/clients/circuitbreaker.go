package clients

import (
	"sync"
	"time"

	"github.com/jsamuelsen/quotes-service/internal/platform/config"
)

type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

var stateNames = [...]string{
	StateClosed:   "closed",
	StateOpen:     "open",
	StateHalfOpen: "half-open",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}

	return stateNames[s]
}

const (
	defaultMaxFailures   = 5
	defaultCoolDown      = 30 * time.Second
	defaultHalfOpenLimit = 1
)

// CircuitBreaker stops calls to the quotes API after MaxFailures consecutive
// failures. Once the cool-down since the last failure has passed, up to
// HalfOpenLimit probes go through: that many successes close it again, any
// failure reopens it.
type CircuitBreaker struct {
	mu sync.Mutex

	maxFailures   int
	coolDown      time.Duration
	halfOpenLimit int

	state       State
	streak      int // consecutive failures while closed, successes while half-open
	probes      int
	lastFailure time.Time

	onStateChange func(from, to State)
	now           func() time.Time
}

// NewCircuitBreaker returns a closed breaker. Non-positive settings use the
// package defaults.
func NewCircuitBreaker(cfg config.CircuitBreakerConfig) *CircuitBreaker {
	positive := func(v, def int) int {
		if v > 0 {
			return v
		}

		return def
	}

	coolDown := cfg.Timeout
	if coolDown <= 0 {
		coolDown = defaultCoolDown
	}

	return &CircuitBreaker{
		maxFailures:   positive(cfg.MaxFailures, defaultMaxFailures),
		coolDown:      coolDown,
		halfOpenLimit: positive(cfg.HalfOpenLimit, defaultHalfOpenLimit),
		now:           time.Now,
	}
}

// OnStateChange sets a callback run on its own goroutine after every
// transition.
func (cb *CircuitBreaker) OnStateChange(fn func(from, to State)) {
	cb.mu.Lock()
	cb.onStateChange = fn
	cb.mu.Unlock()
}

// Allow reports whether a request may go out. Every true must be followed by
// exactly one RecordSuccess or RecordFailure.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == StateOpen {
		if cb.now().Sub(cb.lastFailure) < cb.coolDown {
			return false
		}

		cb.transition(StateHalfOpen)
	}

	if cb.state == StateHalfOpen {
		if cb.probes >= cb.halfOpenLimit {
			return false
		}

		cb.probes++
	}

	return true
}

// RecordSuccess records a request that got any answer below 500.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.record(true)
}

// RecordFailure records a transport error or a 5xx answer.
func (cb *CircuitBreaker) RecordFailure() {
	cb.record(false)
}

func (cb *CircuitBreaker) record(ok bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if !ok {
		cb.lastFailure = cb.now()
	}

	switch {
	case cb.state == StateClosed && ok:
		cb.streak = 0
	case cb.state == StateClosed:
		cb.streak++
		if cb.streak >= cb.maxFailures {
			cb.transition(StateOpen)
		}
	case cb.state == StateHalfOpen && ok:
		cb.probes = max(cb.probes-1, 0)
		cb.streak++
		if cb.streak >= cb.halfOpenLimit {
			cb.transition(StateClosed)
		}
	case cb.state == StateHalfOpen:
		cb.transition(StateOpen)
	}
}

func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return cb.state
}

// transition must be called with mu held.
func (cb *CircuitBreaker) transition(next State) {
	if cb.state == next {
		return
	}

	prev := cb.state
	cb.state, cb.streak, cb.probes = next, 0, 0

	if fn := cb.onStateChange; fn != nil {
		go fn(prev, next)
	}
}
