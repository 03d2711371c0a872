package clients

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotes-service/internal/platform/config"
)

// fakeClock drives a breaker's notion of time.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestBreaker(maxFailures, halfOpenLimit int) (*CircuitBreaker, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 4, 9, 9, 30, 0, 0, time.UTC)}

	cb := NewCircuitBreaker(config.CircuitBreakerConfig{
		MaxFailures:   maxFailures,
		Timeout:       time.Second,
		HalfOpenLimit: halfOpenLimit,
	})
	cb.now = clock.now

	return cb, clock
}

func TestNewCircuitBreaker_Defaults(t *testing.T) {
	cb := NewCircuitBreaker(config.CircuitBreakerConfig{MaxFailures: -1})

	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, defaultMaxFailures, cb.maxFailures)
	assert.Equal(t, defaultCoolDown, cb.coolDown)
	assert.Equal(t, defaultHalfOpenLimit, cb.halfOpenLimit)
	assert.True(t, cb.Allow())
}

func TestCircuitBreaker_Scenarios(t *testing.T) {
	// Each step is one of: "ok", "fail", "allow", "deny", "wait" (past the
	// cool-down), "tick" (within it), followed by the expected state.
	type step struct {
		do   string
		want State
	}

	tests := []struct {
		name          string
		maxFailures   int
		halfOpenLimit int
		steps         []step
	}{
		{
			name:        "success resets the failure streak",
			maxFailures: 3,
			steps: []step{
				{"fail", StateClosed}, {"fail", StateClosed}, {"ok", StateClosed},
				{"fail", StateClosed}, {"fail", StateClosed}, {"fail", StateOpen},
				{"deny", StateOpen},
			},
		},
		{
			name:          "stays open during cool-down",
			maxFailures:   1,
			halfOpenLimit: 1,
			steps: []step{
				{"fail", StateOpen}, {"tick", StateOpen}, {"deny", StateOpen},
			},
		},
		{
			name:          "half-open admits limited probes",
			maxFailures:   1,
			halfOpenLimit: 2,
			steps: []step{
				{"fail", StateOpen}, {"wait", StateOpen},
				{"allow", StateHalfOpen}, {"allow", StateHalfOpen}, {"deny", StateHalfOpen},
			},
		},
		{
			name:          "closes after enough probe successes",
			maxFailures:   1,
			halfOpenLimit: 2,
			steps: []step{
				{"fail", StateOpen}, {"wait", StateOpen},
				{"allow", StateHalfOpen}, {"ok", StateHalfOpen},
				{"allow", StateHalfOpen}, {"ok", StateClosed},
				{"allow", StateClosed},
			},
		},
		{
			name:          "probe failure reopens",
			maxFailures:   1,
			halfOpenLimit: 2,
			steps: []step{
				{"fail", StateOpen}, {"wait", StateOpen},
				{"allow", StateHalfOpen}, {"fail", StateOpen}, {"deny", StateOpen},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cb, clock := newTestBreaker(tt.maxFailures, tt.halfOpenLimit)

			for i, s := range tt.steps {
				switch s.do {
				case "ok":
					cb.RecordSuccess()
				case "fail":
					cb.RecordFailure()
				case "allow":
					require.True(t, cb.Allow(), "step %d", i)
				case "deny":
					require.False(t, cb.Allow(), "step %d", i)
				case "wait":
					clock.advance(2 * time.Second)
				case "tick":
					clock.advance(500 * time.Millisecond)
				}

				require.Equal(t, s.want, cb.State(), "after step %d (%s)", i, s.do)
			}
		})
	}
}

func TestCircuitBreaker_OnStateChange(t *testing.T) {
	type change struct{ from, to State }

	got := make(chan change, 4)

	cb, _ := newTestBreaker(1, 1)
	cb.OnStateChange(func(from, to State) { got <- change{from, to} })

	cb.RecordFailure()

	select {
	case c := <-got:
		assert.Equal(t, change{StateClosed, StateOpen}, c)
	case <-time.After(time.Second):
		t.Fatal("callback not called")
	}
}

func TestCircuitBreaker_ConcurrentUse(t *testing.T) {
	cb := NewCircuitBreaker(config.CircuitBreakerConfig{MaxFailures: 100, Timeout: time.Second, HalfOpenLimit: 10})

	var wg sync.WaitGroup
	for i := range 1000 {
		wg.Go(func() {
			if !cb.Allow() {
				return
			}

			if i%2 == 0 {
				cb.RecordSuccess()
			} else {
				cb.RecordFailure()
			}
		})
	}

	wg.Wait()

	assert.Contains(t, []State{StateClosed, StateOpen, StateHalfOpen}, cb.State())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "half-open", StateHalfOpen.String())
	assert.Equal(t, "unknown", State(7).String())
	assert.Equal(t, "unknown", State(-1).String())
}
