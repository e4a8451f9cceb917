package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

// ErrOpen is returned without calling through while the breaker is open.
var ErrOpen = errors.New("circuit breaker is open")

type State string

const (
	StateClosed   State = "closed"
	StateOpen     State = "open"
	StateHalfOpen State = "half-open"
)

type Settings struct {
	Name string
	// MaxFailures consecutive failures open the breaker.
	MaxFailures int
	// Timeout is how long the breaker stays open before letting a probe through.
	Timeout time.Duration
}

type CircuitBreaker struct {
	name        string
	maxFailures int
	timeout     time.Duration
	now         func() time.Time

	mu       sync.Mutex
	state    State
	failures int
	openedAt time.Time
	probing  bool
}

func NewCircuitBreaker(settings Settings) *CircuitBreaker {
	if settings.MaxFailures <= 0 {
		settings.MaxFailures = 5
	}
	if settings.Timeout <= 0 {
		settings.Timeout = 30 * time.Second
	}
	return &CircuitBreaker{
		name:        settings.Name,
		maxFailures: settings.MaxFailures,
		timeout:     settings.Timeout,
		now:         time.Now,
		state:       StateClosed,
	}
}

func (cb *CircuitBreaker) Name() string {
	return cb.name
}

func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.currentState()
}

// Execute runs fn unless the breaker is open. Only one probe runs at a time
// while half-open; concurrent callers get ErrOpen.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	cb.mu.Lock()
	switch cb.currentState() {
	case StateOpen:
		cb.mu.Unlock()
		return ErrOpen
	case StateHalfOpen:
		if cb.probing {
			cb.mu.Unlock()
			return ErrOpen
		}
		cb.probing = true
	}
	cb.mu.Unlock()

	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.probing = false

	if err != nil {
		cb.failures++
		if cb.state == StateHalfOpen || cb.failures >= cb.maxFailures {
			cb.state = StateOpen
			cb.openedAt = cb.now()
		}
		return err
	}

	cb.state = StateClosed
	cb.failures = 0
	return nil
}

// currentState moves an expired open breaker to half-open. Callers hold mu.
func (cb *CircuitBreaker) currentState() State {
	if cb.state == StateOpen && cb.now().Sub(cb.openedAt) >= cb.timeout {
		cb.state = StateHalfOpen
	}
	return cb.state
}
