package resilience

import (
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"
)

var ErrOpen = crerr.New("circuit breaker is open")

type State string

const (
	StateClosed   State = "closed"
	StateOpen     State = "open"
	StateHalfOpen State = "half_open"
)

// Breaker stops calling a failing dependency until OpenTimeout has passed,
// then lets HalfOpenProbes requests through to test it. A nil Breaker
// allows everything.
type Breaker struct {
	mu  sync.Mutex
	cfg BreakerConfig

	state    State
	failures int
	openedAt time.Time
	inFlight int
	passed   int
	now      func() time.Time
}

// NewBreaker returns nil when cfg is disabled.
func NewBreaker(cfg BreakerConfig) *Breaker {
	if !cfg.Enabled {
		return nil
	}
	return &Breaker{
		cfg:   cfg.normalized(),
		state: StateClosed,
		now:   time.Now,
	}
}

// Do runs fn if the breaker allows it and records the outcome. isFailure
// decides which errors count against the dependency; nil counts every error.
func (b *Breaker) Do(fn func() error, isFailure func(error) bool) error {
	if err := b.Allow(); err != nil {
		return err
	}
	err := fn()
	if err != nil && (isFailure == nil || isFailure(err)) {
		b.Failure()
		return err
	}
	b.Success()
	return err
}

func (b *Breaker) Allow() error {
	if b == nil {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen {
		if b.now().Sub(b.openedAt) < b.cfg.OpenTimeout {
			return ErrOpen
		}
		b.state = StateHalfOpen
		b.inFlight = 0
		b.passed = 0
	}

	if b.state == StateHalfOpen {
		if b.inFlight >= b.cfg.HalfOpenProbes {
			return ErrOpen
		}
		b.inFlight++
	}
	return nil
}

func (b *Breaker) Success() {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		b.failures = 0
	case StateHalfOpen:
		if b.inFlight > 0 {
			b.inFlight--
		}
		b.passed++
		if b.passed >= b.cfg.HalfOpenProbes && b.inFlight == 0 {
			b.close()
		}
	}
}

func (b *Breaker) Failure() {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			b.open()
		}
	case StateHalfOpen:
		b.open()
	case StateOpen:
		b.openedAt = b.now()
	}
}

func (b *Breaker) State() State {
	if b == nil {
		return StateClosed
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen && b.now().Sub(b.openedAt) >= b.cfg.OpenTimeout {
		return StateHalfOpen
	}
	return b.state
}

func (b *Breaker) close() {
	b.state = StateClosed
	b.failures = 0
	b.inFlight = 0
	b.passed = 0
	b.openedAt = time.Time{}
}

func (b *Breaker) open() {
	b.state = StateOpen
	b.openedAt = b.now()
	b.inFlight = 0
	b.passed = 0
}
