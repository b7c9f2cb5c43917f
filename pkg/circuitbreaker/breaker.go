// Package circuitbreaker stops calling a dependency that keeps failing and
// probes it again after a cool-down.
package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

var ErrOpen = errors.New("circuit breaker is open")

type State int

const (
	Closed State = iota
	Open
	HalfOpen
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case HalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

type CircuitBreaker interface {
	Call(fn func() error) error
	State() State
	Name() string
}

type Config struct {
	// FailureThreshold consecutive failures open the circuit.
	FailureThreshold int
	// RecoveryTimeout is how long the circuit stays open before a probe.
	RecoveryTimeout time.Duration
	// SuccessThreshold successful probes close it again.
	SuccessThreshold int
}

func DefaultConfig() Config {
	return Config{
		FailureThreshold: 5,
		RecoveryTimeout:  time.Minute,
		SuccessThreshold: 2,
	}
}

// StateChangeFunc observes transitions. It runs with the breaker unlocked.
type StateChangeFunc func(name string, from, to State)

// Breaker lets one probe through at a time while half-open; concurrent
// callers are refused until the probe settles.
type Breaker struct {
	name     string
	cfg      Config
	now      func() time.Time
	onChange StateChangeFunc

	mu        sync.Mutex
	state     State
	failures  int
	successes int
	openedAt  time.Time
	probing   bool
}

func New(name string, cfg Config) *Breaker {
	def := DefaultConfig()
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = def.FailureThreshold
	}
	if cfg.RecoveryTimeout <= 0 {
		cfg.RecoveryTimeout = def.RecoveryTimeout
	}
	if cfg.SuccessThreshold <= 0 {
		cfg.SuccessThreshold = def.SuccessThreshold
	}

	return &Breaker{
		name: name,
		cfg:  cfg,
		now:  time.Now,
	}
}

func (b *Breaker) OnStateChange(fn StateChangeFunc) *Breaker {
	b.onChange = fn
	return b
}

func (b *Breaker) Name() string {
	return b.name
}

func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Breaker) Call(fn func() error) error {
	from, to, err := b.admit()
	b.notify(from, to)
	if err != nil {
		return err
	}

	// A panicking fn is settled as a failure before the panic propagates.
	succeeded := false
	defer func() { b.notify(b.settle(succeeded)) }()

	err = fn()
	succeeded = err == nil
	return err
}

func (b *Breaker) admit() (State, State, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	from := b.state
	switch b.state {
	case Open:
		if b.now().Sub(b.openedAt) < b.cfg.RecoveryTimeout {
			return from, from, ErrOpen
		}
		b.state = HalfOpen
		b.successes = 0
		b.probing = true
	case HalfOpen:
		if b.probing {
			return from, from, ErrOpen
		}
		b.probing = true
	}
	return from, b.state, nil
}

func (b *Breaker) settle(ok bool) (State, State) {
	b.mu.Lock()
	defer b.mu.Unlock()

	from := b.state
	b.probing = false

	if ok {
		b.failures = 0
		if b.state == HalfOpen {
			b.successes++
			if b.successes >= b.cfg.SuccessThreshold {
				b.state = Closed
			}
		}
		return from, b.state
	}

	b.failures++
	if b.state == HalfOpen || b.failures >= b.cfg.FailureThreshold {
		b.state = Open
		b.openedAt = b.now()
	}
	return from, b.state
}

func (b *Breaker) notify(from, to State) {
	if from != to && b.onChange != nil {
		b.onChange(b.name, from, to)
	}
}
