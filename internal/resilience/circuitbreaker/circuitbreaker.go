// Package circuitbreaker stops sending work to the database once it keeps
// failing, using github.com/sony/gobreaker.
package circuitbreaker

import (
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"guidepedia/internal/observability/metrics"
)

// Settings configures a Breaker.
type Settings struct {
	Name string
	// HalfOpenRequests may pass while the breaker probes recovery.
	HalfOpenRequests uint32
	// Window is how often closed-state counts are reset.
	Window time.Duration
	// OpenFor is how long the breaker refuses work before probing.
	OpenFor time.Duration
	// The breaker opens once MinRequests were seen in the window and the
	// failure ratio reached FailureRatio.
	MinRequests  uint32
	FailureRatio float64
	// Ignore lists errors that are outcomes, not faults. They count as
	// successes.
	Ignore []error
}

// ForStore returns settings for the entity store: open after five straight
// failures, probe again after thirty seconds.
func ForStore(name string, ignore ...error) Settings {
	return Settings{
		Name:             name,
		HalfOpenRequests: 3,
		Window:           time.Minute,
		OpenFor:          30 * time.Second,
		MinRequests:      5,
		FailureRatio:     1.0,
		Ignore:           ignore,
	}
}

// Breaker guards calls to one dependency.
type Breaker struct {
	cb   *gobreaker.CircuitBreaker
	name string
}

// New builds a closed breaker and publishes its state gauge.
func New(s Settings) *Breaker {
	b := &Breaker{name: s.Name}
	b.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: s.HalfOpenRequests,
		Interval:    s.Window,
		Timeout:     s.OpenFor,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.Requests >= s.MinRequests &&
				float64(c.TotalFailures)/float64(c.Requests) >= s.FailureRatio
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			for _, target := range s.Ignore {
				if errors.Is(err, target) {
					return true
				}
			}
			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state changed",
				slog.String("circuit", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
			publish(name, to)
		},
	})
	publish(s.Name, gobreaker.StateClosed)
	return b
}

func publish(name string, st gobreaker.State) {
	metrics.DBCircuitBreakerState.WithLabelValues(name).Set(float64(st))
}

// Run calls fn unless the breaker is open, in which case it returns
// gobreaker.ErrOpenState without calling fn.
func (b *Breaker) Run(fn func() error) error {
	_, err := b.cb.Execute(func() (any, error) {
		return nil, fn()
	})
	return err
}

func (b *Breaker) State() gobreaker.State { return b.cb.State() }

func (b *Breaker) Name() string { return b.name }
