// Package retry runs storage operations again when they fail for a reason
// that a second attempt can fix: an aborted transaction or a database that
// is briefly unreachable.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"guidepedia/internal/observability/metrics"
)

// Policy bounds how often and how fast an operation is retried.
type Policy struct {
	// Attempts counts the first call too; 1 disables retrying.
	Attempts int
	Base     time.Duration
	Max      time.Duration
	// Jitter adds up to this fraction of the delay at random.
	Jitter float64
}

// DBPolicy suits transactions and pings: three attempts within about a second.
func DBPolicy() Policy {
	return Policy{
		Attempts: 3,
		Base:     100 * time.Millisecond,
		Max:      time.Second,
		Jitter:   0.1,
	}
}

// Failure reasons reported by Reason and the db_retries_total metric.
const (
	ReasonSerialization = "serialization_failure"
	ReasonDeadlock      = "deadlock"
	ReasonTooManyConns  = "too_many_connections"
	ReasonStarting      = "cannot_connect_now"
	ReasonTimeout       = "timeout"
	ReasonConnection    = "connection"
)

var pgReasons = map[string]string{
	"40001": ReasonSerialization,
	"40P01": ReasonDeadlock,
	"53300": ReasonTooManyConns,
	"57P03": ReasonStarting,
}

// Reason classifies err. ok is false when a retry cannot help, which
// includes every context error and every business rejection.
func Reason(err error) (reason string, ok bool) {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "", false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		reason, ok = pgReasons[pgErr.Code]
		return reason, ok
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ReasonTimeout, true
	}
	for _, errno := range []syscall.Errno{syscall.ECONNREFUSED, syscall.ECONNRESET, syscall.ETIMEDOUT, syscall.ENETUNREACH} {
		if errors.Is(err, errno) {
			return ReasonConnection, true
		}
	}
	return "", false
}

// Do calls fn until it succeeds, fails for a reason Reason rejects, or the
// policy runs out of attempts. op labels logs and metrics.
func Do(ctx context.Context, p Policy, op string, fn func() error) error {
	attempts := max(p.Attempts, 1)
	delay := p.Base

	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(); err == nil {
			if attempt > 1 {
				slog.DebugContext(ctx, "storage operation succeeded after retry",
					slog.String("op", op), slog.Int("attempt", attempt))
			}
			return nil
		}

		reason, ok := Reason(err)
		if !ok {
			return err
		}
		if attempt == attempts {
			return fmt.Errorf("%s: gave up after %d attempts: %w", op, attempts, err)
		}

		metrics.DBRetriesTotal.WithLabelValues(op, reason).Inc()
		wait := withJitter(delay, p.Jitter)
		slog.WarnContext(ctx, "storage operation failed, retrying",
			slog.String("op", op),
			slog.String("reason", reason),
			slog.Int("attempt", attempt),
			slog.Duration("delay", wait),
			slog.Any("error", err))

		t := time.NewTimer(wait)
		select {
		case <-t.C:
		case <-ctx.Done():
			t.Stop()
			return fmt.Errorf("%s: retry aborted: %w", op, ctx.Err())
		}

		delay = min(delay*2, p.Max)
	}
}

func withJitter(d time.Duration, fraction float64) time.Duration {
	if fraction <= 0 || d <= 0 {
		return d
	}
	fraction = min(fraction, 1)
	return d + time.Duration(rand.Float64()*fraction*float64(d))
}
