// Package resilience holds the fault-tolerance pieces used around the
// PostgreSQL store.
//
// Usage:
//
//	cb := circuitbreaker.New(circuitbreaker.ForStore("postgres", entity.ErrNotFound))
//	err := retry.Do(ctx, retry.DBPolicy(), "tx", func() error {
//	    return cb.Run(runTransaction)
//	})
package resilience
