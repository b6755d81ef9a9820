package repository

import "context"

// Transactor scopes a unit of work. If fn returns an error every write made
// through the context passed to fn is discarded.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
