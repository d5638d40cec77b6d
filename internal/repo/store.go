package repo

import (
	"context"
	"time"
)

const queryTimeout = 3 * time.Second

// Repositories groups the per-entity repositories that share one connection
// or one transaction.
type Repositories interface {
	Products() ProductRepository
	Orders() OrderRepository
	Users() UserRepository
	Movements() MovementRepository
}

// Store is the persistence entry point. Calls made through the embedded
// Repositories run outside any transaction; WithinTx hands fn a set of
// repositories bound to a single transaction that is committed when fn
// returns nil and rolled back otherwise.
type Store interface {
	Repositories
	WithinTx(ctx context.Context, fn func(tx Repositories) error) error
}
