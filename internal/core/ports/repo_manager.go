package ports

import (
	"context"

	"github.com/arkade-os/offerd/internal/core/domain"
)

// Repositories are scoped to a single transaction.
type Repositories interface {
	Nonces() domain.NonceRepository
	Fills() domain.FillRepository
	Settings() domain.SettingsRepository
	Accounts() domain.AccountRepository
	Units() domain.UnitRepository
	Settlements() domain.SettlementRepository
}

// TxFunc may be invoked more than once if the transaction is retried on a
// write conflict, it must not have side effects outside the given repositories.
type TxFunc func(ctx context.Context, repos Repositories) error

type RepoManager interface {
	// View runs fn in a read-only transaction.
	View(ctx context.Context, fn TxFunc) error
	// Update runs fn in a read-write transaction committed only if fn
	// returns nil.
	Update(ctx context.Context, fn TxFunc) error
	Close()
}
