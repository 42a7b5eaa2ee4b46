// Package sqlstore implements the repositories on top of a SQL database.
// The same queries serve sqlite and postgres, placeholders are rebound by
// sqlx according to the driver name the db was opened with.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/arkade-os/offerd/internal/core/domain"
	"github.com/arkade-os/offerd/internal/core/ports"
	"github.com/jmoiron/sqlx"
	log "github.com/sirupsen/logrus"
)

const maxRetries = 5

type Options struct {
	// TxOptions are used for read-write transactions.
	TxOptions *sql.TxOptions
	// IsConflict reports whether a failed transaction can be retried.
	IsConflict func(error) bool
}

type repoManager struct {
	db   *sqlx.DB
	opts Options
}

func NewRepoManager(db *sqlx.DB, opts Options) ports.RepoManager {
	if opts.IsConflict == nil {
		opts.IsConflict = func(error) bool { return false }
	}
	return &repoManager{db, opts}
}

func (m *repoManager) View(ctx context.Context, fn ports.TxFunc) error {
	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	//nolint:all
	defer tx.Rollback()

	return fn(ctx, &repositories{tx})
}

// Update retries the whole transaction when the backend reports a conflict.
func (m *repoManager) Update(ctx context.Context, fn ports.TxFunc) error {
	var lastErr error
	for range maxRetries {
		tx, err := m.db.BeginTxx(ctx, m.opts.TxOptions)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}

		if err := fn(ctx, &repositories{tx}); err != nil {
			//nolint:all
			tx.Rollback()

			if m.opts.IsConflict(err) {
				lastErr = err
				log.WithError(err).Debug("write conflict, retrying transaction")
				time.Sleep(100 * time.Millisecond)
				continue
			}
			return err
		}

		if err := tx.Commit(); err != nil {
			if m.opts.IsConflict(err) {
				lastErr = err
				time.Sleep(100 * time.Millisecond)
				continue
			}
			return fmt.Errorf("failed to commit transaction: %w", err)
		}
		return nil
	}

	return lastErr
}

func (m *repoManager) Close() {
	//nolint:all
	m.db.Close()
}

type repositories struct {
	tx *sqlx.Tx
}

func (r *repositories) Nonces() domain.NonceRepository {
	return &nonceRepository{r.tx}
}

func (r *repositories) Fills() domain.FillRepository {
	return &fillRepository{r.tx}
}

func (r *repositories) Settings() domain.SettingsRepository {
	return &settingsRepository{r.tx}
}

func (r *repositories) Accounts() domain.AccountRepository {
	return &accountRepository{r.tx}
}

func (r *repositories) Units() domain.UnitRepository {
	return &unitRepository{r.tx}
}

func (r *repositories) Settlements() domain.SettlementRepository {
	return &settlementRepository{r.tx}
}
