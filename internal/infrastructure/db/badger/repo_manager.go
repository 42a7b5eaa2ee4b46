package badgerdb

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/arkade-os/offerd/internal/core/domain"
	"github.com/arkade-os/offerd/internal/core/ports"
	"github.com/dgraph-io/badger/v4"
	log "github.com/sirupsen/logrus"
	"github.com/timshannon/badgerhold/v4"
)

const storeDir = "store"

type repoManager struct {
	store *badgerhold.Store
}

// NewRepoManager expects the base directory and an optional badger logger.
// An empty base directory makes the store in-memory.
func NewRepoManager(config ...interface{}) (ports.RepoManager, error) {
	if len(config) != 2 {
		return nil, fmt.Errorf("invalid config")
	}
	baseDir, ok := config[0].(string)
	if !ok {
		return nil, fmt.Errorf("invalid base directory")
	}
	var logger badger.Logger
	if config[1] != nil {
		logger, ok = config[1].(badger.Logger)
		if !ok {
			return nil, fmt.Errorf("invalid logger")
		}
	}

	var dir string
	if len(baseDir) > 0 {
		dir = filepath.Join(baseDir, storeDir)
	}
	store, err := createDB(dir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %s", err)
	}

	return &repoManager{store}, nil
}

func (m *repoManager) View(ctx context.Context, fn ports.TxFunc) error {
	return m.store.Badger().View(func(txn *badger.Txn) error {
		return fn(ctx, m.repositories(txn))
	})
}

func (m *repoManager) Update(ctx context.Context, fn ports.TxFunc) error {
	err := m.update(ctx, fn)
	if errors.Is(err, badger.ErrConflict) {
		attempts := 1
		for errors.Is(err, badger.ErrConflict) && attempts <= maxRetries {
			log.Debugf("write conflict, retrying transaction (attempt %d)", attempts)
			time.Sleep(100 * time.Millisecond)
			err = m.update(ctx, fn)
			attempts++
		}
	}
	return err
}

func (m *repoManager) Close() {
	// nolint:all
	m.store.Close()
}

func (m *repoManager) update(ctx context.Context, fn ports.TxFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return m.store.Badger().Update(func(txn *badger.Txn) error {
		return fn(ctx, m.repositories(txn))
	})
}

func (m *repoManager) repositories(txn *badger.Txn) ports.Repositories {
	return &repositories{store: m.store, txn: txn}
}

type repositories struct {
	store *badgerhold.Store
	txn   *badger.Txn
}

func (r *repositories) Nonces() domain.NonceRepository {
	return &nonceRepository{r.store, r.txn}
}

func (r *repositories) Fills() domain.FillRepository {
	return &fillRepository{r.store, r.txn}
}

func (r *repositories) Settings() domain.SettingsRepository {
	return &settingsRepository{r.store, r.txn}
}

func (r *repositories) Accounts() domain.AccountRepository {
	return &accountRepository{r.store, r.txn}
}

func (r *repositories) Units() domain.UnitRepository {
	return &unitRepository{r.store, r.txn}
}

func (r *repositories) Settlements() domain.SettlementRepository {
	return &settlementRepository{r.store, r.txn}
}
