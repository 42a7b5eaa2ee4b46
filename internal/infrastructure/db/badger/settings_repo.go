package badgerdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/arkade-os/offerd/internal/core/domain"
	"github.com/dgraph-io/badger/v4"
	"github.com/timshannon/badgerhold/v4"
)

const settingsKey = "settings"

type settingsRepository struct {
	store *badgerhold.Store
	txn   *badger.Txn
}

func (r *settingsRepository) Get(_ context.Context) (*domain.Settings, error) {
	var settings domain.Settings
	err := r.store.TxGet(r.txn, settingsKey, &settings)
	if errors.Is(err, badgerhold.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return &settings, nil
}

func (r *settingsRepository) Upsert(_ context.Context, settings domain.Settings) error {
	if err := r.store.TxUpsert(r.txn, settingsKey, &settings); err != nil {
		return fmt.Errorf("failed to store settings: %w", err)
	}
	return nil
}
