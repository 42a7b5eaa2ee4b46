package badgerdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/arkade-os/offerd/internal/core/domain"
	"github.com/dgraph-io/badger/v4"
	"github.com/timshannon/badgerhold/v4"
)

type nonceRecord struct {
	Value uint64
}

type fillRecord struct {
	Filled uint64
}

type nonceRepository struct {
	store *badgerhold.Store
	txn   *badger.Txn
}

func (r *nonceRepository) GetNonce(_ context.Context, key domain.NonceKey) (uint64, error) {
	var record nonceRecord
	err := r.store.TxGet(r.txn, key.String(), &record)
	if errors.Is(err, badgerhold.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get nonce: %w", err)
	}
	return record.Value, nil
}

func (r *nonceRepository) IncrementNonce(ctx context.Context, key domain.NonceKey) (uint64, error) {
	nonce, err := r.GetNonce(ctx, key)
	if err != nil {
		return 0, err
	}
	record := nonceRecord{Value: nonce + 1}
	if err := r.store.TxUpsert(r.txn, key.String(), &record); err != nil {
		return 0, fmt.Errorf("failed to store nonce: %w", err)
	}
	return record.Value, nil
}

type fillRepository struct {
	store *badgerhold.Store
	txn   *badger.Txn
}

func (r *fillRepository) GetFilled(_ context.Context, key domain.FillKey) (uint64, error) {
	var record fillRecord
	err := r.store.TxGet(r.txn, key.String(), &record)
	if errors.Is(err, badgerhold.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get fill state: %w", err)
	}
	return record.Filled, nil
}

func (r *fillRepository) AddFilled(
	ctx context.Context, key domain.FillKey, amount uint64,
) (uint64, error) {
	filled, err := r.GetFilled(ctx, key)
	if err != nil {
		return 0, err
	}
	if filled+amount < filled {
		return 0, fmt.Errorf("fill state overflow for %s", key)
	}
	record := fillRecord{Filled: filled + amount}
	if err := r.store.TxUpsert(r.txn, key.String(), &record); err != nil {
		return 0, fmt.Errorf("failed to store fill state: %w", err)
	}
	return record.Filled, nil
}
