package badgerdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/arkade-os/offerd/internal/core/domain"
	"github.com/dgraph-io/badger/v4"
	"github.com/ethereum/go-ethereum/common"
	"github.com/timshannon/badgerhold/v4"
)

type holdingRecord struct {
	Amount uint64
}

type approvalRecord struct {
	Approved bool
}

type unitRepository struct {
	store *badgerhold.Store
	txn   *badger.Txn
}

func (r *unitRepository) GetUnitClass(
	_ context.Context, asset common.Address, unitId common.Hash,
) (*domain.UnitClass, error) {
	var unit domain.UnitClass
	err := r.store.TxGet(r.txn, unitKey(asset, unitId), &unit)
	if errors.Is(err, badgerhold.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get unit class: %w", err)
	}
	return &unit, nil
}

func (r *unitRepository) AddUnitClass(_ context.Context, unit domain.UnitClass) error {
	err := r.store.TxInsert(r.txn, unitKey(unit.Asset, unit.UnitId), &unit)
	if errors.Is(err, badgerhold.ErrKeyExists) {
		return fmt.Errorf("unit class %s already exists", unitKey(unit.Asset, unit.UnitId))
	}
	return err
}

func (r *unitRepository) GetBalance(
	_ context.Context, asset common.Address, unitId common.Hash, owner common.Address,
) (uint64, error) {
	var record holdingRecord
	key := fmt.Sprintf("%s:%s", unitKey(asset, unitId), owner.Hex())
	err := r.store.TxGet(r.txn, key, &record)
	if errors.Is(err, badgerhold.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}
	return record.Amount, nil
}

func (r *unitRepository) SetBalance(_ context.Context, holding domain.Holding) error {
	key := fmt.Sprintf("%s:%s", unitKey(holding.Asset, holding.UnitId), holding.Owner.Hex())
	return r.store.TxUpsert(r.txn, key, &holdingRecord{holding.Amount})
}

func (r *unitRepository) IsApprovedForAll(
	_ context.Context, asset common.Address, owner, operator common.Address,
) (bool, error) {
	var record approvalRecord
	err := r.store.TxGet(r.txn, approvalKey(asset, owner, operator), &record)
	if errors.Is(err, badgerhold.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get approval: %w", err)
	}
	return record.Approved, nil
}

func (r *unitRepository) SetApprovalForAll(
	_ context.Context, asset common.Address, owner, operator common.Address, approved bool,
) error {
	return r.store.TxUpsert(
		r.txn, approvalKey(asset, owner, operator), &approvalRecord{approved},
	)
}

func unitKey(asset common.Address, unitId common.Hash) string {
	return fmt.Sprintf("%s:%s", asset.Hex(), unitId.Hex())
}

func approvalKey(asset common.Address, owner, operator common.Address) string {
	return fmt.Sprintf("%s:%s:%s", asset.Hex(), owner.Hex(), operator.Hex())
}
