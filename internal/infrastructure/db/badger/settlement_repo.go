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

type settlementDTO struct {
	domain.Settlement
	UnitKey   string
	Timestamp int64
}

type settlementRepository struct {
	store *badgerhold.Store
	txn   *badger.Txn
}

func (r *settlementRepository) Add(_ context.Context, settlement domain.Settlement) error {
	dto := settlementDTO{
		Settlement: settlement,
		UnitKey:    unitKey(settlement.Asset, settlement.UnitId),
		Timestamp:  settlement.CreatedAt.UnixNano(),
	}
	if err := r.store.TxInsert(r.txn, settlement.Id, &dto); err != nil {
		return fmt.Errorf("failed to add settlement %s: %w", settlement.Id, err)
	}
	return nil
}

func (r *settlementRepository) Get(_ context.Context, id string) (*domain.Settlement, error) {
	var dto settlementDTO
	err := r.store.TxGet(r.txn, id, &dto)
	if errors.Is(err, badgerhold.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settlement %s: %w", id, err)
	}
	settlement := dto.toDomain()
	return &settlement, nil
}

func (r *settlementRepository) List(
	_ context.Context, asset common.Address, unitId common.Hash,
) ([]domain.Settlement, error) {
	var dtos []settlementDTO
	query := badgerhold.Where("UnitKey").Eq(unitKey(asset, unitId)).SortBy("Timestamp")
	if err := r.store.TxFind(r.txn, &dtos, query); err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}

	settlements := make([]domain.Settlement, 0, len(dtos))
	for _, dto := range dtos {
		settlements = append(settlements, dto.toDomain())
	}
	return settlements, nil
}

func (d settlementDTO) toDomain() domain.Settlement {
	settlement := d.Settlement
	settlement.PricePerUnit = orZero(settlement.PricePerUnit)
	settlement.GrossPayment = orZero(settlement.GrossPayment)
	for i := range settlement.Payouts {
		settlement.Payouts[i].Amount = orZero(settlement.Payouts[i].Amount)
	}
	return settlement
}
