package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/arkade-os/offerd/internal/core/domain"
	"github.com/ethereum/go-ethereum/common"
	"github.com/jmoiron/sqlx"
)

const (
	selectUnitClass = `SELECT creator, supply, uri, created_at FROM unit_class
WHERE asset = ? AND unit_id = ?`

	selectRoyalties = `SELECT recipient, bps FROM royalty
WHERE asset = ? AND unit_id = ? ORDER BY position`

	insertUnitClass = `INSERT INTO unit_class (asset, unit_id, creator, supply, uri, created_at)
VALUES (?, ?, ?, ?, ?, ?)`

	insertRoyalty = `INSERT INTO royalty (asset, unit_id, position, recipient, bps)
VALUES (?, ?, ?, ?, ?)`

	selectHolding = `SELECT amount FROM holding WHERE asset = ? AND unit_id = ? AND owner = ?`

	upsertHolding = `INSERT INTO holding (asset, unit_id, owner, amount) VALUES (?, ?, ?, ?)
ON CONFLICT (asset, unit_id, owner) DO UPDATE SET amount = excluded.amount`

	selectApproval = `SELECT approved FROM approval WHERE asset = ? AND owner = ? AND operator = ?`

	upsertApproval = `INSERT INTO approval (asset, owner, operator, approved) VALUES (?, ?, ?, ?)
ON CONFLICT (asset, owner, operator) DO UPDATE SET approved = excluded.approved`
)

type unitClassRow struct {
	Creator   string `db:"creator"`
	Supply    int64  `db:"supply"`
	Uri       string `db:"uri"`
	CreatedAt int64  `db:"created_at"`
}

type royaltyRow struct {
	Recipient string `db:"recipient"`
	Bps       int64  `db:"bps"`
}

type unitRepository struct {
	tx *sqlx.Tx
}

func (r *unitRepository) GetUnitClass(
	ctx context.Context, asset common.Address, unitId common.Hash,
) (*domain.UnitClass, error) {
	var row unitClassRow
	err := r.tx.GetContext(ctx, &row, r.tx.Rebind(selectUnitClass), asset.Hex(), unitId.Hex())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get unit class: %w", err)
	}

	var royaltyRows []royaltyRow
	if err := r.tx.SelectContext(
		ctx, &royaltyRows, r.tx.Rebind(selectRoyalties), asset.Hex(), unitId.Hex(),
	); err != nil {
		return nil, fmt.Errorf("failed to get royalties: %w", err)
	}

	royalties := make([]domain.RoyaltyFee, 0, len(royaltyRows))
	for _, royalty := range royaltyRows {
		royalties = append(royalties, domain.RoyaltyFee{
			Recipient: common.HexToAddress(royalty.Recipient),
			Bps:       uint32(royalty.Bps),
		})
	}

	return &domain.UnitClass{
		Asset:     asset,
		UnitId:    unitId,
		Creator:   common.HexToAddress(row.Creator),
		Supply:    toUint64(row.Supply),
		Uri:       row.Uri,
		Royalties: royalties,
		CreatedAt: fromUnixNano(row.CreatedAt),
	}, nil
}

func (r *unitRepository) AddUnitClass(ctx context.Context, unit domain.UnitClass) error {
	if _, err := r.tx.ExecContext(
		ctx, r.tx.Rebind(insertUnitClass),
		unit.Asset.Hex(), unit.UnitId.Hex(), unit.Creator.Hex(),
		toInt64(unit.Supply), unit.Uri, unit.CreatedAt.UnixNano(),
	); err != nil {
		return fmt.Errorf("failed to add unit class: %w", err)
	}

	for i, royalty := range unit.Royalties {
		if _, err := r.tx.ExecContext(
			ctx, r.tx.Rebind(insertRoyalty),
			unit.Asset.Hex(), unit.UnitId.Hex(), i, royalty.Recipient.Hex(), int64(royalty.Bps),
		); err != nil {
			return fmt.Errorf("failed to add royalty: %w", err)
		}
	}
	return nil
}

func (r *unitRepository) GetBalance(
	ctx context.Context, asset common.Address, unitId common.Hash, owner common.Address,
) (uint64, error) {
	var amount int64
	err := r.tx.GetContext(
		ctx, &amount, r.tx.Rebind(selectHolding), asset.Hex(), unitId.Hex(), owner.Hex(),
	)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}
	return toUint64(amount), nil
}

func (r *unitRepository) SetBalance(ctx context.Context, holding domain.Holding) error {
	if _, err := r.tx.ExecContext(
		ctx, r.tx.Rebind(upsertHolding),
		holding.Asset.Hex(), holding.UnitId.Hex(), holding.Owner.Hex(), toInt64(holding.Amount),
	); err != nil {
		return fmt.Errorf("failed to set balance: %w", err)
	}
	return nil
}

func (r *unitRepository) IsApprovedForAll(
	ctx context.Context, asset common.Address, owner, operator common.Address,
) (bool, error) {
	var approved bool
	err := r.tx.GetContext(
		ctx, &approved, r.tx.Rebind(selectApproval), asset.Hex(), owner.Hex(), operator.Hex(),
	)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get approval: %w", err)
	}
	return approved, nil
}

func (r *unitRepository) SetApprovalForAll(
	ctx context.Context, asset common.Address, owner, operator common.Address, approved bool,
) error {
	if _, err := r.tx.ExecContext(
		ctx, r.tx.Rebind(upsertApproval), asset.Hex(), owner.Hex(), operator.Hex(), approved,
	); err != nil {
		return fmt.Errorf("failed to set approval: %w", err)
	}
	return nil
}
