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
	settlementColumns = `id, asset, unit_id, seller, buyer, amount, offered_amount, filled_amount,
price_per_unit, gross_payment, nonce, nonce_advanced, created_at`

	insertSettlement = `INSERT INTO settlement (` + settlementColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	insertPayout = `INSERT INTO payout (settlement_id, position, kind, recipient, amount)
VALUES (?, ?, ?, ?, ?)`

	selectSettlement = `SELECT ` + settlementColumns + ` FROM settlement WHERE id = ?`

	selectSettlementsByUnit = `SELECT ` + settlementColumns + ` FROM settlement
WHERE asset = ? AND unit_id = ? ORDER BY created_at, id`

	selectPayouts = `SELECT kind, recipient, amount FROM payout
WHERE settlement_id = ? ORDER BY position`
)

type settlementRow struct {
	Id            string `db:"id"`
	Asset         string `db:"asset"`
	UnitId        string `db:"unit_id"`
	Seller        string `db:"seller"`
	Buyer         string `db:"buyer"`
	Amount        int64  `db:"amount"`
	OfferedAmount int64  `db:"offered_amount"`
	FilledAmount  int64  `db:"filled_amount"`
	PricePerUnit  string `db:"price_per_unit"`
	GrossPayment  string `db:"gross_payment"`
	Nonce         int64  `db:"nonce"`
	NonceAdvanced bool   `db:"nonce_advanced"`
	CreatedAt     int64  `db:"created_at"`
}

type payoutRow struct {
	Kind      string `db:"kind"`
	Recipient string `db:"recipient"`
	Amount    string `db:"amount"`
}

type settlementRepository struct {
	tx *sqlx.Tx
}

func (r *settlementRepository) Add(ctx context.Context, s domain.Settlement) error {
	if _, err := r.tx.ExecContext(
		ctx, r.tx.Rebind(insertSettlement),
		s.Id, s.Asset.Hex(), s.UnitId.Hex(), s.Seller.Hex(), s.Buyer.Hex(),
		toInt64(s.Amount), toInt64(s.OfferedAmount), toInt64(s.FilledAmount),
		bigIntString(s.PricePerUnit), bigIntString(s.GrossPayment),
		toInt64(s.Nonce), s.NonceAdvanced, s.CreatedAt.UnixNano(),
	); err != nil {
		return fmt.Errorf("failed to add settlement %s: %w", s.Id, err)
	}

	for i, payout := range s.Payouts {
		if _, err := r.tx.ExecContext(
			ctx, r.tx.Rebind(insertPayout),
			s.Id, i, string(payout.Kind), payout.Recipient.Hex(), bigIntString(payout.Amount),
		); err != nil {
			return fmt.Errorf("failed to add payout of settlement %s: %w", s.Id, err)
		}
	}
	return nil
}

func (r *settlementRepository) Get(ctx context.Context, id string) (*domain.Settlement, error) {
	var row settlementRow
	err := r.tx.GetContext(ctx, &row, r.tx.Rebind(selectSettlement), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settlement %s: %w", id, err)
	}

	settlement, err := r.toDomain(ctx, row)
	if err != nil {
		return nil, err
	}
	return settlement, nil
}

func (r *settlementRepository) List(
	ctx context.Context, asset common.Address, unitId common.Hash,
) ([]domain.Settlement, error) {
	var rows []settlementRow
	if err := r.tx.SelectContext(
		ctx, &rows, r.tx.Rebind(selectSettlementsByUnit), asset.Hex(), unitId.Hex(),
	); err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}

	settlements := make([]domain.Settlement, 0, len(rows))
	for _, row := range rows {
		settlement, err := r.toDomain(ctx, row)
		if err != nil {
			return nil, err
		}
		settlements = append(settlements, *settlement)
	}
	return settlements, nil
}

func (r *settlementRepository) toDomain(
	ctx context.Context, row settlementRow,
) (*domain.Settlement, error) {
	price, err := parseBigInt(row.PricePerUnit)
	if err != nil {
		return nil, fmt.Errorf("settlement %s: %w", row.Id, err)
	}
	gross, err := parseBigInt(row.GrossPayment)
	if err != nil {
		return nil, fmt.Errorf("settlement %s: %w", row.Id, err)
	}

	var payoutRows []payoutRow
	if err := r.tx.SelectContext(
		ctx, &payoutRows, r.tx.Rebind(selectPayouts), row.Id,
	); err != nil {
		return nil, fmt.Errorf("failed to get payouts of settlement %s: %w", row.Id, err)
	}
	payouts := make([]domain.Payout, 0, len(payoutRows))
	for _, p := range payoutRows {
		amount, err := parseBigInt(p.Amount)
		if err != nil {
			return nil, fmt.Errorf("settlement %s: %w", row.Id, err)
		}
		payouts = append(payouts, domain.Payout{
			Kind:      domain.PayoutKind(p.Kind),
			Recipient: common.HexToAddress(p.Recipient),
			Amount:    amount,
		})
	}

	return &domain.Settlement{
		Id:            row.Id,
		Asset:         common.HexToAddress(row.Asset),
		UnitId:        common.HexToHash(row.UnitId),
		Seller:        common.HexToAddress(row.Seller),
		Buyer:         common.HexToAddress(row.Buyer),
		Amount:        toUint64(row.Amount),
		OfferedAmount: toUint64(row.OfferedAmount),
		FilledAmount:  toUint64(row.FilledAmount),
		PricePerUnit:  price,
		GrossPayment:  gross,
		Nonce:         toUint64(row.Nonce),
		NonceAdvanced: row.NonceAdvanced,
		Payouts:       payouts,
		CreatedAt:     fromUnixNano(row.CreatedAt),
	}, nil
}
