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
	selectSettings = `SELECT buyer_fee_bps, seller_fee_bps, fee_recipient, proxies,
nonce_operator, updated_at FROM settings WHERE id = 1`

	upsertSettings = `INSERT INTO settings (
	id, buyer_fee_bps, seller_fee_bps, fee_recipient, proxies, nonce_operator, updated_at
) VALUES (1, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
	buyer_fee_bps = excluded.buyer_fee_bps,
	seller_fee_bps = excluded.seller_fee_bps,
	fee_recipient = excluded.fee_recipient,
	proxies = excluded.proxies,
	nonce_operator = excluded.nonce_operator,
	updated_at = excluded.updated_at`
)

type settingsRow struct {
	BuyerFeeBps   int64  `db:"buyer_fee_bps"`
	SellerFeeBps  int64  `db:"seller_fee_bps"`
	FeeRecipient  string `db:"fee_recipient"`
	Proxies       string `db:"proxies"`
	NonceOperator string `db:"nonce_operator"`
	UpdatedAt     int64  `db:"updated_at"`
}

type settingsRepository struct {
	tx *sqlx.Tx
}

func (r *settingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	var row settingsRow
	err := r.tx.GetContext(ctx, &row, selectSettings)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	return &domain.Settings{
		BuyerFeeBps:   uint32(row.BuyerFeeBps),
		SellerFeeBps:  uint32(row.SellerFeeBps),
		FeeRecipient:  common.HexToAddress(row.FeeRecipient),
		Proxies:       splitAddresses(row.Proxies),
		NonceOperator: common.HexToAddress(row.NonceOperator),
		UpdatedAt:     fromUnixNano(row.UpdatedAt),
	}, nil
}

func (r *settingsRepository) Upsert(ctx context.Context, settings domain.Settings) error {
	if _, err := r.tx.ExecContext(
		ctx, r.tx.Rebind(upsertSettings),
		int64(settings.BuyerFeeBps), int64(settings.SellerFeeBps),
		settings.FeeRecipient.Hex(), joinAddresses(settings.Proxies),
		settings.NonceOperator.Hex(), settings.UpdatedAt.UnixNano(),
	); err != nil {
		return fmt.Errorf("failed to upsert settings: %w", err)
	}
	return nil
}
