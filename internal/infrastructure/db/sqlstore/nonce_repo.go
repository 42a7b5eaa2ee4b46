package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/arkade-os/offerd/internal/core/domain"
	"github.com/jmoiron/sqlx"
)

const (
	selectNonce = `SELECT nonce FROM owner_nonce
WHERE asset = ? AND unit_id = ? AND owner = ?`

	incrementNonce = `INSERT INTO owner_nonce (asset, unit_id, owner, nonce) VALUES (?, ?, ?, 1)
ON CONFLICT (asset, unit_id, owner) DO UPDATE SET nonce = owner_nonce.nonce + 1
RETURNING nonce`

	selectFilled = `SELECT filled FROM fill_state
WHERE asset = ? AND unit_id = ? AND owner = ? AND nonce = ?`

	upsertFilled = `INSERT INTO fill_state (asset, unit_id, owner, nonce, filled) VALUES (?, ?, ?, ?, ?)
ON CONFLICT (asset, unit_id, owner, nonce) DO UPDATE SET filled = excluded.filled`
)

type nonceRepository struct {
	tx *sqlx.Tx
}

func (r *nonceRepository) GetNonce(ctx context.Context, key domain.NonceKey) (uint64, error) {
	var nonce int64
	err := r.tx.GetContext(
		ctx, &nonce, r.tx.Rebind(selectNonce),
		key.Asset.Hex(), key.UnitId.Hex(), key.Owner.Hex(),
	)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get nonce: %w", err)
	}
	return toUint64(nonce), nil
}

func (r *nonceRepository) IncrementNonce(ctx context.Context, key domain.NonceKey) (uint64, error) {
	var nonce int64
	if err := r.tx.GetContext(
		ctx, &nonce, r.tx.Rebind(incrementNonce),
		key.Asset.Hex(), key.UnitId.Hex(), key.Owner.Hex(),
	); err != nil {
		return 0, fmt.Errorf("failed to increment nonce: %w", err)
	}
	return toUint64(nonce), nil
}

type fillRepository struct {
	tx *sqlx.Tx
}

func (r *fillRepository) GetFilled(ctx context.Context, key domain.FillKey) (uint64, error) {
	var filled int64
	err := r.tx.GetContext(
		ctx, &filled, r.tx.Rebind(selectFilled),
		key.Asset.Hex(), key.UnitId.Hex(), key.Owner.Hex(), toInt64(key.Nonce),
	)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get fill state: %w", err)
	}
	return toUint64(filled), nil
}

// AddFilled sums in Go, the column holds the uint64 bits in a signed BIGINT
// and sql arithmetic would overflow past math.MaxInt64.
func (r *fillRepository) AddFilled(
	ctx context.Context, key domain.FillKey, amount uint64,
) (uint64, error) {
	filled, err := r.GetFilled(ctx, key)
	if err != nil {
		return 0, err
	}
	total := filled + amount
	if total < filled {
		return 0, fmt.Errorf("fill state overflow for %s", key)
	}
	if _, err := r.tx.ExecContext(
		ctx, r.tx.Rebind(upsertFilled),
		key.Asset.Hex(), key.UnitId.Hex(), key.Owner.Hex(), toInt64(key.Nonce), toInt64(total),
	); err != nil {
		return 0, fmt.Errorf("failed to update fill state: %w", err)
	}
	return total, nil
}
