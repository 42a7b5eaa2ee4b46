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
	selectAccount = `SELECT balance, is_contract, rejects_payments, approval_nonce
FROM account WHERE address = ?`

	upsertAccount = `INSERT INTO account (address, balance, is_contract, rejects_payments, approval_nonce)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (address) DO UPDATE SET
	balance = excluded.balance,
	is_contract = excluded.is_contract,
	rejects_payments = excluded.rejects_payments,
	approval_nonce = excluded.approval_nonce`
)

type accountRow struct {
	Balance         string `db:"balance"`
	IsContract      bool   `db:"is_contract"`
	RejectsPayments bool   `db:"rejects_payments"`
	ApprovalNonce   int64  `db:"approval_nonce"`
}

type accountRepository struct {
	tx *sqlx.Tx
}

func (r *accountRepository) Get(ctx context.Context, addr common.Address) (*domain.Account, error) {
	var row accountRow
	err := r.tx.GetContext(ctx, &row, r.tx.Rebind(selectAccount), addr.Hex())
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewAccount(addr), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account %s: %w", addr.Hex(), err)
	}

	balance, err := parseBigInt(row.Balance)
	if err != nil {
		return nil, fmt.Errorf("account %s: %w", addr.Hex(), err)
	}
	return &domain.Account{
		Address:         addr,
		Balance:         balance,
		IsContract:      row.IsContract,
		RejectsPayments: row.RejectsPayments,
		ApprovalNonce:   toUint64(row.ApprovalNonce),
	}, nil
}

func (r *accountRepository) Upsert(ctx context.Context, account domain.Account) error {
	if _, err := r.tx.ExecContext(
		ctx, r.tx.Rebind(upsertAccount),
		account.Address.Hex(), bigIntString(account.Balance),
		account.IsContract, account.RejectsPayments, toInt64(account.ApprovalNonce),
	); err != nil {
		return fmt.Errorf("failed to upsert account %s: %w", account.Address.Hex(), err)
	}
	return nil
}
