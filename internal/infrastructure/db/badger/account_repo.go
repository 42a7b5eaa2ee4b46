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

type accountRepository struct {
	store *badgerhold.Store
	txn   *badger.Txn
}

func (r *accountRepository) Get(_ context.Context, addr common.Address) (*domain.Account, error) {
	var account domain.Account
	err := r.store.TxGet(r.txn, addr.Hex(), &account)
	if errors.Is(err, badgerhold.ErrNotFound) {
		return domain.NewAccount(addr), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account %s: %w", addr.Hex(), err)
	}
	account.Address = addr
	account.Balance = orZero(account.Balance)
	return &account, nil
}

func (r *accountRepository) Upsert(_ context.Context, account domain.Account) error {
	if err := r.store.TxUpsert(r.txn, account.Address.Hex(), &account); err != nil {
		return fmt.Errorf("failed to store account %s: %w", account.Address.Hex(), err)
	}
	return nil
}
