package application

import (
	"context"
	"math/big"

	"github.com/arkade-os/offerd/internal/core/domain"
	"github.com/arkade-os/offerd/internal/core/ports"
	"github.com/arkade-os/offerd/pkg/errors"
	"github.com/ethereum/go-ethereum/common"
)

// Wallet keeps the native currency balances.
type Wallet struct {
	repoManager ports.RepoManager
	admin       common.Address
}

func NewWallet(repoManager ports.RepoManager, admin common.Address) *Wallet {
	return &Wallet{repoManager, admin}
}

func (w *Wallet) Balance(ctx context.Context, addr common.Address) (*big.Int, error) {
	var balance *big.Int
	if err := w.repoManager.View(ctx, func(ctx context.Context, repos ports.Repositories) error {
		account, err := repos.Accounts().Get(ctx, addr)
		if err != nil {
			return err
		}
		balance = account.Balance
		return nil
	}); err != nil {
		return nil, err
	}
	return balance, nil
}

// Deposit credits funds coming from outside the marketplace and returns
// the new balance.
func (w *Wallet) Deposit(
	ctx context.Context, caller, addr common.Address, amount *big.Int,
) (*big.Int, error) {
	if amount == nil || amount.Sign() <= 0 {
		return nil, invalidArgument("deposit amount must be greater than zero")
	}

	var balance *big.Int
	if err := w.repoManager.Update(ctx, func(ctx context.Context, repos ports.Repositories) error {
		if err := requireAdmin(caller, w.admin); err != nil {
			return err
		}
		account, err := repos.Accounts().Get(ctx, addr)
		if err != nil {
			return err
		}
		if err := w.credit(account, amount); err != nil {
			return err
		}
		balance = account.Balance
		return repos.Accounts().Upsert(ctx, *account)
	}); err != nil {
		return nil, err
	}
	return balance, nil
}

func (w *Wallet) RegisterContract(ctx context.Context, caller, addr common.Address) error {
	return w.repoManager.Update(ctx, func(ctx context.Context, repos ports.Repositories) error {
		return w.registerContract(ctx, repos, caller, addr)
	})
}

// SetRejectsPayments makes every credit to addr fail, or lifts the flag.
func (w *Wallet) SetRejectsPayments(
	ctx context.Context, caller, addr common.Address, rejects bool,
) error {
	return w.repoManager.Update(ctx, func(ctx context.Context, repos ports.Repositories) error {
		if err := requireAdmin(caller, w.admin); err != nil {
			return err
		}
		account, err := repos.Accounts().Get(ctx, addr)
		if err != nil {
			return err
		}
		account.RejectsPayments = rejects
		return repos.Accounts().Upsert(ctx, *account)
	})
}

func (w *Wallet) registerContract(
	ctx context.Context, repos ports.Repositories, caller, addr common.Address,
) error {
	if err := requireAdmin(caller, w.admin); err != nil {
		return err
	}
	account, err := repos.Accounts().Get(ctx, addr)
	if err != nil {
		return err
	}
	if account.IsContract {
		return nil
	}
	account.IsContract = true
	return repos.Accounts().Upsert(ctx, *account)
}

// pay debits the gross payment from payer and credits every payout in
// order. The first failure aborts, the caller's transaction undoes what
// was already paid.
func (w *Wallet) pay(
	ctx context.Context, repos ports.Repositories, payer common.Address,
	amount *big.Int, payouts []domain.Payout,
) error {
	account, err := repos.Accounts().Get(ctx, payer)
	if err != nil {
		return err
	}
	if err := account.Debit(amount); err != nil {
		return errors.INSUFFICIENT_FUNDS.Wrap(err).WithMetadata(errors.FundsMetadata{
			Account:  payer.Hex(),
			Balance:  account.Balance.String(),
			Required: amount.String(),
		})
	}
	if err := repos.Accounts().Upsert(ctx, *account); err != nil {
		return err
	}

	for _, payout := range payouts {
		recipient, err := repos.Accounts().Get(ctx, payout.Recipient)
		if err != nil {
			return err
		}
		if err := w.credit(recipient, payout.Amount); err != nil {
			return err
		}
		if err := repos.Accounts().Upsert(ctx, *recipient); err != nil {
			return err
		}
	}
	return nil
}

func (w *Wallet) credit(account *domain.Account, amount *big.Int) error {
	if err := account.Credit(amount); err != nil {
		return errors.PAYMENT_REJECTED.Wrap(err).WithMetadata(errors.PaymentMetadata{
			Recipient: account.Address.Hex(),
			Amount:    amount.String(),
		})
	}
	return nil
}
