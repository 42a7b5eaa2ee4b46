package domain

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

var (
	ErrPaymentRejected   = errors.New("recipient rejects payments")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidAmount     = errors.New("amount must be a non-negative value")
)

// Account is the native currency balance of an address. Contract accounts can
// be registered as fee directory proxies; RejectsPayments makes every credit
// fail, like a contract without a payable fallback. ApprovalNonce counts the
// operator approvals signed by the address.
type Account struct {
	Address         common.Address
	Balance         *big.Int
	IsContract      bool
	RejectsPayments bool
	ApprovalNonce   uint64
}

func NewAccount(addr common.Address) *Account {
	return &Account{Address: addr, Balance: new(big.Int)}
}

func (a *Account) Credit(amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return ErrInvalidAmount
	}
	if a.RejectsPayments {
		return ErrPaymentRejected
	}
	a.Balance = new(big.Int).Add(a.balance(), amount)
	return nil
}

func (a *Account) Debit(amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return ErrInvalidAmount
	}
	if a.balance().Cmp(amount) < 0 {
		return ErrInsufficientFunds
	}
	a.Balance = new(big.Int).Sub(a.balance(), amount)
	return nil
}

func (a *Account) balance() *big.Int {
	if a.Balance == nil {
		return new(big.Int)
	}
	return a.Balance
}
