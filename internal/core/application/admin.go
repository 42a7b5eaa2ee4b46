package application

import (
	"context"
	"math/big"

	"github.com/arkade-os/offerd/internal/core/ports"
	"github.com/ethereum/go-ethereum/common"
	log "github.com/sirupsen/logrus"
)

// AdminService performs the administrative calls as the configured admin.
type AdminService interface {
	GetFeeSettings(ctx context.Context) (*FeeSettings, error)
	SetRates(ctx context.Context, buyerFeeBps, sellerFeeBps uint32) error
	SetFeeRecipient(ctx context.Context, recipient common.Address) error
	AddProxy(ctx context.Context, proxy common.Address) error
	RemoveProxy(ctx context.Context, proxy common.Address) error
	SetOperator(ctx context.Context, operator common.Address) error
	RegisterContract(ctx context.Context, addr common.Address) error
	SetRejectsPayments(ctx context.Context, addr common.Address, rejects bool) error
	Deposit(ctx context.Context, addr common.Address, amount *big.Int) (*big.Int, error)
}

type adminService struct {
	admin  common.Address
	nonces *NonceRegistry
	fees   *FeeDirectory
	wallet *Wallet
}

func NewAdminService(repoManager ports.RepoManager, admin common.Address) AdminService {
	return &adminService{
		admin:  admin,
		nonces: NewNonceRegistry(repoManager, admin),
		fees:   NewFeeDirectory(repoManager, admin),
		wallet: NewWallet(repoManager, admin),
	}
}

func (a *adminService) GetFeeSettings(ctx context.Context) (*FeeSettings, error) {
	return a.fees.Settings(ctx)
}

func (a *adminService) SetRates(ctx context.Context, buyerFeeBps, sellerFeeBps uint32) error {
	if err := a.fees.SetRates(ctx, a.admin, buyerFeeBps, sellerFeeBps); err != nil {
		return err
	}
	log.Infof("updated fee rates (buyer %d bps, seller %d bps)", buyerFeeBps, sellerFeeBps)
	return nil
}

func (a *adminService) SetFeeRecipient(ctx context.Context, recipient common.Address) error {
	if err := a.fees.SetFeeRecipient(ctx, a.admin, recipient); err != nil {
		return err
	}
	log.Infof("updated fee recipient to %s", recipient.Hex())
	return nil
}

func (a *adminService) AddProxy(ctx context.Context, proxy common.Address) error {
	return a.fees.AddProxy(ctx, a.admin, proxy)
}

func (a *adminService) RemoveProxy(ctx context.Context, proxy common.Address) error {
	return a.fees.RemoveProxy(ctx, a.admin, proxy)
}

func (a *adminService) SetOperator(ctx context.Context, operator common.Address) error {
	if err := a.nonces.SetOperator(ctx, a.admin, operator); err != nil {
		return err
	}
	log.Infof("updated nonce operator to %s", operator.Hex())
	return nil
}

func (a *adminService) RegisterContract(ctx context.Context, addr common.Address) error {
	return a.wallet.RegisterContract(ctx, a.admin, addr)
}

func (a *adminService) SetRejectsPayments(
	ctx context.Context, addr common.Address, rejects bool,
) error {
	return a.wallet.SetRejectsPayments(ctx, a.admin, addr, rejects)
}

func (a *adminService) Deposit(
	ctx context.Context, addr common.Address, amount *big.Int,
) (*big.Int, error) {
	return a.wallet.Deposit(ctx, a.admin, addr, amount)
}
