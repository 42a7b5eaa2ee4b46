package application

import (
	"context"

	"github.com/arkade-os/offerd/internal/core/domain"
	"github.com/arkade-os/offerd/internal/core/ports"
	"github.com/arkade-os/offerd/pkg/errors"
	"github.com/arkade-os/offerd/pkg/salefee"
	"github.com/ethereum/go-ethereum/common"
)

// RateReader is the read capability over the fee rates, it works only as
// long as its holder is a registered proxy of the directory.
type RateReader interface {
	// BuyerFeeBps and SellerFeeBps return the global rates, the address is
	// reserved for per-account tiers.
	BuyerFeeBps(ctx context.Context, buyer common.Address) (uint32, error)
	SellerFeeBps(ctx context.Context, seller common.Address) (uint32, error)
	FeeRecipient(ctx context.Context) (common.Address, error)
}

// FeeDirectory holds the buyer and seller fee rates and the fee recipient.
type FeeDirectory struct {
	repoManager ports.RepoManager
	admin       common.Address
}

func NewFeeDirectory(repoManager ports.RepoManager, admin common.Address) *FeeDirectory {
	return &FeeDirectory{repoManager, admin}
}

func (d *FeeDirectory) RateReader(holder common.Address) RateReader {
	return d.rateReader(holder)
}

func (d *FeeDirectory) SetRates(
	ctx context.Context, caller common.Address, buyerFeeBps, sellerFeeBps uint32,
) error {
	return d.repoManager.Update(ctx, func(ctx context.Context, repos ports.Repositories) error {
		return d.setRates(ctx, repos, caller, buyerFeeBps, sellerFeeBps)
	})
}

func (d *FeeDirectory) SetFeeRecipient(
	ctx context.Context, caller, recipient common.Address,
) error {
	return d.repoManager.Update(ctx, func(ctx context.Context, repos ports.Repositories) error {
		if err := requireAdmin(caller, d.admin); err != nil {
			return err
		}
		settings, err := getSettings(ctx, repos)
		if err != nil {
			return err
		}
		settings.FeeRecipient = recipient
		return saveSettings(ctx, repos, settings)
	})
}

// AddProxy registers a contract address as reader of the rates.
func (d *FeeDirectory) AddProxy(ctx context.Context, caller, proxy common.Address) error {
	return d.repoManager.Update(ctx, func(ctx context.Context, repos ports.Repositories) error {
		return d.addProxy(ctx, repos, caller, proxy)
	})
}

func (d *FeeDirectory) RemoveProxy(ctx context.Context, caller, proxy common.Address) error {
	return d.repoManager.Update(ctx, func(ctx context.Context, repos ports.Repositories) error {
		if err := requireAdmin(caller, d.admin); err != nil {
			return err
		}
		settings, err := getSettings(ctx, repos)
		if err != nil {
			return err
		}
		if !settings.RemoveProxy(proxy) {
			return nil
		}
		return saveSettings(ctx, repos, settings)
	})
}

func (d *FeeDirectory) AddReader(ctx context.Context, caller, reader common.Address) error {
	return d.AddProxy(ctx, caller, reader)
}

func (d *FeeDirectory) RemoveReader(ctx context.Context, caller, reader common.Address) error {
	return d.RemoveProxy(ctx, caller, reader)
}

func (d *FeeDirectory) Settings(ctx context.Context) (*FeeSettings, error) {
	var feeSettings *FeeSettings
	if err := d.repoManager.View(ctx, func(ctx context.Context, repos ports.Repositories) error {
		settings, err := getSettings(ctx, repos)
		if err != nil {
			return err
		}
		feeSettings = &FeeSettings{
			BuyerFeeBps:   settings.BuyerFeeBps,
			SellerFeeBps:  settings.SellerFeeBps,
			FeeRecipient:  settings.FeeRecipient,
			Proxies:       settings.Proxies,
			NonceOperator: settings.NonceOperator,
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return feeSettings, nil
}

func (d *FeeDirectory) setRates(
	ctx context.Context, repos ports.Repositories, caller common.Address,
	buyerFeeBps, sellerFeeBps uint32,
) error {
	if err := requireAdmin(caller, d.admin); err != nil {
		return err
	}
	if err := validateFeeRates(buyerFeeBps, sellerFeeBps); err != nil {
		return err
	}
	settings, err := getSettings(ctx, repos)
	if err != nil {
		return err
	}
	settings.BuyerFeeBps = buyerFeeBps
	settings.SellerFeeBps = sellerFeeBps
	return saveSettings(ctx, repos, settings)
}

func (d *FeeDirectory) addProxy(
	ctx context.Context, repos ports.Repositories, caller, proxy common.Address,
) error {
	if err := requireAdmin(caller, d.admin); err != nil {
		return err
	}
	account, err := repos.Accounts().Get(ctx, proxy)
	if err != nil {
		return err
	}
	if !account.IsContract {
		return errors.NOT_A_CONTRACT.New("address is not a contract address").
			WithMetadata(errors.AddressMetadata{Address: proxy.Hex()})
	}
	settings, err := getSettings(ctx, repos)
	if err != nil {
		return err
	}
	if !settings.AddProxy(proxy) {
		return nil
	}
	return saveSettings(ctx, repos, settings)
}

func (d *FeeDirectory) rateReader(holder common.Address) *rateReader {
	return &rateReader{repoManager: d.repoManager, holder: holder}
}

type feeRates struct {
	buyerFeeBps  uint32
	sellerFeeBps uint32
	feeRecipient common.Address
}

type rateReader struct {
	repoManager ports.RepoManager
	holder      common.Address
}

func (r *rateReader) BuyerFeeBps(ctx context.Context, _ common.Address) (uint32, error) {
	rates, err := r.view(ctx)
	if err != nil {
		return 0, err
	}
	return rates.buyerFeeBps, nil
}

func (r *rateReader) SellerFeeBps(ctx context.Context, _ common.Address) (uint32, error) {
	rates, err := r.view(ctx)
	if err != nil {
		return 0, err
	}
	return rates.sellerFeeBps, nil
}

func (r *rateReader) FeeRecipient(ctx context.Context) (common.Address, error) {
	rates, err := r.view(ctx)
	if err != nil {
		return common.Address{}, err
	}
	return rates.feeRecipient, nil
}

func (r *rateReader) view(ctx context.Context) (*feeRates, error) {
	var rates *feeRates
	if err := r.repoManager.View(ctx, func(ctx context.Context, repos ports.Repositories) error {
		var err error
		rates, err = r.read(ctx, repos)
		return err
	}); err != nil {
		return nil, err
	}
	return rates, nil
}

// read checks the holder is still a registered proxy within the given
// transaction.
func (r *rateReader) read(ctx context.Context, repos ports.Repositories) (*feeRates, error) {
	settings, err := repos.Settings().Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil || !settings.IsProxy(r.holder) {
		return nil, errors.UNAUTHORIZED.New("caller is not the proxy").
			WithMetadata(errors.CallerMetadata{Caller: r.holder.Hex(), Required: "proxy"})
	}
	return &feeRates{
		buyerFeeBps:  settings.BuyerFeeBps,
		sellerFeeBps: settings.SellerFeeBps,
		feeRecipient: settings.FeeRecipient,
	}, nil
}

func validateFeeRates(buyerFeeBps, sellerFeeBps uint32) error {
	for _, bps := range []uint32{buyerFeeBps, sellerFeeBps} {
		if err := salefee.ValidateBps(bps); err != nil {
			return errors.INVALID_FEE_RATE.Wrap(err).
				WithMetadata(errors.FeeRateMetadata{Bps: bps})
		}
	}
	return nil
}

// getSettings never returns nil, missing settings are zero rates with no
// recipient, proxy or operator.
func getSettings(ctx context.Context, repos ports.Repositories) (*domain.Settings, error) {
	settings, err := repos.Settings().Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = domain.NewSettings(0, 0, common.Address{})
	}
	return settings, nil
}
