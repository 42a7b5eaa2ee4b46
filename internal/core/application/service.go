package application

import (
	"context"
	"fmt"
	"math/big"

	"github.com/arkade-os/offerd/internal/core/domain"
	"github.com/arkade-os/offerd/internal/core/ports"
	"github.com/arkade-os/offerd/pkg/errors"
	"github.com/arkade-os/offerd/pkg/order"
	"github.com/arkade-os/offerd/pkg/salefee"
	"github.com/ethereum/go-ethereum/common"
	log "github.com/sirupsen/logrus"
)

type service struct {
	repoManager ports.RepoManager
	locker      ports.KeyLocker
	verifier    ports.SignatureVerifier

	nonces *NonceRegistry
	fees   *FeeDirectory
	ledger *AssetLedger
	wallet *Wallet

	admin      common.Address
	exchange   common.Address
	mintSigner common.Address

	buyerFeeBps  uint32
	sellerFeeBps uint32
	feeRecipient common.Address
}

// NewService returns the settlement service acting as exchange. The given
// fee rates and recipient are applied at start only if none are stored.
func NewService(
	repoManager ports.RepoManager, locker ports.KeyLocker, verifier ports.SignatureVerifier,
	admin, exchange, mintSigner common.Address,
	buyerFeeBps, sellerFeeBps uint32, feeRecipient common.Address,
) (Service, error) {
	if err := validateFeeRates(buyerFeeBps, sellerFeeBps); err != nil {
		return nil, err
	}
	if exchange == (common.Address{}) {
		return nil, fmt.Errorf("missing exchange address")
	}
	if exchange == admin {
		return nil, fmt.Errorf("exchange and admin addresses must differ")
	}

	return &service{
		repoManager:  repoManager,
		locker:       locker,
		verifier:     verifier,
		nonces:       NewNonceRegistry(repoManager, admin),
		fees:         NewFeeDirectory(repoManager, admin),
		ledger:       NewAssetLedger(repoManager, verifier, mintSigner),
		wallet:       NewWallet(repoManager, admin),
		admin:        admin,
		exchange:     exchange,
		mintSigner:   mintSigner,
		buyerFeeBps:  buyerFeeBps,
		sellerFeeBps: sellerFeeBps,
		feeRecipient: feeRecipient,
	}, nil
}

// Start wires the exchange into the directory and the registry, like the
// deployment of the contracts does: it becomes a contract account, the
// nonce operator and a fee proxy.
func (s *service) Start() error {
	ctx := context.Background()

	if err := s.repoManager.Update(ctx, func(ctx context.Context, repos ports.Repositories) error {
		settings, err := repos.Settings().Get(ctx)
		if err != nil {
			return err
		}
		if settings == nil {
			log.Infof(
				"applying initial fee rates (buyer %d bps, seller %d bps)",
				s.buyerFeeBps, s.sellerFeeBps,
			)
			settings = domain.NewSettings(s.buyerFeeBps, s.sellerFeeBps, s.feeRecipient)
			if err := saveSettings(ctx, repos, settings); err != nil {
				return err
			}
		}

		if err := s.wallet.registerContract(ctx, repos, s.admin, s.exchange); err != nil {
			return err
		}
		if err := s.nonces.setOperator(ctx, repos, s.admin, s.exchange); err != nil {
			return err
		}
		return s.fees.addProxy(ctx, repos, s.admin, s.exchange)
	}); err != nil {
		return fmt.Errorf("failed to register exchange %s: %w", s.exchange.Hex(), err)
	}

	log.Debugf("exchange %s registered as nonce operator and fee proxy", s.exchange.Hex())
	return nil
}

func (s *service) Stop() {
	s.locker.Close()
	log.Debug("closed key locker")
	s.repoManager.Close()
	log.Debug("closed connection to db")
}

func (s *service) GetInfo(ctx context.Context) (*ServiceInfo, error) {
	reader := s.fees.RateReader(s.exchange)
	buyerFeeBps, err := reader.BuyerFeeBps(ctx, common.Address{})
	if err != nil {
		return nil, err
	}
	sellerFeeBps, err := reader.SellerFeeBps(ctx, common.Address{})
	if err != nil {
		return nil, err
	}
	feeRecipient, err := reader.FeeRecipient(ctx)
	if err != nil {
		return nil, err
	}
	return &ServiceInfo{
		Exchange:     s.exchange,
		MintSigner:   s.mintSigner,
		BuyerFeeBps:  buyerFeeBps,
		SellerFeeBps: sellerFeeBps,
		FeeRecipient: feeRecipient,
	}, nil
}

func (s *service) Buy(ctx context.Context, req BuyRequest) (*domain.Settlement, error) {
	if req.BuyingAmount == 0 {
		return nil, invalidArgument("buying amount must be greater than zero")
	}
	if req.GrossPayment == nil || req.GrossPayment.Sign() < 0 {
		return nil, invalidArgument("gross payment must be a non-negative amount")
	}

	key := domain.NonceKey{Asset: req.Asset, UnitId: req.UnitId, Owner: req.Owner}
	unlock, err := s.locker.Lock(ctx, key.String())
	if err != nil {
		return nil, fmt.Errorf("failed to lock %s: %w", key, err)
	}
	defer unlock()

	var settlement *domain.Settlement
	if err := s.repoManager.Update(ctx, func(ctx context.Context, repos ports.Repositories) error {
		var err error
		settlement, err = s.settle(ctx, repos, key, req)
		return err
	}); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"settlement":     settlement.Id,
		"asset":          settlement.Asset.Hex(),
		"unit_id":        settlement.UnitId.Hex(),
		"seller":         settlement.Seller.Hex(),
		"buyer":          settlement.Buyer.Hex(),
		"amount":         settlement.Amount,
		"nonce":          settlement.Nonce,
		"nonce_advanced": settlement.NonceAdvanced,
	}).Info("order settled")

	return settlement, nil
}

// settle runs every step of a buy within the given transaction, any error
// leaves no trace of the previous steps.
func (s *service) settle(
	ctx context.Context, repos ports.Repositories, key domain.NonceKey, req BuyRequest,
) (*domain.Settlement, error) {
	nonce, err := repos.Nonces().GetNonce(ctx, key)
	if err != nil {
		return nil, err
	}

	pricePerUnit := new(big.Int).Quo(req.GrossPayment, new(big.Int).SetUint64(req.BuyingAmount))
	o := order.Order{
		Asset:         req.Asset,
		UnitId:        req.UnitId,
		PricePerUnit:  pricePerUnit,
		OfferedAmount: req.OfferedAmount,
		Nonce:         nonce,
	}
	orderMetadata := errors.OrderMetadata{
		Asset:         req.Asset.Hex(),
		UnitId:        req.UnitId.Hex(),
		Owner:         req.Owner.Hex(),
		OfferedAmount: req.OfferedAmount,
		BuyingAmount:  req.BuyingAmount,
		Nonce:         nonce,
	}
	if err := o.Validate(); err != nil {
		return nil, errors.INCORRECT_SIGNATURE.Wrap(err).WithMetadata(orderMetadata)
	}
	signer, err := s.verifier.Recover(o.SigningHash(), req.Signature)
	if err != nil {
		return nil, errors.INCORRECT_SIGNATURE.Wrap(err).WithMetadata(orderMetadata)
	}
	if signer != req.Owner || req.BuyingAmount > req.OfferedAmount {
		return nil, errors.INCORRECT_SIGNATURE.New("incorrect signature").
			WithMetadata(orderMetadata)
	}

	fillKey := domain.FillKey{NonceKey: key, Nonce: nonce}
	filled, err := repos.Fills().GetFilled(ctx, fillKey)
	if err != nil {
		return nil, err
	}
	remaining := req.OfferedAmount - min(filled, req.OfferedAmount)
	if req.BuyingAmount > remaining {
		return nil, errors.INCORRECT_SIGNATURE.New("order has only %d units left", remaining).
			WithMetadata(orderMetadata)
	}

	buyAuth := order.BuyAuthorization{
		Order:        o.SigningHash(),
		Filled:       filled,
		BuyingAmount: req.BuyingAmount,
		GrossPayment: req.GrossPayment,
		Buyer:        req.Buyer,
	}
	buyer, err := s.verifier.Recover(buyAuth.SigningHash(), req.BuyerSignature)
	if err != nil || buyer != req.Buyer {
		orderMetadata.Buyer = req.Buyer.Hex()
		return nil, errors.INCORRECT_SIGNATURE.New("payment is not authorized by the buyer").
			WithMetadata(orderMetadata)
	}

	if err := s.ledger.transfer(
		ctx, repos, s.exchange, req.Asset, req.UnitId, req.Owner, req.Buyer, req.BuyingAmount,
	); err != nil {
		return nil, err
	}

	filled, err = repos.Fills().AddFilled(ctx, fillKey, req.BuyingAmount)
	if err != nil {
		return nil, err
	}
	if filled == req.OfferedAmount {
		if _, err := s.nonces.advance(ctx, repos, s.exchange, key); err != nil {
			return nil, err
		}
	}

	rates, err := s.fees.rateReader(s.exchange).read(ctx, repos)
	if err != nil {
		return nil, err
	}
	royalties, err := s.ledger.royalties(ctx, repos, req.Asset, req.UnitId)
	if err != nil {
		return nil, err
	}
	royaltyBps := make([]uint32, 0, len(royalties))
	for _, royalty := range royalties {
		royaltyBps = append(royaltyBps, royalty.Bps)
	}
	breakdown, err := salefee.Compute(
		req.GrossPayment, rates.buyerFeeBps, rates.sellerFeeBps, royaltyBps,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute fees: %w", err)
	}

	payouts := domain.NewDistributionPlan(breakdown, rates.feeRecipient, royalties, req.Owner)
	if err := s.wallet.pay(ctx, repos, req.Buyer, req.GrossPayment, payouts); err != nil {
		return nil, err
	}

	settlement := domain.NewSettlement(
		fillKey, req.Buyer, req.BuyingAmount, req.OfferedAmount, filled,
		pricePerUnit, new(big.Int).Set(req.GrossPayment), payouts,
	)
	if err := repos.Settlements().Add(ctx, *settlement); err != nil {
		return nil, err
	}
	return settlement, nil
}

func (s *service) QuoteOrder(ctx context.Context, req QuoteRequest) (*Quote, error) {
	var quote *Quote
	if err := s.repoManager.View(ctx, func(ctx context.Context, repos ports.Repositories) error {
		key := domain.NonceKey{Asset: req.Asset, UnitId: req.UnitId, Owner: req.Owner}
		nonce, err := repos.Nonces().GetNonce(ctx, key)
		if err != nil {
			return err
		}
		filled, err := repos.Fills().GetFilled(ctx, domain.FillKey{NonceKey: key, Nonce: nonce})
		if err != nil {
			return err
		}

		o := order.Order{
			Asset:         req.Asset,
			UnitId:        req.UnitId,
			PricePerUnit:  req.PricePerUnit,
			OfferedAmount: req.OfferedAmount,
			Nonce:         nonce,
		}
		if err := o.Validate(); err != nil {
			return invalidArgument("invalid order: %s", err)
		}

		quote = &Quote{
			Nonce:       nonce,
			Filled:      filled,
			Remaining:   req.OfferedAmount - min(filled, req.OfferedAmount),
			Digest:      o.Digest(),
			SigningHash: o.SigningHash(),
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return quote, nil
}

func (s *service) GetNonce(
	ctx context.Context, asset common.Address, unitId common.Hash, owner common.Address,
) (uint64, error) {
	return s.nonces.GetNonce(ctx, asset, unitId, owner)
}

func (s *service) GetFillState(
	ctx context.Context, asset common.Address, unitId common.Hash, owner common.Address,
) (*FillState, error) {
	var state *FillState
	if err := s.repoManager.View(ctx, func(ctx context.Context, repos ports.Repositories) error {
		key := domain.NonceKey{Asset: asset, UnitId: unitId, Owner: owner}
		nonce, err := repos.Nonces().GetNonce(ctx, key)
		if err != nil {
			return err
		}
		filled, err := repos.Fills().GetFilled(ctx, domain.FillKey{NonceKey: key, Nonce: nonce})
		if err != nil {
			return err
		}
		state = &FillState{Nonce: nonce, Filled: filled}
		return nil
	}); err != nil {
		return nil, err
	}
	return state, nil
}

func (s *service) GetSettlement(ctx context.Context, id string) (*domain.Settlement, error) {
	var settlement *domain.Settlement
	if err := s.repoManager.View(ctx, func(ctx context.Context, repos ports.Repositories) error {
		var err error
		settlement, err = repos.Settlements().Get(ctx, id)
		return err
	}); err != nil {
		return nil, err
	}
	if settlement == nil {
		return nil, errors.NOT_FOUND.New("settlement %s not found", id)
	}
	return settlement, nil
}

func (s *service) ListSettlements(
	ctx context.Context, asset common.Address, unitId common.Hash,
) ([]domain.Settlement, error) {
	var settlements []domain.Settlement
	if err := s.repoManager.View(ctx, func(ctx context.Context, repos ports.Repositories) error {
		var err error
		settlements, err = repos.Settlements().List(ctx, asset, unitId)
		return err
	}); err != nil {
		return nil, err
	}
	return settlements, nil
}

func (s *service) Mint(ctx context.Context, req MintRequest) (*domain.UnitClass, error) {
	unit, err := s.ledger.Mint(ctx, req)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"asset":   unit.Asset.Hex(),
		"unit_id": unit.UnitId.Hex(),
		"creator": unit.Creator.Hex(),
		"supply":  unit.Supply,
	}).Info("minted unit class")
	return unit, nil
}

func (s *service) GetUnitClass(
	ctx context.Context, asset common.Address, unitId common.Hash,
) (*domain.UnitClass, error) {
	return s.ledger.GetUnitClass(ctx, asset, unitId)
}

func (s *service) SetApprovalForAll(ctx context.Context, req ApprovalRequest) error {
	return s.ledger.SetApprovalForAll(ctx, req)
}

func (s *service) GetApprovalNonce(ctx context.Context, owner common.Address) (uint64, error) {
	return s.ledger.ApprovalNonce(ctx, owner)
}

func (s *service) GetUnitBalance(
	ctx context.Context, asset common.Address, unitId common.Hash, owner common.Address,
) (uint64, error) {
	return s.ledger.BalanceOf(ctx, asset, unitId, owner)
}

func (s *service) GetBalance(ctx context.Context, addr common.Address) (*big.Int, error) {
	return s.wallet.Balance(ctx, addr)
}
