package application

import (
	"context"
	"fmt"
	"time"

	"github.com/arkade-os/offerd/internal/core/domain"
	"github.com/arkade-os/offerd/internal/core/ports"
	"github.com/arkade-os/offerd/pkg/errors"
	"github.com/arkade-os/offerd/pkg/order"
	"github.com/arkade-os/offerd/pkg/salefee"
	"github.com/ethereum/go-ethereum/common"
)

// AssetLedger keeps the multi-unit asset balances, the operator approvals
// and the royalties attached to every unit class at mint time.
type AssetLedger struct {
	repoManager ports.RepoManager
	verifier    ports.SignatureVerifier
	mintSigner  common.Address
}

func NewAssetLedger(
	repoManager ports.RepoManager, verifier ports.SignatureVerifier, mintSigner common.Address,
) *AssetLedger {
	return &AssetLedger{repoManager, verifier, mintSigner}
}

// Mint creates a unit class and credits the whole supply to the creator.
// The mint signer must have authorized the (asset, unit) pair.
func (l *AssetLedger) Mint(ctx context.Context, req MintRequest) (*domain.UnitClass, error) {
	if req.Supply == 0 {
		return nil, invalidArgument("supply must be greater than zero")
	}
	royaltyBps := make([]uint32, 0, len(req.Royalties))
	for _, royalty := range req.Royalties {
		if royalty.Recipient == (common.Address{}) {
			return nil, invalidArgument("royalty recipient must not be the zero address")
		}
		royaltyBps = append(royaltyBps, royalty.Bps)
	}
	if err := salefee.ValidateRoyalties(royaltyBps); err != nil {
		return nil, errors.INVALID_FEE_RATE.Wrap(err)
	}

	unitMetadata := errors.UnitMetadata{Asset: req.Asset.Hex(), UnitId: req.UnitId.Hex()}
	auth := order.MintAuthorization{Asset: req.Asset, UnitId: req.UnitId}
	signer, err := l.verifier.Recover(auth.SigningHash(), req.Signature)
	if err != nil || signer != l.mintSigner {
		return nil, errors.INVALID_MINT_SIGNATURE.New("mint is not authorized by the signer").
			WithMetadata(unitMetadata)
	}

	unit := domain.UnitClass{
		Asset:     req.Asset,
		UnitId:    req.UnitId,
		Creator:   req.Creator,
		Supply:    req.Supply,
		Uri:       req.Uri,
		Royalties: req.Royalties,
		CreatedAt: time.Now(),
	}
	if err := l.repoManager.Update(ctx, func(ctx context.Context, repos ports.Repositories) error {
		existing, err := repos.Units().GetUnitClass(ctx, req.Asset, req.UnitId)
		if err != nil {
			return err
		}
		if existing != nil {
			return errors.UNIT_ALREADY_EXISTS.New("unit class already minted").
				WithMetadata(unitMetadata)
		}
		if err := repos.Units().AddUnitClass(ctx, unit); err != nil {
			return err
		}
		return repos.Units().SetBalance(ctx, domain.Holding{
			Asset:  req.Asset,
			UnitId: req.UnitId,
			Owner:  req.Creator,
			Amount: req.Supply,
		})
	}); err != nil {
		return nil, err
	}
	return &unit, nil
}

func (l *AssetLedger) GetUnitClass(
	ctx context.Context, asset common.Address, unitId common.Hash,
) (*domain.UnitClass, error) {
	var unit *domain.UnitClass
	if err := l.repoManager.View(ctx, func(ctx context.Context, repos ports.Repositories) error {
		var err error
		unit, err = repos.Units().GetUnitClass(ctx, asset, unitId)
		return err
	}); err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, errors.NOT_FOUND.New("unit class %s:%s not found", asset.Hex(), unitId.Hex())
	}
	return unit, nil
}

// Royalties returns nil for a unit class that was never minted here.
func (l *AssetLedger) Royalties(
	ctx context.Context, asset common.Address, unitId common.Hash,
) ([]domain.RoyaltyFee, error) {
	var royalties []domain.RoyaltyFee
	if err := l.repoManager.View(ctx, func(ctx context.Context, repos ports.Repositories) error {
		var err error
		royalties, err = l.royalties(ctx, repos, asset, unitId)
		return err
	}); err != nil {
		return nil, err
	}
	return royalties, nil
}

// SetApprovalForAll applies an approval signed by the owner against its
// approval nonce, which is bumped so the same signature can't be replayed.
func (l *AssetLedger) SetApprovalForAll(ctx context.Context, req ApprovalRequest) error {
	if req.Owner == req.Operator {
		return invalidArgument("setting approval status for self")
	}
	return l.repoManager.Update(ctx, func(ctx context.Context, repos ports.Repositories) error {
		account, err := repos.Accounts().Get(ctx, req.Owner)
		if err != nil {
			return err
		}
		auth := order.ApprovalAuthorization{
			Asset:    req.Asset,
			Owner:    req.Owner,
			Operator: req.Operator,
			Approved: req.Approved,
			Nonce:    account.ApprovalNonce,
		}
		signer, err := l.verifier.Recover(auth.SigningHash(), req.Signature)
		if err != nil || signer != req.Owner {
			return errors.INVALID_APPROVAL_SIGNATURE.New("approval is not signed by the owner").
				WithMetadata(errors.ApprovalMetadata{
					Asset:    req.Asset.Hex(),
					Owner:    req.Owner.Hex(),
					Operator: req.Operator.Hex(),
					Nonce:    account.ApprovalNonce,
				})
		}

		account.ApprovalNonce++
		if err := repos.Accounts().Upsert(ctx, *account); err != nil {
			return err
		}
		return repos.Units().SetApprovalForAll(
			ctx, req.Asset, req.Owner, req.Operator, req.Approved,
		)
	})
}

func (l *AssetLedger) ApprovalNonce(ctx context.Context, owner common.Address) (uint64, error) {
	var nonce uint64
	if err := l.repoManager.View(ctx, func(ctx context.Context, repos ports.Repositories) error {
		account, err := repos.Accounts().Get(ctx, owner)
		if err != nil {
			return err
		}
		nonce = account.ApprovalNonce
		return nil
	}); err != nil {
		return 0, err
	}
	return nonce, nil
}

func (l *AssetLedger) IsApprovedForAll(
	ctx context.Context, asset common.Address, owner, operator common.Address,
) (bool, error) {
	var approved bool
	if err := l.repoManager.View(ctx, func(ctx context.Context, repos ports.Repositories) error {
		var err error
		approved, err = repos.Units().IsApprovedForAll(ctx, asset, owner, operator)
		return err
	}); err != nil {
		return false, err
	}
	return approved, nil
}

func (l *AssetLedger) BalanceOf(
	ctx context.Context, asset common.Address, unitId common.Hash, owner common.Address,
) (uint64, error) {
	var balance uint64
	if err := l.repoManager.View(ctx, func(ctx context.Context, repos ports.Repositories) error {
		var err error
		balance, err = repos.Units().GetBalance(ctx, asset, unitId, owner)
		return err
	}); err != nil {
		return 0, err
	}
	return balance, nil
}

// Transfer moves units on behalf of operator, which must be the owner or an
// approved operator of the owner.
func (l *AssetLedger) Transfer(
	ctx context.Context, operator, asset common.Address, unitId common.Hash,
	from, to common.Address, amount uint64,
) error {
	return l.repoManager.Update(ctx, func(ctx context.Context, repos ports.Repositories) error {
		return l.transfer(ctx, repos, operator, asset, unitId, from, to, amount)
	})
}

func (l *AssetLedger) transfer(
	ctx context.Context, repos ports.Repositories, operator, asset common.Address,
	unitId common.Hash, from, to common.Address, amount uint64,
) error {
	if to == (common.Address{}) {
		return invalidArgument("transfer to the zero address")
	}

	metadata := errors.TransferMetadata{
		Asset:    asset.Hex(),
		UnitId:   unitId.Hex(),
		From:     from.Hex(),
		Operator: operator.Hex(),
		Amount:   amount,
	}
	if operator != from {
		approved, err := repos.Units().IsApprovedForAll(ctx, asset, from, operator)
		if err != nil {
			return err
		}
		if !approved {
			return errors.NOT_OWNER_OR_APPROVED.New("caller is not owner nor approved").
				WithMetadata(metadata)
		}
	}

	fromBalance, err := repos.Units().GetBalance(ctx, asset, unitId, from)
	if err != nil {
		return err
	}
	if fromBalance < amount {
		metadata.Balance = fromBalance
		return errors.INSUFFICIENT_BALANCE.New("insufficient balance for transfer").
			WithMetadata(metadata)
	}
	if from == to {
		return nil
	}

	toBalance, err := repos.Units().GetBalance(ctx, asset, unitId, to)
	if err != nil {
		return err
	}
	if toBalance+amount < toBalance {
		return fmt.Errorf("balance overflow for %s", to.Hex())
	}

	if err := repos.Units().SetBalance(ctx, domain.Holding{
		Asset: asset, UnitId: unitId, Owner: from, Amount: fromBalance - amount,
	}); err != nil {
		return err
	}
	return repos.Units().SetBalance(ctx, domain.Holding{
		Asset: asset, UnitId: unitId, Owner: to, Amount: toBalance + amount,
	})
}

func (l *AssetLedger) royalties(
	ctx context.Context, repos ports.Repositories, asset common.Address, unitId common.Hash,
) ([]domain.RoyaltyFee, error) {
	unit, err := repos.Units().GetUnitClass(ctx, asset, unitId)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, nil
	}
	return unit.Royalties, nil
}
