package application

import (
	"context"
	"fmt"

	"github.com/arkade-os/offerd/internal/core/domain"
	"github.com/arkade-os/offerd/internal/core/ports"
	"github.com/arkade-os/offerd/pkg/errors"
	"github.com/ethereum/go-ethereum/common"
)

// NonceRegistry holds the replay counter of every (asset, unit, owner).
// Only the registered operator can advance a counter.
type NonceRegistry struct {
	repoManager ports.RepoManager
	admin       common.Address
}

func NewNonceRegistry(repoManager ports.RepoManager, admin common.Address) *NonceRegistry {
	return &NonceRegistry{repoManager, admin}
}

func (r *NonceRegistry) GetNonce(
	ctx context.Context, asset common.Address, unitId common.Hash, owner common.Address,
) (uint64, error) {
	var nonce uint64
	key := domain.NonceKey{Asset: asset, UnitId: unitId, Owner: owner}
	if err := r.repoManager.View(ctx, func(ctx context.Context, repos ports.Repositories) error {
		var err error
		nonce, err = repos.Nonces().GetNonce(ctx, key)
		return err
	}); err != nil {
		return 0, err
	}
	return nonce, nil
}

func (r *NonceRegistry) AdvanceNonce(
	ctx context.Context, caller, asset common.Address, unitId common.Hash, owner common.Address,
) (uint64, error) {
	var nonce uint64
	key := domain.NonceKey{Asset: asset, UnitId: unitId, Owner: owner}
	if err := r.repoManager.Update(ctx, func(ctx context.Context, repos ports.Repositories) error {
		var err error
		nonce, err = r.advance(ctx, repos, caller, key)
		return err
	}); err != nil {
		return 0, err
	}
	return nonce, nil
}

// SetOperator replaces the registered operator, there is always at most one.
func (r *NonceRegistry) SetOperator(ctx context.Context, caller, operator common.Address) error {
	return r.repoManager.Update(ctx, func(ctx context.Context, repos ports.Repositories) error {
		return r.setOperator(ctx, repos, caller, operator)
	})
}

func (r *NonceRegistry) Operator(ctx context.Context) (common.Address, error) {
	var operator common.Address
	if err := r.repoManager.View(ctx, func(ctx context.Context, repos ports.Repositories) error {
		settings, err := repos.Settings().Get(ctx)
		if err != nil {
			return err
		}
		if settings != nil {
			operator = settings.NonceOperator
		}
		return nil
	}); err != nil {
		return common.Address{}, err
	}
	return operator, nil
}

func (r *NonceRegistry) advance(
	ctx context.Context, repos ports.Repositories, caller common.Address, key domain.NonceKey,
) (uint64, error) {
	settings, err := repos.Settings().Get(ctx)
	if err != nil {
		return 0, err
	}
	if settings == nil || settings.NonceOperator != caller {
		return 0, errors.UNAUTHORIZED.New("caller is not the operator").
			WithMetadata(errors.CallerMetadata{Caller: caller.Hex(), Required: "operator"})
	}

	nonce, err := repos.Nonces().IncrementNonce(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("failed to advance nonce of %s: %w", key, err)
	}
	return nonce, nil
}

func (r *NonceRegistry) setOperator(
	ctx context.Context, repos ports.Repositories, caller, operator common.Address,
) error {
	if err := requireAdmin(caller, r.admin); err != nil {
		return err
	}
	settings, err := getSettings(ctx, repos)
	if err != nil {
		return err
	}
	settings.NonceOperator = operator
	return saveSettings(ctx, repos, settings)
}
