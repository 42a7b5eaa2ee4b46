package application

import (
	"context"
	"time"

	"github.com/arkade-os/offerd/internal/core/domain"
	"github.com/arkade-os/offerd/internal/core/ports"
	"github.com/arkade-os/offerd/pkg/errors"
	"github.com/ethereum/go-ethereum/common"
)

func requireAdmin(caller, admin common.Address) error {
	if caller != admin {
		return errors.UNAUTHORIZED.New("caller is not the admin").
			WithMetadata(errors.CallerMetadata{Caller: caller.Hex(), Required: "admin"})
	}
	return nil
}

func saveSettings(
	ctx context.Context, repos ports.Repositories, settings *domain.Settings,
) error {
	settings.UpdatedAt = time.Now()
	return repos.Settings().Upsert(ctx, *settings)
}

func invalidArgument(format string, args ...any) error {
	return errors.INVALID_ARGUMENT.New(format, args...)
}
