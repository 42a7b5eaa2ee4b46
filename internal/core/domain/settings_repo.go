package domain

import "context"

type SettingsRepository interface {
	// Get returns nil if no settings were stored yet.
	Get(ctx context.Context) (*Settings, error)
	Upsert(ctx context.Context, settings Settings) error
}
