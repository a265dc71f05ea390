package repository

import (
	"context"

	"github.com/sangkips/tillpoint/internal/domain/entity"
)

// SettingsRepository reads and writes the settings singleton.
type SettingsRepository interface {
	// Get returns the first settings row, or (nil, nil) on a fresh store.
	Get(ctx context.Context) (*entity.Settings, error)
	Save(ctx context.Context, settings *entity.Settings) error
	ListQuickQuantities(ctx context.Context) ([]entity.QuickQuantity, error)
}
