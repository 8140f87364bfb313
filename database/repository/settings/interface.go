package settingsRepo

import (
	"context"

	"homeserve/models"
)

// SettingsRepository stores gateway-owned configuration edited by admins.
type SettingsRepository interface {
	// GetIVRSettings returns nil when nothing has been saved yet.
	GetIVRSettings(ctx context.Context) (*models.IVRSettings, error)
	SaveIVRSettings(ctx context.Context, settings models.IVRSettings) error
}
