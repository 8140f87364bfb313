package settingsRepo

import (
	"context"
	"sync"

	"homeserve/models"
)

// MemorySettingsRepo keeps settings in process; used when no database is configured.
type MemorySettingsRepo struct {
	mu  sync.RWMutex
	ivr *models.IVRSettings
}

func NewMemorySettingsRepo() SettingsRepository {
	return &MemorySettingsRepo{}
}

func (r *MemorySettingsRepo) GetIVRSettings(_ context.Context) (*models.IVRSettings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.ivr == nil {
		return nil, nil
	}
	s := *r.ivr
	return &s, nil
}

func (r *MemorySettingsRepo) SaveIVRSettings(_ context.Context, settings models.IVRSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ivr = &settings
	return nil
}
