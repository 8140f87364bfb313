package ivr

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	settingsRepo "homeserve/database/repository/settings"
	"homeserve/models"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrWebhookNotConfigured = errors.New("ivr: webhook secret not configured")
	ErrWebhookSecret        = errors.New("ivr: webhook secret mismatch")
)

// Supported telephony providers, as offered on the settings screen.
var Providers = []string{"Twilio", "Exotel", "Knowlarity"}

// SettingsUpdate is an admin's edit of the IVR settings. An empty
// WebhookSecret keeps the stored one.
type SettingsUpdate struct {
	ProviderName  string
	IVRNumber     string
	WebhookSecret string
}

// SettingsService manages IVR provider settings and authenticates webhooks.
type SettingsService struct {
	Repo settingsRepo.SettingsRepository
	now  func() time.Time
}

func NewSettingsService(repo settingsRepo.SettingsRepository) *SettingsService {
	return &SettingsService{Repo: repo, now: time.Now}
}

// Get returns the stored settings, or defaults when none were saved.
func (s *SettingsService) Get(ctx context.Context) (models.IVRSettings, error) {
	stored, err := s.Repo.GetIVRSettings(ctx)
	if err != nil {
		return models.IVRSettings{}, err
	}
	if stored == nil {
		return models.IVRSettings{ProviderName: Providers[0]}, nil
	}
	return *stored, nil
}

func (s *SettingsService) Update(ctx context.Context, by models.Principal, upd SettingsUpdate) (models.IVRSettings, error) {
	if !knownProvider(upd.ProviderName) {
		return models.IVRSettings{}, fmt.Errorf("unknown IVR provider %q", upd.ProviderName)
	}

	current, err := s.Get(ctx)
	if err != nil {
		return models.IVRSettings{}, err
	}

	next := models.IVRSettings{
		ProviderName:      upd.ProviderName,
		IVRNumber:         strings.TrimSpace(upd.IVRNumber),
		WebhookSecretHash: current.WebhookSecretHash,
		UpdatedAt:         s.now().UTC(),
		UpdatedBy:         by,
	}
	if upd.WebhookSecret != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(upd.WebhookSecret), bcrypt.DefaultCost)
		if err != nil {
			return models.IVRSettings{}, fmt.Errorf("hash webhook secret: %w", err)
		}
		next.WebhookSecretHash = string(hash)
	}

	if err := s.Repo.SaveIVRSettings(ctx, next); err != nil {
		return models.IVRSettings{}, err
	}
	return next, nil
}

// VerifyWebhookSecret checks a secret presented by the telephony provider.
func (s *SettingsService) VerifyWebhookSecret(ctx context.Context, secret string) error {
	current, err := s.Get(ctx)
	if err != nil {
		return err
	}
	if !current.HasWebhookSecret() {
		return ErrWebhookNotConfigured
	}
	if secret == "" || bcrypt.CompareHashAndPassword([]byte(current.WebhookSecretHash), []byte(secret)) != nil {
		return ErrWebhookSecret
	}
	return nil
}

func knownProvider(name string) bool {
	for _, p := range Providers {
		if p == name {
			return true
		}
	}
	return false
}
