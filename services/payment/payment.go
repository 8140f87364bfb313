package payment

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"homeserve/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"go.uber.org/zap"
)

// IntentCreator opens a card payment intent for a booking, and cancels one
// whose payment could not be recorded.
type IntentCreator interface {
	CreateIntent(ctx context.Context, booking models.BookingID, amount uint64) (*models.PaymentIntent, error)
	CancelIntent(ctx context.Context, id string) error
}

// ErrInvalidAmount is returned for amounts Stripe cannot represent.
var ErrInvalidAmount = errors.New("invalid payment amount")

// StripeIntents creates PaymentIntents through the Stripe API.
type StripeIntents struct {
	api      *client.API
	currency string
	logger   *zap.Logger
}

func NewStripeIntents(key, currency string, logger *zap.Logger) *StripeIntents {
	return newStripeIntents(key, currency, logger, nil)
}

// newStripeIntents allows overriding the Stripe backends; nil uses the defaults.
func newStripeIntents(key, currency string, logger *zap.Logger, backends *stripe.Backends) *StripeIntents {
	api := &client.API{}
	api.Init(key, backends)
	return &StripeIntents{api: api, currency: currency, logger: logger}
}

func (s *StripeIntents) CreateIntent(ctx context.Context, booking models.BookingID, amount uint64) (*models.PaymentIntent, error) {
	if amount == 0 || amount > math.MaxInt64 {
		return nil, ErrInvalidAmount
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(amount)),
		Currency: stripe.String(s.currency),
	}
	params.Context = ctx
	params.AddMetadata("bookingId", strconv.FormatUint(uint64(booking), 10))

	pi, err := s.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe payment intent: %w", err)
	}

	s.logger.Info("Card payment intent created", zap.String("intent", pi.ID), zap.Uint64("bookingId", uint64(booking)))
	return &models.PaymentIntent{ID: pi.ID, ClientSecret: pi.ClientSecret, Currency: s.currency}, nil
}

func (s *StripeIntents) CancelIntent(ctx context.Context, id string) error {
	params := &stripe.PaymentIntentCancelParams{
		CancellationReason: stripe.String(string(stripe.PaymentIntentCancellationReasonAbandoned)),
	}
	params.Context = ctx
	if _, err := s.api.PaymentIntents.Cancel(id, params); err != nil {
		return fmt.Errorf("stripe cancel payment intent: %w", err)
	}
	s.logger.Info("Card payment intent cancelled", zap.String("intent", id))
	return nil
}
