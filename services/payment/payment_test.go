package payment

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

func stubStripe(t *testing.T, handler http.HandlerFunc) *StripeIntents {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(srv.URL),
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
	})
	return newStripeIntents("sk_test_123", "inr", zap.NewNop(), &stripe.Backends{API: backend, Connect: backend, Uploads: backend})
}

func TestCreateIntent(t *testing.T) {
	var form map[string][]string
	intents := stubStripe(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payment_intents", r.URL.Path)
		require.NoError(t, r.ParseForm())
		form = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"pi_1","object":"payment_intent","client_secret":"pi_1_secret"}`))
	})

	pi, err := intents.CreateIntent(context.Background(), 42, 1500)
	require.NoError(t, err)
	assert.Equal(t, "pi_1", pi.ID)
	assert.Equal(t, "pi_1_secret", pi.ClientSecret)
	assert.Equal(t, "inr", pi.Currency)

	assert.Equal(t, []string{"1500"}, form["amount"])
	assert.Equal(t, []string{"inr"}, form["currency"])
	assert.Equal(t, []string{"42"}, form["metadata[bookingId]"])
}

func TestCreateIntent_StripeError(t *testing.T) {
	intents := stubStripe(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"error":{"type":"card_error","message":"declined"}}`))
	})

	_, err := intents.CreateIntent(context.Background(), 1, 100)
	assert.Error(t, err)
}

func TestCreateIntent_ZeroAmount(t *testing.T) {
	intents := NewStripeIntents("sk_test_123", "inr", zap.NewNop())
	_, err := intents.CreateIntent(context.Background(), 1, 0)
	assert.Error(t, err)
}

func TestCreateIntent_AmountBeyondStripeRange(t *testing.T) {
	intents := NewStripeIntents("sk_test_123", "inr", zap.NewNop())
	_, err := intents.CreateIntent(context.Background(), 1, math.MaxInt64+1)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestCancelIntent(t *testing.T) {
	var path string
	var form map[string][]string
	intents := stubStripe(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		require.NoError(t, r.ParseForm())
		form = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"pi_1","object":"payment_intent","status":"canceled"}`))
	})

	require.NoError(t, intents.CancelIntent(context.Background(), "pi_1"))
	assert.Equal(t, "/v1/payment_intents/pi_1/cancel", path)
	assert.Equal(t, []string{"abandoned"}, form["cancellation_reason"])
}
