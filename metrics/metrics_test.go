package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRegisterIsIdempotent(t *testing.T) {
	assert.NotPanics(t, func() {
		Register()
		Register()
	})
}

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(cacheLookups.WithLabelValues("myBookings", "hit"))
	IncCacheLookup("myBookings", "hit")
	assert.Equal(t, before+1, testutil.ToFloat64(cacheLookups.WithLabelValues("myBookings", "hit")))

	beforeInv := testutil.ToFloat64(cacheInvalidations.WithLabelValues("allPayments"))
	IncCacheInvalidation("allPayments")
	assert.Equal(t, beforeInv+1, testutil.ToFloat64(cacheInvalidations.WithLabelValues("allPayments")))
}
