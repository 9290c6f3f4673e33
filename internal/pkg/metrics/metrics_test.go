package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveCalculation(t *testing.T) {
	m := New()

	m.ObserveCalculation("recalculate", time.Now(), nil)
	m.ObserveCalculation("recalculate", time.Now(), nil)
	m.ObserveCalculation("recalculate", time.Now(), errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CalculationsTotal.WithLabelValues("recalculate", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CalculationsTotal.WithLabelValues("recalculate", "error")))
}

func TestObserveCacheAccess(t *testing.T) {
	m := New()

	m.ObserveCacheAccess(true)
	m.ObserveCacheAccess(false)
	m.ObserveCacheAccess(false)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheAccessTotal.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheAccessTotal.WithLabelValues("miss")))
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveHTTPRequest("GET", "/api/v1/cases/:id/totals", 200, time.Now())
	m.ObservePriceRefresh(nil)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `fieldecon_http_requests_total{code="200",method="GET",route="/api/v1/cases/:id/totals"} 1`)
	assert.Contains(t, string(body), `fieldecon_prices_refresh_total{status="ok"} 1`)
}
