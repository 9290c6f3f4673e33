package prices

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ougirez/fieldecon/internal/domain"
	"github.com/ougirez/fieldecon/internal/pkg/constants"
	"github.com/ougirez/fieldecon/internal/pkg/metrics"
	"github.com/ougirez/fieldecon/internal/pkg/store"
)

const sheetHTML = `<html><body>
<table class="prices">
  <tr><th>Benchmark</th><th>Unit</th><th>Value</th></tr>
  <tr><th>Brent crude</th><td>USD/bbl</td><td>82.45</td></tr>
  <tr><th>Natural  gas</th><td>NOK/Sm3</td><td>3,10</td></tr>
  <tr><td>USD/NOK</td><td></td><td>10 512,30</td></tr>
</table>
</body></html>`

func testConfig(url string) Config {
	return Config{
		URL:               url,
		Retries:           2,
		RetryBackoff:      time.Millisecond,
		OilLabel:          "Brent crude",
		GasLabel:          "natural gas",
		ExchangeRateLabel: "USD/NOK",
	}
}

type fakeStore struct {
	projectID uuid.UUID
	opts      store.UpdateProjectPricesOpts
}

func (f *fakeStore) UpdateProjectPrices(_ context.Context, projectID uuid.UUID, opts store.UpdateProjectPricesOpts) (*domain.Project, error) {
	if projectID != f.projectID {
		return nil, constants.ErrDBNotFound
	}
	f.opts = opts
	return &domain.Project{
		ID:                     projectID,
		OilPriceUSD:            *opts.OilPriceUSD,
		GasPriceLocal:          *opts.GasPriceLocal,
		ExchangeRateUSDToLocal: *opts.ExchangeRateUSDToLocal,
	}, nil
}

func TestParseSheet(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(sheetHTML))
	require.NoError(t, err)

	sheet, err := ParseSheet(doc, testConfig(""))
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("82.45").Equal(sheet.OilPriceUSD))
	assert.True(t, decimal.RequireFromString("3.10").Equal(sheet.GasPriceLocal))
	assert.True(t, decimal.RequireFromString("10512.30").Equal(sheet.ExchangeRateUSDToLocal))
}

func TestParseSheet_MissingRow(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<table><tr><th>Brent crude</th><td>80</td></tr></table>`))
	require.NoError(t, err)

	_, err = ParseSheet(doc, testConfig(""))
	assert.ErrorIs(t, err, constants.ErrPriceNotFound)
}

func TestParseSheet_NonPositiveRate(t *testing.T) {
	html := `<table>
<tr><th>Brent crude</th><td>80</td></tr>
<tr><th>Natural gas</th><td>3</td></tr>
<tr><th>USD/NOK</th><td>0</td></tr>
</table>`
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)

	_, err = ParseSheet(doc, testConfig(""))
	assert.ErrorIs(t, err, constants.ErrInvalidPriceSheet)
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"82.45", "82.45"},
		{" 3,10 ", "3.1"},
		{"10 512,30", "10512.3"},
		{"1,234.5", "1234.5"},
		{"-7", "-7"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseNumber(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}

	_, err := ParseNumber("n/a")
	assert.Error(t, err)
}

func TestRefreshProjectPrices(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(sheetHTML))
	}))
	defer srv.Close()

	projectID := uuid.New()
	st := &fakeStore{projectID: projectID}
	m := metrics.New()
	svc := NewPricesService(st, testConfig(srv.URL), m)

	project, err := svc.RefreshProjectPrices(context.Background(), projectID)
	require.NoError(t, err)

	assert.Equal(t, int32(2), calls.Load(), "5xx is retried")
	assert.InDelta(t, 82.45, project.OilPriceUSD, 1e-9)
	assert.InDelta(t, 3.1, project.GasPriceLocal, 1e-9)
	assert.InDelta(t, 10512.3, project.ExchangeRateUSDToLocal, 1e-9)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PriceRefreshTotal.WithLabelValues("ok")))
}

func TestRefreshProjectPrices_ClientErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	m := metrics.New()
	svc := NewPricesService(&fakeStore{}, testConfig(srv.URL), m)

	_, err := svc.RefreshProjectPrices(context.Background(), uuid.New())
	assert.ErrorIs(t, err, constants.ErrPriceSheetFetch)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PriceRefreshTotal.WithLabelValues("error")))
}

func TestRefreshProjectPrices_UnknownProject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sheetHTML))
	}))
	defer srv.Close()

	svc := NewPricesService(&fakeStore{projectID: uuid.New()}, testConfig(srv.URL), nil)

	_, err := svc.RefreshProjectPrices(context.Background(), uuid.New())
	assert.ErrorIs(t, err, constants.ErrDBNotFound)
}
