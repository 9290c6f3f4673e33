package prices

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ougirez/fieldecon/internal/domain"
	"github.com/ougirez/fieldecon/internal/pkg/constants"
	"github.com/ougirez/fieldecon/internal/pkg/logger"
	"github.com/ougirez/fieldecon/internal/pkg/metrics"
	"github.com/ougirez/fieldecon/internal/pkg/store"
)

type Config struct {
	URL          string        `mapstructure:"url"`
	Retries      uint64        `mapstructure:"retries"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`
	Timeout      time.Duration `mapstructure:"timeout"`

	// Row labels on the price sheet, matched case-insensitively.
	OilLabel          string `mapstructure:"oil_label"`
	GasLabel          string `mapstructure:"gas_label"`
	ExchangeRateLabel string `mapstructure:"exchange_rate_label"`
}

type Store interface {
	UpdateProjectPrices(ctx context.Context, projectID uuid.UUID, opts store.UpdateProjectPricesOpts) (*domain.Project, error)
}

// Sheet holds the scalars read from a price sheet.
type Sheet struct {
	OilPriceUSD            decimal.Decimal
	GasPriceLocal          decimal.Decimal
	ExchangeRateUSDToLocal decimal.Decimal
}

type Service struct {
	store   Store
	client  *http.Client
	cfg     Config
	metrics *metrics.Metrics
}

func NewPricesService(store Store, cfg Config, m *metrics.Metrics) *Service {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Service{
		store:   store,
		client:  &http.Client{Timeout: timeout},
		cfg:     cfg,
		metrics: m,
	}
}

// RefreshProjectPrices reads the configured price sheet and stores its
// scalars on the project.
func (s *Service) RefreshProjectPrices(ctx context.Context, projectID uuid.UUID) (project *domain.Project, err error) {
	if s.metrics != nil {
		defer func() { s.metrics.ObservePriceRefresh(err) }()
	}
	ctx = logger.WithFields(ctx, "project_id", projectID.String())

	sheet, err := s.FetchSheet(ctx)
	if err != nil {
		return nil, err
	}

	oil, _ := sheet.OilPriceUSD.Float64()
	gas, _ := sheet.GasPriceLocal.Float64()
	rate, _ := sheet.ExchangeRateUSDToLocal.Float64()

	project, err = s.store.UpdateProjectPrices(ctx, projectID, store.UpdateProjectPricesOpts{
		OilPriceUSD:            &oil,
		GasPriceLocal:          &gas,
		ExchangeRateUSDToLocal: &rate,
	})
	if err != nil {
		return nil, fmt.Errorf("store.UpdateProjectPrices: %w", err)
	}

	logger.Infof(ctx, "prices refreshed: oil %s USD/bbl, gas %s, rate %s",
		sheet.OilPriceUSD, sheet.GasPriceLocal, sheet.ExchangeRateUSDToLocal)
	return project, nil
}

func (s *Service) FetchSheet(ctx context.Context) (sheet *Sheet, err error) {
	var resp *http.Response
	err = backoff.Retry(
		func() error {
			req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.URL, nil)
			if reqErr != nil {
				return backoff.Permanent(fmt.Errorf("http.NewRequest: %w", reqErr))
			}

			var httpErr error
			resp, httpErr = s.client.Do(req)
			if httpErr != nil {
				return fmt.Errorf("http.Get: %w", httpErr)
			}
			if resp.StatusCode != http.StatusOK {
				_ = resp.Body.Close()
				statusErr := fmt.Errorf("status code error: %d %s", resp.StatusCode, resp.Status)
				if resp.StatusCode < http.StatusInternalServerError {
					return backoff.Permanent(statusErr)
				}
				return statusErr
			}

			return nil
		},
		backoff.WithContext(
			backoff.WithMaxRetries(backoff.NewConstantBackOff(s.retryBackoff()), s.cfg.Retries),
			ctx,
		),
	)
	if err != nil {
		logger.Warnf(ctx, "price sheet %s: %s", s.cfg.URL, err.Error())
		return nil, fmt.Errorf("%w: %s", constants.ErrPriceSheetFetch, err.Error())
	}

	defer func() {
		closeErr := resp.Body.Close()
		if closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close reader: %w", closeErr)
		}
	}()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("goquery.NewDocumentFromReader: %w", err)
	}

	return ParseSheet(doc, s.cfg)
}

func (s *Service) retryBackoff() time.Duration {
	if s.cfg.RetryBackoff > 0 {
		return s.cfg.RetryBackoff
	}
	return 200 * time.Millisecond
}

// ParseSheet reads label/value rows from every table on the page. The label is
// the first th or td of a row, the value the last td.
func ParseSheet(doc *goquery.Document, cfg Config) (*Sheet, error) {
	found := make(map[string]decimal.Decimal, 3)
	wanted := map[string]bool{
		normalizeLabel(cfg.OilLabel):          true,
		normalizeLabel(cfg.GasLabel):          true,
		normalizeLabel(cfg.ExchangeRateLabel): true,
	}

	var err error
	doc.Find("table tr").EachWithBreak(func(_ int, tr *goquery.Selection) bool {
		label := normalizeLabel(tr.Find("th, td").First().Text())
		if !wanted[label] {
			return true
		}

		raw := tr.Find("td").Last().Text()
		val, parseErr := ParseNumber(raw)
		if parseErr != nil {
			err = fmt.Errorf("row %q: %w", label, parseErr)
			return false
		}

		found[label] = val
		return true
	})
	if err != nil {
		return nil, err
	}

	sheet := &Sheet{}
	for label, dst := range map[string]*decimal.Decimal{
		cfg.OilLabel:          &sheet.OilPriceUSD,
		cfg.GasLabel:          &sheet.GasPriceLocal,
		cfg.ExchangeRateLabel: &sheet.ExchangeRateUSDToLocal,
	} {
		val, ok := found[normalizeLabel(label)]
		if !ok {
			return nil, fmt.Errorf("%w: %q", constants.ErrPriceNotFound, label)
		}
		*dst = val
	}

	if !sheet.ExchangeRateUSDToLocal.IsPositive() {
		return nil, constants.ErrInvalidPriceSheet
	}
	return sheet, nil
}

func normalizeLabel(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// ParseNumber accepts "1 234,56", "1,234.56" and "1234.56".
func ParseNumber(raw string) (decimal.Decimal, error) {
	s := strings.Join(strings.Fields(raw), "")

	switch {
	case strings.Contains(s, ",") && strings.Contains(s, "."):
		s = strings.ReplaceAll(s, ",", "")
	case strings.Contains(s, ","):
		s = strings.ReplaceAll(s, ",", ".")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parse %q: %w", raw, err)
	}
	return d, nil
}
