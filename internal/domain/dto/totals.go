package dto

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ougirez/fieldecon/internal/domain"
	"github.com/ougirez/fieldecon/internal/pkg/constants"
	"github.com/ougirez/fieldecon/internal/pkg/series"
	"github.com/ougirez/fieldecon/internal/service/economics"
)

type SeriesResponse struct {
	StartYear int       `json:"start_year"`
	Values    []float64 `json:"values"`
	Sum       float64   `json:"sum"`
}

type TotalsResponse struct {
	CaseID       string     `json:"case_id"`
	CalculatedAt *time.Time `json:"calculated_at,omitempty"`
	Currency     string     `json:"currency"`

	StudyCost            SeriesResponse `json:"study_cost"`
	OpexCost             SeriesResponse `json:"opex_cost"`
	CessationCost        SeriesResponse `json:"cessation_cost"`
	OffshoreFacilityCost SeriesResponse `json:"offshore_facility_cost"`
	DevelopmentCost      SeriesResponse `json:"development_cost"`
	ExplorationCost      SeriesResponse `json:"exploration_cost"`

	TotalCost   SeriesResponse `json:"total_cost"`
	TotalIncome SeriesResponse `json:"total_income"`
	CashFlow    SeriesResponse `json:"cash_flow"`
}

type SlotResponse struct {
	Name       string         `json:"name"`
	Overridden bool           `json:"overridden"`
	Series     SeriesResponse `json:"series"`
}

type CategoryResponse struct {
	Category string         `json:"category"`
	Total    SeriesResponse `json:"total"`
	Profiles []SlotResponse `json:"profiles"`
}

// Presentation converts engine output, which is always in local currency,
// to the requested currency and precision.
type Presentation struct {
	Currency     domain.Currency
	ExchangeRate float64
	Precision    *int32
}

// NewPresentation reads the currency and precision query values. An empty
// currency falls back to the project's selector.
func NewPresentation(project domain.Project, currency, precision string) (Presentation, error) {
	p := Presentation{
		Currency:     project.Currency,
		ExchangeRate: project.ExchangeRateUSDToLocal,
	}
	if currency != "" {
		p.Currency = domain.Currency(currency)
	}
	if p.Currency == "" {
		p.Currency = domain.CurrencyLocal
	}
	if !p.Currency.Valid() {
		return p, constants.ErrInvalidCurrency
	}
	if p.Currency == domain.CurrencyUSD && p.ExchangeRate <= 0 {
		return p, constants.ErrInvalidExchangeRate
	}

	if precision != "" {
		n, err := strconv.Atoi(precision)
		if err != nil || n < 0 || n > constants.MaxPrecision {
			return p, fmt.Errorf("%w: precision must be between 0 and %d", constants.ErrBadRequest, constants.MaxPrecision)
		}
		places := int32(n)
		p.Precision = &places
	}

	return p, nil
}

func (p Presentation) value(v float64) float64 {
	if p.Currency == domain.CurrencyUSD {
		v /= p.ExchangeRate
	}
	return v
}

func (p Presentation) round(v float64) float64 {
	if p.Precision == nil {
		return v
	}
	rounded, _ := decimal.NewFromFloat(v).Round(*p.Precision).Float64()
	return rounded
}

func (p Presentation) Series(ts domain.TimeSeries) SeriesResponse {
	values := make([]float64, len(ts.Values))
	sum := decimal.Zero
	for i, v := range ts.Values {
		converted := p.value(v)
		sum = sum.Add(decimal.NewFromFloat(converted))
		values[i] = p.round(converted)
	}

	total, _ := sum.Float64()
	return SeriesResponse{
		StartYear: ts.StartYear,
		Values:    values,
		Sum:       p.round(total),
	}
}

func (p Presentation) Totals(t *domain.CaseTotals) TotalsResponse {
	resp := TotalsResponse{
		CaseID:   t.CaseID.String(),
		Currency: string(p.Currency),

		StudyCost:            p.Series(t.StudyCost),
		OpexCost:             p.Series(t.OpexCost),
		CessationCost:        p.Series(t.CessationCost),
		OffshoreFacilityCost: p.Series(t.OffshoreFacilityCost),
		DevelopmentCost:      p.Series(t.DevelopmentCost),
		ExplorationCost:      p.Series(t.ExplorationCost),

		TotalCost:   p.Series(t.TotalCost),
		TotalIncome: p.Series(t.TotalIncome),
		CashFlow:    p.Series(t.CashFlow),
	}
	if !t.CalculatedAt.IsZero() {
		at := t.CalculatedAt
		resp.CalculatedAt = &at
	}
	return resp
}

// Breakdown lists the categories in reporting order. Each category total is
// the merge of its resolved sub-profiles.
func (p Presentation) Breakdown(b map[economics.Category][]economics.SlotValue) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(b))
	for _, category := range economics.Categories() {
		slots, ok := b[category]
		if !ok {
			continue
		}

		resolved := make([]domain.TimeSeries, 0, len(slots))
		profiles := make([]SlotResponse, 0, len(slots))
		for _, sl := range slots {
			resolved = append(resolved, sl.Series)
			profiles = append(profiles, SlotResponse{
				Name:       string(sl.Name),
				Overridden: sl.Overridden,
				Series:     p.Series(sl.Series),
			})
		}

		out = append(out, CategoryResponse{
			Category: string(category),
			Total:    p.Series(series.Merge(resolved...)),
			Profiles: profiles,
		})
	}
	return out
}
