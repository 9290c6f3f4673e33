package economics

import (
	"github.com/ougirez/fieldecon/internal/domain"
	"github.com/ougirez/fieldecon/internal/pkg/series"
)

const (
	CubicMetersToBarrels = 6.29
	// IncomeScaleDivisor brings income down to the million-currency reporting scale.
	IncomeScaleDivisor = 1_000_000
)

// Prices are the project scalars the income calculation needs.
type Prices struct {
	OilPriceUSD            float64
	GasPriceLocal          float64
	ExchangeRateUSDToLocal float64
}

func PricesFromProject(p domain.Project) Prices {
	return Prices{
		OilPriceUSD:            p.OilPriceUSD,
		GasPriceLocal:          p.GasPriceLocal,
		ExchangeRateUSDToLocal: p.ExchangeRateUSDToLocal,
	}
}

func drainageProfile(s *domain.CaseSnapshot, field func(d *domain.DrainageStrategy) *domain.Profile) domain.TimeSeries {
	if s.DrainageStrategy == nil {
		return series.Zero[float64]()
	}
	return field(s.DrainageStrategy).ResolveBase()
}

// OilProduction is main plus additional oil production, million Sm3.
func OilProduction(s *domain.CaseSnapshot) domain.TimeSeries {
	return series.Merge(
		drainageProfile(s, func(d *domain.DrainageStrategy) *domain.Profile { return &d.ProductionProfileOil }),
		drainageProfile(s, func(d *domain.DrainageStrategy) *domain.Profile { return &d.AdditionalProductionProfileOil }),
	)
}

// GasProduction is main plus additional gas production, billion Sm3.
func GasProduction(s *domain.CaseSnapshot) domain.TimeSeries {
	return series.Merge(
		drainageProfile(s, func(d *domain.DrainageStrategy) *domain.Profile { return &d.ProductionProfileGas }),
		drainageProfile(s, func(d *domain.DrainageStrategy) *domain.Profile { return &d.AdditionalProductionProfileGas }),
	)
}

func OilIncome(oil domain.TimeSeries, prices Prices) domain.TimeSeries {
	barrels := series.Scale(oil, CubicMetersToBarrels)
	return series.Map(barrels, func(v float64) float64 {
		return v * prices.OilPriceUSD * prices.ExchangeRateUSDToLocal
	})
}

func GasIncome(gas domain.TimeSeries, prices Prices) domain.TimeSeries {
	return series.Scale(gas, prices.GasPriceLocal)
}

// Income converts production volumes to money in local currency and scales
// the result to the reporting unit.
func Income(s *domain.CaseSnapshot, prices Prices) domain.TimeSeries {
	total := series.Merge(
		OilIncome(OilProduction(s), prices),
		GasIncome(GasProduction(s), prices),
	)
	return series.Map(total, func(v float64) float64 { return v / IncomeScaleDivisor })
}
