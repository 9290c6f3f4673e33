package economics

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ougirez/fieldecon/internal/domain"
	"github.com/ougirez/fieldecon/internal/pkg/series"
)

func ts(start int, values ...float64) domain.TimeSeries {
	return series.New(start, values)
}

func base(start int, values ...float64) domain.Profile {
	s := ts(start, values...)
	return domain.Profile{Base: &s}
}

func overridden(b domain.TimeSeries, o domain.TimeSeries, active bool) domain.Profile {
	return domain.Profile{Base: &b, Override: &domain.Override{TimeSeries: o, Active: active}}
}

func TestCalculate_PipelineScenario(t *testing.T) {
	s := &domain.CaseSnapshot{Case: domain.Case{
		ID:               uuid.New(),
		TotalFEEDStudies: base(2020, 5),
		HistoricCost:     base(2021, 3),
	}}

	totals := Calculate(s)

	assert.Equal(t, ts(2020, 5), totals.StudyCost)
	assert.Equal(t, ts(2021, 3), totals.OpexCost)
	assert.Equal(t, series.Zero[float64](), totals.CessationCost)
	assert.Equal(t, series.Zero[float64](), totals.OffshoreFacilityCost)
	assert.Equal(t, series.Zero[float64](), totals.DevelopmentCost)
	assert.Equal(t, series.Zero[float64](), totals.ExplorationCost)
	assert.Equal(t, ts(2020, 5, 3), totals.TotalCost)
	assert.Equal(t, series.Zero[float64](), totals.TotalIncome)
	assert.Equal(t, ts(2020, -5, -3), totals.CashFlow)
	assert.Equal(t, s.Case.ID, totals.CaseID)
	assert.True(t, totals.CalculatedAt.IsZero())
}

func TestTotalCost_Idempotent(t *testing.T) {
	s := fullSnapshot()

	first := TotalCost(s)
	second := TotalCost(s)

	assert.Equal(t, first, second)
	assert.Equal(t, Calculate(s), Calculate(s))
}

func TestCalculate_DoesNotAliasInputs(t *testing.T) {
	s := &domain.CaseSnapshot{Case: domain.Case{TotalFEEDStudies: base(2020, 5, 6)}}

	totals := Calculate(s)
	totals.StudyCost.Values[0] = 1000
	totals.TotalCost.Values[1] = 1000

	assert.Equal(t, []float64{5, 6}, s.Case.TotalFEEDStudies.Base.Values)
}

func TestCalculate_EmptySnapshot(t *testing.T) {
	totals := Calculate(&domain.CaseSnapshot{})

	for name, ref := range totals.Refs() {
		assert.Equal(t, series.Zero[float64](), *ref, name)
	}
}

func TestTotalCost_AllCategoriesAdditive(t *testing.T) {
	s := fullSnapshot()

	var sum float64
	for _, c := range Categories() {
		sum += CategoryCost(s, c).Sum()
	}

	total := TotalCost(s)
	assert.InDelta(t, sum, total.Sum(), 1e-9)
	assert.Equal(t, 2018, total.StartYear)
	assert.Equal(t, 2035, total.EndYear())
}

func TestTotalIncome_UsesProjectPrices(t *testing.T) {
	s := &domain.CaseSnapshot{
		Project: domain.Project{OilPriceUSD: 80, GasPriceLocal: 2, ExchangeRateUSDToLocal: 10},
		DrainageStrategy: &domain.DrainageStrategy{
			ProductionProfileOil: base(2030, 1_000_000),
		},
	}

	// 1e6 Sm3 * 6.29 * 80 * 10 / 1e6
	assert.InDeltaSlice(t, []float64{5032}, TotalIncome(s).Values, 1e-9)
}

func fullSnapshot() *domain.CaseSnapshot {
	return &domain.CaseSnapshot{
		Case: domain.Case{
			ID:                                uuid.New(),
			TotalFeasibilityAndConceptStudies: base(2018, 1, 1),
			TotalFEEDStudies:                  overridden(ts(2019, 2), ts(2020, 4), true),
			TotalOtherStudies:                 base(2019, 0.5),
			HistoricCost:                      base(2018, 0.2),
			WellInterventionCost:              base(2030, 1, 1, 1),
			OffshoreFacilitiesOperationsCost:  overridden(ts(2030, 5, 5), ts(2030, 9), false),
			CessationWellsCost:                base(2034, 10),
			CessationOffshoreFacilitiesCost:   base(2035, 20),
		},
		Project:      domain.Project{OilPriceUSD: 75, GasPriceLocal: 1.5, ExchangeRateUSDToLocal: 10},
		Substructure: &domain.Facility{Kind: domain.AssetSubstructure, CostProfile: base(2025, 100, 200)},
		Topside:      &domain.Facility{Kind: domain.AssetTopside, CostProfile: overridden(ts(2025, 300), ts(2026, 350), true)},
		WellProject: &domain.WellProject{
			OilProducerCost:   base(2026, 40, 40),
			WaterInjectorCost: base(2027, 25),
		},
		Exploration: &domain.Exploration{
			GAndGAdminCost:      base(2020, 3),
			ExplorationWellCost: base(2021, 60),
		},
		DrainageStrategy: &domain.DrainageStrategy{
			ProductionProfileOil:           base(2028, 2_000_000, 3_000_000),
			AdditionalProductionProfileOil: base(2029, 500_000),
			ProductionProfileGas:           base(2028, 1_000_000_000),
		},
	}
}

func TestFullSnapshot_CategoryTotals(t *testing.T) {
	s := fullSnapshot()

	assert.Equal(t, ts(2018, 1, 1.5, 4), StudyCost(s))
	require.Equal(t, ts(2025, 100, 550), OffshoreFacilityCost(s))
	assert.Equal(t, ts(2026, 40, 65), DevelopmentCost(s))
	assert.Equal(t, ts(2020, 3, 60), ExplorationCost(s))
	assert.Equal(t, ts(2034, 10, 20), CessationCost(s))
}
