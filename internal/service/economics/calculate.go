package economics

import (
	"github.com/ougirez/fieldecon/internal/domain"
	"github.com/ougirez/fieldecon/internal/pkg/series"
)

// TotalCost merges the six category totals. Categories are strictly additive.
func TotalCost(s *domain.CaseSnapshot) domain.TimeSeries {
	totals := make([]domain.TimeSeries, 0, len(categories))
	for _, c := range categories {
		totals = append(totals, CategoryCost(s, c.category))
	}
	return series.Merge(totals...)
}

func TotalIncome(s *domain.CaseSnapshot) domain.TimeSeries {
	return Income(s, PricesFromProject(s.Project))
}

// Calculate runs the whole engine for one snapshot. It is a pure function of
// the snapshot: CalculatedAt is left for the caller to stamp.
func Calculate(s *domain.CaseSnapshot) domain.CaseTotals {
	totals := domain.CaseTotals{
		CaseID:               s.Case.ID,
		StudyCost:            StudyCost(s),
		OpexCost:             OpexCost(s),
		CessationCost:        CessationCost(s),
		OffshoreFacilityCost: OffshoreFacilityCost(s),
		DevelopmentCost:      DevelopmentCost(s),
		ExplorationCost:      ExplorationCost(s),
	}

	totals.TotalCost = series.Merge(
		totals.StudyCost,
		totals.OpexCost,
		totals.CessationCost,
		totals.OffshoreFacilityCost,
		totals.DevelopmentCost,
		totals.ExplorationCost,
	)
	totals.TotalIncome = TotalIncome(s)
	totals.CashFlow = CashFlow(totals.TotalIncome, totals.TotalCost)

	return totals
}
