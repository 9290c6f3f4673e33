package economics

import (
	"github.com/ougirez/fieldecon/internal/domain"
	"github.com/ougirez/fieldecon/internal/pkg/series"
)

// CashFlow is income minus total cost, year by year, over the union of both
// ranges. An empty input does not widen the range; both empty gives Zero.
func CashFlow(income, totalCost domain.TimeSeries) domain.TimeSeries {
	startYear, aligned := series.Align(income, totalCost)
	incomeValues, costValues := aligned[0], aligned[1]

	values := make([]float64, len(incomeValues))
	for i := range values {
		values[i] = incomeValues[i] - costValues[i]
	}

	return domain.TimeSeries{StartYear: startYear, Values: values}
}
