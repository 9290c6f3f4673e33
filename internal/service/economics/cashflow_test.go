package economics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ougirez/fieldecon/internal/domain"
	"github.com/ougirez/fieldecon/internal/pkg/series"
)

func TestCashFlow(t *testing.T) {
	zero := series.Zero[float64]()

	tests := []struct {
		name   string
		income domain.TimeSeries
		cost   domain.TimeSeries
		want   domain.TimeSeries
	}{
		{"income starts first", ts(2020, 100, 200), ts(2021, 50), ts(2020, 100, 150)},
		{"cost starts first", ts(2025, 10), ts(2023, 1, 2), ts(2023, -1, -2, 10)},
		{"disjoint ranges", ts(2030, 5), ts(2020, 1), ts(2020, -1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 5)},
		{"empty income", zero, ts(2021, 3, 4), ts(2021, -3, -4)},
		{"empty cost", ts(2021, 3, 4), zero, ts(2021, 3, 4)},
		{"both empty", zero, zero, zero},
		{"negative start years", ts(-2, 1), ts(-1, 1), ts(-2, 1, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CashFlow(tt.income, tt.cost))
		})
	}
}

func TestCashFlow_IsDifferenceNotSum(t *testing.T) {
	got := CashFlow(ts(2020, 10), ts(2020, 4))
	assert.Equal(t, []float64{6}, got.Values)
}
