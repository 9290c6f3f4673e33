package series

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	values := []float64{1, 2, 3}
	ts := New(2020, values)
	values[0] = 9

	assert.Equal(t, []float64{1, 2, 3}, ts.Values)
	assert.Equal(t, 2022, ts.EndYear())
	assert.Equal(t, 3, ts.Len())
}

func TestNew_NilValues(t *testing.T) {
	ts := New[float64](-3, nil)

	assert.True(t, ts.IsEmpty())
	assert.NotNil(t, ts.Values)
	assert.Equal(t, -3, ts.StartYear)
}

func TestTimeSeries_ValueAt(t *testing.T) {
	ts := TimeSeries[float64]{StartYear: 2020, Values: []float64{1, 2}}

	assert.Equal(t, 0.0, ts.ValueAt(2019))
	assert.Equal(t, 1.0, ts.ValueAt(2020))
	assert.Equal(t, 2.0, ts.ValueAt(2021))
	assert.Equal(t, 0.0, ts.ValueAt(2022))
}

func TestTimeSeries_SumAndYearData(t *testing.T) {
	ts := TimeSeries[float64]{StartYear: 2020, Values: []float64{1, 2, 4}}

	assert.Equal(t, 7.0, ts.Sum())
	assert.Equal(t, map[Year]float64{2020: 1, 2021: 2, 2022: 4}, ts.YearData())
	assert.Equal(t, 0.0, Zero[float64]().Sum())
}

func TestScale(t *testing.T) {
	ts := TimeSeries[float64]{StartYear: 2020, Values: []float64{1, 2}}
	scaled := Scale(ts, 4)

	assert.Equal(t, TimeSeries[float64]{StartYear: 2020, Values: []float64{4, 8}}, scaled)
	assert.Equal(t, []float64{1, 2}, ts.Values)
	assert.Equal(t, []float64{}, Scale(Zero[float64](), 3).Values)
}
