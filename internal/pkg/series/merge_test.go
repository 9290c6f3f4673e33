package series

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge(t *testing.T) {
	tests := []struct {
		name string
		in   []TimeSeries[float64]
		want TimeSeries[float64]
	}{
		{
			name: "no input",
			in:   nil,
			want: Zero[float64](),
		},
		{
			name: "all empty",
			in:   []TimeSeries[float64]{Zero[float64](), {StartYear: 2030, Values: nil}, {StartYear: -5}},
			want: Zero[float64](),
		},
		{
			name: "single series is unchanged",
			in:   []TimeSeries[float64]{{StartYear: 2024, Values: []float64{1.5, 2, 3}}},
			want: TimeSeries[float64]{StartYear: 2024, Values: []float64{1.5, 2, 3}},
		},
		{
			name: "adjacent ranges concatenate",
			in: []TimeSeries[float64]{
				{StartYear: 2020, Values: []float64{1, 2}},
				{StartYear: 2022, Values: []float64{3, 4}},
			},
			want: TimeSeries[float64]{StartYear: 2020, Values: []float64{1, 2, 3, 4}},
		},
		{
			name: "overlap sums",
			in: []TimeSeries[float64]{
				{StartYear: 2020, Values: []float64{1, 2, 3}},
				{StartYear: 2021, Values: []float64{10, 10}},
			},
			want: TimeSeries[float64]{StartYear: 2020, Values: []float64{1, 12, 13}},
		},
		{
			name: "gap is zero filled",
			in: []TimeSeries[float64]{
				{StartYear: 2020, Values: []float64{1}},
				{StartYear: 2023, Values: []float64{4}},
			},
			want: TimeSeries[float64]{StartYear: 2020, Values: []float64{1, 0, 0, 4}},
		},
		{
			name: "zero series does not stretch the range",
			in: []TimeSeries[float64]{
				{StartYear: 2020, Values: []float64{7, 8}},
				Zero[float64](),
			},
			want: TimeSeries[float64]{StartYear: 2020, Values: []float64{7, 8}},
		},
		{
			name: "negative offsets",
			in: []TimeSeries[float64]{
				{StartYear: -2, Values: []float64{1, 1}},
				{StartYear: -1, Values: []float64{2, 2}},
			},
			want: TimeSeries[float64]{StartYear: -2, Values: []float64{1, 3, 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Merge(tt.in...))
		})
	}
}

func TestMerge_OrderIndependent(t *testing.T) {
	a := TimeSeries[float64]{StartYear: 2019, Values: []float64{1, 2, 3}}
	b := TimeSeries[float64]{StartYear: 2021, Values: []float64{4, 5, 6}}
	c := TimeSeries[float64]{StartYear: 2018, Values: []float64{7}}

	all := Merge(a, b, c)
	assert.Equal(t, all, Merge(Merge(a, b), c))
	assert.Equal(t, all, Merge(a, Merge(b, c)))
	assert.Equal(t, all, Merge(c, b, a))
	assert.Equal(t, TimeSeries[float64]{StartYear: 2018, Values: []float64{7, 1, 2, 7, 5, 6}}, all)
}

func TestMerge_NotIdempotent(t *testing.T) {
	a := TimeSeries[float64]{StartYear: 2020, Values: []float64{1, 2}}
	merged := Merge(a)

	assert.Equal(t, []float64{2, 4}, Merge(merged, a).Values)
}

func TestMerge_DoesNotAliasInputs(t *testing.T) {
	a := TimeSeries[float64]{StartYear: 2020, Values: []float64{1, 2}}
	merged := Merge(a)
	merged.Values[0] = 100

	assert.Equal(t, []float64{1, 2}, a.Values)
}

func TestMerge_IntegerCounts(t *testing.T) {
	wells := Merge(
		TimeSeries[int]{StartYear: 2025, Values: []int{1, 2}},
		TimeSeries[int]{StartYear: 2026, Values: []int{3}},
	)
	assert.Equal(t, TimeSeries[int]{StartYear: 2025, Values: []int{1, 5}}, wells)
}

func TestAlign(t *testing.T) {
	start, rows := Align(
		TimeSeries[float64]{StartYear: 2020, Values: []float64{100, 200}},
		TimeSeries[float64]{StartYear: 2021, Values: []float64{50}},
	)

	require.Len(t, rows, 2)
	assert.Equal(t, 2020, start)
	assert.Equal(t, []float64{100, 200}, rows[0])
	assert.Equal(t, []float64{0, 50}, rows[1])
}

func TestAlign_AllEmpty(t *testing.T) {
	start, rows := Align(Zero[float64](), Zero[float64]())

	assert.Equal(t, 0, start)
	assert.Equal(t, [][]float64{{}, {}}, rows)
}
