package series

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	base := &TimeSeries[float64]{StartYear: 2020, Values: []float64{10, 10}}
	override := &Override[float64]{
		TimeSeries: TimeSeries[float64]{StartYear: 2021, Values: []float64{99}},
		Active:     true,
	}

	t.Run("active override wins entirely", func(t *testing.T) {
		assert.Equal(t, TimeSeries[float64]{StartYear: 2021, Values: []float64{99}}, Resolve(base, override))
	})

	t.Run("inactive override falls back to base", func(t *testing.T) {
		inactive := *override
		inactive.Active = false
		assert.Equal(t, *base, Resolve(base, &inactive))
	})

	t.Run("no override", func(t *testing.T) {
		assert.Equal(t, *base, Resolve(base, nil))
	})

	t.Run("nothing at all", func(t *testing.T) {
		assert.Equal(t, Zero[float64](), Resolve[float64](nil, nil))
	})

	t.Run("inactive override without base", func(t *testing.T) {
		inactive := *override
		inactive.Active = false
		assert.Equal(t, Zero[float64](), Resolve(nil, &inactive))
	})

	t.Run("active override with nil values", func(t *testing.T) {
		empty := &Override[float64]{TimeSeries: TimeSeries[float64]{StartYear: 2030}, Active: true}
		got := Resolve(base, empty)
		assert.True(t, got.IsEmpty())
		assert.Equal(t, 2030, got.StartYear)
	})
}

func TestResolve_ReturnsCopy(t *testing.T) {
	base := &TimeSeries[float64]{StartYear: 2020, Values: []float64{1, 2}}

	got := Resolve(base, nil)
	got.Values[0] = 42

	assert.Equal(t, []float64{1, 2}, base.Values)
}

func TestProfile_ResolveBase(t *testing.T) {
	p := Profile[float64]{
		Base: &TimeSeries[float64]{StartYear: 2020, Values: []float64{1}},
		Override: &Override[float64]{
			TimeSeries: TimeSeries[float64]{StartYear: 2020, Values: []float64{5}},
			Active:     true,
		},
	}

	assert.True(t, p.IsOverridden())
	assert.Equal(t, []float64{5}, p.Resolve().Values)
	assert.Equal(t, []float64{1}, p.ResolveBase().Values)
}
