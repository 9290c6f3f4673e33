package series

type Year = int

type Number interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// TimeSeries is a value per calendar year: Values[i] applies to StartYear+i.
// A series without values carries no data regardless of StartYear.
type TimeSeries[T Number] struct {
	StartYear Year `json:"start_year" yaml:"start_year"`
	Values    []T  `json:"values" yaml:"values"`
}

// New copies values so the result never aliases the caller's slice.
func New[T Number](startYear Year, values []T) TimeSeries[T] {
	if values == nil {
		return TimeSeries[T]{StartYear: startYear, Values: []T{}}
	}

	out := make([]T, len(values))
	copy(out, values)
	return TimeSeries[T]{StartYear: startYear, Values: out}
}

func Zero[T Number]() TimeSeries[T] {
	return TimeSeries[T]{StartYear: 0, Values: []T{}}
}

func (ts TimeSeries[T]) IsEmpty() bool {
	return len(ts.Values) == 0
}

// EndYear is the last year covered. For an empty series it is StartYear-1.
func (ts TimeSeries[T]) EndYear() Year {
	return ts.StartYear + len(ts.Values) - 1
}

func (ts TimeSeries[T]) Len() int {
	return len(ts.Values)
}

func (ts TimeSeries[T]) Clone() TimeSeries[T] {
	return New(ts.StartYear, ts.Values)
}

// ValueAt returns the value for year, or zero outside the covered range.
func (ts TimeSeries[T]) ValueAt(year Year) T {
	i := year - ts.StartYear
	if i < 0 || i >= len(ts.Values) {
		return 0
	}
	return ts.Values[i]
}

func (ts TimeSeries[T]) Sum() T {
	var sum T
	for _, v := range ts.Values {
		sum += v
	}
	return sum
}

// YearData returns the series keyed by calendar year.
func (ts TimeSeries[T]) YearData() map[Year]T {
	out := make(map[Year]T, len(ts.Values))
	for i, v := range ts.Values {
		out[ts.StartYear+i] = v
	}
	return out
}

// Map applies fn to every value and returns a new series on the same years.
func Map[T Number](ts TimeSeries[T], fn func(T) T) TimeSeries[T] {
	out := make([]T, len(ts.Values))
	for i, v := range ts.Values {
		out[i] = fn(v)
	}
	return TimeSeries[T]{StartYear: ts.StartYear, Values: out}
}

func Scale[T Number](ts TimeSeries[T], factor T) TimeSeries[T] {
	return Map(ts, func(v T) T { return v * factor })
}
