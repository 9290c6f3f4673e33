package series

// Merge sums all series onto the union of their years. Empty series are ignored
// when computing the year range; if nothing has values the result is Zero.
func Merge[T Number](list ...TimeSeries[T]) TimeSeries[T] {
	minYear, maxYear, ok := yearRange(list)
	if !ok {
		return Zero[T]()
	}

	out := make([]T, maxYear-minYear+1)
	for _, ts := range list {
		offset := ts.StartYear - minYear
		for i, v := range ts.Values {
			out[offset+i] += v
		}
	}

	return TimeSeries[T]{StartYear: minYear, Values: out}
}

func MergeList[T Number](list []TimeSeries[T]) TimeSeries[T] {
	return Merge(list...)
}

// yearRange returns the first and last year covered by any non-empty series.
func yearRange[T Number](list []TimeSeries[T]) (minYear, maxYear Year, ok bool) {
	for _, ts := range list {
		if ts.IsEmpty() {
			continue
		}
		if !ok {
			minYear, maxYear, ok = ts.StartYear, ts.EndYear(), true
			continue
		}
		minYear = min(minYear, ts.StartYear)
		maxYear = max(maxYear, ts.EndYear())
	}
	return minYear, maxYear, ok
}

// Align scatters every series onto the shared year axis without summing them.
// The i-th returned slice holds list[i] positioned relative to the start year.
func Align[T Number](list ...TimeSeries[T]) (Year, [][]T) {
	minYear, maxYear, ok := yearRange(list)
	aligned := make([][]T, len(list))
	if !ok {
		for i := range aligned {
			aligned[i] = []T{}
		}
		return 0, aligned
	}

	n := maxYear - minYear + 1
	for i, ts := range list {
		row := make([]T, n)
		offset := ts.StartYear - minYear
		for j, v := range ts.Values {
			row[offset+j] = v
		}
		aligned[i] = row
	}
	return minYear, aligned
}
