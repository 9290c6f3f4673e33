package series

// Override is an alternate profile that replaces the base one while Active.
type Override[T Number] struct {
	TimeSeries[T] `yaml:",inline"`
	Active        bool `json:"override" yaml:"override"`
}

// Profile is a base series with its optional override. Either may be nil.
type Profile[T Number] struct {
	Base     *TimeSeries[T] `json:"base,omitempty" yaml:"base,omitempty"`
	Override *Override[T]   `json:"override,omitempty" yaml:"override,omitempty"`
}

// Resolve picks the authoritative series: an active override wins entirely,
// otherwise the base, otherwise Zero. The result is a copy.
func Resolve[T Number](base *TimeSeries[T], override *Override[T]) TimeSeries[T] {
	if override != nil && override.Active {
		return override.TimeSeries.Clone()
	}
	if base != nil {
		return base.Clone()
	}
	return Zero[T]()
}

func (p Profile[T]) Resolve() TimeSeries[T] {
	return Resolve(p.Base, p.Override)
}

// ResolveBase ignores any override, for categories that are always base-only.
func (p Profile[T]) ResolveBase() TimeSeries[T] {
	return Resolve[T](p.Base, nil)
}

func (p Profile[T]) IsOverridden() bool {
	return p.Override != nil && p.Override.Active
}
