package normalize

// Bound is a scale limit that is either fixed to an explicit value or left
// to be derived from the data of each normalization call. The zero value is
// the unset state.
type Bound struct {
	value float64
	set   bool
}

// Fixed returns a bound pinned to v.
func Fixed(v float64) Bound {
	return Bound{value: v, set: true}
}

// Unset returns the derive-from-data bound.
func Unset() Bound {
	return Bound{}
}

// IsSet reports whether the bound holds an explicit value.
func (b Bound) IsSet() bool { return b.set }

// Value returns the explicit value and whether one is set.
func (b Bound) Value() (float64, bool) { return b.value, b.set }

// or returns the explicit value when set, otherwise the fallback.
func (b Bound) or(fallback float64) float64 {
	if b.set {
		return b.value
	}
	return fallback
}
