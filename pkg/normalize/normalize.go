// Package normalize implements the value normalization pipeline used by the
// array viewer: a linear rescale from data bounds to [0,1], an optional
// flexible log stretch, and a DS9-style contrast/bias affine step. The same
// pipeline serves the interactive display path and the static export path,
// so both produce identical intensities for identical parameters.
package normalize

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// epsWidth is the threshold below which a scaling interval is treated as
// degenerate: the linear rescale then yields zero everywhere instead of
// dividing by (near) zero.
const epsWidth = 1e-15

// logExponent is the fixed exponent of the flexible log stretch
// log10(a*t + 1) / log10(a).
const logExponent = 1000

// Normalizer maps raw data values to display intensities in [0,1].
//
// A Normalizer is a plain value: construct it, adjust fields, and call its
// methods. Each call is independent given the current fields, so a copy
// taken as a snapshot keeps producing the same mapping regardless of later
// changes to the original.
type Normalizer struct {
	// VMin and VMax are the scale bounds. An unset bound is derived from
	// the min/max of each call's input data.
	VMin Bound
	VMax Bound

	// Contrast scales intensities away from the display midpoint,
	// typically in (0, 10].
	Contrast float64

	// Bias positions the display midpoint, typically in [0, 1]. Ignored
	// while Symmetric is true (the effective bias is then 0.5), but kept
	// as stored for inspection and serialization.
	Bias float64

	// LogStretch applies log10(1000t+1)/log10(1000) to the rescaled
	// values, expanding low values relative to high ones.
	LogStretch bool

	// Symmetric forces the scaling interval symmetric about zero:
	// [-m, m] with m = max(|VMin|, |VMax|).
	Symmetric bool

	// Clip clamps intermediate and final values to [0,1].
	Clip bool
}

// New returns a Normalizer with unset bounds and the viewer's defaults:
// contrast 1, bias 0.5, clipping on, linear stretch.
func New() Normalizer {
	return Normalizer{
		Contrast: 1.0,
		Bias:     0.5,
		Clip:     true,
	}
}

// interval resolves the effective scaling interval for the given data.
// Unset bounds fall back to the data's min/max, ignoring NaN.
func (n Normalizer) interval(data []float64) (lo, hi float64) {
	dataMin, dataMax, ok := nanMinMax(data)
	if !ok {
		dataMin, dataMax = 0, 0
	}
	vmin := n.VMin.or(dataMin)
	vmax := n.VMax.or(dataMax)
	if n.Symmetric {
		m := math.Max(math.Abs(vmin), math.Abs(vmax))
		return -m, m
	}
	return vmin, vmax
}

func (n Normalizer) effectiveBias() float64 {
	if n.Symmetric {
		return 0.5
	}
	return n.Bias
}

// Normalize maps a single value to a display intensity using the stored
// clip setting. Unset bounds degenerate to the value itself, which yields 0.
func (n Normalizer) Normalize(v float64) float64 {
	return n.NormalizeWithClip(v, n.Clip)
}

// NormalizeWithClip is Normalize with the clip flag overridden per call.
func (n Normalizer) NormalizeWithClip(v float64, clip bool) float64 {
	out := []float64{v}
	n.normalizeInPlace(out, clip)
	return out[0]
}

// NormalizeSlice maps every element of values, returning a new slice. NaN
// elements pass through unchanged and are excluded from derived bounds.
func (n Normalizer) NormalizeSlice(values []float64) []float64 {
	return n.NormalizeSliceWithClip(values, n.Clip)
}

// NormalizeSliceWithClip is NormalizeSlice with the clip flag overridden.
func (n Normalizer) NormalizeSliceWithClip(values []float64, clip bool) []float64 {
	out := append([]float64(nil), values...)
	n.normalizeInPlace(out, clip)
	return out
}

// NormalizeMasked maps values while honoring an explicit element mask:
// masked elements are excluded from derived bounds, pass through with their
// input value, and stay masked in the returned mask. An all-false mask is
// equivalent to NormalizeSlice. The mask must have the same length as
// values; a nil mask means nothing is masked.
func (n Normalizer) NormalizeMasked(values []float64, mask []bool) ([]float64, []bool) {
	work := append([]float64(nil), values...)
	for i, m := range mask {
		if m {
			work[i] = math.NaN()
		}
	}
	n.normalizeInPlace(work, n.Clip)
	for i, m := range mask {
		if m {
			work[i] = values[i]
		}
	}
	return work, append([]bool(nil), mask...)
}

// normalizeInPlace runs the full pipeline over dst. NaN elements propagate
// through every step untouched.
func (n Normalizer) normalizeInPlace(dst []float64, clip bool) {
	lo, hi := n.interval(dst)
	width := hi - lo

	if math.Abs(width) < epsWidth {
		// Degenerate interval: discard scaling rather than divide by zero.
		for i, v := range dst {
			if !math.IsNaN(v) {
				dst[i] = 0
			}
		}
	} else {
		floats.AddConst(-lo, dst)
		floats.Scale(1/width, dst)
	}

	if clip {
		clamp01(dst)
	}

	if n.LogStretch {
		denom := math.Log10(logExponent)
		for i, t := range dst {
			dst[i] = math.Log10(logExponent*t+1) / denom
		}
	}

	floats.AddConst(-n.effectiveBias(), dst)
	floats.Scale(n.Contrast, dst)
	floats.AddConst(0.5, dst)

	if clip {
		clamp01(dst)
	}
}

// Inverse approximately maps a display intensity back to a raw value. The
// affine contrast/bias step and the linear rescale are reversed; the log
// stretch is NOT inverted, so the inverse is only exact for linear
// stretches. Bounds resolve exactly as in the forward direction.
func (n Normalizer) Inverse(v float64) float64 {
	out := []float64{v}
	n.inverseInPlace(out)
	return out[0]
}

// InverseSlice applies Inverse elementwise, returning a new slice.
func (n Normalizer) InverseSlice(values []float64) []float64 {
	out := append([]float64(nil), values...)
	n.inverseInPlace(out)
	return out
}

func (n Normalizer) inverseInPlace(dst []float64) {
	bias := n.effectiveBias()
	if math.Abs(n.Contrast) < epsWidth {
		// Zero contrast collapsed everything onto the midpoint; the best
		// inverse is the bias point itself.
		for i, v := range dst {
			if !math.IsNaN(v) {
				dst[i] = bias
			}
		}
	} else {
		floats.AddConst(-0.5, dst)
		floats.Scale(1/n.Contrast, dst)
		floats.AddConst(bias, dst)
	}

	if n.Clip {
		clamp01(dst)
	}

	lo, hi := n.interval(dst)
	width := hi - lo
	if math.Abs(width) < epsWidth {
		for i, v := range dst {
			if !math.IsNaN(v) {
				dst[i] = lo
			}
		}
		return
	}
	floats.Scale(width, dst)
	floats.AddConst(lo, dst)
}

// Autoscale sets both bounds from the data's min/max, ignoring NaN. Data
// with no finite elements leaves the bounds unset.
func (n *Normalizer) Autoscale(data []float64) {
	lo, hi, ok := nanMinMax(data)
	if !ok {
		return
	}
	n.VMin = Fixed(lo)
	n.VMax = Fixed(hi)
}

// AutoscaleUnset sets only the bounds that are currently unset, leaving
// explicitly fixed bounds untouched.
func (n *Normalizer) AutoscaleUnset(data []float64) {
	if n.VMin.IsSet() && n.VMax.IsSet() {
		return
	}
	lo, hi, ok := nanMinMax(data)
	if !ok {
		return
	}
	if !n.VMin.IsSet() {
		n.VMin = Fixed(lo)
	}
	if !n.VMax.IsSet() {
		n.VMax = Fixed(hi)
	}
}

// AutoscalePercentile sets both bounds to the given data quantiles
// (fractions in [0,1], lo < hi), ignoring NaN. Robust alternative to
// Autoscale when outliers would blow out the display range.
func (n *Normalizer) AutoscalePercentile(data []float64, lo, hi float64) {
	finite := make([]float64, 0, len(data))
	for _, v := range data {
		if !math.IsNaN(v) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 {
		return
	}
	sort.Float64s(finite)
	n.VMin = Fixed(stat.Quantile(lo, stat.LinInterp, finite, nil))
	n.VMax = Fixed(stat.Quantile(hi, stat.LinInterp, finite, nil))
}

// Scaled reports whether both bounds are set.
func (n Normalizer) Scaled() bool {
	return n.VMin.IsSet() && n.VMax.IsSet()
}

// clamp01 clamps non-NaN elements to [0,1]; comparisons leave NaN in place.
func clamp01(dst []float64) {
	for i, v := range dst {
		if v < 0 {
			dst[i] = 0
		} else if v > 1 {
			dst[i] = 1
		}
	}
}

// nanMinMax returns the min and max of data ignoring NaN, and whether any
// finite element was seen.
func nanMinMax(data []float64) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range data {
		if math.IsNaN(v) {
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
		ok = true
	}
	return lo, hi, ok
}
