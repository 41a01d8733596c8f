// Package viewstate holds the shared display parameters for one viewed
// array: scale bounds, contrast/bias, stretch mode, viewport limits,
// colormap selection, and the leading-axis indices choosing the visible 2D
// slice. It is the single source of truth feeding both the interactive
// display path and the static export path.
package viewstate

import (
	"errors"
	"fmt"

	"arrview/internal/models"
	"arrview/pkg/ndarray"
	"arrview/pkg/normalize"
)

// ErrNoArray is returned by slice accessors before any array has been set.
var ErrNoArray = errors.New("no array set")

// Stretch selects how rescaled values are reshaped before contrast/bias.
type Stretch string

const (
	// StretchLinear applies no reshaping.
	StretchLinear Stretch = "linear"
	// StretchLog applies the flexible log stretch.
	StretchLog Stretch = "log"
	// StretchSymmetric forces the scale interval symmetric about zero.
	StretchSymmetric Stretch = "symmetric"
)

// ViewState is the mutable parameter bag for one displayed array.
//
// The display tunables are plain fields; Normalization snapshots them on
// demand. The source array and slice selection are managed through setters
// so the derived frame (dtype code, dimensions, pixel bytes) is always
// recomputed before anyone can observe stale state.
type ViewState struct {
	// Contrast and Bias are the DS9-style display controls.
	Contrast float64
	Bias     float64

	// StretchMode is one of linear, log, symmetric.
	StretchMode Stretch

	// VMin and VMax are the scale bounds; unset bounds are derived from
	// the data at normalization time.
	VMin normalize.Bound
	VMax normalize.Bound

	// XLim and YLim are viewport bounds in data coordinates. A pair with
	// equal endpoints is degenerate and means "no explicit limit".
	XLim [2]float64
	YLim [2]float64

	// Colormap is the viewer colormap name; ReverseColormap flips it.
	Colormap        string
	ReverseColormap bool

	array        *ndarray.Array
	sliceIndices []int

	frame        models.Frame
	needsRepaint bool
}

// New returns a ViewState with the viewer defaults: contrast 1, bias 0.5,
// linear stretch, grayscale colormap, no array.
func New() *ViewState {
	return &ViewState{
		Contrast:    1.0,
		Bias:        0.5,
		StretchMode: StretchLinear,
		Colormap:    "Gray",
	}
}

// SetArray replaces the displayed array. The array must have at least two
// axes; the last two are always the displayed (row, column) plane. Slice
// indices reset to zero for every leading axis and the frame is recomputed
// before returning. On validation failure the previous state is untouched.
func (s *ViewState) SetArray(arr *ndarray.Array) error {
	if arr == nil {
		return fmt.Errorf("array must not be nil")
	}
	if arr.NDim() < 2 {
		return fmt.Errorf("array must have at least 2 dimensions, got %d", arr.NDim())
	}
	s.array = arr
	s.sliceIndices = make([]int, arr.NDim()-2)
	s.recomputeSlice()
	return nil
}

// Array returns the displayed array, or nil if none is set.
func (s *ViewState) Array() *ndarray.Array { return s.array }

// Shape returns the displayed array's shape, or nil if none is set.
func (s *ViewState) Shape() []int {
	if s.array == nil {
		return nil
	}
	return s.array.Shape()
}

// SliceIndices returns a copy of the current leading-axis indices.
func (s *ViewState) SliceIndices() []int {
	return append([]int(nil), s.sliceIndices...)
}

// SetSliceIndices selects a new visible slice. Validation, mutation, and
// frame recomputation happen in one call, so observers never see indices
// that do not match the frame. On validation failure the previous state is
// untouched.
func (s *ViewState) SetSliceIndices(indices []int) error {
	if s.array == nil {
		return ErrNoArray
	}
	shape := s.array.Shape()
	if len(indices) != len(shape)-2 {
		return fmt.Errorf("expected %d slice indices for shape %v, got %d",
			len(shape)-2, shape, len(indices))
	}
	for axis, idx := range indices {
		if idx < 0 || idx >= shape[axis] {
			return fmt.Errorf("slice index %d out of range for axis %d with length %d",
				idx, axis, shape[axis])
		}
	}
	s.sliceIndices = append([]int(nil), indices...)
	s.recomputeSlice()
	return nil
}

// recomputeSlice rebuilds the derived frame from (array, sliceIndices).
// The frame has no identity of its own: it is always a pure function of
// those two inputs. No-op when no array is set.
func (s *ViewState) recomputeSlice() {
	if s.array == nil {
		return
	}
	slice, err := s.array.Slice2D(s.sliceIndices)
	if err != nil {
		// Indices are validated before every mutation, so this is
		// unreachable; keep the previous frame rather than panic.
		return
	}
	shape := slice.Shape()
	s.frame = models.Frame{
		Data:   slice.Bytes(),
		DType:  slice.DType().Code(),
		Width:  shape[1],
		Height: shape[0],
	}
	s.needsRepaint = true
}

// CurrentSlice returns the visible 2D slice as a read-only view.
func (s *ViewState) CurrentSlice() (*ndarray.Array, error) {
	if s.array == nil {
		return nil, ErrNoArray
	}
	return s.array.Slice2D(s.sliceIndices)
}

// Frame returns the derived pixel buffer for the frontend: little-endian
// row-major bytes plus dtype code and dimensions.
func (s *ViewState) Frame() (models.Frame, error) {
	if s.array == nil {
		return models.Frame{}, ErrNoArray
	}
	return s.frame, nil
}

// NeedsRepaint reports whether the frame changed since the last
// MarkPainted call.
func (s *ViewState) NeedsRepaint() bool { return s.needsRepaint }

// MarkPainted clears the repaint flag after the frontend has consumed the
// current frame.
func (s *ViewState) MarkPainted() { s.needsRepaint = false }

// Normalization materializes a Normalizer from the current tunables. The
// result is an independent snapshot: both rendering paths built from the
// same snapshot produce identical intensities, and later ViewState
// mutations do not affect a snapshot already handed out.
func (s *ViewState) Normalization() normalize.Normalizer {
	n := normalize.New()
	n.VMin = s.VMin
	n.VMax = s.VMax
	n.Contrast = s.Contrast
	n.Bias = s.Bias
	n.LogStretch = s.StretchMode == StretchLog
	n.Symmetric = s.StretchMode == StretchSymmetric
	return n
}
