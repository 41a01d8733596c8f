package ndarray

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDTypeCodes(t *testing.T) {
	expected := map[DType]string{
		Int8:    "i8",
		Uint8:   "u8",
		Int16:   "i16",
		Uint16:  "u16",
		Int32:   "i32",
		Uint32:  "u32",
		Int64:   "i64",
		Uint64:  "u64",
		Float32: "f32",
		Float64: "f64",
	}
	for dtype, code := range expected {
		assert.Equal(t, code, dtype.Code())

		back, err := DTypeFromCode(code)
		require.NoError(t, err)
		assert.Equal(t, dtype, back)
	}
}

func TestDTypeFromCodeUnsupported(t *testing.T) {
	_, err := DTypeFromCode("c64")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported dtype")
	assert.Contains(t, err.Error(), "f64")
}

func TestFromSliceLittleEndianLayout(t *testing.T) {
	arr, err := FromSlice([]int{1, 2}, []uint16{0x1234, 0xABCD})
	require.NoError(t, err)

	assert.Equal(t, Uint16, arr.DType())
	assert.Equal(t, []byte{0x34, 0x12, 0xCD, 0xAB}, arr.Bytes())
}

func TestFromSliceShapeMismatch(t *testing.T) {
	_, err := FromSlice([]int{2, 2}, []float64{1, 2, 3})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "4 elements")
}

func TestFromSliceRejectsBadShape(t *testing.T) {
	_, err := FromSlice([]int{2, 0}, []float64{})
	assert.Error(t, err)

	_, err = FromSlice(nil, []float64{})
	assert.Error(t, err)
}

func TestFloat64AtRoundTrip(t *testing.T) {
	t.Run("int16", func(t *testing.T) {
		arr, err := FromSlice([]int{3}, []int16{-300, 0, 300})
		require.NoError(t, err)
		assert.Equal(t, -300.0, arr.Float64At(0))
		assert.Equal(t, 0.0, arr.Float64At(1))
		assert.Equal(t, 300.0, arr.Float64At(2))
	})

	t.Run("float32", func(t *testing.T) {
		arr, err := FromSlice([]int{2}, []float32{1.5, -2.25})
		require.NoError(t, err)
		assert.Equal(t, 1.5, arr.Float64At(0))
		assert.Equal(t, -2.25, arr.Float64At(1))
	})

	t.Run("uint64", func(t *testing.T) {
		arr, err := FromSlice([]int{1}, []uint64{1 << 40})
		require.NoError(t, err)
		assert.Equal(t, float64(uint64(1)<<40), arr.Float64At(0))
	})

	t.Run("float64 NaN", func(t *testing.T) {
		arr, err := FromSlice([]int{1}, []float64{math.NaN()})
		require.NoError(t, err)
		assert.True(t, math.IsNaN(arr.Float64At(0)))
	})
}

func TestFloat64s(t *testing.T) {
	arr, err := FromSlice([]int{2, 2}, []uint8{0, 25, 50, 100})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 25, 50, 100}, arr.Float64s())
}

func TestShapeAccessors(t *testing.T) {
	arr, err := New(Float64, []int{5, 10, 20})
	require.NoError(t, err)

	assert.Equal(t, 3, arr.NDim())
	assert.Equal(t, []int{5, 10, 20}, arr.Shape())
	assert.Equal(t, 1000, arr.Len())

	// Shape returns a copy.
	arr.Shape()[0] = 99
	assert.Equal(t, []int{5, 10, 20}, arr.Shape())
}

func TestSlice2D(t *testing.T) {
	values := make([]float64, 5*10*20)
	for i := range values {
		values[i] = float64(i)
	}
	arr, err := FromFloat64s([]int{5, 10, 20}, values)
	require.NoError(t, err)

	slice, err := arr.Slice2D([]int{2})
	require.NoError(t, err)
	assert.Equal(t, []int{10, 20}, slice.Shape())
	assert.Equal(t, float64(2*10*20), slice.Float64At(0))
	assert.Equal(t, float64(3*10*20-1), slice.Float64At(slice.Len()-1))
}

func TestSlice2DLeadingAxesOrder(t *testing.T) {
	values := make([]float64, 2*3*4*5)
	for i := range values {
		values[i] = float64(i)
	}
	arr, err := FromFloat64s([]int{2, 3, 4, 5}, values)
	require.NoError(t, err)

	slice, err := arr.Slice2D([]int{1, 2})
	require.NoError(t, err)
	// Block index is 1*3 + 2 = 5 planes of 4*5 elements.
	assert.Equal(t, float64(5*4*5), slice.Float64At(0))
}

func TestSlice2DValidation(t *testing.T) {
	arr, err := New(Float64, []int{4})
	require.NoError(t, err)
	_, err = arr.Slice2D(nil)
	assert.ErrorContains(t, err, "at least 2 dimensions")

	arr3, err := New(Float64, []int{2, 3, 4})
	require.NoError(t, err)

	_, err = arr3.Slice2D(nil)
	assert.ErrorContains(t, err, "expected 1 leading indices")

	_, err = arr3.Slice2D([]int{5})
	assert.ErrorContains(t, err, "out of range")
}

func TestFromBytes(t *testing.T) {
	arr, err := FromBytes(Uint16, []int{1, 2}, []byte{0x34, 0x12, 0x00, 0x01})
	require.NoError(t, err)
	assert.Equal(t, float64(0x1234), arr.Float64At(0))
	assert.Equal(t, 256.0, arr.Float64At(1))

	_, err = FromBytes(Uint16, []int{1, 2}, []byte{0x34, 0x12})
	assert.ErrorContains(t, err, "needs 4 bytes")
}
