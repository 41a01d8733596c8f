// Package ndarray provides N-dimensional numeric array storage with the
// fixed element-type set and byte layout expected by the viewer frontend:
// contiguous row-major data in little-endian byte order, tagged with a short
// dtype code.
package ndarray

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Element is the set of numeric element types an Array can hold.
type Element interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 |
		~int64 | ~uint64 | ~float32 | ~float64
}

// Array is an N-dimensional numeric array. Data is kept as contiguous
// row-major little-endian bytes so a 2D slice can be handed to the frontend
// without conversion.
type Array struct {
	dtype DType
	shape []int
	data  []byte
}

func elemCount(shape []int) (int, error) {
	if len(shape) == 0 {
		return 0, fmt.Errorf("shape must have at least one axis")
	}
	n := 1
	for _, dim := range shape {
		if dim <= 0 {
			return 0, fmt.Errorf("axis length must be positive, got %v", shape)
		}
		n *= dim
	}
	return n, nil
}

// New creates a zero-filled array with the given dtype and shape.
func New(dtype DType, shape []int) (*Array, error) {
	if _, ok := dtypeSizes[dtype]; !ok {
		return nil, fmt.Errorf("unsupported dtype %v, supported: %v", dtype, SupportedCodes())
	}
	n, err := elemCount(shape)
	if err != nil {
		return nil, err
	}
	return &Array{
		dtype: dtype,
		shape: append([]int(nil), shape...),
		data:  make([]byte, n*dtype.Size()),
	}, nil
}

// FromSlice creates an array from a flat row-major value slice. The slice
// length must match the product of the shape.
func FromSlice[T Element](shape []int, values []T) (*Array, error) {
	dtype, err := dtypeOf(values)
	if err != nil {
		return nil, err
	}
	n, err := elemCount(shape)
	if err != nil {
		return nil, err
	}
	if len(values) != n {
		return nil, fmt.Errorf("shape %v needs %d elements, got %d", shape, n, len(values))
	}
	arr, err := New(dtype, shape)
	if err != nil {
		return nil, err
	}
	for i, v := range values {
		arr.putFloat(i, float64(v), v)
	}
	return arr, nil
}

// FromFloat64s creates a float64 array from a flat row-major value slice.
func FromFloat64s(shape []int, values []float64) (*Array, error) {
	return FromSlice(shape, values)
}

// FromBytes wraps raw little-endian row-major bytes as an array. The byte
// length must match the shape and element size. The array takes ownership
// of data.
func FromBytes(dtype DType, shape []int, data []byte) (*Array, error) {
	if _, ok := dtypeSizes[dtype]; !ok {
		return nil, fmt.Errorf("unsupported dtype %v, supported: %v", dtype, SupportedCodes())
	}
	n, err := elemCount(shape)
	if err != nil {
		return nil, err
	}
	if want := n * dtype.Size(); len(data) != want {
		return nil, fmt.Errorf("shape %v with dtype %s needs %d bytes, got %d",
			shape, dtype.Code(), want, len(data))
	}
	return &Array{
		dtype: dtype,
		shape: append([]int(nil), shape...),
		data:  data,
	}, nil
}

func dtypeOf[T Element](values []T) (DType, error) {
	switch any(values).(type) {
	case []int8:
		return Int8, nil
	case []uint8:
		return Uint8, nil
	case []int16:
		return Int16, nil
	case []uint16:
		return Uint16, nil
	case []int32:
		return Int32, nil
	case []uint32:
		return Uint32, nil
	case []int64:
		return Int64, nil
	case []uint64:
		return Uint64, nil
	case []float32:
		return Float32, nil
	case []float64:
		return Float64, nil
	}
	var zero T
	return 0, fmt.Errorf("unsupported dtype %T, supported: %v", zero, SupportedCodes())
}

// putFloat stores element i. The original value is passed alongside its
// float64 form so integer types wider than 53 bits are stored exactly.
func (a *Array) putFloat(i int, f float64, orig any) {
	off := i * a.dtype.Size()
	switch a.dtype {
	case Int8:
		a.data[off] = byte(orig.(int8))
	case Uint8:
		a.data[off] = orig.(uint8)
	case Int16:
		binary.LittleEndian.PutUint16(a.data[off:], uint16(orig.(int16)))
	case Uint16:
		binary.LittleEndian.PutUint16(a.data[off:], orig.(uint16))
	case Int32:
		binary.LittleEndian.PutUint32(a.data[off:], uint32(orig.(int32)))
	case Uint32:
		binary.LittleEndian.PutUint32(a.data[off:], orig.(uint32))
	case Int64:
		binary.LittleEndian.PutUint64(a.data[off:], uint64(orig.(int64)))
	case Uint64:
		binary.LittleEndian.PutUint64(a.data[off:], orig.(uint64))
	case Float32:
		binary.LittleEndian.PutUint32(a.data[off:], math.Float32bits(orig.(float32)))
	case Float64:
		binary.LittleEndian.PutUint64(a.data[off:], math.Float64bits(f))
	}
}

// DType returns the element type.
func (a *Array) DType() DType { return a.dtype }

// NDim returns the number of axes.
func (a *Array) NDim() int { return len(a.shape) }

// Shape returns a copy of the axis lengths.
func (a *Array) Shape() []int { return append([]int(nil), a.shape...) }

// Len returns the total number of elements.
func (a *Array) Len() int { return len(a.data) / a.dtype.Size() }

// Bytes returns the raw little-endian row-major data. Callers must treat the
// returned slice as read-only.
func (a *Array) Bytes() []byte { return a.data }

// Float64At decodes element i (flat row-major index) as float64.
func (a *Array) Float64At(i int) float64 {
	off := i * a.dtype.Size()
	switch a.dtype {
	case Int8:
		return float64(int8(a.data[off]))
	case Uint8:
		return float64(a.data[off])
	case Int16:
		return float64(int16(binary.LittleEndian.Uint16(a.data[off:])))
	case Uint16:
		return float64(binary.LittleEndian.Uint16(a.data[off:]))
	case Int32:
		return float64(int32(binary.LittleEndian.Uint32(a.data[off:])))
	case Uint32:
		return float64(binary.LittleEndian.Uint32(a.data[off:]))
	case Int64:
		return float64(int64(binary.LittleEndian.Uint64(a.data[off:])))
	case Uint64:
		return float64(binary.LittleEndian.Uint64(a.data[off:]))
	case Float32:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(a.data[off:])))
	case Float64:
		return math.Float64frombits(binary.LittleEndian.Uint64(a.data[off:]))
	}
	return math.NaN()
}

// Float64s decodes the whole array to a flat float64 slice.
func (a *Array) Float64s() []float64 {
	out := make([]float64, a.Len())
	for i := range out {
		out[i] = a.Float64At(i)
	}
	return out
}

// Slice2D returns the 2D plane selected by fixing every leading axis at the
// given indices, keeping the last two axes whole. The returned array shares
// the receiver's storage; row-major layout makes the plane a contiguous
// block, so no copying happens.
func (a *Array) Slice2D(leading []int) (*Array, error) {
	if len(a.shape) < 2 {
		return nil, fmt.Errorf("array must have at least 2 dimensions, got %d", len(a.shape))
	}
	if len(leading) != len(a.shape)-2 {
		return nil, fmt.Errorf("expected %d leading indices for shape %v, got %d",
			len(a.shape)-2, a.shape, len(leading))
	}
	offset := 0
	for axis, idx := range leading {
		if idx < 0 || idx >= a.shape[axis] {
			return nil, fmt.Errorf("index %d out of range for axis %d with length %d",
				idx, axis, a.shape[axis])
		}
		offset = offset*a.shape[axis] + idx
	}
	rows := a.shape[len(a.shape)-2]
	cols := a.shape[len(a.shape)-1]
	block := rows * cols * a.dtype.Size()
	start := offset * block
	return &Array{
		dtype: a.dtype,
		shape: []int{rows, cols},
		data:  a.data[start : start+block],
	}, nil
}
