package ndarray

import (
	"fmt"
)

// DType identifies the element type of an Array. The short codes match the
// type strings understood by the viewer frontend.
type DType int

const (
	Int8 DType = iota
	Uint8
	Int16
	Uint16
	Int32
	Uint32
	Int64
	Uint64
	Float32
	Float64
)

var dtypeCodes = map[DType]string{
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

var dtypeSizes = map[DType]int{
	Int8:    1,
	Uint8:   1,
	Int16:   2,
	Uint16:  2,
	Int32:   4,
	Uint32:  4,
	Int64:   8,
	Uint64:  8,
	Float32: 4,
	Float64: 8,
}

// Code returns the short wire code for the dtype (e.g. "f32", "u16").
func (d DType) Code() string {
	return dtypeCodes[d]
}

// Size returns the element size in bytes.
func (d DType) Size() int {
	return dtypeSizes[d]
}

// String returns the wire code, or a placeholder for unknown values.
func (d DType) String() string {
	if code, ok := dtypeCodes[d]; ok {
		return code
	}
	return fmt.Sprintf("dtype(%d)", int(d))
}

// SupportedCodes lists all wire codes in declaration order.
func SupportedCodes() []string {
	codes := make([]string, 0, len(dtypeCodes))
	for d := Int8; d <= Float64; d++ {
		codes = append(codes, d.Code())
	}
	return codes
}

// DTypeFromCode resolves a wire code back to its DType.
func DTypeFromCode(code string) (DType, error) {
	for d, c := range dtypeCodes {
		if c == code {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unsupported dtype %q, supported: %v", code, SupportedCodes())
}
