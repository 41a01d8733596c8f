// Package rawio loads N-dimensional arrays from headerless binary files for
// the command-line tools. Files are expected to hold little-endian
// row-major element data whose length matches the declared dtype and shape.
package rawio

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"arrview/pkg/ndarray"
)

// ReadArray loads an array from path using the given dtype code ("f32",
// "u16", ...) and shape.
func ReadArray(path, dtypeCode string, shape []int) (*ndarray.Array, error) {
	dtype, err := ndarray.DTypeFromCode(dtypeCode)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading array file: %w", err)
	}
	arr, err := ndarray.FromBytes(dtype, shape, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return arr, nil
}

// WriteArray saves an array's raw little-endian bytes to path.
func WriteArray(path string, arr *ndarray.Array) error {
	if err := os.WriteFile(path, arr.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing array file: %w", err)
	}
	return nil
}

// ParseShape parses a comma-separated axis list like "5,100,200".
func ParseShape(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	shape := make([]int, 0, len(parts))
	for _, p := range parts {
		dim, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid shape %q: %w", s, err)
		}
		shape = append(shape, dim)
	}
	return shape, nil
}

// ParseIndices parses a comma-separated leading-axis index list like "2,0".
// An empty string means no leading indices.
func ParseIndices(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	return ParseShape(s)
}
