// Package models holds the value types exchanged with the rendering
// frontend.
package models

// Frame is one displayable 2D image as consumed by the viewer frontend:
// contiguous row-major little-endian bytes plus the dtype code and pixel
// dimensions needed to interpret them.
type Frame struct {
	// Data is the raw pixel buffer in row-major order, little-endian.
	Data []byte `yaml:"-"`

	// DType is the short element-type code ("i8" ... "f64").
	DType string `yaml:"dtype"`

	// Width is the number of columns in the image.
	Width int `yaml:"width"`

	// Height is the number of rows in the image.
	Height int `yaml:"height"`
}
