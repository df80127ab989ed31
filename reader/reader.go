// Package reader selects a decode backend for an image file and returns the
// decoded buffer together with its layout descriptor.
package reader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cocosip/go-image-io/layout"
)

// Reader is the capability interface every decode backend implements
type Reader interface {
	// Name returns a human-readable name
	Name() string

	// CanRead reports whether the backend handles the file at path
	CanRead(path string) bool

	// Read decodes the file into a buffer and descriptor
	Read(path string, params *ReadParameters) (*Image, error)
}

// Image is a decoded buffer paired with its descriptor. Pix holds one of
// []uint8, []uint16, []float32 or []float64, matching
// Descriptor.SampleRepresentation.
type Image struct {
	Pix        any
	Descriptor *layout.Descriptor
}

// NewImage pairs pix with d, stamping d with the representation of T.
func NewImage[T layout.Sample](pix []T, d *layout.Descriptor) *Image {
	d.SampleRepresentation = layout.RepresentationOf[T]()
	return &Image{Pix: pix, Descriptor: d}
}

// Samples returns the buffer of im as []T.
func Samples[T layout.Sample](im *Image) ([]T, error) {
	if im == nil {
		return nil, layout.ErrMissingMetadata
	}
	pix, ok := im.Pix.([]T)
	if !ok {
		return nil, fmt.Errorf("%w: image holds %T, want %s",
			layout.ErrUnsupportedPixelRepresentation, im.Pix, layout.RepresentationOf[T]())
	}
	return pix, nil
}

// Uint8 returns the buffer as []uint8.
func (im *Image) Uint8() ([]uint8, error) { return Samples[uint8](im) }

// Uint16 returns the buffer as []uint16.
func (im *Image) Uint16() ([]uint16, error) { return Samples[uint16](im) }

// Float32 returns the buffer as []float32.
func (im *Image) Float32() ([]float32, error) { return Samples[float32](im) }

// Float64 returns the buffer as []float64.
func (im *Image) Float64() ([]float64, error) { return Samples[float64](im) }

// ExtensionSet matches file suffixes case-insensitively.
type ExtensionSet map[string]struct{}

// NewExtensionSet builds a set from suffixes with or without the leading dot.
func NewExtensionSet(exts ...string) ExtensionSet {
	s := make(ExtensionSet, len(exts))
	for _, e := range exts {
		e = strings.ToLower(e)
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		s[e] = struct{}{}
	}
	return s
}

// Match reports whether path ends in one of the suffixes.
func (s ExtensionSet) Match(path string) bool {
	_, ok := s[strings.ToLower(filepath.Ext(path))]
	return ok
}
