// Package cfa infers the color filter array arrangement of a raw sensor from
// the driver's per-pixel color index function.
package cfa

import (
	"fmt"
	"strings"

	"github.com/cocosip/go-image-io/layout"
)

// ColorIndexer returns the color index of the photosite at row y, column x.
type ColorIndexer func(y, x int) int

// Result is the outcome of a detection.
type Result struct {
	PixelType layout.PixelType

	// Pattern is the canonical 2x2 tile for Bayer sensors, or the sampled
	// base-period matrix for everything else.
	Pattern [][]int

	// HintConsistent is false when the driver supplied a color-order label
	// that disagrees with the detected pattern. The label never changes
	// PixelType.
	HintConsistent bool
}

// Sample builds the n x n base-period matrix M[y][x] = colorAt(y, x).
func Sample(colorAt ColorIndexer, n int) [][]int {
	m := make([][]int, n)
	for y := 0; y < n; y++ {
		m[y] = make([]int, n)
		for x := 0; x < n; x++ {
			m[y][x] = colorAt(y, x)
		}
	}
	return m
}

// Detect samples colorAt over one base period and classifies the mosaic.
//
// A period of 1 is a monochrome sensor. A period of 4 must be a strict
// repetition of one 2x2 tile, which is then matched against the canonical
// Bayer tiles. Periods 6 and 16 (X-Trans and extended mosaics) are reported
// as Custom with the sampled matrix untouched.
func Detect(colorAt ColorIndexer, basePeriod int, hint string) (Result, error) {
	if colorAt == nil {
		return Result{}, ErrNilColorIndexer
	}
	hint = strings.ToUpper(strings.TrimSpace(hint))

	switch basePeriod {
	case 1:
		return Result{
			PixelType:      layout.Grayscale,
			Pattern:        Sample(colorAt, 1),
			HintConsistent: hintConsistent(hint, layout.Grayscale),
		}, nil
	case 4:
		m := Sample(colorAt, 4)
		tile, err := collapse(m)
		if err != nil {
			return Result{}, err
		}
		return classify(tile, hint), nil
	case 6, 16:
		return Result{
			PixelType:      layout.Custom,
			Pattern:        Sample(colorAt, basePeriod),
			HintConsistent: hintConsistent(hint, layout.Custom),
		}, nil
	default:
		return Result{}, fmt.Errorf("%w: %d", ErrUnsupportedCFA, basePeriod)
	}
}

// collapse reduces a 4x4 sample to its top-left 2x2 tile, provided all four
// quadrants are identical.
func collapse(m [][]int) (Tile, error) {
	quadrant := func(oy, ox int) Tile {
		return Tile{
			{m[oy][ox], m[oy][ox+1]},
			{m[oy+1][ox], m[oy+1][ox+1]},
		}
	}
	topLeft := quadrant(0, 0)
	others := []struct {
		name   string
		oy, ox int
	}{
		{"top-right", 0, 2},
		{"bottom-left", 2, 0},
		{"bottom-right", 2, 2},
	}
	for _, q := range others {
		if got := quadrant(q.oy, q.ox); got != topLeft {
			return Tile{}, fmt.Errorf("%w: %s quadrant %v differs from top-left %v",
				ErrInvalidCFAPeriod, q.name, got, topLeft)
		}
	}
	return topLeft, nil
}

func classify(tile Tile, hint string) Result {
	pt, ok := PixelTypeOf(tile)
	if !ok {
		pt = layout.Custom
	}
	return Result{
		PixelType:      pt,
		Pattern:        tile.Matrix(),
		HintConsistent: hintConsistent(hint, pt),
	}
}

// Apply records the detection result in a descriptor.
func (r Result) Apply(d *layout.Descriptor) {
	d.PixelType = r.PixelType
	d.RawPattern = r.Pattern
}
