package cfa

import (
	"fmt"

	"github.com/cocosip/go-image-io/layout"
)

// Raw decoders pack the color layout of a sensor into a 32-bit "filters"
// word. Values below filtersBayerMin are markers for non-Bayer layouts.
const (
	filtersMonochrome = 0
	filtersXTrans     = 9
	filtersBayerMin   = 1000
)

// FiltersIndexer decodes a Bayer filters word into a ColorIndexer. The word
// holds 2 bits per photosite for an 8-row by 2-column block.
func FiltersIndexer(filters uint32) ColorIndexer {
	return func(y, x int) int {
		shift := uint(((y<<1)&14)+(x&1)) << 1
		return int(filters>>shift) & 3
	}
}

// BasePeriodForFilters returns the sampling period Detect should use for a
// filters word.
func BasePeriodForFilters(filters uint32) int {
	switch {
	case filters == filtersMonochrome:
		return 1
	case filters == filtersXTrans:
		return 6
	case filters < filtersBayerMin:
		return 16
	default:
		return 4
	}
}

// PeriodicIndexer repeats an arbitrary rectangular matrix over the sensor.
// It serves X-Trans (6x6) and Leaf-style (16x16) tables.
func PeriodicIndexer(m [][]int) (ColorIndexer, error) {
	if len(m) == 0 || len(m[0]) == 0 {
		return nil, fmt.Errorf("%w: empty pattern matrix", ErrUnsupportedCFA)
	}
	cols := len(m[0])
	for i, row := range m {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: pattern row %d has %d entries, want %d", ErrUnsupportedCFA, i, len(row), cols)
		}
	}
	rows := len(m)
	return func(y, x int) int {
		return m[mod(y, rows)][mod(x, cols)]
	}, nil
}

// XTransIndexer repeats a 6x6 X-Trans table, as raw decoders report it,
// over the sensor.
func XTransIndexer(pattern [6][6]int) ColorIndexer {
	return func(y, x int) int {
		return pattern[mod(y, 6)][mod(x, 6)]
	}
}

// TileIndexer returns the colorAt function of a Bayer sensor of type pt whose
// first photosite sits at offset (yOff, xOff) inside the canonical tile.
// FITS headers describe sensors this way (BAYERPAT plus XBAYROFF/YBAYROFF).
func TileIndexer(pt layout.PixelType, xOff, yOff int) (ColorIndexer, error) {
	tile, ok := PatternOf(pt)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no 2x2 tile", layout.ErrUnsupportedPixelType, pt)
	}
	return func(y, x int) int {
		return tile[mod(y+yOff, 2)][mod(x+xOff, 2)]
	}, nil
}

func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
