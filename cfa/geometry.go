package cfa

import "fmt"

// Geometry describes where the visible image sits inside the full raw
// readout of a sensor.
type Geometry struct {
	RawWidth   int
	RawHeight  int
	Width      int
	Height     int
	TopMargin  int
	LeftMargin int
}

// Validate checks that the visible area is positive and fits inside the raw
// frame.
func (g Geometry) Validate() error {
	switch {
	case g.RawWidth <= 0:
		return fmt.Errorf("%w: raw_width must be a positive int", ErrInvalidGeometry)
	case g.RawHeight <= 0:
		return fmt.Errorf("%w: raw_height must be a positive int", ErrInvalidGeometry)
	case g.Width <= 0:
		return fmt.Errorf("%w: width must be a positive int", ErrInvalidGeometry)
	case g.Height <= 0:
		return fmt.Errorf("%w: height must be a positive int", ErrInvalidGeometry)
	case g.TopMargin < 0:
		return fmt.Errorf("%w: top_margin must be a non-negative int", ErrInvalidGeometry)
	case g.LeftMargin < 0:
		return fmt.Errorf("%w: left_margin must be a non-negative int", ErrInvalidGeometry)
	case g.Width > g.RawWidth:
		return fmt.Errorf("%w: visible width must not exceed raw width", ErrInvalidGeometry)
	case g.Height > g.RawHeight:
		return fmt.Errorf("%w: visible height must not exceed raw height", ErrInvalidGeometry)
	case g.TopMargin+g.Height > g.RawHeight:
		return fmt.Errorf("%w: top_margin + height exceeds raw height", ErrInvalidGeometry)
	case g.LeftMargin+g.Width > g.RawWidth:
		return fmt.Errorf("%w: left_margin + width exceeds raw width", ErrInvalidGeometry)
	}
	return nil
}

// Shift adapts a driver colorAt, which is addressed in visible-area
// coordinates, to raw-frame coordinates including the margins.
func (g Geometry) Shift(colorAt ColorIndexer) ColorIndexer {
	return func(y, x int) int {
		return colorAt(y-g.TopMargin, x-g.LeftMargin)
	}
}

// flipToOrientation maps raw decoder flip codes to EXIF orientation values.
var flipToOrientation = map[int]int{0: 1, 3: 3, 5: 6, 6: 8}

// OrientationFromFlip converts a raw decoder flip code to an EXIF
// orientation.
func OrientationFromFlip(flip int) (int, error) {
	o, ok := flipToOrientation[flip]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownFlip, flip)
	}
	return o, nil
}
