package fits

import "errors"

var (
	// ErrNoImage is returned when the primary HDU carries no image data
	ErrNoImage = errors.New("fits: primary HDU is not an image")

	// ErrUnsupportedAxes is returned for images that are not 2- or 3-dimensional
	ErrUnsupportedAxes = errors.New("fits: unsupported axes")

	// ErrUnsupportedBitpix is returned for BITPIX values without a sample mapping
	ErrUnsupportedBitpix = errors.New("fits: unsupported BITPIX")

	// ErrFrameOutOfRange is returned when the requested frame does not exist
	ErrFrameOutOfRange = errors.New("fits: frame out of range")
)
