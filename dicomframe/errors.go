package dicomframe

import "errors"

var (
	// ErrEncapsulated is returned for compressed pixel data
	ErrEncapsulated = errors.New("dicomframe: pixel data is encapsulated")

	// ErrUnsupportedPhotometric is returned for photometric interpretations
	// without a layout mapping
	ErrUnsupportedPhotometric = errors.New("dicomframe: unsupported photometric interpretation")

	// ErrUnsupportedBits is returned for BitsAllocated values other than 8 and 16
	ErrUnsupportedBits = errors.New("dicomframe: unsupported bits allocated")

	// ErrFrameSize is returned when a frame is shorter than its frame info implies
	ErrFrameSize = errors.New("dicomframe: frame size mismatch")

	// ErrFrameMismatch is returned when a frame does not share the frame info
	// of the sequence it is appended to
	ErrFrameMismatch = errors.New("dicomframe: frame does not match sequence")

	// ErrDimensions is returned for images wider or taller than 65535 pixels
	ErrDimensions = errors.New("dicomframe: dimensions exceed DICOM limits")

	// ErrFrameOutOfRange is returned for a frame index past the last frame
	ErrFrameOutOfRange = errors.New("dicomframe: frame out of range")
)
