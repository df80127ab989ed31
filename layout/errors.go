package layout

import "errors"

var (
	// ErrMissingMetadata is returned when an operation receives no descriptor
	ErrMissingMetadata = errors.New("missing image metadata")

	// ErrMissingDimensions is returned when neither the descriptor nor its EXIF
	// block carries a width and height
	ErrMissingDimensions = errors.New("missing image dimensions")

	// ErrOddDimensions is returned when a Bayer or YUV descriptor has an odd
	// width or height
	ErrOddDimensions = errors.New("width and height must be even")

	// ErrUnsupportedPixelRepresentation is returned for sample types other than
	// U8, U16, F32 and F64, or when the buffer element type disagrees with the
	// descriptor
	ErrUnsupportedPixelRepresentation = errors.New("unsupported pixel representation")

	// ErrUnsupportedPixelType is returned when the pixel type cannot be handled
	ErrUnsupportedPixelType = errors.New("unsupported pixel type")

	// ErrUnsupportedImageLayout is returned when the layout does not fit the pixel type
	ErrUnsupportedImageLayout = errors.New("unsupported image layout")
)
