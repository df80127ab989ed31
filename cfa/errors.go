package cfa

import "errors"

var (
	// ErrInvalidCFAPeriod is returned when a 4x4 sample is not a repetition of
	// a single 2x2 tile
	ErrInvalidCFAPeriod = errors.New("invalid CFA period: 2x2 quadrants are inconsistent")

	// ErrUnsupportedCFA is returned for base periods other than 1, 4, 6 and 16
	ErrUnsupportedCFA = errors.New("unsupported CFA base period")

	// ErrNilColorIndexer is returned when no colorAt capability is supplied
	ErrNilColorIndexer = errors.New("nil color indexer")

	// ErrInvalidGeometry is returned when raw sensor geometry is inconsistent
	ErrInvalidGeometry = errors.New("invalid raw sensor geometry")

	// ErrUnknownFlip is returned for raw flip codes with no EXIF equivalent
	ErrUnknownFlip = errors.New("unknown raw flip code")
)
