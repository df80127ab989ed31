package reader

import "errors"

var (
	// ErrNoReader is returned when no registered backend accepts a file
	ErrNoReader = errors.New("no reader for file")

	// ErrReaderNotFound is returned when no reader has the requested name
	ErrReaderNotFound = errors.New("reader not found")

	// ErrUnsupportedFile is returned by a backend that cannot decode a file it
	// was handed
	ErrUnsupportedFile = errors.New("unsupported file")
)
