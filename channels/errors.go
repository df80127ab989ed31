package channels

import "errors"

var (
	// ErrChannelSetMismatch is returned when Merge receives channel names that
	// differ from the set the pixel type requires
	ErrChannelSetMismatch = errors.New("channel set mismatch")

	// ErrBufferSize is returned when the buffer length disagrees with the
	// descriptor geometry
	ErrBufferSize = errors.New("buffer size does not match image geometry")

	// ErrPlaneShape is returned when a channel handed to Merge is nil or has
	// the wrong dimensions
	ErrPlaneShape = errors.New("channel plane has wrong shape")
)
