package track

import "errors"

var (
	// ErrInvalidArgument is returned for arguments that are outside of an
	// operation's domain, such as a non-positive resampling spacing.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrIndexOutOfRange is returned for point and segment indices that do
	// not exist in a path.
	ErrIndexOutOfRange = errors.New("index out of range")
)
