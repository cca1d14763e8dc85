package mirror

import (
	"errors"
	"io/fs"
)

var (
	// ErrInvalidArgument reports a missing or empty target root.
	ErrInvalidArgument = errors.New("target root must not be empty")

	// ErrNotFound reports a missing source root. It is fs.ErrNotExist, so
	// errors.Is works with either sentinel.
	ErrNotFound = fs.ErrNotExist
)
