package content

import "errors"

var (
	// ErrContentRootNotFound indicates the configured content root does not exist.
	ErrContentRootNotFound = errors.New("content root not found")

	// ErrDirReadFailed indicates listing the content root or a collection failed.
	ErrDirReadFailed = errors.New("content directory read failed")

	// ErrFileReadFailed indicates reading a discovered document failed.
	ErrFileReadFailed = errors.New("content file read failed")
)
