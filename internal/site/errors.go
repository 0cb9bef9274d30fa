package site

import "errors"

// ErrBrokenLinks indicates the link check found local links without a target.
var ErrBrokenLinks = errors.New("broken links")
