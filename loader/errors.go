package loader

import "errors"

// Sentinel errors wrapped by load failures.
var (
	ErrStatus   = errors.New("unexpected HTTP status")
	ErrNotImage = errors.New("body is not a decodable image")
	ErrTooLarge = errors.New("image exceeds size limit")
)
