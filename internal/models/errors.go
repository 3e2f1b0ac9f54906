package models

import "errors"

var (
	// ErrInvalidShape marks images that are nil, zero-area, not 8-bit or have an unsupported
	// channel count.
	ErrInvalidShape = errors.New("invalid image shape")

	ErrInvalidParameter = errors.New("invalid processing parameter")

	// ErrNoImage is returned when the session has no current image.
	ErrNoImage = errors.New("no image loaded")
)
