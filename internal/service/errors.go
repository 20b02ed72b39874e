package service

import "errors"

var (
	ErrMissingFields = errors.New("missing required fields")
	ErrInvalidPrice  = errors.New("price must be positive")
	ErrNoImages      = errors.New("at least one image is required")
	ErrNoColors      = errors.New("at least one color is required")
	ErrInvalidRole   = errors.New("invalid role")
)
