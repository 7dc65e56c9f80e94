package domain

import "errors"

var (
	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("invalid input")
	ErrUnavailable = errors.New("upstream unavailable")
)
