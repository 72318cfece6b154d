package domain

import "errors"

var (
	ErrUnknownMode     = errors.New("unknown interaction mode")
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidGeometry = errors.New("invalid geometry")
	ErrUnknownBasemap  = errors.New("unknown basemap")
	ErrInvalidView     = errors.New("invalid view")
)
