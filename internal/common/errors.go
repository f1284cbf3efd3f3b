package common

import (
	"errors"
)

var (
	// Scene file errors
	ErrInvalidScene = errors.New("invalid scene")

	// Geometry errors
	ErrDegenerateGeometry   = errors.New("degenerate geometry")
	ErrDegenerateResolution = errors.New("degenerate viewport resolution")
)
