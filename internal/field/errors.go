package field

import "errors"

var (
	// ErrNoSurface is returned by hosts that were asked to start without a drawing surface.
	ErrNoSurface = errors.New("field: no drawing surface")

	// ErrBadColor indicates a color string that is not #hex, rgb() or rgba().
	ErrBadColor = errors.New("field: invalid color")

	// ErrUnknownNeighbors indicates an unsupported connection search mode.
	ErrUnknownNeighbors = errors.New("field: unknown neighbor search mode")

	ErrUnknownParam = errors.New("field: unknown parameter")
)
