package fx

import "errors"

var (
	// ErrNilPixmap is returned when a draw or effect is given no image.
	ErrNilPixmap = errors.New("fx: nil pixmap")

	// ErrEmptyBox is returned when a draw region has no area.
	ErrEmptyBox = errors.New("fx: empty box")
)
