package universe

import "github.com/pkg/errors"

var (
	//ErrInvalidDimensions is returned when a universe is created with zero width or height
	ErrInvalidDimensions = errors.New("universe: width and height must be at least 1")
	//ErrOutOfBounds is returned when a position lies outside the universe
	ErrOutOfBounds = errors.New("universe: position out of bounds")
	//ErrTemplateTooLarge is returned when a template does not fit the universe
	ErrTemplateTooLarge = errors.New("universe: template does not fit")
)
