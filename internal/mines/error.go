package mines

import "errors"

var (
	ErrInvalidConfig     = errors.New("invalid grid configuration")
	ErrInvalidCoordinate = errors.New("invalid cell coordinate")
	ErrGameOver          = errors.New("game is already over")
	ErrMalformedRecord   = errors.New("malformed grid record")
)

type AssertionError struct {
	message string
}

// [AssertionError] implements [error]
func (e AssertionError) Error() string {
	return e.message
}
