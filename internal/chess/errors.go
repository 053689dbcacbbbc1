package chess

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedPosition = errors.New("malformed position")
	ErrInvalidSquare     = errors.New("invalid square")
	ErrIllegalMove       = errors.New("illegal move")
)

// MalformedPositionError reports which of the six position fields failed to decode.
type MalformedPositionError struct {
	Field  string
	Reason string
}

func (e *MalformedPositionError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("malformed position: %s", e.Reason)
	}
	return fmt.Sprintf("malformed position: %s: %s", e.Field, e.Reason)
}

func (e *MalformedPositionError) Unwrap() error { return ErrMalformedPosition }

type InvalidSquareError struct {
	Text string
}

func (e *InvalidSquareError) Error() string {
	return fmt.Sprintf("invalid square %q", e.Text)
}

func (e *InvalidSquareError) Unwrap() error { return ErrInvalidSquare }

type IllegalMoveError struct {
	From Square
	To   Square
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move %s%s", e.From, e.To)
}

func (e *IllegalMoveError) Unwrap() error { return ErrIllegalMove }

func malformed(field, format string, args ...interface{}) error {
	return &MalformedPositionError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
