package board

import (
	"errors"
	"fmt"
)

var (
	ErrIndexOutOfRange  = errors.New("index out of range")
	ErrInvalidOperation = errors.New("invalid operation")
)

func indexError(subject string, index int, length int) error {
	return fmt.Errorf("%s index %d not in [0, %d): %w", subject, index, length, ErrIndexOutOfRange)
}
