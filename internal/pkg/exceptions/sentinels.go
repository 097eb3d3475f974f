package exceptions

import (
	"errors"
	"fmt"
)

var (
	ErrUnresolvable = errors.New("unresolvable reference")
	ErrIntegrity    = errors.New("data integrity fault")
	ErrConflict     = errors.New("conflict")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
)

func withSentinel(err, sentinel error) error {
	if err == nil {
		return sentinel
	}
	if errors.Is(err, sentinel) {
		return err
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}
