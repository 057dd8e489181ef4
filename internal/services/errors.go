package services

import (
	"errors"
	"fmt"

	"github.com/stwalsh4118/icyapa/internal/repository"
)

// Service-level errors. Store errors are re-exported so handlers only need
// to check this package.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrZoneNotFound = errors.New("zone not found")

	ErrBuildingNotFound      = repository.ErrBuildingNotFound
	ErrBusinessNotFound      = repository.ErrBusinessNotFound
	ErrInvalidOperation      = repository.ErrInvalidOperation
	ErrDuplicateID           = repository.ErrDuplicateID
	ErrDuplicateSlug         = repository.ErrDuplicateSlug
	ErrAlreadyClaimed        = repository.ErrAlreadyClaimed
	ErrBuildingHasBusinesses = repository.ErrBuildingHasBusinesses
)

func invalidInput(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
