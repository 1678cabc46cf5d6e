// Package service provides the business logic layer for shelves, journals,
// planning, and vision boards.
package service

import (
	domainerrors "github.com/bexshelf/bexshelf-server/internal/errors"
	"github.com/bexshelf/bexshelf-server/internal/validation"
)

// validate is the shared validator instance for request validation.
var validate = validation.New()

// orNotFound rewrites the store's bare not-found sentinel into an
// entity-specific message while letting real failures (I/O, canceled
// context) pass through untouched.
func orNotFound(err error, msg string) error {
	if err == domainerrors.ErrNotFound {
		return domainerrors.NotFound(msg)
	}
	return err
}
