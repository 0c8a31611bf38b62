// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/olegiv/clubmgr/internal/store"
)

// Error categories. Returned errors wrap exactly one of these together with
// the underlying cause, so callers can use errors.Is for the category and
// errors.As for driver details.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("user not found")
	ErrStorage    = errors.New("storage error")
	ErrConflict   = errors.New("conflict")
)

// Validation failures.
var (
	ErrUsernameRequired = fmt.Errorf("%w: username is required", ErrValidation)
	ErrPasswordRequired = fmt.Errorf("%w: password is required", ErrValidation)
)

// classify wraps a store error in its category. Errors that already carry a
// category, and context cancellation, pass through unchanged.
func classify(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrValidation), errors.Is(err, ErrNotFound),
		errors.Is(err, ErrStorage), errors.Is(err, ErrConflict):
		return err
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case store.IsUniqueViolation(err):
		return fmt.Errorf("%w: %s: %w", ErrConflict, op, err)
	default:
		return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
	}
}
