// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package admin

// Outcome reports which branch a provisioning operation took.
type Outcome int

const (
	// OutcomeNone accompanies an error.
	OutcomeNone Outcome = iota
	// OutcomeCreated: a new administrator record was inserted.
	OutcomeCreated
	// OutcomePasswordRotated: the user was already an administrator and only
	// the password hash changed.
	OutcomePasswordRotated
	// OutcomePromoted: an existing regular user became an administrator.
	OutcomePromoted
	// OutcomeAlreadyAdmin: nothing was written.
	OutcomeAlreadyAdmin
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomePasswordRotated:
		return "password_rotated"
	case OutcomePromoted:
		return "promoted"
	case OutcomeAlreadyAdmin:
		return "already_admin"
	default:
		return "none"
	}
}
