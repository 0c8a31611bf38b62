// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/olegiv/clubmgr/internal/admin"
)

// PromoteAdmin grants administrator rights to an existing user, creating the
// user when a password is supplied.
func (a *App) PromoteAdmin(ctx context.Context, args []string) int {
	const name = "promote-admin"

	flags := newFlagSet(name, a.IO.Err)
	var username, password string
	var showVersion bool
	flags.StringVar(&username, "username", "", "username to promote (required)")
	flags.StringVar(&password, "password", "", "password used to create the user if it does not exist")
	flags.BoolVar(&showVersion, "version", false, "show version information")
	flags.BoolVar(&showVersion, "v", false, "show version information (shorthand)")
	flags.Usage = func() {
		_, _ = fmt.Fprintf(flags.Output(), "Usage: %s -username U [-password P]\n\n", name)
		flags.PrintDefaults()
		printEnvHelp(flags.Output())
	}
	if code := flagResult(parseFlags(flags, args)); code >= 0 {
		return code
	}
	if showVersion {
		a.printVersion(name)
		return ExitOK
	}

	username = strings.TrimSpace(username)
	if username == "" {
		_, _ = fmt.Fprintln(flags.Output(), "flag -username is required")
		flags.Usage()
		return ExitUsage
	}

	s, err := a.newSession(name)
	if err != nil {
		return ExitCode(err)
	}

	if err := a.openStore(s, false); err != nil {
		return s.fail(err, username)
	}
	defer s.Close()

	outcome, err := s.prov.PromoteOrCreate(ctx, username, password)
	if err != nil {
		code := s.fail(err, username)
		if errors.Is(err, admin.ErrNotFound) {
			s.out.Hint("hint.need_password")
		}
		return code
	}

	s.reportOutcome(outcome, username, false)
	return ExitOK
}
