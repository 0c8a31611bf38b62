// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/olegiv/clubmgr/internal/admin"
)

// CreateAdmin creates an administrator or resets an existing one's password.
// Missing credentials are prompted for.
func (a *App) CreateAdmin(ctx context.Context, args []string) int {
	const name = "create-admin"

	flags := newFlagSet(name, a.IO.Err)
	var username, password string
	var showVersion bool
	flags.StringVar(&username, "username", "", "administrator username")
	flags.StringVar(&username, "u", "", "administrator username (shorthand)")
	flags.StringVar(&password, "password", "", "administrator password (use only in a trusted environment)")
	flags.StringVar(&password, "p", "", "administrator password (shorthand)")
	flags.BoolVar(&showVersion, "version", false, "show version information")
	flags.BoolVar(&showVersion, "v", false, "show version information (shorthand)")
	flags.Usage = func() {
		_, _ = fmt.Fprintf(flags.Output(), "Usage: %s [-u username] [-p password]\n\n", name)
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

	s, err := a.newSession(name)
	if err != nil {
		return ExitCode(err)
	}

	username = strings.TrimSpace(username)
	if username == "" {
		username, err = s.prompt.Username(ctx, "prompt.username")
		if err != nil {
			return s.fail(err, "")
		}
	}
	if password == "" {
		password, err = s.prompt.Password(ctx)
		if err != nil {
			return s.fail(err, username)
		}
	}

	if err := a.openStore(s, false); err != nil {
		return s.fail(err, username)
	}
	defer s.Close()

	outcome, err := s.prov.Provision(ctx, username, password)
	if err != nil {
		return s.fail(err, username)
	}

	s.reportOutcome(outcome, username, true)
	s.out.Hint("hint.login")
	return ExitOK
}

// reportOutcome prints the status line for a successful provisioning call.
// passwordSet says whether a promotion also replaced the password.
func (s *session) reportOutcome(outcome admin.Outcome, username string, passwordSet bool) {
	switch outcome {
	case admin.OutcomeCreated:
		s.out.OK("outcome.created", username)
	case admin.OutcomePasswordRotated:
		s.out.Info("outcome.password_rotated", username)
	case admin.OutcomePromoted:
		if passwordSet {
			s.out.OK("outcome.promoted_password", username)
		} else {
			s.out.OK("outcome.promoted", username)
		}
	case admin.OutcomeAlreadyAdmin:
		s.out.Info("outcome.already_admin", username)
	}
}
