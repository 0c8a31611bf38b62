// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/olegiv/clubmgr/internal/admin"
)

// SetAdmin promotes a registered user or lists users. Without arguments it
// shows a menu. It never creates the database or users.
func (a *App) SetAdmin(ctx context.Context, args []string) int {
	const name = "set-admin"

	flags := newFlagSet(name, a.IO.Err)
	var list, showVersion bool
	flags.BoolVar(&list, "l", false, "list registered users")
	flags.BoolVar(&showVersion, "version", false, "show version information")
	flags.BoolVar(&showVersion, "v", false, "show version information (shorthand)")
	flags.Usage = func() {
		_, _ = fmt.Fprintf(flags.Output(), "Usage: %s [username | list | -l]\n\n", name)
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
	if flags.NArg() > 1 {
		_, _ = fmt.Fprintln(flags.Output(), "too many arguments")
		flags.Usage()
		return ExitUsage
	}

	s, err := a.newSession(name)
	if err != nil {
		return ExitCode(err)
	}
	defer s.Close()

	s.out.Title("menu.title")
	s.out.Blank()

	switch arg := flags.Arg(0); {
	case list || arg == "list":
		return a.listUsers(ctx, s)
	case arg != "":
		return a.setAdmin(ctx, s, arg)
	}

	choice, err := s.runMenu(ctx, a.IO.In, a.IO.Out)
	if err != nil {
		return s.fail(err, "")
	}

	switch choice {
	case choicePromote:
		s.out.Blank()
		if code := a.listUsers(ctx, s); code != ExitOK {
			return code
		}
		s.out.Blank()
		username, err := s.prompt.Line(ctx, "prompt.promote_username")
		if err != nil {
			return s.fail(err, "")
		}
		return a.setAdmin(ctx, s, username)
	case choiceList:
		return a.listUsers(ctx, s)
	default:
		s.out.Info("info.exit")
		return ExitOK
	}
}

func (a *App) ensureStore(s *session) error {
	if s.prov != nil {
		return nil
	}
	return a.openStore(s, true)
}

func (a *App) listUsers(ctx context.Context, s *session) int {
	if err := a.ensureStore(s); err != nil {
		return s.fail(err, "")
	}
	users, err := s.prov.ListUsers(ctx)
	if err != nil {
		return s.fail(err, "")
	}
	s.out.Users(users)
	return ExitOK
}

func (a *App) setAdmin(ctx context.Context, s *session, username string) int {
	if err := a.ensureStore(s); err != nil {
		return s.fail(err, username)
	}

	outcome, err := s.prov.SetAdminByUsername(ctx, username)
	if err != nil {
		code := s.fail(err, username)
		if errors.Is(err, admin.ErrNotFound) {
			s.out.Hint("hint.register_first")
			if users, lerr := s.prov.ListUsers(ctx); lerr == nil {
				s.out.Usernames(users)
			}
		}
		return code
	}

	s.reportOutcome(outcome, username, false)
	if outcome == admin.OutcomePromoted {
		s.out.Hint("hint.relogin")
	}
	return ExitOK
}
