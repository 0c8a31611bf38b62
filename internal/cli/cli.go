// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cli is the command boundary for the admin tools: it parses flags,
// gathers credentials from the terminal, calls the admin provisioner, and
// turns outcomes and errors into messages and exit codes.
package cli

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/olegiv/clubmgr/internal/admin"
	"github.com/olegiv/clubmgr/internal/auth"
	"github.com/olegiv/clubmgr/internal/config"
	"github.com/olegiv/clubmgr/internal/i18n"
	"github.com/olegiv/clubmgr/internal/logging"
	"github.com/olegiv/clubmgr/internal/store"
	"github.com/olegiv/clubmgr/internal/version"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

var (
	// ErrCancelled reports that the user interrupted an interactive step.
	ErrCancelled = errors.New("cancelled")

	errUsage         = errors.New("usage error")
	errDBMissing     = errors.New("database file does not exist")
	errInvalidOption = errors.New("invalid option")
)

// IO bundles the streams a command reads from and writes to.
type IO struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StdIO returns the process streams.
func StdIO() IO {
	return IO{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// App runs the admin commands.
type App struct {
	IO      IO
	Version version.Info
	// HasherOptions tune the configured hashing method; tests lower the cost.
	HasherOptions []auth.HasherOption
}

// ExitCode maps a command error to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil, isCancelled(err):
		return ExitOK
	case errors.Is(err, errUsage):
		return ExitUsage
	default:
		return ExitError
	}
}

func isCancelled(err error) bool {
	return errors.Is(err, ErrCancelled) || errors.Is(err, context.Canceled)
}

// session is the per-invocation state shared by the commands.
type session struct {
	name   string
	cfg    *config.Config
	lang   string
	logger *slog.Logger
	out    *Printer
	prompt *Prompter
	db     *sql.DB
	prov   *admin.Provisioner
}

// newSession loads .env and configuration and prepares output. The store is
// not opened yet. The catalog is loaded first so a configuration error is
// still reported as a translated message.
func (a *App) newSession(name string) (*session, error) {
	_ = godotenv.Load()

	if err := i18n.Init(nil); err != nil {
		_, _ = fmt.Fprintf(a.IO.Err, "%s: loading messages: %v\n", name, err)
		return nil, fmt.Errorf("initializing i18n: %w", err)
	}

	// Config has not been parsed yet; read the language directly so the
	// error below is printed in the requested language.
	s := &session{
		name: name,
		lang: i18n.MatchLanguage(os.Getenv("CLUBMGR_LANG")),
	}
	s.out = NewPrinter(a.IO.Out, a.IO.Err, s.lang)

	cfg, err := config.Load()
	if err != nil {
		s.out.Error("error.config", err.Error())
		return nil, err
	}
	s.cfg = cfg

	s.logger = logging.New(a.IO.Err, cfg.LogLevel).With(
		"command", name,
		"run_id", uuid.NewString(),
	)
	i18n.SetLogger(s.logger)

	s.lang = i18n.MatchLanguage(cfg.Lang)
	s.out = NewPrinter(a.IO.Out, a.IO.Err, s.lang)
	s.prompt = NewPrompter(a.IO.In, a.IO.Out, s.lang)

	return s, nil
}

// openStore opens the database and builds the provisioner. With mustExist the
// database file has to be there already.
func (a *App) openStore(s *session, mustExist bool) error {
	path := s.cfg.DBPath()

	if mustExist {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", errDBMissing, path)
		}
	}

	method, err := s.cfg.Method()
	if err != nil {
		return err
	}
	hasher, err := auth.NewHasher(method, a.HasherOptions...)
	if err != nil {
		return err
	}

	s.logger.Debug("opening database", "path", path)
	db, err := store.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %w", admin.ErrStorage, err)
	}
	s.db = db
	s.prov = admin.NewProvisioner(db,
		admin.WithHasher(hasher),
		admin.WithLogger(s.logger),
	)
	return nil
}

func (s *session) Close() {
	if s.db == nil {
		return
	}
	if err := s.db.Close(); err != nil {
		s.logger.Error("error closing database connection", "error", err)
	}
}

// fail prints the user-facing message for err and returns the exit code.
// username is the account the command was working on, if any.
func (s *session) fail(err error, username string) int {
	code := ExitCode(err)

	switch {
	case isCancelled(err):
		s.out.Info("info.cancelled")
		return code
	case errors.Is(err, errUsage):
		return code
	case errors.Is(err, admin.ErrUsernameRequired):
		s.out.Error("error.username_required")
	case errors.Is(err, admin.ErrPasswordRequired):
		s.out.Error("error.password_required")
	case errors.Is(err, admin.ErrValidation):
		s.out.Error("error.invalid_input")
	case errors.Is(err, admin.ErrNotFound):
		s.out.Error("error.not_found", username)
	case errors.Is(err, admin.ErrConflict):
		s.out.Error("error.conflict")
	case errors.Is(err, errDBMissing):
		s.out.Error("error.db_missing", s.cfg.DBPath())
		s.out.Hint("hint.start_app")
	case errors.Is(err, errInvalidOption):
		s.out.Error("error.invalid_option")
	case errors.Is(err, admin.ErrStorage):
		s.out.Error("error.storage")
	default:
		s.out.Error("error.unexpected")
	}

	s.logger.Error("command failed", "error", err)
	return code
}

// parseFlags parses args, printing usage on -h. It returns errUsage for bad
// flags and flag.ErrHelp for -h.
func parseFlags(flags *flag.FlagSet, args []string) error {
	err := flags.Parse(args)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, flag.ErrHelp):
		return flag.ErrHelp
	default:
		return fmt.Errorf("%w: %w", errUsage, err)
	}
}

func newFlagSet(name string, w io.Writer) *flag.FlagSet {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(w)
	return flags
}

func printEnvHelp(w io.Writer) {
	_, _ = fmt.Fprintf(w, "\nEnvironment Variables:\n")
	_, _ = fmt.Fprintf(w, "  CLUBMGR_BASE_DIR       Base directory of the web application (default: .)\n")
	_, _ = fmt.Fprintf(w, "  CLUBMGR_DB_NAME        Database file name under instance/ (default: clubmgr.db)\n")
	_, _ = fmt.Fprintf(w, "  CLUBMGR_HASH_METHOD    Password hash: scrypt|pbkdf2|argon2id (default: scrypt)\n")
	_, _ = fmt.Fprintf(w, "  CLUBMGR_LOG_LEVEL      Log level: debug|info|warn|error (default: warn)\n")
	_, _ = fmt.Fprintf(w, "  CLUBMGR_LANG           Output language: en|zh (default: en)\n")
}

func (a *App) printVersion(name string) {
	_, _ = fmt.Fprintf(a.IO.Out, "%s %s\n", name, a.Version)
}

// flagResult turns a parseFlags error into an exit code, or -1 to continue.
func flagResult(err error) int {
	switch {
	case err == nil:
		return -1
	case errors.Is(err, flag.ErrHelp):
		return ExitOK
	default:
		return ExitUsage
	}
}
