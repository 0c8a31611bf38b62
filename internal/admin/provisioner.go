// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package admin implements administrator provisioning for the club web
// application's users table: creating an administrator, promoting an existing
// account, rotating an administrator's password, and listing accounts.
package admin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/olegiv/clubmgr/internal/auth"
	"github.com/olegiv/clubmgr/internal/store"
)

// UserSummary is one row of ListUsers.
type UserSummary = store.UserSummary

// Hasher produces a salted password hash.
type Hasher interface {
	Hash(password string) (string, error)
}

// HasherFunc adapts a function to Hasher.
type HasherFunc func(password string) (string, error)

// Hash calls f(password).
func (f HasherFunc) Hash(password string) (string, error) {
	return f(password)
}

// Provisioner ensures administrator records exist in the users table.
type Provisioner struct {
	db     *sql.DB
	hasher Hasher
	logger *slog.Logger
}

// Option configures a Provisioner.
type Option func(*Provisioner)

// WithHasher sets the password hasher. The default is auth.HashPassword.
func WithHasher(h Hasher) Option {
	return func(p *Provisioner) {
		p.hasher = h
	}
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(p *Provisioner) {
		p.logger = l
	}
}

// NewProvisioner returns a Provisioner backed by db.
func NewProvisioner(db *sql.DB, opts ...Option) *Provisioner {
	p := &Provisioner{
		db:     db,
		hasher: HasherFunc(auth.HashPassword),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// EnsureSchema creates the users table if it is missing.
func (p *Provisioner) EnsureSchema(ctx context.Context) error {
	if err := store.Migrate(ctx, p.db, p.logger); err != nil {
		return classify("ensuring schema", err)
	}
	return nil
}

// Provision makes username an administrator whose password is password.
//
// A missing user is created, a regular user is promoted and given the new
// password, and an existing administrator only has the password replaced.
// Each write is a single statement, so both fields change or neither does.
func (p *Provisioner) Provision(ctx context.Context, username, password string) (Outcome, error) {
	username, err := normalizeUsername(username)
	if err != nil {
		return OutcomeNone, err
	}
	if password == "" {
		return OutcomeNone, ErrPasswordRequired
	}

	if err := p.EnsureSchema(ctx); err != nil {
		return OutcomeNone, err
	}

	q := store.New(p.db)

	user, found, err := p.lookup(ctx, q, username)
	if err != nil {
		return OutcomeNone, err
	}

	hash, err := p.hash(password)
	if err != nil {
		return OutcomeNone, err
	}

	if !found {
		return p.create(ctx, q, username, hash)
	}

	if user.IsAdmin {
		if err := q.UpdateUserPassword(ctx, user.ID, hash); err != nil {
			return OutcomeNone, classifyWrite("updating password", username, err)
		}
		p.logger.Info("rotated administrator password", "username", username, "id", user.ID)
		return OutcomePasswordRotated, nil
	}

	if err := q.UpdateUserPasswordAndAdmin(ctx, user.ID, hash); err != nil {
		return OutcomeNone, classifyWrite("promoting user", username, err)
	}
	p.logger.Info("promoted user and updated password", "username", username, "id", user.ID)
	return OutcomePromoted, nil
}

// PromoteOrCreate promotes an existing user in place without touching the
// password. A missing user is created as administrator when password is
// non-empty; otherwise ErrNotFound is returned and nothing is written.
func (p *Provisioner) PromoteOrCreate(ctx context.Context, username, password string) (Outcome, error) {
	username, err := normalizeUsername(username)
	if err != nil {
		return OutcomeNone, err
	}

	if err := p.EnsureSchema(ctx); err != nil {
		return OutcomeNone, err
	}

	q := store.New(p.db)

	user, found, err := p.lookup(ctx, q, username)
	if err != nil {
		return OutcomeNone, err
	}

	if !found {
		if password == "" {
			return OutcomeNone, fmt.Errorf("%w: %q (a password is required to create it)", ErrNotFound, username)
		}
		hash, err := p.hash(password)
		if err != nil {
			return OutcomeNone, err
		}
		return p.create(ctx, q, username, hash)
	}

	return p.promote(ctx, q, user)
}

// SetAdminByUsername promotes an existing user without touching the
// password. It never creates users or the schema: a missing user yields
// ErrNotFound and a store without a users table yields ErrStorage.
func (p *Provisioner) SetAdminByUsername(ctx context.Context, username string) (Outcome, error) {
	username, err := normalizeUsername(username)
	if err != nil {
		return OutcomeNone, err
	}

	ok, err := store.HasUsersTable(ctx, p.db)
	if err != nil {
		return OutcomeNone, classify("inspecting schema", err)
	}
	if !ok {
		return OutcomeNone, fmt.Errorf("%w: users table does not exist", ErrStorage)
	}

	q := store.New(p.db)

	user, found, err := p.lookup(ctx, q, username)
	if err != nil {
		return OutcomeNone, err
	}
	if !found {
		return OutcomeNone, fmt.Errorf("%w: %q", ErrNotFound, username)
	}

	return p.promote(ctx, q, user)
}

// ListUsers returns every user ordered by id. An empty table yields an empty
// slice.
func (p *Provisioner) ListUsers(ctx context.Context) ([]UserSummary, error) {
	users, err := store.New(p.db).ListUsers(ctx)
	if err != nil {
		return nil, classify("listing users", err)
	}
	return users, nil
}

func (p *Provisioner) lookup(ctx context.Context, q *store.Queries, username string) (store.User, bool, error) {
	user, err := q.GetUserByUsername(ctx, username)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return store.User{}, false, nil
	case err != nil:
		return store.User{}, false, classify("looking up user", err)
	default:
		return user, true, nil
	}
}

func (p *Provisioner) create(ctx context.Context, q *store.Queries, username, hash string) (Outcome, error) {
	user, err := q.CreateUser(ctx, store.CreateUserParams{
		Username:     username,
		PasswordHash: hash,
		IsAdmin:      true,
	})
	if err != nil {
		return OutcomeNone, classify("creating user", err)
	}
	p.logger.Info("created administrator", "username", user.Username, "id", user.ID)
	return OutcomeCreated, nil
}

func (p *Provisioner) promote(ctx context.Context, q *store.Queries, user store.User) (Outcome, error) {
	if user.IsAdmin {
		p.logger.Info("user is already an administrator", "username", user.Username, "id", user.ID)
		return OutcomeAlreadyAdmin, nil
	}
	if err := q.SetUserAdmin(ctx, user.ID); err != nil {
		return OutcomeNone, classifyWrite("promoting user", user.Username, err)
	}
	p.logger.Info("promoted user", "username", user.Username, "id", user.ID)
	return OutcomePromoted, nil
}

func (p *Provisioner) hash(password string) (string, error) {
	hash, err := p.hasher.Hash(password)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	if hash == "" {
		return "", errors.New("hashing password: empty hash")
	}
	return hash, nil
}

// classifyWrite treats an update that matched no row as a conflict: the user
// was seen by the lookup and removed before the write.
func classifyWrite(op, username string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s: user %q was removed concurrently", ErrConflict, op, username)
	}
	return classify(op, err)
}

func normalizeUsername(username string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", ErrUsernameRequired
	}
	return username, nil
}
