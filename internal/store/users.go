// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
)

// User is a row of the users table.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	IsAdmin      bool
}

// UserSummary is the listing projection of a user, without the hash.
type UserSummary struct {
	ID       int64
	Username string
	IsAdmin  bool
}

const getUserByUsername = `SELECT id, username, password_hash, is_admin FROM users WHERE username = ?`

// GetUserByUsername returns sql.ErrNoRows when no user matches.
func (q *Queries) GetUserByUsername(ctx context.Context, username string) (User, error) {
	var u User
	err := q.db.QueryRowContext(ctx, getUserByUsername, username).Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.IsAdmin,
	)
	return u, err
}

const createUser = `INSERT INTO users (username, password_hash, is_admin) VALUES (?, ?, ?)
RETURNING id, username, password_hash, is_admin`

// CreateUserParams holds the columns set on insert.
type CreateUserParams struct {
	Username     string
	PasswordHash string
	IsAdmin      bool
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	var u User
	err := q.db.QueryRowContext(ctx, createUser, arg.Username, arg.PasswordHash, arg.IsAdmin).Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.IsAdmin,
	)
	return u, err
}

const updateUserPassword = `UPDATE users SET password_hash = ? WHERE id = ?`

func (q *Queries) UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error {
	return execOne(q.db.ExecContext(ctx, updateUserPassword, passwordHash, id))
}

const updateUserPasswordAndAdmin = `UPDATE users SET password_hash = ?, is_admin = 1 WHERE id = ?`

// UpdateUserPasswordAndAdmin sets both fields in one statement.
func (q *Queries) UpdateUserPasswordAndAdmin(ctx context.Context, id int64, passwordHash string) error {
	return execOne(q.db.ExecContext(ctx, updateUserPasswordAndAdmin, passwordHash, id))
}

const setUserAdmin = `UPDATE users SET is_admin = 1 WHERE id = ?`

func (q *Queries) SetUserAdmin(ctx context.Context, id int64) error {
	return execOne(q.db.ExecContext(ctx, setUserAdmin, id))
}

const listUsers = `SELECT id, username, is_admin FROM users ORDER BY id`

func (q *Queries) ListUsers(ctx context.Context) ([]UserSummary, error) {
	rows, err := q.db.QueryContext(ctx, listUsers)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	items := []UserSummary{}
	for rows.Next() {
		var i UserSummary
		if err := rows.Scan(&i.ID, &i.Username, &i.IsAdmin); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// execOne returns sql.ErrNoRows when an update matched no row.
func execOne(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
