// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package auth provides password hashing and verification.
//
// Hashes are written in the format the club web application verifies with
// werkzeug's check_password_hash ("method$salt$hexdigest"), so an account
// provisioned here can log in through the web UI. Argon2id PHC strings and
// bcrypt hashes are understood as well.
package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// Method names a hashing scheme.
type Method string

// Supported hashing methods.
const (
	MethodScrypt   Method = "scrypt"
	MethodPBKDF2   Method = "pbkdf2"
	MethodArgon2id Method = "argon2id"
)

// DefaultMethod matches werkzeug's generate_password_hash default.
const DefaultMethod = MethodScrypt

// SaltLength is the number of salt characters in werkzeug-format hashes.
const SaltLength = 16

const saltChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// ErrUnknownMethod is returned for a hashing method this package cannot produce.
var ErrUnknownMethod = errors.New("unknown hash method")

// ParseMethod validates a configured method name.
func ParseMethod(s string) (Method, error) {
	switch m := Method(strings.ToLower(strings.TrimSpace(s))); m {
	case MethodScrypt, MethodPBKDF2, MethodArgon2id:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
}

// Hasher produces password hashes with one method and fixed cost parameters.
type Hasher struct {
	method           Method
	scryptN          int
	scryptR          int
	scryptP          int
	pbkdf2Iterations int
	argon2           argon2Cost
}

// HasherOption configures a Hasher.
type HasherOption func(*Hasher)

// WithScryptCost overrides the scrypt N, r and p parameters.
func WithScryptCost(n, r, p int) HasherOption {
	return func(h *Hasher) {
		h.scryptN, h.scryptR, h.scryptP = n, r, p
	}
}

// WithPBKDF2Iterations overrides the PBKDF2 iteration count.
func WithPBKDF2Iterations(n int) HasherOption {
	return func(h *Hasher) {
		h.pbkdf2Iterations = n
	}
}

// WithArgon2Cost overrides the argon2id time, memory (KiB) and thread
// parameters.
func WithArgon2Cost(time, memory uint32, threads uint8) HasherOption {
	return func(h *Hasher) {
		h.argon2 = argon2Cost{time: time, memory: memory, threads: threads}
	}
}

// NewHasher returns a Hasher for method with werkzeug's default costs.
func NewHasher(method Method, opts ...HasherOption) (*Hasher, error) {
	if _, err := ParseMethod(string(method)); err != nil {
		return nil, err
	}
	h := &Hasher{
		method:           method,
		scryptN:          ScryptN,
		scryptR:          ScryptR,
		scryptP:          ScryptP,
		pbkdf2Iterations: PBKDF2Iterations,
		argon2:           defaultArgon2Cost(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Method returns the method the Hasher produces.
func (h *Hasher) Method() Method {
	return h.method
}

// Hash returns a salted hash of password.
func (h *Hasher) Hash(password string) (string, error) {
	switch h.method {
	case MethodScrypt:
		return hashScrypt(password, h.scryptN, h.scryptR, h.scryptP)
	case MethodPBKDF2:
		return hashPBKDF2(password, "sha256", h.pbkdf2Iterations)
	case MethodArgon2id:
		return hashArgon2(password, h.argon2)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMethod, h.method)
	}
}

// NeedsRehash reports whether encodedHash was produced with a different
// method or different parameters than this Hasher uses.
func (h *Hasher) NeedsRehash(encodedHash string) bool {
	switch h.method {
	case MethodArgon2id:
		return argon2NeedsRehash(encodedHash, h.argon2)
	case MethodScrypt:
		return !strings.HasPrefix(encodedHash, fmt.Sprintf("scrypt:%d:%d:%d$", h.scryptN, h.scryptR, h.scryptP))
	case MethodPBKDF2:
		return !strings.HasPrefix(encodedHash, fmt.Sprintf("pbkdf2:sha256:%d$", h.pbkdf2Iterations))
	default:
		return true
	}
}

// HashPassword hashes password with the default method and costs.
func HashPassword(password string) (string, error) {
	h, err := NewHasher(DefaultMethod)
	if err != nil {
		return "", err
	}
	return h.Hash(password)
}

// CheckPassword verifies password against any supported hash format.
func CheckPassword(password, encodedHash string) (bool, error) {
	switch {
	case strings.HasPrefix(encodedHash, "$argon2id$"):
		return verifyArgon2(password, encodedHash)
	case isBcrypt(encodedHash):
		return verifyBcrypt(password, encodedHash)
	case strings.Count(encodedHash, "$") >= 2:
		return verifyWerkzeug(password, encodedHash)
	default:
		return false, fmt.Errorf("unrecognised hash format")
	}
}

// genSalt returns n random characters from [A-Za-z0-9].
func genSalt(n int) (string, error) {
	limit := big.NewInt(int64(len(saltChars)))
	var sb strings.Builder
	sb.Grow(n)
	for range n {
		i, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("generating salt: %w", err)
		}
		sb.WriteByte(saltChars[i.Int64()])
	}
	return sb.String(), nil
}
