// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/scrypt"
)

// werkzeug defaults (werkzeug.security).
const (
	ScryptN          = 1 << 15
	ScryptR          = 8
	ScryptP          = 1
	ScryptKeyLen     = 64
	PBKDF2Iterations = 600000
)

func hashScrypt(password string, n, r, p int) (string, error) {
	salt, err := genSalt(SaltLength)
	if err != nil {
		return "", err
	}
	key, err := scrypt.Key([]byte(password), []byte(salt), n, r, p, ScryptKeyLen)
	if err != nil {
		return "", fmt.Errorf("scrypt: %w", err)
	}
	return fmt.Sprintf("scrypt:%d:%d:%d$%s$%s", n, r, p, salt, hex.EncodeToString(key)), nil
}

func hashPBKDF2(password, hashName string, iterations int) (string, error) {
	newHash, err := pbkdf2Hash(hashName)
	if err != nil {
		return "", err
	}
	salt, err := genSalt(SaltLength)
	if err != nil {
		return "", err
	}
	key := pbkdf2.Key([]byte(password), []byte(salt), iterations, newHash().Size(), newHash)
	return fmt.Sprintf("pbkdf2:%s:%d$%s$%s", hashName, iterations, salt, hex.EncodeToString(key)), nil
}

// verifyWerkzeug checks "method$salt$hexdigest" the way check_password_hash
// does: the salt is used as its UTF-8 bytes and parameters come from method.
func verifyWerkzeug(password, encodedHash string) (bool, error) {
	parts := strings.SplitN(encodedHash, "$", 3)
	if len(parts) != 3 {
		return false, fmt.Errorf("invalid hash format")
	}
	method, salt, digest := parts[0], parts[1], parts[2]

	expected, err := hex.DecodeString(digest)
	if err != nil {
		return false, fmt.Errorf("decoding digest: %w", err)
	}

	args := strings.Split(method, ":")
	var got []byte

	switch args[0] {
	case "scrypt":
		n, r, p := ScryptN, ScryptR, ScryptP
		if len(args) > 1 {
			if len(args) != 4 {
				return false, fmt.Errorf("invalid scrypt parameters %q", method)
			}
			vals := make([]int, 3)
			for i, a := range args[1:] {
				v, err := strconv.Atoi(a)
				if err != nil {
					return false, fmt.Errorf("parsing scrypt parameters: %w", err)
				}
				vals[i] = v
			}
			n, r, p = vals[0], vals[1], vals[2]
		}
		got, err = scrypt.Key([]byte(password), []byte(salt), n, r, p, len(expected))
		if err != nil {
			return false, fmt.Errorf("scrypt: %w", err)
		}

	case "pbkdf2":
		hashName, iterations := "sha256", PBKDF2Iterations
		if len(args) > 1 {
			hashName = args[1]
		}
		if len(args) > 2 {
			iterations, err = strconv.Atoi(args[2])
			if err != nil {
				return false, fmt.Errorf("parsing pbkdf2 iterations: %w", err)
			}
		}
		newHash, err := pbkdf2Hash(hashName)
		if err != nil {
			return false, err
		}
		got = pbkdf2.Key([]byte(password), []byte(salt), iterations, len(expected), newHash)

	default:
		return false, fmt.Errorf("unsupported hash type: %s", args[0])
	}

	return subtle.ConstantTimeCompare(got, expected) == 1, nil
}

func pbkdf2Hash(name string) (func() hash.Hash, error) {
	switch name {
	case "sha1":
		return sha1.New, nil
	case "sha256":
		return sha256.New, nil
	case "sha512":
		return sha512.New, nil
	default:
		return nil, fmt.Errorf("unsupported pbkdf2 hash: %s", name)
	}
}

func isBcrypt(encodedHash string) bool {
	return strings.HasPrefix(encodedHash, "$2a$") ||
		strings.HasPrefix(encodedHash, "$2b$") ||
		strings.HasPrefix(encodedHash, "$2y$")
}

func verifyBcrypt(password, encodedHash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("bcrypt: %w", err)
	}
}
