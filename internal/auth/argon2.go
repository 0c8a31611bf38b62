// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id defaults (OWASP second choice: m=19456, t=2, p=1).
const (
	Argon2Time    = 2
	Argon2Memory  = 19 * 1024
	Argon2Threads = 1
	Argon2KeyLen  = 32
	Argon2SaltLen = 16
)

// argon2Cost is the tunable part of an argon2id hash.
type argon2Cost struct {
	time    uint32
	memory  uint32
	threads uint8
}

func defaultArgon2Cost() argon2Cost {
	return argon2Cost{time: Argon2Time, memory: Argon2Memory, threads: Argon2Threads}
}

// phcHash is a decoded $argon2id$v=..$m=..,t=..,p=..$salt$key string.
type phcHash struct {
	version int
	cost    argon2Cost
	salt    []byte
	key     []byte
}

var errNotArgon2id = errors.New("not an argon2id hash")

func parsePHC(encoded string) (phcHash, error) {
	var h phcHash

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return h, fmt.Errorf("invalid hash format")
	}
	if parts[1] != "argon2id" {
		return h, fmt.Errorf("%w: %s", errNotArgon2id, parts[1])
	}
	if _, err := fmt.Sscanf(parts[2], "v=%d", &h.version); err != nil {
		return h, fmt.Errorf("parsing version: %w", err)
	}
	if h.version != argon2.Version {
		return h, fmt.Errorf("unsupported argon2 version %d", h.version)
	}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &h.cost.memory, &h.cost.time, &h.cost.threads); err != nil {
		return h, fmt.Errorf("parsing parameters: %w", err)
	}

	var err error
	if h.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return h, fmt.Errorf("decoding salt: %w", err)
	}
	if h.key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		return h, fmt.Errorf("decoding hash: %w", err)
	}
	if len(h.key) == 0 {
		return h, fmt.Errorf("empty hash")
	}
	return h, nil
}

func (h phcHash) String() string {
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		h.version, h.cost.memory, h.cost.time, h.cost.threads,
		base64.RawStdEncoding.EncodeToString(h.salt),
		base64.RawStdEncoding.EncodeToString(h.key))
}

func hashArgon2(password string, cost argon2Cost) (string, error) {
	salt := make([]byte, Argon2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	h := phcHash{
		version: argon2.Version,
		cost:    cost,
		salt:    salt,
		key:     argon2.IDKey([]byte(password), salt, cost.time, cost.memory, cost.threads, Argon2KeyLen),
	}
	return h.String(), nil
}

// verifyArgon2 checks password using the parameters recorded in the hash.
func verifyArgon2(password, encoded string) (bool, error) {
	h, err := parsePHC(encoded)
	if err != nil {
		return false, err
	}
	got := argon2.IDKey([]byte(password), h.salt, h.cost.time, h.cost.memory, h.cost.threads, uint32(len(h.key)))
	return subtle.ConstantTimeCompare(got, h.key) == 1, nil
}

// argon2NeedsRehash reports whether encoded is not an argon2id hash with cost.
func argon2NeedsRehash(encoded string, cost argon2Cost) bool {
	h, err := parsePHC(encoded)
	return err != nil || h.cost != cost
}
