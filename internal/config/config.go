// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/olegiv/clubmgr/internal/auth"
)

// InstanceDir is the directory under BaseDir that holds the database file.
const InstanceDir = "instance"

// Config holds the tooling configuration loaded from environment variables.
type Config struct {
	BaseDir    string `env:"CLUBMGR_BASE_DIR" envDefault:"."`
	DBName     string `env:"CLUBMGR_DB_NAME" envDefault:"clubmgr.db"`
	HashMethod string `env:"CLUBMGR_HASH_METHOD" envDefault:"scrypt"`
	LogLevel   string `env:"CLUBMGR_LOG_LEVEL" envDefault:"warn"`
	Lang       string `env:"CLUBMGR_LANG" envDefault:"en"`
}

// DBPath returns the database file path, <BaseDir>/instance/<DBName>.
func (c Config) DBPath() string {
	return filepath.Join(c.BaseDir, InstanceDir, c.DBName)
}

// Method returns the validated password hashing method.
func (c Config) Method() (auth.Method, error) {
	return auth.ParseMethod(c.HashMethod)
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if strings.TrimSpace(cfg.DBName) == "" {
		return nil, fmt.Errorf("CLUBMGR_DB_NAME must not be empty")
	}
	if strings.ContainsAny(cfg.DBName, `/\`) {
		return nil, fmt.Errorf("CLUBMGR_DB_NAME must be a file name, got %q", cfg.DBName)
	}

	if _, err := cfg.Method(); err != nil {
		return nil, fmt.Errorf("CLUBMGR_HASH_METHOD: %w", err)
	}

	switch strings.ToLower(cfg.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("CLUBMGR_LOG_LEVEL must be one of debug, info, warn, error; got %q", cfg.LogLevel)
	}

	return cfg, nil
}
