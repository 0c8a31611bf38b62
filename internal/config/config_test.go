// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/olegiv/clubmgr/internal/auth"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set %s: %v", key, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.BaseDir != "." {
		t.Errorf("BaseDir = %q, want %q", cfg.BaseDir, ".")
	}
	if cfg.DBName != "clubmgr.db" {
		t.Errorf("DBName = %q, want %q", cfg.DBName, "clubmgr.db")
	}
	if cfg.HashMethod != "scrypt" {
		t.Errorf("HashMethod = %q, want %q", cfg.HashMethod, "scrypt")
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "warn")
	}
	if cfg.Lang != "en" {
		t.Errorf("Lang = %q, want %q", cfg.Lang, "en")
	}
	if got, want := cfg.DBPath(), filepath.Join("instance", "clubmgr.db"); got != want {
		t.Errorf("DBPath() = %q, want %q", got, want)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	setEnv(t, "CLUBMGR_BASE_DIR", "/srv/clubmgr")
	setEnv(t, "CLUBMGR_DB_NAME", "clubs.sqlite")
	setEnv(t, "CLUBMGR_HASH_METHOD", "pbkdf2")
	setEnv(t, "CLUBMGR_LOG_LEVEL", "debug")
	setEnv(t, "CLUBMGR_LANG", "zh-CN")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if got, want := cfg.DBPath(), filepath.Join("/srv/clubmgr", "instance", "clubs.sqlite"); got != want {
		t.Errorf("DBPath() = %q, want %q", got, want)
	}
	m, err := cfg.Method()
	if err != nil {
		t.Fatalf("Method() error: %v", err)
	}
	if m != auth.MethodPBKDF2 {
		t.Errorf("Method() = %q, want %q", m, auth.MethodPBKDF2)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.Lang != "zh-CN" {
		t.Errorf("Lang = %q, want %q", cfg.Lang, "zh-CN")
	}
}

func TestLoad_InvalidHashMethod(t *testing.T) {
	os.Clearenv()
	setEnv(t, "CLUBMGR_HASH_METHOD", "md5")

	_, err := Load()
	if !errors.Is(err, auth.ErrUnknownMethod) {
		t.Fatalf("Load() err = %v, want ErrUnknownMethod", err)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"empty db name", "CLUBMGR_DB_NAME", " "},
		{"db name with path", "CLUBMGR_DB_NAME", "../other.db"},
		{"bad log level", "CLUBMGR_LOG_LEVEL", "verbose"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			setEnv(t, tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Load() with %s=%q expected error", tt.key, tt.value)
			}
		})
	}
}
