// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cli

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/clubmgr/internal/admin"
)

func press(t *testing.T, m menuModel, keys ...tea.KeyMsg) (menuModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(k)
		var ok bool
		m, ok = next.(menuModel)
		require.True(t, ok)
	}
	return m, cmd
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMenuModel_Navigation(t *testing.T) {
	m, cmd := press(t, newMenuModel("en"),
		tea.KeyMsg{Type: tea.KeyUp},
		tea.KeyMsg{Type: tea.KeyDown},
		runeKey("j"),
		tea.KeyMsg{Type: tea.KeyDown},
	)
	assert.Nil(t, cmd)
	assert.Equal(t, 2, m.cursor)
	assert.Equal(t, choiceNone, m.choice)

	m, _ = press(t, m, runeKey("k"))
	assert.Equal(t, 1, m.cursor)

	m, cmd = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.NotNil(t, cmd)
	assert.Equal(t, choiceList, m.choice)
	assert.Empty(t, m.View())
}

func TestMenuModel_Shortcuts(t *testing.T) {
	tests := []struct {
		key  tea.KeyMsg
		want menuChoice
	}{
		{runeKey("1"), choicePromote},
		{runeKey("2"), choiceList},
		{runeKey("3"), choiceQuit},
		{runeKey("q"), choiceQuit},
	}
	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			m, cmd := press(t, newMenuModel("en"), tt.key)
			assert.NotNil(t, cmd)
			assert.Equal(t, tt.want, m.choice)
			assert.False(t, m.cancelled)
		})
	}
}

func TestMenuModel_Cancel(t *testing.T) {
	for _, k := range []tea.KeyMsg{{Type: tea.KeyCtrlC}, {Type: tea.KeyEsc}} {
		m, cmd := press(t, newMenuModel("en"), k)
		assert.NotNil(t, cmd)
		assert.True(t, m.cancelled)
		assert.Equal(t, choiceNone, m.choice)
	}
}

func TestMenuModel_IgnoresOtherMessages(t *testing.T) {
	m := newMenuModel("en")
	next, cmd := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.Nil(t, cmd)
	assert.Equal(t, m, next)
}

func TestMenuModel_View(t *testing.T) {
	loadCatalog(t)
	view := newMenuModel("en").View()
	assert.Contains(t, view, "Choose an action:")
	assert.Contains(t, view, "> 1. Set administrator")
	assert.Contains(t, view, "2. List all users")
	assert.Contains(t, view, "3. Quit")

	zh := newMenuModel("zh").View()
	assert.Contains(t, zh, "查看所有用户")
}

func TestPrinter_Users(t *testing.T) {
	loadCatalog(t)
	var out, errOut bytes.Buffer
	p := NewPrinter(&out, &errOut, "en")

	p.Users([]admin.UserSummary{
		{ID: 1, Username: "alice", IsAdmin: true},
		{ID: 2, Username: "bob", IsAdmin: false},
	})

	got := out.String()
	assert.NotContains(t, got, "\x1b[")
	for _, s := range []string{"User list", "ID", "Username", "Role", "alice", "bob", "Administrator", "Regular user"} {
		assert.Contains(t, got, s)
	}
	var aliceLine string
	for _, line := range strings.Split(got, "\n") {
		if strings.Contains(line, "alice") {
			aliceLine = line
		}
	}
	assert.Contains(t, aliceLine, "Administrator")
	assert.Empty(t, errOut.String())
}

func TestPrinter_StatusStreams(t *testing.T) {
	loadCatalog(t)
	var out, errOut bytes.Buffer
	p := NewPrinter(&out, &errOut, "en")

	p.OK("outcome.created", "alice")
	p.Error("error.not_found", "bob")
	p.Users(nil)

	assert.Equal(t, "[OK] Created administrator 'alice'.\n[INFO] No registered users yet.\n", out.String())
	assert.Equal(t, "[ERROR] User 'bob' does not exist.\n", errOut.String())
}
