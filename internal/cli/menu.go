// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/olegiv/clubmgr/internal/i18n"
)

type menuChoice int

const (
	choiceNone menuChoice = iota
	choicePromote
	choiceList
	choiceQuit
)

var menuItems = []struct {
	choice menuChoice
	key    string
}{
	{choicePromote, "menu.promote"},
	{choiceList, "menu.list"},
	{choiceQuit, "menu.quit"},
}

var (
	menuTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	menuSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("170")).
				Bold(true).
				PaddingLeft(2)

	menuNormalStyle = lipgloss.NewStyle().
			PaddingLeft(4)

	menuHelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)
)

// menuModel is the set-admin action picker.
type menuModel struct {
	lang      string
	cursor    int
	choice    menuChoice
	cancelled bool
}

func newMenuModel(lang string) menuModel {
	return menuModel{lang: lang}
}

func (m menuModel) Init() tea.Cmd {
	return nil
}

func (m menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch s := key.String(); s {
	case "ctrl+c", "esc":
		m.cancelled = true
		return m, tea.Quit
	case "q":
		m.choice = choiceQuit
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(menuItems)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.choice = menuItems[m.cursor].choice
		return m, tea.Quit
	case "1", "2", "3":
		m.cursor = int(s[0] - '1')
		m.choice = menuItems[m.cursor].choice
		return m, tea.Quit
	}
	return m, nil
}

func (m menuModel) View() string {
	if m.choice != choiceNone || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(menuTitleStyle.Render(i18n.T(m.lang, "menu.choose")))
	b.WriteString("\n")
	for i, item := range menuItems {
		label := fmt.Sprintf("%d. %s", i+1, i18n.T(m.lang, item.key))
		if i == m.cursor {
			b.WriteString(menuSelectedStyle.Render("> " + label))
		} else {
			b.WriteString(menuNormalStyle.Render(label))
		}
		b.WriteString("\n")
	}
	b.WriteString(menuHelpStyle.Render(i18n.T(m.lang, "menu.help")))
	b.WriteString("\n")
	return b.String()
}

// runMenu asks which action to run. A terminal gets the interactive picker;
// anything else gets a numbered list read from the prompter.
func (s *session) runMenu(ctx context.Context, in io.Reader, out io.Writer) (menuChoice, error) {
	if !s.prompt.Interactive() {
		return s.textMenu(ctx)
	}

	p := tea.NewProgram(newMenuModel(s.lang),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, tea.ErrProgramKilled) {
			return choiceNone, ErrCancelled
		}
		return choiceNone, fmt.Errorf("running menu: %w", err)
	}

	m, ok := final.(menuModel)
	if !ok || m.cancelled {
		return choiceNone, ErrCancelled
	}
	return m.choice, nil
}

func (s *session) textMenu(ctx context.Context) (menuChoice, error) {
	s.out.Line("menu.choose")
	for i, item := range menuItems {
		s.out.Printf("%d. %s\n", i+1, i18n.T(s.lang, item.key))
	}
	s.out.Blank()

	answer, err := s.prompt.Line(ctx, "prompt.menu_choice")
	if err != nil {
		return choiceNone, err
	}
	for i, item := range menuItems {
		if answer == fmt.Sprint(i+1) {
			return item.choice, nil
		}
	}
	return choiceNone, fmt.Errorf("%w: %q", errInvalidOption, answer)
}
