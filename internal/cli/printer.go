// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/olegiv/clubmgr/internal/admin"
	"github.com/olegiv/clubmgr/internal/i18n"
)

// Printer writes localized status lines. Styles are bound to the writer, so
// output to a pipe or file carries no escape sequences.
type Printer struct {
	out  io.Writer
	err  io.Writer
	lang string

	renderer    *lipgloss.Renderer
	okStyle     lipgloss.Style
	infoStyle   lipgloss.Style
	errorStyle  lipgloss.Style
	hintStyle   lipgloss.Style
	titleStyle  lipgloss.Style
	headerStyle lipgloss.Style
	adminStyle  lipgloss.Style
}

// NewPrinter returns a Printer writing status lines to out and errors to
// errOut.
func NewPrinter(out, errOut io.Writer, lang string) *Printer {
	r := lipgloss.NewRenderer(out)
	er := lipgloss.NewRenderer(errOut)

	return &Printer{
		out:      out,
		err:      errOut,
		lang:     lang,
		renderer: r,

		okStyle: r.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true),
		infoStyle: r.NewStyle().
			Foreground(lipgloss.Color("86")),
		errorStyle: er.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),
		hintStyle: r.NewStyle().
			Foreground(lipgloss.Color("214")),
		titleStyle: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")),
		headerStyle: r.NewStyle().
			Bold(true).
			Padding(0, 1),
		adminStyle: r.NewStyle().
			Foreground(lipgloss.Color("170")),
	}
}

// OK prints a success line.
func (p *Printer) OK(key string, args ...any) {
	p.status(p.out, p.okStyle, "status.ok", key, args...)
}

// Info prints an informational line.
func (p *Printer) Info(key string, args ...any) {
	p.status(p.out, p.infoStyle, "status.info", key, args...)
}

// Hint prints a hint line.
func (p *Printer) Hint(key string, args ...any) {
	p.status(p.out, p.hintStyle, "status.hint", key, args...)
}

// Error prints an error line to the error stream.
func (p *Printer) Error(key string, args ...any) {
	p.status(p.err, p.errorStyle, "status.error", key, args...)
}

func (p *Printer) status(w io.Writer, style lipgloss.Style, tag, key string, args ...any) {
	_, _ = fmt.Fprintf(w, "%s %s\n", style.Render(i18n.T(p.lang, tag)), i18n.T(p.lang, key, args...))
}

// Title prints a banner line.
func (p *Printer) Title(key string) {
	_, _ = fmt.Fprintln(p.out, p.titleStyle.Render(i18n.T(p.lang, key)))
}

// Line prints a plain localized line.
func (p *Printer) Line(key string, args ...any) {
	_, _ = fmt.Fprintln(p.out, i18n.T(p.lang, key, args...))
}

// Printf writes unlocalized text.
func (p *Printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}

// Blank prints an empty line.
func (p *Printer) Blank() {
	_, _ = fmt.Fprintln(p.out)
}

// Users prints users as a table, or a notice when there are none.
func (p *Printer) Users(users []admin.UserSummary) {
	if len(users) == 0 {
		p.Info("info.no_users")
		return
	}

	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{strconv.FormatInt(u.ID, 10), u.Username, p.role(u.IsAdmin)})
	}

	cell := p.renderer.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(p.renderer.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers(
			i18n.T(p.lang, "table.id"),
			i18n.T(p.lang, "table.username"),
			i18n.T(p.lang, "table.role"),
		).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return p.headerStyle
			case col == 2 && row >= 0 && row < len(users) && users[row].IsAdmin:
				return p.adminStyle.Padding(0, 1)
			default:
				return cell
			}
		})

	_, _ = fmt.Fprintln(p.out, p.titleStyle.Render(i18n.T(p.lang, "table.title")))
	_, _ = fmt.Fprintln(p.out, t.Render())
}

// Usernames prints the registered usernames as a bulleted list.
func (p *Printer) Usernames(users []admin.UserSummary) {
	if len(users) == 0 {
		return
	}
	p.Blank()
	p.Info("info.registered_users")
	for _, u := range users {
		_, _ = fmt.Fprintf(p.out, "  - %s\n", u.Username)
	}
}

func (p *Printer) role(isAdmin bool) string {
	if isAdmin {
		return i18n.T(p.lang, "role.admin")
	}
	return i18n.T(p.lang, "role.user")
}
