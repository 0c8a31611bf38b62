// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/olegiv/clubmgr/internal/i18n"
)

// Terminal seams, replaced in tests.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
	getState     = term.GetState
	restoreState = term.Restore
)

// Prompter reads credentials from the user. Reads are abandoned when the
// context is cancelled.
type Prompter struct {
	in   *bufio.Reader
	out  io.Writer
	fd   int
	lang string
}

// NewPrompter returns a Prompter reading from in. Password input is hidden
// only when in is a terminal.
func NewPrompter(in io.Reader, out io.Writer, lang string) *Prompter {
	fd := -1
	if f, ok := in.(*os.File); ok {
		fd = int(f.Fd())
	}
	return &Prompter{
		in:   bufio.NewReader(in),
		out:  out,
		fd:   fd,
		lang: lang,
	}
}

// Interactive reports whether input comes from a terminal.
func (p *Prompter) Interactive() bool {
	return p.fd >= 0 && isTerminal(p.fd)
}

// Username asks with the prompt under key and re-asks until the answer is
// non-empty.
func (p *Prompter) Username(ctx context.Context, key string) (string, error) {
	for {
		p.print(key)
		line, err := p.readLine(ctx)
		if err != nil {
			return "", err
		}
		if v := strings.TrimSpace(line); v != "" {
			return v, nil
		}
		key = "prompt.username_retry"
	}
}

// Line asks once and returns the trimmed answer, which may be empty.
func (p *Prompter) Line(ctx context.Context, key string) (string, error) {
	p.print(key)
	line, err := p.readLine(ctx)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Password asks for a password without echo and re-asks until it is
// non-empty.
func (p *Prompter) Password(ctx context.Context) (string, error) {
	key := "prompt.password"
	for {
		p.print(key)
		pw, err := p.readSecret(ctx)
		if err != nil {
			return "", err
		}
		if v := strings.TrimSpace(pw); v != "" {
			return v, nil
		}
		key = "prompt.password_retry"
	}
}

func (p *Prompter) print(key string) {
	_, _ = fmt.Fprint(p.out, i18n.T(p.lang, key))
}

type readResult struct {
	line string
	err  error
}

// readLine reads one line. EOF before any input counts as cancellation.
func (p *Prompter) readLine(ctx context.Context) (string, error) {
	ch := make(chan readResult, 1)
	go func() {
		line, err := p.in.ReadString('\n')
		ch <- readResult{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		_, _ = fmt.Fprintln(p.out)
		return "", ctx.Err()
	case r := <-ch:
		switch {
		case r.err == nil:
			return strings.TrimRight(r.line, "\r\n"), nil
		case errors.Is(r.err, io.EOF) && r.line != "":
			return r.line, nil
		case errors.Is(r.err, io.EOF):
			_, _ = fmt.Fprintln(p.out)
			return "", ErrCancelled
		default:
			return "", fmt.Errorf("reading input: %w", r.err)
		}
	}
}

// readSecret reads a password without echo when attached to a terminal and
// falls back to a plain line otherwise. The terminal mode is restored if the
// read is abandoned.
func (p *Prompter) readSecret(ctx context.Context) (string, error) {
	if !p.Interactive() {
		return p.readLine(ctx)
	}

	state, err := getState(p.fd)
	if err != nil {
		return "", fmt.Errorf("reading terminal state: %w", err)
	}

	read := readPassword
	ch := make(chan readResult, 1)
	go func() {
		pw, err := read(p.fd)
		ch <- readResult{line: string(pw), err: err}
	}()

	select {
	case <-ctx.Done():
		_ = restoreState(p.fd, state)
		_, _ = fmt.Fprintln(p.out)
		return "", ctx.Err()
	case r := <-ch:
		_, _ = fmt.Fprintln(p.out)
		switch {
		case r.err == nil:
			return r.line, nil
		case errors.Is(r.err, io.EOF):
			return "", ErrCancelled
		default:
			return "", fmt.Errorf("reading password: %w", r.err)
		}
	}
}
