// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/term"

	"github.com/olegiv/clubmgr/internal/i18n"
)

// loadCatalog loads the message catalog for tests that render text without
// going through a command.
func loadCatalog(t *testing.T) {
	t.Helper()
	require.NoError(t, i18n.Init(nil))
}

// stubTerminal makes the prompter believe it is attached to a terminal and
// feeds readPassword from answers.
func stubTerminal(t *testing.T, answers ...string) *int {
	t.Helper()

	origRead, origIsTerm, origGet, origRestore := readPassword, isTerminal, getState, restoreState
	t.Cleanup(func() {
		readPassword, isTerminal, getState, restoreState = origRead, origIsTerm, origGet, origRestore
	})

	restored := new(int)
	isTerminal = func(int) bool { return true }
	getState = func(int) (*term.State, error) { return &term.State{}, nil }
	restoreState = func(int, *term.State) error {
		*restored++
		return nil
	}
	readPassword = func(int) ([]byte, error) {
		if len(answers) == 0 {
			return nil, io.EOF
		}
		a := answers[0]
		answers = answers[1:]
		return []byte(a), nil
	}
	return restored
}

func newTestPrompter(t *testing.T, input string, out io.Writer, fd int) *Prompter {
	t.Helper()
	loadCatalog(t)
	return &Prompter{
		in:   bufio.NewReader(strings.NewReader(input)),
		out:  out,
		fd:   fd,
		lang: "en",
	}
}

func TestPrompter_Username(t *testing.T) {
	var out bytes.Buffer
	p := newTestPrompter(t, "\n \t \r\n  bob \n", &out, -1)

	got, err := p.Username(context.Background(), "prompt.username")

	require.NoError(t, err)
	assert.Equal(t, "bob", got)
	assert.Equal(t, 1, strings.Count(out.String(), "Enter administrator username: "))
	assert.Equal(t, 2, strings.Count(out.String(), "Username cannot be empty, please re-enter: "))
}

func TestPrompter_UsernameWithoutTrailingNewline(t *testing.T) {
	p := newTestPrompter(t, "alice", io.Discard, -1)

	got, err := p.Username(context.Background(), "prompt.username")

	require.NoError(t, err)
	assert.Equal(t, "alice", got)
}

func TestPrompter_EOFIsCancellation(t *testing.T) {
	p := newTestPrompter(t, "\n", io.Discard, -1)

	_, err := p.Username(context.Background(), "prompt.username")

	assert.ErrorIs(t, err, ErrCancelled)
}

func TestPrompter_LineMayBeEmpty(t *testing.T) {
	p := newTestPrompter(t, "\n", io.Discard, -1)

	got, err := p.Line(context.Background(), "prompt.menu_choice")

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPrompter_PasswordFromPipe(t *testing.T) {
	var out bytes.Buffer
	p := newTestPrompter(t, "\n  s3cret  \n", &out, -1)

	got, err := p.Password(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "s3cret", got)
	assert.Contains(t, out.String(), "Password cannot be empty, please re-enter: ")
}

func TestPrompter_PasswordFromTerminal(t *testing.T) {
	stubTerminal(t, "", "  ", "hunter2")
	var out bytes.Buffer
	p := newTestPrompter(t, "", &out, 0)

	require.True(t, p.Interactive())
	got, err := p.Password(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "hunter2", got)
	assert.Equal(t, 2, strings.Count(out.String(), "Password cannot be empty, please re-enter: "))
	assert.NotContains(t, out.String(), "hunter2")
}

func TestPrompter_PasswordTerminalEOF(t *testing.T) {
	stubTerminal(t)
	p := newTestPrompter(t, "", io.Discard, 0)

	_, err := p.Password(context.Background())

	assert.ErrorIs(t, err, ErrCancelled)
}

func TestPrompter_PasswordTerminalError(t *testing.T) {
	stubTerminal(t)
	readPassword = func(int) ([]byte, error) { return nil, errors.New("tty gone") }
	p := newTestPrompter(t, "", io.Discard, 0)

	_, err := p.Password(context.Background())

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCancelled)
	assert.Equal(t, ExitError, ExitCode(err))
}

func TestPrompter_PasswordInterruptRestoresTerminal(t *testing.T) {
	restored := stubTerminal(t)
	block := make(chan struct{})
	t.Cleanup(func() { close(block) })
	readPassword = func(int) ([]byte, error) {
		<-block
		return nil, io.EOF
	}

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(10*time.Millisecond, cancel)

	_, err := newTestPrompter(t, "", io.Discard, 0).Password(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, ExitOK, ExitCode(err))
	assert.Equal(t, 1, *restored)
}

func TestPrompter_LineInterrupted(t *testing.T) {
	r, w := io.Pipe()
	t.Cleanup(func() { _ = w.Close() })

	p := NewPrompter(r, io.Discard, "en")
	assert.False(t, p.Interactive())

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(10*time.Millisecond, cancel)

	_, err := p.Username(ctx, "prompt.username")

	assert.ErrorIs(t, err, context.Canceled)
}
