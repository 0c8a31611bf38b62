package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

// recordingHandler keeps the last record it handled.
type recordingHandler struct {
	attrs []slog.Attr
	last  slog.Record
}

func (h *recordingHandler) Enabled(context.Context, slog.Level) bool { return true }
func (h *recordingHandler) Handle(_ context.Context, r slog.Record) error {
	h.last = r
	return nil
}
func (h *recordingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h.attrs = append(h.attrs, attrs...)
	return h
}
func (h *recordingHandler) WithGroup(string) slog.Handler { return h }

func recordAttrs(r slog.Record) map[string]slog.Value {
	out := map[string]slog.Value{}
	r.Attrs(func(a slog.Attr) bool {
		out[a.Key] = a.Value
		return true
	})
	return out
}

func TestRedactHandler_Handle(t *testing.T) {
	inner := &recordingHandler{}
	logger := slog.New(NewRedactHandler(inner))

	logger.Info("provisioned admin", "username", "alice", "password", "hunter2", "Password_Hash", "scrypt:...")

	attrs := recordAttrs(inner.last)
	if got := attrs["username"].String(); got != "alice" {
		t.Errorf("username = %q, want alice", got)
	}
	if got := attrs["password"].String(); got != Redacted {
		t.Errorf("password = %q, want %q", got, Redacted)
	}
	if got := attrs["Password_Hash"].String(); got != Redacted {
		t.Errorf("Password_Hash = %q, want %q", got, Redacted)
	}
	if inner.last.Message != "provisioned admin" {
		t.Errorf("Message = %q", inner.last.Message)
	}
}

func TestRedactHandler_Group(t *testing.T) {
	inner := &recordingHandler{}
	logger := slog.New(NewRedactHandler(inner))

	logger.Info("login", slog.Group("creds", "username", "bob", "token", "abc"))

	group := recordAttrs(inner.last)["creds"].Group()
	for _, a := range group {
		if a.Key == "token" && a.Value.String() != Redacted {
			t.Errorf("token in group = %q, want redacted", a.Value.String())
		}
		if a.Key == "username" && a.Value.String() != "bob" {
			t.Errorf("username in group = %q, want bob", a.Value.String())
		}
	}
}

func TestRedactHandler_WithAttrs(t *testing.T) {
	inner := &recordingHandler{}
	_ = NewRedactHandler(inner).WithAttrs([]slog.Attr{
		slog.String("secret", "s3"),
		slog.String("run_id", "r1"),
	})

	if len(inner.attrs) != 2 {
		t.Fatalf("inner attrs = %d, want 2", len(inner.attrs))
	}
	if inner.attrs[0].Value.String() != Redacted {
		t.Errorf("secret = %q, want redacted", inner.attrs[0].Value.String())
	}
	if inner.attrs[1].Value.String() != "r1" {
		t.Errorf("run_id = %q, want r1", inner.attrs[1].Value.String())
	}
}

func TestNew_LevelAndRedaction(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "warn")

	logger.Info("hidden")
	logger.Warn("visible", "password", "pw")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info record written at warn level")
	}
	if !strings.Contains(out, "visible") {
		t.Error("warn record missing")
	}
	if strings.Contains(out, "pw\n") || !strings.Contains(out, Redacted) {
		t.Errorf("password not redacted: %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
