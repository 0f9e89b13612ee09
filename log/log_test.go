package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestZeroValueLoggerDiscards(t *testing.T) {
	var l Logger

	// Must not panic.
	l.Trace("trace")
	l.Debug("debug")
	l.Info("info")
	l.Warn("warn")
	l.Error("error")

	if got := l.Level(); got != DefaultLevel {
		t.Errorf("Level() = %v, want %v", got, DefaultLevel)
	}

	if got := l.Format(); got != DefaultFormat {
		t.Errorf("Format() = %v, want %v", got, DefaultFormat)
	}
}

func TestLevelFiltering(t *testing.T) {
	buf := new(bytes.Buffer)
	l := Make(buf, WithLevel(LevelWarn), WithPretty(false))

	l.Info("hidden")
	l.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message not filtered: %q", out)
	}

	if !strings.Contains(out, "visible") {
		t.Errorf("warn message missing: %q", out)
	}
}

func TestTraceLevelLabel(t *testing.T) {
	buf := new(bytes.Buffer)
	l := Make(buf, WithLevel(LevelTrace), WithPretty(false))

	l.Trace("lowest")

	if !strings.Contains(buf.String(), "TRACE") {
		t.Errorf("trace label missing: %q", buf.String())
	}
}

func TestJSONFormat(t *testing.T) {
	buf := new(bytes.Buffer)
	l := Make(buf, WithFormat(FormatJSON))

	l.Info("structured")

	out := buf.String()
	if !strings.HasPrefix(out, "{") {
		t.Errorf("expected JSON output, got %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want Level
	}{
		{"trace", LevelTrace},
		{"TRACE", LevelTrace},
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"bogus", DefaultLevel},
	}

	for _, c := range cases {
		if got := ParseLevel(c.in); got != c.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	cases := []struct {
		in   string
		want Format
	}{
		{"json", FormatJSON},
		{" JSON ", FormatJSON},
		{"text", FormatText},
		{"", DefaultFormat},
	}

	for _, c := range cases {
		if got := ParseFormat(c.in); got != c.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestWrapRetainsOutput(t *testing.T) {
	buf := new(bytes.Buffer)
	l := Make(buf, WithLevel(LevelError))

	l = l.Wrap(WithLevel(LevelInfo), WithPretty(false))
	l.Info("after wrap")

	if !strings.Contains(buf.String(), "after wrap") {
		t.Errorf("wrapped logger lost output writer: %q", buf.String())
	}
}
