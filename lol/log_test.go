package lol

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestChkOnlyPrintsAtLevel(t *testing.T) {
	prev := Level.Load()
	defer Level.Store(prev)
	var buf bytes.Buffer
	l, c, _ := New(&buf)
	Level.Store(Warn)
	if !c.D(errors.New("quiet")) {
		t.Fatal("Chk must report a non-nil error even when not printing")
	}
	if buf.Len() != 0 {
		t.Fatalf("debug check printed at warn level: %q", buf.String())
	}
	if c.E(nil) {
		t.Fatal("Chk reported a nil error")
	}
	l.E.F("boom %d", 1)
	if !strings.Contains(buf.String(), "boom 1") {
		t.Fatalf("expected error line, got %q", buf.String())
	}
}

func TestErrReturnsError(t *testing.T) {
	prev := Level.Load()
	defer Level.Store(prev)
	var buf bytes.Buffer
	_, _, e := New(&buf)
	Level.Store(Off)
	err := e.E("failed %s", "here")
	if err == nil || err.Error() != "failed here" {
		t.Fatalf("unexpected error %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("printed while off: %q", buf.String())
	}
}

func TestGetLogLevel(t *testing.T) {
	for i, name := range LevelNames {
		if GetLogLevel(name) != i {
			t.Fatalf("level %s mapped to %d", name, GetLogLevel(name))
		}
	}
	if GetLogLevel("bogus") != Info {
		t.Fatal("unknown level should fall back to info")
	}
}
