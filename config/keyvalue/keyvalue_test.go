package keyvalue

import (
	"bytes"
	"testing"
	"time"
)

type sample struct {
	Name    string        `env:"B_NAME"`
	Count   int           `env:"A_COUNT"`
	Wait    time.Duration `env:"C_WAIT"`
	List    []string      `env:"D_LIST"`
	Skipped string
}

func TestPrintEnv(t *testing.T) {
	var buf bytes.Buffer
	PrintEnv(sample{Name: "it's here", Count: 3, Wait: time.Second, List: []string{"a", "b"}},
		&buf)
	want := "#!/usr/bin/env bash\n" +
		"export A_COUNT=3\n" +
		"export B_NAME='it'\\''s here'\n" +
		"export C_WAIT=1s\n" +
		"export D_LIST=a,b\n"
	if buf.String() != want {
		t.Fatalf("got\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestQuote(t *testing.T) {
	for in, want := range map[string]string{
		"":                "''",
		"plain":           "plain",
		"http://x:1/save": "http://x:1/save",
		"a b":             "'a b'",
		"$HOME":           "'$HOME'",
	} {
		if got := Quote(in); got != want {
			t.Fatalf("Quote(%q) = %s, want %s", in, got, want)
		}
	}
}
