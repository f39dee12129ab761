package tag

import (
	"testing"
)

func TestMarshal(t *testing.T) {
	for _, v := range []struct {
		t    *T
		want string
	}{
		{nil, `[]`},
		{New[string](), `[]`},
		{New("d", "abc"), `["d","abc"]`},
		{New("title", "a \"quoted\"\nline"), `["title","a \"quoted\"\nline"]`},
		{New([]byte("k"), []byte("23")), `["k","23"]`},
	} {
		if got := string(v.t.Marshal(nil)); got != v.want {
			t.Fatalf("got %s want %s", got, v.want)
		}
	}
}

func TestAccessors(t *testing.T) {
	tg := New("title", "hello")
	if tg.S(0) != "title" || string(tg.Value()) != "hello" || tg.S(5) != "" {
		t.Fatal("accessor mismatch")
	}
	if !tg.HasKey([]byte("title")) || tg.HasKey([]byte("d")) {
		t.Fatal("HasKey mismatch")
	}
	c := tg.Clone()
	c.B(1)[0] = 'j'
	if tg.S(1) != "hello" {
		t.Fatal("clone shares memory with the original")
	}
	if tg.Equal(c) || !tg.Equal(New("title", "hello")) {
		t.Fatal("Equal mismatch")
	}
	if NewWithCap(4).Append([]byte("x")).Len() != 1 {
		t.Fatal("append failed")
	}
	if New("ok", string([]byte{0xff})).ValidUTF8() {
		t.Fatal("invalid utf-8 not detected")
	}
}
