package tags

import (
	"testing"

	"nts.lol/tag"
)

func TestMarshal(t *testing.T) {
	var empty *T
	if string(empty.Marshal(nil)) != "[]" || string(New().Marshal(nil)) != "[]" {
		t.Fatal("empty tags must marshal to []")
	}
	tg := FromStrings([]string{"d", "x"}, []string{"k", "23"})
	if got := string(tg.Marshal(nil)); got != `[["d","x"],["k","23"]]` {
		t.Fatalf("got %s", got)
	}
	if string(tg.GetFirst([]byte("k")).Value()) != "23" || tg.GetFirst([]byte("p")) != nil {
		t.Fatal("GetFirst mismatch")
	}
	if !tg.Equal(New(tag.New("d", "x"), tag.New("k", "23"))) {
		t.Fatal("Equal mismatch")
	}
	s := tg.ToStringSlice()
	if len(s) != 2 || s[1][1] != "23" {
		t.Fatalf("unexpected %v", s)
	}
}
