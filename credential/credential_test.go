package credential

import (
	"os"
	"path/filepath"
	"testing"
)

func exercise(t *testing.T, s I) {
	t.Helper()
	if _, ok, err := s.Get(); err != nil || ok {
		t.Fatalf("empty store: ok %v err %v", ok, err)
	}
	const nsec = "nsec1vl029mgpspedva04g90vltkh6fvh240zqtv9k0t9af8935ke9laqsnlfe5"
	if err := s.Set(nsec); err != nil {
		t.Fatal(err)
	}
	got, ok, err := s.Get()
	if err != nil || !ok || got != nsec {
		t.Fatalf("got %q ok %v err %v", got, ok, err)
	}
	if err = s.Set(" " + nsec + "\n"); err != nil {
		t.Fatal(err)
	}
	if got, _, _ = s.Get(); got != nsec {
		t.Fatalf("whitespace not trimmed: %q", got)
	}
	if err = s.Remove(); err != nil {
		t.Fatal(err)
	}
	if _, ok, err = s.Get(); err != nil || ok {
		t.Fatalf("after remove: ok %v err %v", ok, err)
	}
	if err = s.Remove(); err != nil {
		t.Fatalf("second remove: %v", err)
	}
}

func TestMemory(t *testing.T) {
	exercise(t, NewMemory())
	if _, ok, _ := NewMemory("nsec1x").Get(); !ok {
		t.Fatal("preloaded memory store is empty")
	}
}

func TestFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	f := NewFile("nts", dir)
	exercise(t, f)
	if err := f.Set("nsec1abc"); err != nil {
		t.Fatal(err)
	}
	fi, err := os.Stat(f.Path)
	if err != nil {
		t.Fatal(err)
	}
	if fi.Mode().Perm() != 0600 {
		t.Fatalf("credential file mode %v", fi.Mode().Perm())
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("temporary files left behind: %v", entries)
	}
}

func TestFileDefaultDir(t *testing.T) {
	f := NewFile("nts-test", "")
	if filepath.Base(filepath.Dir(f.Path)) != "nts-test" || filepath.Base(f.Path) != FileName {
		t.Fatalf("unexpected default path %s", f.Path)
	}
}
