package credential

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/adrg/xdg"

	"nts.lol/chk"
	"nts.lol/log"
)

// FileName is the name of the credential file inside the data directory.
const FileName = "nsec"

// File keeps the credential in a single file readable only by its owner.
type File struct {
	sync.Mutex
	Path st
}

var _ I = (*File)(nil)

// NewFile returns a store keeping the credential in dir. An empty dir uses
// the XDG data directory of appName.
func NewFile(appName, dir st) (f *File) {
	if dir == "" {
		dir = filepath.Join(xdg.DataHome, appName)
	}
	return &File{Path: filepath.Join(dir, FileName)}
}

func (f *File) Get() (nsec st, ok bo, err er) {
	f.Lock()
	defer f.Unlock()
	var b []byte
	if b, err = os.ReadFile(f.Path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = nil
			return
		}
		chk.E(err)
		return
	}
	nsec = strings.TrimSpace(string(b))
	ok = nsec != ""
	return
}

// Set writes the credential to a temporary file and renames it into place,
// so a reader sees either the old or the new value.
func (f *File) Set(nsec st) (err er) {
	f.Lock()
	defer f.Unlock()
	dir := filepath.Dir(f.Path)
	if err = os.MkdirAll(dir, 0700); chk.E(err) {
		return
	}
	var tmp *os.File
	if tmp, err = os.CreateTemp(dir, FileName+".*"); chk.E(err) {
		return
	}
	defer os.Remove(tmp.Name())
	if err = tmp.Chmod(0600); chk.E(err) {
		tmp.Close()
		return
	}
	if _, err = tmp.WriteString(strings.TrimSpace(nsec) + "\n"); chk.E(err) {
		tmp.Close()
		return
	}
	if err = tmp.Close(); chk.E(err) {
		return
	}
	if err = os.Rename(tmp.Name(), f.Path); chk.E(err) {
		return
	}
	log.D.Ln("stored credential at", f.Path)
	return
}

func (f *File) Remove() (err er) {
	f.Lock()
	defer f.Unlock()
	if err = os.Remove(f.Path); errors.Is(err, fs.ErrNotExist) {
		err = nil
	}
	return
}
