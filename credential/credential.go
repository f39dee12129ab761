// Package credential persists the encoded secret key (nsec) of the local
// identity. A store holds at most one credential.
package credential

import (
	"strings"
	"sync"
)

// I is a place to keep one encoded secret key. Get reports ok false with a nil
// error when nothing is stored.
type I interface {
	Get() (nsec st, ok bo, err er)
	Set(nsec st) (err er)
	Remove() (err er)
}

// Memory is a process local store, used in tests and by the CLI when
// persistence is turned off.
type Memory struct {
	sync.Mutex
	nsec st
}

var _ I = (*Memory)(nil)

// NewMemory returns a Memory store, optionally holding nsec already.
func NewMemory(nsec ...st) (m *Memory) {
	m = &Memory{}
	if len(nsec) > 0 {
		m.nsec = strings.TrimSpace(nsec[0])
	}
	return
}

func (m *Memory) Get() (nsec st, ok bo, err er) {
	m.Lock()
	defer m.Unlock()
	return m.nsec, m.nsec != "", nil
}

func (m *Memory) Set(nsec st) (err er) {
	m.Lock()
	defer m.Unlock()
	m.nsec = strings.TrimSpace(nsec)
	return
}

func (m *Memory) Remove() (err er) {
	m.Lock()
	defer m.Unlock()
	m.nsec = ""
	return
}
