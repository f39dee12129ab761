package keys

import (
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"

	"nts.lol/chk"
	"nts.lol/credential"
	"nts.lol/errorf"
	"nts.lol/log"
)

// Holder provides the active identity of a session, backed by a credential
// store. Reads are lock free; replacing the identity persists the new
// credential first and then swaps a single pointer, so a reader sees either
// the old or the new keypair.
type Holder struct {
	store   credential.I
	mx      sync.Mutex
	current atomic.Pointer[Identity]
}

// NewHolder returns a Holder over store. Nothing is loaded until first use.
func NewHolder(store credential.I) *Holder { return &Holder{store: store} }

// Current returns the loaded identity, loading it from the store if needed.
// It never creates one: with nothing stored it returns errorf.ErrNoCredential.
func (h *Holder) Current() (id *Identity, err er) {
	if id = h.current.Load(); id != nil {
		return
	}
	h.mx.Lock()
	defer h.mx.Unlock()
	return h.load()
}

// Active returns the session identity, loading the stored credential or,
// when there is none, generating and persisting a new one. Repeated calls
// return the same identity. A stored credential that does not decode is
// reported and left in place.
func (h *Holder) Active() (id *Identity, err er) {
	if id = h.current.Load(); id != nil {
		return
	}
	h.mx.Lock()
	defer h.mx.Unlock()
	if id, err = h.load(); !errors.Is(err, errorf.ErrNoCredential) {
		return
	}
	if id, err = Generate(); chk.E(err) {
		return
	}
	if err = h.persist(id); err != nil {
		id = nil
		return
	}
	log.I.Ln("generated new identity", id.PubHex())
	return
}

// Import replaces the identity with the one of secret key sk.
func (h *Holder) Import(sk by) (id *Identity, err er) {
	if id, err = FromSecret(sk); err != nil {
		return
	}
	h.mx.Lock()
	defer h.mx.Unlock()
	if err = h.persist(id); err != nil {
		id = nil
		return
	}
	log.I.Ln("imported identity", id.PubHex())
	return
}

// ImportNsec replaces the identity with the one encoded in nsec.
func (h *Holder) ImportNsec(nsec st) (id *Identity, err er) {
	var sk by
	if sk, err = Decode(nsec); err != nil {
		return
	}
	return h.Import(sk)
}

// Reset forgets the identity and removes the stored credential. The next
// Active call creates a new one.
func (h *Holder) Reset() (err er) {
	h.mx.Lock()
	defer h.mx.Unlock()
	if err = h.store.Remove(); chk.E(err) {
		return
	}
	h.current.Store(nil)
	log.I.Ln("identity reset")
	return
}

// load reads the store. The caller holds mx.
func (h *Holder) load() (id *Identity, err er) {
	if id = h.current.Load(); id != nil {
		return
	}
	var nsec st
	var ok bool
	if nsec, ok, err = h.store.Get(); chk.E(err) {
		return
	}
	if !ok {
		err = errorf.ErrNoCredential
		return
	}
	var sk by
	if sk, err = Decode(nsec); err != nil {
		err = errors.Wrap(err, "stored credential")
		return
	}
	if id, err = FromSecret(sk); err != nil {
		return
	}
	h.current.Store(id)
	return
}

// persist writes id to the store and then makes it current. The caller holds
// mx.
func (h *Holder) persist(id *Identity) (err er) {
	var nsec st
	if nsec, err = id.Nsec(); err != nil {
		return
	}
	if err = h.store.Set(nsec); chk.E(err) {
		return
	}
	h.current.Store(id)
	return
}
