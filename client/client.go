// Package client is the application layer of nts: one Session ties the
// identity, the note protocol, share links and the transport together.
package client

import (
	"context"
	"net/url"

	pkgerrors "github.com/pkg/errors"

	"nts.lol/chk"
	"nts.lol/errorf"
	"nts.lol/event"
	"nts.lol/keys"
	"nts.lol/kind"
	"nts.lol/log"
	"nts.lol/nip49"
	"nts.lol/note"
	"nts.lol/sharelink"
	"nts.lol/transport"
)

// Session is one user's view of nts. Operations that need an identity use
// the Holder's current one and fail with errorf.ErrNoCredential when there is
// none, so the caller can offer to create or import one. On any error the
// caller's input is left untouched for a retry.
type Session struct {
	Holder    *keys.Holder
	Transport transport.Submitter
	Pool      *nip49.Pool
	// LogN is the scrypt work factor of exported links.
	LogN byte
	// MaxImportLogN is the highest work factor an imported link may ask for.
	MaxImportLogN byte
}

// DefaultMaxImportLogN allows 1GiB of scrypt memory for an imported link.
const DefaultMaxImportLogN byte = 20

// New returns a Session. A nil pool gets a single worker pool and a zero logN
// becomes nip49.DefaultLogN. Imports are capped at DefaultMaxImportLogN, or at
// logN when that is higher.
func New(h *keys.Holder, t transport.Submitter, pool *nip49.Pool, logN byte) *Session {
	if pool == nil {
		pool = nip49.NewPool(1)
	}
	if logN == 0 {
		logN = nip49.DefaultLogN
	}
	return &Session{Holder: h, Transport: t, Pool: pool, LogN: logN,
		MaxImportLogN: max(DefaultMaxImportLogN, logN)}
}

// Init returns the session identity, creating and storing one if needed.
func (s *Session) Init() (id *keys.Identity, err error) { return s.Holder.Active() }

// CreateNote builds the encrypted record for a note without sending it.
func (s *Session) CreateNote(content, title string) (ev *event.T, err error) {
	var id *keys.Identity
	if id, err = s.Holder.Current(); err != nil {
		return
	}
	return note.Create(content, title, id, nil)
}

// SaveNote encrypts a note and submits it. The record is returned when it was
// built, even if submitting it failed.
func (s *Session) SaveNote(c context.Context, content, title string) (ev *event.T, err error) {
	if ev, err = s.CreateNote(content, title); err != nil {
		return
	}
	if s.Transport == nil {
		err = errorf.E("no transport configured")
		return
	}
	if err = s.Transport.Submit(c, ev); err != nil {
		return
	}
	log.I.F("saved note %s", ev.IDString())
	return
}

// OpenNote decrypts a record made by this identity, either a wrapped note or
// a legacy flat one.
func (s *Session) OpenNote(ev *event.T) (n *note.Note, err error) {
	var id *keys.Identity
	if id, err = s.Holder.Current(); err != nil {
		return
	}
	if ev.Kind.Equal(kind.NoteToSelf) {
		return note.OpenLegacy(ev, id)
	}
	return note.Open(ev, id)
}

// ExportLink wraps the current secret key under password for a share link.
// The key derivation runs on the pool; cancelling c only abandons the wait
// for a free worker.
func (s *Session) ExportLink(c context.Context, password string) (link string, err error) {
	var id *keys.Identity
	if id, err = s.Holder.Current(); err != nil {
		return
	}
	sk := id.SecBytes()
	r := <-s.Pool.Wrap(c, sk, password, s.LogN, nip49.NotKnownInsecure)
	clear(sk)
	if err = r.Err; chk.E(err) {
		return
	}
	return sharelink.EncodeBlob(r.Data), nil
}

// ExportURL attaches a share link for the current key to base.
func (s *Session) ExportURL(c context.Context, base *url.URL, password string) (u *url.URL,
	err error) {
	var link string
	if link, err = s.ExportLink(c, password); err != nil {
		return
	}
	return sharelink.Attach(base, link), nil
}

// ImportLink unwraps a share link and makes its key the session identity,
// persisting it first. A malformed link, or one whose work factor is above
// MaxImportLogN, is errorf.ErrInvalidEncoding and a wrong password
// errorf.ErrAuthenticationFailed.
func (s *Session) ImportLink(c context.Context, link, password string) (id *keys.Identity,
	err error) {
	var blob []byte
	if blob, err = sharelink.DecodeBlob(link); err != nil {
		return
	}
	var logN byte
	if logN, err = nip49.Cost(blob); err != nil {
		err = sharelink.Classify(err)
		return
	}
	if s.MaxImportLogN != 0 && logN > s.MaxImportLogN {
		err = pkgerrors.Wrapf(errorf.ErrInvalidEncoding,
			"link work factor %d is above the limit of %d", logN, s.MaxImportLogN)
		return
	}
	r := <-s.Pool.Unwrap(c, blob, password)
	if err = sharelink.Classify(r.Err); chk.D(err) {
		return
	}
	defer clear(r.Data)
	return s.Holder.Import(r.Data)
}

// ImportURL imports the share link carried in u and returns u with the link
// removed, for the caller to put back in the visible address.
func (s *Session) ImportURL(c context.Context, u *url.URL, password string) (id *keys.Identity,
	clean *url.URL, err error) {
	link, clean, ok := sharelink.Extract(u)
	if !ok {
		err = pkgerrors.Wrapf(errorf.ErrInvalidEncoding, "no %s parameter in url",
			sharelink.Param)
		return
	}
	id, err = s.ImportLink(c, link, password)
	return
}

// Reset forgets the identity and its stored credential.
func (s *Session) Reset() (err error) { return s.Holder.Reset() }
