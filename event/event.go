// Package event is the signed record: its canonical form, content address,
// signature and JSON wire shape.
package event

import (
	"unicode/utf8"

	"github.com/pkg/errors"

	"nts.lol/errorf"
	"nts.lol/hex"
	"nts.lol/kind"
	"nts.lol/sha256"
	"nts.lol/signer"
	"nts.lol/tags"
	"nts.lol/timestamp"
)

// T is a record. ID is the sha256 of the canonical form and Sig a BIP-340
// signature on ID by Pubkey.
type T struct {
	// Kind is the record type code, see kind.T.
	Kind *kind.T
	// CreatedAt is the unix time the author claims the record was made.
	CreatedAt *timestamp.T
	// Tags are ordered lists of strings, the first being the key.
	Tags *tags.T
	// Content is the record body. It must be valid UTF-8.
	Content by
	// Pubkey is the 32 byte x-only public key of the author.
	Pubkey by
	// ID is the 32 byte hash of the canonical form.
	ID by
	// Sig is the 64 byte signature on ID.
	Sig by
}

func New() (ev *T) { return &T{} }

// Build assembles and signs a record. Content or tag fields that are not
// valid UTF-8 fail with errorf.ErrInvalidRecordField.
func Build(k *kind.T, createdAt *timestamp.T, tgs *tags.T, content by,
	sign signer.I) (ev *T, err er) {
	if k == nil {
		err = errors.Wrap(errorf.ErrInvalidRecordField, "no kind")
		return
	}
	if createdAt == nil {
		createdAt = timestamp.Now()
	}
	if tgs == nil {
		tgs = tags.New()
	}
	ev = &T{Kind: k, CreatedAt: createdAt, Tags: tgs, Content: content}
	if err = ev.Check(); err != nil {
		ev = nil
		return
	}
	if err = ev.Sign(sign); err != nil {
		ev = nil
		return
	}
	return
}

// Check reports whether the fields can be put in canonical form.
func (ev *T) Check() (err er) {
	if !utf8.Valid(ev.Content) {
		return errors.Wrap(errorf.ErrInvalidRecordField, "content is not valid UTF-8")
	}
	if !ev.Tags.ValidUTF8() {
		return errors.Wrap(errorf.ErrInvalidRecordField, "tag field is not valid UTF-8")
	}
	return
}

func (ev *T) IDString() (s st) { return hex.Enc(ev.ID) }
func (ev *T) PubkeyString() (s st) { return hex.Enc(ev.Pubkey) }
func (ev *T) SigString() (s st) { return hex.Enc(ev.Sig) }
func (ev *T) ContentString() (s st) { return st(ev.Content) }
func (ev *T) TagStrings() (s [][]string) { return ev.Tags.ToStringSlice() }
func (ev *T) CreatedAtInt64() (i int64) { return ev.CreatedAt.I64() }
func (ev *T) KindU16() (k uint16) { return ev.Kind.ToU16() }
func (ev *T) Serialize() (b by) { return ev.Marshal(nil) }

// Hash is sha256 of in.
func Hash(in by) (out by) {
	h := sha256.Sum256(in)
	return h[:]
}
