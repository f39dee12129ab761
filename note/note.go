// Package note creates and opens encrypted notes to self.
//
// A note is a signed short text record, serialized to JSON and encrypted to
// the author's own key, then carried as the content of a signed addressable
// wrapper record:
//
//	outer kind 31234  tags [["d", <random id>], ["k", "23"]]  content Encrypt(inner JSON)
//	inner kind 1      tags [["title", <title>]]              content <note text>
package note

import (
	"bytes"
	"errors"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"lukechampine.com/frand"

	"nts.lol/chk"
	"nts.lol/encryption"
	"nts.lol/errorf"
	"nts.lol/event"
	"nts.lol/hex"
	"nts.lol/keys"
	"nts.lol/kind"
	"nts.lol/log"
	"nts.lol/tag"
	"nts.lol/tags"
	"nts.lol/timestamp"
)

var (
	TitleKey = by("title")
	DKey     = by("d")
	KKey     = by("k")
	// InnerKindTag is the value of the k tag on a wrapper.
	InnerKindTag = "23"
)

// Note is an opened note.
type Note struct {
	Content   st
	Title     st
	ID        by
	Address   st
	CreatedAt *timestamp.T
}

// NewIdentifier returns a random 32 character hex d tag value.
func NewIdentifier() st { return hex.Enc(frand.Bytes(16)) }

func checkContent(content st) (err er) {
	if strings.TrimSpace(content) == "" {
		return pkgerrors.Wrap(errorf.ErrInvalidRecordField, "note content is empty")
	}
	return
}

// Create builds the wrapper record for a note. An empty title is derived from
// the content with TitleFromContent. createdAt nil means now.
func Create(content, title st, id *keys.Identity, createdAt *timestamp.T) (outer *event.T,
	err er) {
	if err = checkContent(content); err != nil {
		return
	}
	if title == "" {
		title = TitleFromContent(content, DefaultTitleLength)
	}
	if createdAt == nil {
		createdAt = timestamp.Now()
	}
	sign, err := id.Signer()
	if err != nil {
		return
	}
	defer sign.Zero()
	var inner *event.T
	if inner, err = event.Build(kind.TextNote, createdAt,
		tags.New(tag.New(TitleKey, by(title))), by(content), sign); err != nil {
		return
	}
	var ck by
	if ck, err = encryption.SelfKey(id.Sec[:]); chk.E(err) {
		return
	}
	var payload st
	if payload, err = encryption.Encrypt(inner.Marshal(nil), ck); err != nil {
		return
	}
	if outer, err = event.Build(kind.DraftWrap, createdAt,
		tags.New(
			tag.New(DKey, by(NewIdentifier())),
			tag.New(KKey, by(InnerKindTag)),
		), by(payload), sign); err != nil {
		return
	}
	log.D.F("created note %s", outer.IDString())
	return
}

// Open decrypts a wrapper made by Create for the same identity. Errors from
// decryption are returned as they are (errorf.ErrAuthenticationFailed for
// any tampering); an inner record that does not parse, is not signed by id or
// has a bad signature is errorf.ErrInvalidInnerRecord; a wrapper of the wrong
// kind, by another author or with a bad signature is
// errorf.ErrInvalidRecordField.
func Open(outer *event.T, id *keys.Identity) (n *Note, err er) {
	if !outer.Kind.Equal(kind.DraftWrap) {
		err = pkgerrors.Wrapf(errorf.ErrInvalidRecordField, "record kind %d is not a note wrapper",
			outer.Kind.ToU16())
		return
	}
	var plain by
	if plain, err = decrypt(outer.Content, id); err != nil {
		return
	}
	inner := event.New()
	if err = inner.Unmarshal(plain); chk.D(err) {
		err = pkgerrors.Wrapf(errorf.ErrInvalidInnerRecord, "%v", err)
		return
	}
	if err = checkSigned(inner, id, errorf.ErrInvalidInnerRecord); err != nil {
		return
	}
	if err = checkSigned(outer, id, errorf.ErrInvalidRecordField); err != nil {
		return
	}
	n = &Note{
		Content:   inner.ContentString(),
		ID:        inner.ID,
		CreatedAt: inner.CreatedAt,
	}
	if t := inner.Tags.GetFirst(TitleKey); t != nil {
		n.Title = t.S(tag.Value)
	}
	if n.Address, err = Address(outer); err != nil {
		n = nil
	}
	return
}

// decrypt opens a payload encrypted to the self key of id. Anything that is
// not one of the cipher's own errors becomes errorf.ErrDecryptionFailed.
func decrypt(payload by, id *keys.Identity) (plain by, err er) {
	var ck by
	if ck, err = encryption.SelfKey(id.Sec[:]); chk.E(err) {
		err = pkgerrors.Wrapf(errorf.ErrDecryptionFailed, "%v", err)
		return
	}
	if plain, err = encryption.Decrypt(st(payload), ck); chk.D(err) {
		for _, known := range []er{
			errorf.ErrAuthenticationFailed, errorf.ErrUnsupportedVersion,
			errorf.ErrMalformedPayload, errorf.ErrInvalidEncoding,
		} {
			if errors.Is(err, known) {
				return
			}
		}
		err = pkgerrors.Wrapf(errorf.ErrDecryptionFailed, "%v", err)
	}
	return
}

// checkSigned verifies ev and that it was signed by id, reporting failure
// wrapped in sentinel.
func checkSigned(ev *event.T, id *keys.Identity, sentinel er) (err er) {
	if !bytes.Equal(ev.Pubkey, id.Pub[:]) {
		return pkgerrors.Wrapf(sentinel, "record %s is by another author", ev.IDString())
	}
	var valid bool
	if valid, err = ev.Verify(); err != nil || !valid {
		if err == nil {
			err = pkgerrors.Wrapf(sentinel, "bad signature on %s", ev.IDString())
		} else {
			err = pkgerrors.Wrapf(sentinel, "%v", err)
		}
		return
	}
	return
}

// Address is the kind:pubkey:d coordinate of a parameterized replaceable
// record.
func Address(ev *event.T) (a st, err er) {
	if !ev.Kind.IsParameterizedReplaceable() {
		err = pkgerrors.Wrapf(errorf.ErrInvalidRecordField,
			"kind %d is not parameterized replaceable", ev.Kind.ToU16())
		return
	}
	d := ev.Tags.GetFirst(DKey)
	if d == nil || d.Len() < 2 {
		err = pkgerrors.Wrap(errorf.ErrInvalidRecordField, "no d tag")
		return
	}
	a = ev.Kind.String() + ":" + ev.PubkeyString() + ":" + d.S(tag.Value)
	return
}
