package event

import (
	"encoding/json"

	"github.com/pkg/errors"

	"nts.lol/errorf"
	"nts.lol/hex"
	"nts.lol/kind"
	"nts.lol/p256k"
	"nts.lol/tags"
	"nts.lol/text"
	"nts.lol/timestamp"
)

var (
	jKind      = by("kind")
	jCreatedAt = by("created_at")
	jTags      = by("tags")
	jContent   = by("content")
	jPubkey    = by("pubkey")
	jID        = by("id")
	jSig       = by("sig")
)

// Marshal appends the JSON form of the record with the fields in the order
// kind, created_at, tags, content, pubkey, id, sig and no whitespace.
func (ev *T) Marshal(dst by) (b by) {
	b = append(dst, '{')
	b = text.JSONKey(b, jKind)
	b = ev.Kind.Marshal(b)
	b = append(b, ',')
	b = text.JSONKey(b, jCreatedAt)
	b = ev.CreatedAt.Marshal(b)
	b = append(b, ',')
	b = text.JSONKey(b, jTags)
	b = ev.Tags.Marshal(b)
	b = append(b, ',')
	b = text.JSONKey(b, jContent)
	b = text.AppendQuote(b, ev.Content, text.NostrEscape)
	b = append(b, ',')
	b = text.JSONKey(b, jPubkey)
	b = text.AppendQuote(b, ev.Pubkey, hex.EncAppend)
	b = append(b, ',')
	b = text.JSONKey(b, jID)
	b = text.AppendQuote(b, ev.ID, hex.EncAppend)
	b = append(b, ',')
	b = text.JSONKey(b, jSig)
	b = text.AppendQuote(b, ev.Sig, hex.EncAppend)
	b = append(b, '}')
	return
}

// MarshalJSON implements json.Marshaler.
func (ev *T) MarshalJSON() (b []byte, err error) { return ev.Marshal(nil), nil }

// J is the plain struct shape of the JSON form.
type J struct {
	Kind      int64      `json:"kind"`
	CreatedAt int64      `json:"created_at"`
	Tags      [][]string `json:"tags"`
	Content   string     `json:"content"`
	Pubkey    string     `json:"pubkey"`
	ID        string     `json:"id"`
	Sig       string     `json:"sig"`
}

// ToEvent checks the field sizes of j and converts it to a T. It does not
// verify the signature.
func (j *J) ToEvent() (ev *T, err er) {
	if j.Kind < 0 || j.Kind > 0xffff {
		err = errors.Wrapf(errorf.ErrInvalidRecordField, "kind %d out of range", j.Kind)
		return
	}
	ev = &T{
		Kind:      kind.New(uint16(j.Kind)),
		CreatedAt: timestamp.FromUnix(j.CreatedAt),
		Tags:      tags.FromStrings(j.Tags...),
		Content:   by(j.Content),
	}
	if ev.Pubkey, err = decodeHex("pubkey", j.Pubkey, p256k.PubKeyBytesLen); err != nil {
		ev = nil
		return
	}
	if ev.ID, err = decodeHex("id", j.ID, 32); err != nil {
		ev = nil
		return
	}
	if ev.Sig, err = decodeHex("sig", j.Sig, p256k.SignatureLen); err != nil {
		ev = nil
		return
	}
	return
}

func decodeHex(name, s st, size no) (b by, err er) {
	if len(s) != 2*size {
		err = errors.Wrapf(errorf.ErrInvalidRecordField, "%s must be %d hex characters, got %d",
			name, 2*size, len(s))
		return
	}
	if b, err = hex.Dec(s); err != nil {
		err = errors.Wrapf(errorf.ErrInvalidRecordField, "%s: %v", name, err)
	}
	return
}

// Unmarshal parses the JSON form in any field order. Fields of the wrong
// type or hex of the wrong length fail with errorf.ErrInvalidRecordField.
func (ev *T) Unmarshal(b by) (err er) {
	var j J
	if err = json.Unmarshal(b, &j); err != nil {
		return errors.Wrapf(errorf.ErrInvalidRecordField, "json: %v", err)
	}
	var e *T
	if e, err = j.ToEvent(); err != nil {
		return
	}
	*ev = *e
	return
}

// UnmarshalJSON implements json.Unmarshaler.
func (ev *T) UnmarshalJSON(b []byte) (err error) { return ev.Unmarshal(b) }
