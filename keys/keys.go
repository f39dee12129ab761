// Package keys holds the identity keypair: generating it, encoding it as nsec
// and keeping the active one for the session.
package keys

import (
	"github.com/pkg/errors"

	"nts.lol/bech32encoding"
	"nts.lol/errorf"
	"nts.lol/hex"
	"nts.lol/p256k"
)

// Identity is a secret key and its x-only public key. Pub always equals the
// public key of Sec.
type Identity struct {
	Sec [p256k.SecKeyBytesLen]byte
	Pub [p256k.PubKeyBytesLen]byte
}

// Generate creates an Identity from a fresh secret, redrawn until it is a
// valid scalar.
func Generate() (id *Identity, err er) { return FromSecret(p256k.GenerateSecret()) }

// FromSecret derives the Identity of the secret key sk.
func FromSecret(sk by) (id *Identity, err er) {
	var pub by
	if pub, err = p256k.PubFromSecret(sk); err != nil {
		return
	}
	id = &Identity{}
	copy(id.Sec[:], sk)
	copy(id.Pub[:], pub)
	return
}

// SecBytes returns a copy of the secret key.
func (id *Identity) SecBytes() (sk by) {
	sk = make(by, len(id.Sec))
	copy(sk, id.Sec[:])
	return
}

// PubBytes returns a copy of the public key.
func (id *Identity) PubBytes() (pk by) {
	pk = make(by, len(id.Pub))
	copy(pk, id.Pub[:])
	return
}

// PubHex is the public key in lower case hex, as it appears in records.
func (id *Identity) PubHex() st { return hex.Enc(id.Pub[:]) }

// Nsec is the encoded secret key.
func (id *Identity) Nsec() (st, er) { return Encode(id.Sec[:]) }

// Npub is the encoded public key.
func (id *Identity) Npub() (st, er) { return NpubOf(id.Pub[:]) }

// Signer returns a signer loaded with the secret key.
func (id *Identity) Signer() (s *p256k.Signer, err er) {
	s = &p256k.Signer{}
	if err = s.InitSec(id.Sec[:]); err != nil {
		s = nil
	}
	return
}

// Equal reports whether two identities have the same secret key.
func (id *Identity) Equal(o *Identity) bool {
	if id == nil || o == nil {
		return id == o
	}
	return id.Sec == o.Sec
}

// Encode renders a secret key as nsec.
func Encode(sk by) (nsec st, err er) {
	if err = p256k.CheckSecret(sk); err != nil {
		return
	}
	return bech32encoding.BinToNsec(sk)
}

// Decode parses an nsec back to the 32 byte secret key. Checksum, prefix and
// length problems are errorf.ErrInvalidEncoding; a well formed string holding
// an out of range scalar is errorf.ErrInvalidKeyMaterial.
func Decode(nsec st) (sk by, err er) {
	if sk, err = bech32encoding.NsecToBin(nsec); err != nil {
		return
	}
	if err = p256k.CheckSecret(sk); err != nil {
		sk = nil
	}
	return
}

// NpubOf renders an x-only public key as npub.
func NpubOf(pub by) (npub st, err er) {
	if _, err = p256k.ParsePub(pub); err != nil {
		return
	}
	return bech32encoding.BinToNpub(pub)
}

// DecodeNpub parses an npub and checks that it names a curve point.
func DecodeNpub(npub st) (pub by, err er) {
	if pub, err = bech32encoding.NpubToBin(npub); err != nil {
		return
	}
	if _, err = p256k.ParsePub(pub); err != nil {
		err = errors.Wrap(errorf.ErrInvalidKeyMaterial, "npub is not a curve point")
		pub = nil
	}
	return
}
