// Package nip49 wraps a secret key under a password with scrypt and
// XChaCha20-Poly1305, producing the fixed 91 byte blob also known by its
// bech32 form, ncryptsec.
package nip49

import (
	"github.com/pkg/errors"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"
	"golang.org/x/text/unicode/norm"
	"lukechampine.com/frand"

	"nts.lol/bech32encoding"
	"nts.lol/chk"
	"nts.lol/errorf"
	"nts.lol/p256k"
)

const (
	Version byte = 0x02

	SaltLen  = 16
	NonceLen = chacha20poly1305.NonceSizeX

	// BlobLen is version, logN, salt, nonce, key security, then the sealed key
	// with its tag.
	BlobLen = 1 + 1 + SaltLen + NonceLen + 1 + p256k.SecKeyBytesLen + chacha20poly1305.Overhead

	MinLogN byte = 1
	MaxLogN byte = 22

	// DefaultLogN costs 64MiB of memory per derivation.
	DefaultLogN byte = 16

	scryptR = 8
	scryptP = 1
)

// KeySecurity records how the key was handled before it was wrapped. It is
// bound to the ciphertext as associated data.
type KeySecurity byte

const (
	KnownInsecure    KeySecurity = 0x00
	NotKnownInsecure KeySecurity = 0x01
	Unknown          KeySecurity = 0x02
)

// NormalizePassword returns the NFKC form of password, so the same password
// typed on different systems derives the same key.
func NormalizePassword(password st) by { return norm.NFKC.Bytes(by(password)) }

func deriveKey(password st, salt by, logN byte) (key by, err er) {
	pw := NormalizePassword(password)
	defer clear(pw)
	if key, err = scrypt.Key(pw, salt, 1<<logN, scryptR, scryptP, chacha20poly1305.KeySize); chk.E(err) {
		err = errors.Wrapf(errorf.ErrMalformedPayload, "scrypt: %v", err)
	}
	return
}

// Wrap encrypts the secret key sk under password. Each call draws a fresh
// salt and nonce, so two wraps of the same key never match.
func Wrap(sk by, password st, logN byte, security KeySecurity) (blob by, err er) {
	if err = p256k.CheckSecret(sk); err != nil {
		return
	}
	if logN < MinLogN || logN > MaxLogN {
		err = errors.Wrapf(errorf.ErrMalformedPayload, "logN %d outside %d..%d",
			logN, MinLogN, MaxLogN)
		return
	}
	if security > Unknown {
		err = errors.Wrapf(errorf.ErrMalformedPayload, "key security byte %d", security)
		return
	}
	blob = make(by, 0, BlobLen)
	blob = append(blob, Version, logN)
	blob = append(blob, frand.Bytes(SaltLen)...)
	blob = append(blob, frand.Bytes(NonceLen)...)
	blob = append(blob, byte(security))
	salt, nonce, ad := blob[2:2+SaltLen], blob[2+SaltLen:2+SaltLen+NonceLen], blob[BlobLen-49:BlobLen-48]
	var key by
	if key, err = deriveKey(password, salt, logN); err != nil {
		blob = nil
		return
	}
	defer clear(key)
	aead, err := chacha20poly1305.NewX(key)
	if chk.E(err) {
		blob = nil
		return
	}
	blob = aead.Seal(blob, nonce, sk, ad)
	return
}

// Unwrap recovers the secret key from a blob made by Wrap. A wrong password
// and a modified blob both fail with errorf.ErrAuthenticationFailed.
func Unwrap(blob by, password st) (sk by, err er) {
	if len(blob) != BlobLen {
		err = errors.Wrapf(errorf.ErrMalformedPayload, "blob is %d bytes, expected %d",
			len(blob), BlobLen)
		return
	}
	if blob[0] != Version {
		err = errors.Wrapf(errorf.ErrUnsupportedVersion, "version %d", blob[0])
		return
	}
	logN := blob[1]
	if logN < MinLogN || logN > MaxLogN {
		err = errors.Wrapf(errorf.ErrMalformedPayload, "logN %d outside %d..%d",
			logN, MinLogN, MaxLogN)
		return
	}
	salt, nonce := blob[2:2+SaltLen], blob[2+SaltLen:2+SaltLen+NonceLen]
	ad, sealed := blob[BlobLen-49:BlobLen-48], blob[BlobLen-48:]
	var key by
	if key, err = deriveKey(password, salt, logN); err != nil {
		return
	}
	defer clear(key)
	aead, err := chacha20poly1305.NewX(key)
	if chk.E(err) {
		return
	}
	if sk, err = aead.Open(nil, nonce, sealed, ad); chk.D(err) {
		sk, err = nil, errorf.ErrAuthenticationFailed
		return
	}
	if err = p256k.CheckSecret(sk); err != nil {
		clear(sk)
		sk = nil
	}
	return
}

// Security returns the key security byte of a blob without decrypting it.
func Security(blob by) (ks KeySecurity, err er) {
	if len(blob) != BlobLen {
		err = errors.Wrapf(errorf.ErrMalformedPayload, "blob is %d bytes, expected %d",
			len(blob), BlobLen)
		return
	}
	ks = KeySecurity(blob[BlobLen-49])
	return
}

// Cost returns the scrypt work factor of a blob without deriving anything, so
// a caller can refuse a blob that would take too long or too much memory.
func Cost(blob by) (logN byte, err er) {
	if len(blob) != BlobLen {
		err = errors.Wrapf(errorf.ErrMalformedPayload, "blob is %d bytes, expected %d",
			len(blob), BlobLen)
		return
	}
	logN = blob[1]
	return
}

// Encode renders a blob as an ncryptsec bech32 string.
func Encode(blob by) (s st, err er) {
	if len(blob) != BlobLen {
		err = errors.Wrapf(errorf.ErrMalformedPayload, "blob is %d bytes, expected %d",
			len(blob), BlobLen)
		return
	}
	return bech32encoding.Encode(bech32encoding.NcryptsecHRP, blob)
}

// Decode parses an ncryptsec string back to its blob. The blob itself is
// checked by Unwrap.
func Decode(s st) (blob by, err er) {
	return bech32encoding.Decode(bech32encoding.NcryptsecHRP, s)
}
