// Package encryption implements the version 2 authenticated payload cipher
// used to encrypt record content between two keys, or from a key to itself.
package encryption

import (
	"crypto/hmac"
	"encoding/base64"
	"encoding/binary"
	"io"
	"math/bits"

	"github.com/pkg/errors"
	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/hkdf"
	"lukechampine.com/frand"

	"nts.lol/chk"
	"nts.lol/errorf"
	"nts.lol/sha256"
)

const (
	Version          byte = 2
	NonceLen              = 32
	MacLen                = 32
	KeyLen                = 32
	MaxPlaintextSize      = 0xffff

	minPayloadLen = 132
	maxPayloadLen = 87472
	minFrameLen   = 99
	maxFrameLen   = 65603
)

var encoding = base64.StdEncoding.Strict()

type Opts struct {
	err   er
	nonce by
}

// WithCustomNonce fixes the 32 byte message nonce. Only for reproducing test
// vectors: reusing a nonce under one conversation key leaks plaintext.
func WithCustomNonce(nonce by) func(opts *Opts) {
	return func(opts *Opts) {
		if len(nonce) != NonceLen {
			opts.err = errors.Wrapf(errorf.ErrMalformedPayload,
				"nonce must be %d bytes, got %d", NonceLen, len(nonce))
		}
		opts.nonce = nonce
	}
}

// Encrypt pads, encrypts and authenticates plaintext under the conversation
// key ck and returns the base64 frame.
func Encrypt(plaintext, ck by, applyOptions ...func(opts *Opts)) (payload st, err er) {
	var o Opts
	for _, apply := range applyOptions {
		apply(&o)
	}
	if err = o.err; err != nil {
		return
	}
	if o.nonce == nil {
		o.nonce = frand.Bytes(NonceLen)
	}
	size := len(plaintext)
	if size > MaxPlaintextSize {
		err = errors.Wrapf(errorf.ErrMalformedPayload,
			"plaintext of %d bytes exceeds %d", size, MaxPlaintextSize)
		return
	}
	var enc, cc20nonce, auth by
	if enc, cc20nonce, auth, err = messageKeys(ck, o.nonce); err != nil {
		return
	}
	defer clear(enc)
	defer clear(auth)
	padded := make(by, 2+calcPadding(size))
	binary.BigEndian.PutUint16(padded, uint16(size))
	copy(padded[2:], plaintext)
	var cipher by
	if cipher, err = xor(enc, cc20nonce, padded); chk.E(err) {
		return
	}
	clear(padded)
	frame := make(by, 0, 1+NonceLen+len(cipher)+MacLen)
	frame = append(frame, Version)
	frame = append(frame, o.nonce...)
	frame = append(frame, cipher...)
	// NIP-44 v2 leaves the version byte out of the MAC; it is checked on its own.
	frame = append(frame, mac(auth, o.nonce, cipher)...)
	payload = encoding.EncodeToString(frame)
	return
}

// Decrypt authenticates and decrypts a base64 frame produced by Encrypt. The
// MAC is checked before anything is decrypted.
func Decrypt(payload st, ck by) (plaintext by, err er) {
	pLen := len(payload)
	if pLen < minPayloadLen || pLen > maxPayloadLen {
		err = errors.Wrapf(errorf.ErrMalformedPayload, "payload length %d", pLen)
		return
	}
	if payload[0] == '#' {
		err = errors.Wrap(errorf.ErrUnsupportedVersion, "future version marker")
		return
	}
	var frame by
	if frame, err = encoding.DecodeString(payload); err != nil {
		err = errors.Wrapf(errorf.ErrInvalidEncoding, "base64: %v", err)
		return
	}
	fLen := len(frame)
	if fLen < minFrameLen || fLen > maxFrameLen {
		err = errors.Wrapf(errorf.ErrMalformedPayload, "frame length %d", fLen)
		return
	}
	if frame[0] != Version {
		err = errors.Wrapf(errorf.ErrUnsupportedVersion, "version %d", frame[0])
		return
	}
	nonce, cipher, given := frame[1:1+NonceLen], frame[1+NonceLen:fLen-MacLen], frame[fLen-MacLen:]
	var enc, cc20nonce, auth by
	if enc, cc20nonce, auth, err = messageKeys(ck, nonce); err != nil {
		return
	}
	defer clear(enc)
	defer clear(auth)
	// The MAC covers nonce and ciphertext only, as NIP-44 v2 does, so a
	// changed version byte was already refused above.
	if !hmac.Equal(given, mac(auth, nonce, cipher)) {
		err = errorf.ErrAuthenticationFailed
		return
	}
	var padded by
	if padded, err = xor(enc, cc20nonce, cipher); chk.E(err) {
		return
	}
	defer clear(padded)
	size := no(binary.BigEndian.Uint16(padded))
	if len(padded) != 2+calcPadding(size) {
		err = errors.Wrapf(errorf.ErrMalformedPayload,
			"padded length %d does not match message length %d", len(padded), size)
		return
	}
	plaintext = make(by, size)
	copy(plaintext, padded[2:2+size])
	return
}

// EncryptString is Encrypt for string plaintext.
func EncryptString(plaintext st, ck by, applyOptions ...func(opts *Opts)) (payload st, err er) {
	return Encrypt(by(plaintext), ck, applyOptions...)
}

// DecryptString is Decrypt returning a string.
func DecryptString(payload st, ck by) (plaintext st, err er) {
	var b by
	if b, err = Decrypt(payload, ck); err != nil {
		return
	}
	plaintext = st(b)
	return
}

func xor(key, nonce, message by) (dst by, err er) {
	var cipher *chacha20.Cipher
	if cipher, err = chacha20.NewUnauthenticatedCipher(key, nonce); err != nil {
		return
	}
	dst = make(by, len(message))
	cipher.XORKeyStream(dst, message)
	return
}

func mac(key, nonce, cipher by) by {
	hm := hmac.New(sha256.New, key)
	hm.Write(nonce)
	hm.Write(cipher)
	return hm.Sum(nil)
}

// messageKeys expands the conversation key and nonce into the chacha20 key,
// the chacha20 nonce and the HMAC key.
func messageKeys(ck, nonce by) (enc, cc20nonce, auth by, err er) {
	if len(ck) != KeyLen {
		err = errors.Wrapf(errorf.ErrInvalidKeyMaterial,
			"conversation key must be %d bytes, got %d", KeyLen, len(ck))
		return
	}
	if len(nonce) != NonceLen {
		err = errors.Wrapf(errorf.ErrMalformedPayload,
			"nonce must be %d bytes, got %d", NonceLen, len(nonce))
		return
	}
	r := hkdf.Expand(sha256.New, ck, nonce)
	keys := make(by, chacha20.KeySize+chacha20.NonceSize+32)
	if _, err = io.ReadFull(r, keys); chk.E(err) {
		return
	}
	enc, cc20nonce, auth = keys[:32], keys[32:44], keys[44:]
	return
}

// calcPadding returns the padded length of a message of sLen bytes: 32 for
// short messages, then multiples of a chunk that grows with the message.
func calcPadding(sLen no) (l no) {
	if sLen <= 32 {
		return 32
	}
	nextPower := 1 << bits.Len(uint(sLen-1))
	chunk := max(32, nextPower/8)
	l = chunk * ((sLen-1)/chunk + 1)
	return
}
