package p256k

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/pkg/errors"
	"lukechampine.com/frand"

	"nts.lol/errorf"
)

// CheckSecret ensures sec is 32 bytes encoding a scalar in [1, n-1].
func CheckSecret(sec []byte) (err error) {
	if len(sec) != SecKeyBytesLen {
		return errors.Wrapf(errorf.ErrInvalidKeyMaterial, "secret key must be %d bytes, got %d",
			SecKeyBytesLen, len(sec))
	}
	var s secp256k1.ModNScalar
	overflow := s.SetByteSlice(sec)
	defer s.Zero()
	if overflow || s.IsZero() {
		return errors.Wrap(errorf.ErrInvalidKeyMaterial,
			"secret key is zero or not below the curve order")
	}
	return
}

// GenerateSecret draws 32 bytes from the CSPRNG until they encode a valid
// secret scalar. The chance of a retry is about 2^-128.
func GenerateSecret() (sec []byte) {
	sec = make([]byte, SecKeyBytesLen)
	for {
		frand.Read(sec)
		if CheckSecret(sec) == nil {
			return
		}
	}
}

// PubFromSecret returns the 32 byte x-only public key of sec.
func PubFromSecret(sec []byte) (pub []byte, err error) {
	if err = CheckSecret(sec); err != nil {
		return
	}
	_, pk := btcec.PrivKeyFromBytes(sec)
	pub = schnorr.SerializePubKey(pk)
	return
}

// ParsePub parses a 32 byte x-only public key, lifting it to the point with
// even y. Anything that is not the x coordinate of a curve point fails.
func ParsePub(pub []byte) (pk *btcec.PublicKey, err error) {
	if len(pub) != PubKeyBytesLen {
		err = errors.Wrapf(errorf.ErrInvalidKeyMaterial, "public key must be %d bytes, got %d",
			PubKeyBytesLen, len(pub))
		return
	}
	if pk, err = schnorr.ParsePubKey(pub); err != nil {
		err = errors.Wrapf(errorf.ErrInvalidKeyMaterial, "public key not on curve: %v", err)
		return
	}
	return
}

// ECDH multiplies the point of pub by the scalar sec and returns the 32 byte x
// coordinate of the result.
func ECDH(sec, pub []byte) (shared []byte, err error) {
	if err = CheckSecret(sec); err != nil {
		return
	}
	var pk *btcec.PublicKey
	if pk, err = ParsePub(pub); err != nil {
		return
	}
	var s secp256k1.ModNScalar
	s.SetByteSlice(sec)
	defer s.Zero()
	var point, result secp256k1.JacobianPoint
	pk.AsJacobian(&point)
	secp256k1.ScalarMultNonConst(&s, &point, &result)
	if result.Z.Normalize().IsZero() {
		err = errors.Wrap(errorf.ErrInvalidKeyMaterial, "shared point is at infinity")
		return
	}
	result.ToAffine()
	x := result.X.Bytes()
	shared = x[:]
	return
}

// Verify checks a BIP-340 signature on msg against an x-only public key. Any
// parse failure is reported as an invalid signature.
func Verify(msg, sig, pub []byte) (valid bool) {
	pk, err := ParsePub(pub)
	if err != nil {
		return
	}
	si, err := schnorr.ParseSignature(sig)
	if err != nil {
		return
	}
	return si.Verify(msg, pk)
}
