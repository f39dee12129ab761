package p256k

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/pkg/errors"
	"lukechampine.com/frand"

	"nts.lol/chk"
	"nts.lol/errorf"
	"nts.lol/signer"
)

const (
	SecKeyBytesLen = secp256k1.PrivKeyBytesLen
	PubKeyBytesLen = schnorr.PubKeyBytesLen
	SignatureLen   = schnorr.SignatureSize
)

// Signer is an implementation of signer.I that uses the btcec library.
type Signer struct {
	SecretKey *btcec.PrivateKey
	PublicKey *btcec.PublicKey
	pkb, skb  []byte
}

var _ signer.I = &Signer{}

// Generate creates a new Signer from a freshly sampled secret.
func (s *Signer) Generate() (err error) { return s.InitSec(GenerateSecret()) }

// InitSec initialises a Signer using raw secret key bytes.
func (s *Signer) InitSec(sec []byte) (err error) {
	if err = CheckSecret(sec); err != nil {
		return
	}
	s.skb = make([]byte, SecKeyBytesLen)
	copy(s.skb, sec)
	s.SecretKey, s.PublicKey = btcec.PrivKeyFromBytes(s.skb)
	s.pkb = schnorr.SerializePubKey(s.PublicKey)
	return
}

// InitPub initializes a signature verifier Signer from raw public key bytes.
func (s *Signer) InitPub(pub []byte) (err error) {
	if s.PublicKey, err = ParsePub(pub); err != nil {
		return
	}
	s.pkb = append([]byte(nil), pub...)
	return
}

// Sec returns the raw secret key bytes.
func (s *Signer) Sec() (b []byte) { return s.skb }

// Pub returns the raw BIP-340 schnorr public key bytes.
func (s *Signer) Pub() (b []byte) { return s.pkb }

// Sign a message with the Signer. Requires an initialised secret key. The
// auxiliary randomness of BIP-340 is drawn fresh for every signature.
func (s *Signer) Sign(msg []byte) (sig []byte, err error) {
	if s.SecretKey == nil {
		err = errorf.E("p256k: Signer not initialized")
		return
	}
	var aux [32]byte
	frand.Read(aux[:])
	var si *schnorr.Signature
	if si, err = schnorr.Sign(s.SecretKey, msg, schnorr.CustomNonce(aux)); chk.E(err) {
		return
	}
	sig = si.Serialize()
	return
}

// Verify a message signature, only requires the public key is initialised.
func (s *Signer) Verify(msg, sig []byte) (valid bool, err error) {
	if s.PublicKey == nil {
		err = errorf.E("p256k: Pubkey not initialized")
		return
	}
	var si *schnorr.Signature
	if si, err = schnorr.ParseSignature(sig); chk.D(err) {
		err = errors.Wrapf(errorf.ErrInvalidEncoding, "signature: %v", err)
		return
	}
	valid = si.Verify(msg, s.PublicKey)
	return
}

// Zero wipes the secret key bytes.
func (s *Signer) Zero() {
	if s.SecretKey != nil {
		s.SecretKey.Zero()
	}
	for i := range s.skb {
		s.skb[i] = 0
	}
}

// ECDH computes the x coordinate of the shared point of the Signer secret and
// the given x-only public key.
func (s *Signer) ECDH(pub []byte) (secret []byte, err error) {
	if s.SecretKey == nil {
		err = errorf.E("p256k: Signer not initialized")
		return
	}
	return ECDH(s.skb, pub)
}
