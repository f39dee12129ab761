package bech32encoding

import (
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/pkg/errors"

	"nts.lol/chk"
	"nts.lol/errorf"
)

const (
	// MinKeyStringLen is 56 because Bech32 needs 52 characters plus 4 for the HRP,
	// any string shorter than this cannot be a nostr key.
	MinKeyStringLen = 56
	KeyLen          = 32
)

var (
	SecHRP       = "nsec"
	PubHRP       = "npub"
	NcryptsecHRP = "ncryptsec"
)

// ConvertForBech32 performs the bit expansion required for encoding into Bech32.
func ConvertForBech32(b8 by) (b5 by, err er) { return bech32.ConvertBits(b8, 8, 5, true) }

// ConvertFromBech32 collapses together the bit expanded 5 bit numbers encoded
// in bech32. Leftover padding bits must be zero.
func ConvertFromBech32(b5 by) (b8 by, err er) { return bech32.ConvertBits(b5, 5, 8, false) }

// Encode renders raw bytes as bech32 under the given human readable part.
func Encode(hrp st, b by) (s st, err er) {
	var b5 by
	if b5, err = ConvertForBech32(b); chk.E(err) {
		return
	}
	return bech32.Encode(hrp, b5)
}

// Decode checks the checksum and expected human readable part of s and returns
// the raw bytes it carries. The 90 character limit of BIP-173 is not applied,
// ncryptsec strings are longer than that.
func Decode(wantHRP, s st) (b by, err er) {
	var hrp st
	var b5 by
	if hrp, b5, err = bech32.DecodeNoLimit(s); chk.D(err) {
		err = errors.Wrapf(errorf.ErrInvalidEncoding, "bech32: %v", err)
		return
	}
	// DecodeNoLimit also accepts a bech32m checksum, nostr strings only use
	// bech32.
	var canonical st
	if canonical, err = bech32.Encode(hrp, b5); chk.E(err) {
		err = errors.Wrapf(errorf.ErrInvalidEncoding, "bech32: %v", err)
		return
	}
	if canonical != strings.ToLower(s) {
		err = errors.Wrap(errorf.ErrInvalidEncoding, "checksum is not bech32")
		return
	}
	if hrp != wantHRP {
		err = errors.Wrapf(errorf.ErrInvalidEncoding,
			"wrong human readable part, got '%s' want '%s'", hrp, wantHRP)
		return
	}
	if b, err = ConvertFromBech32(b5); chk.D(err) {
		err = errors.Wrapf(errorf.ErrInvalidEncoding, "bech32 bit conversion: %v", err)
		return
	}
	return
}

func decodeKey(hrp, s st) (b by, err er) {
	if b, err = Decode(hrp, s); err != nil {
		return
	}
	if len(b) != KeyLen {
		err = errors.Wrapf(errorf.ErrInvalidEncoding, "%s carries %d bytes, expected %d",
			hrp, len(b), KeyLen)
		b = nil
	}
	return
}

func encodeKey(hrp st, b by) (s st, err er) {
	if len(b) != KeyLen {
		err = errors.Wrapf(errorf.ErrInvalidEncoding, "key is %d bytes, expected %d", len(b), KeyLen)
		return
	}
	return Encode(hrp, b)
}

// BinToNsec encodes a 32 byte secret key as a Bech32 string (nsec).
func BinToNsec(sk by) (nsec st, err er) { return encodeKey(SecHRP, sk) }

// NsecToBin decodes a nostr secret key (nsec) to its 32 raw bytes.
func NsecToBin(nsec st) (sk by, err er) { return decodeKey(SecHRP, nsec) }

// BinToNpub encodes a 32 byte x-only public key as a Bech32 string (npub).
func BinToNpub(pk by) (npub st, err er) { return encodeKey(PubHRP, pk) }

// NpubToBin decodes a nostr public key (npub) to its 32 raw bytes.
func NpubToBin(npub st) (pk by, err er) { return decodeKey(PubHRP, npub) }
